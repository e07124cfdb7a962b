package searchbox

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/resort-booking/internal/templates/markup"
)

// SearchBox is a plain GET form to the results view. It performs no
// validation of its own beyond the date pickers' minimum date.
func SearchBox(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<form class="card search-box" method="get" action="/search-results" style="background:var(--theme-primary)">`)
		m.Raw(`<div style="display:flex;gap:.75rem;flex-wrap:wrap;align-items:end;background:#fff;padding:.75rem;border-radius:6px">`)

		m.Rawf(`<label>ปลายทาง<br><input type="text" name="destination" value="%s" placeholder="ค้นหาชื่อห้องพัก หรือจังหวัด"></label>`,
			markup.Esc(data.Destination))
		m.Rawf(`<label>เช็คอิน<br><input type="date" name="checkIn" value="%s" min="%s"></label>`,
			markup.Esc(data.CheckIn), markup.Esc(data.MinDate))
		m.Rawf(`<label>เช็คเอาท์<br><input type="date" name="checkOut" value="%s" min="%s"></label>`,
			markup.Esc(data.CheckOut), markup.Esc(data.MinDate))

		m.Raw(`<label>ผู้ใหญ่ (สูงสุด 4)<br><select name="adults">`)
		for _, n := range AdultOptions() {
			m.Rawf(`<option value="%d"%s>%d</option>`, n, markup.Selected(n == data.Adults), n)
		}
		m.Raw(`</select></label>`)

		m.Raw(`<label>เด็ก (สูงสุด 2)<br><select name="children">`)
		for _, n := range ChildOptions() {
			m.Rawf(`<option value="%d"%s>%d</option>`, n, markup.Selected(n == data.Children), n)
		}
		m.Raw(`</select></label>`)

		m.Rawf(`<input type="hidden" name="rooms" value="%s">`, strconv.Itoa(data.Rooms))
		m.Raw(`<button type="submit" class="btn">ค้นหา</button>`)
		m.Raw(`</div></form>`)
		return m.Err()
	})
}

// Home is the landing page body.
func Home(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<section class="hero"><h1>บาราลี บีช รีสอร์ท</h1><p class="muted">จองห้องพักริมทะเลในราคาพิเศษ</p></section>`)
		m.Component(ctx, SearchBox(data))
		return m.Err()
	})
}
