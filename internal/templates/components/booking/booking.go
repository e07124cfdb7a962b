package booking

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/resort-booking/internal/templates/components/searchbox"
	"github.com/codr1/resort-booking/internal/templates/format"
	"github.com/codr1/resort-booking/internal/templates/markup"
)

func Page(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Component(ctx, searchbox.SearchBox(data.SearchBox))
		m.Component(ctx, Form(data))
		return m.Err()
	})
}

// Form posts the selection to /booking/confirm. htmx disables the confirm
// button for the duration of the request and re-enables it when any
// response arrives.
func Form(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<form id="booking-form" method="post" action="/booking/confirm"`)
		m.Raw(` hx-post="/booking/confirm" hx-target="this" hx-swap="outerHTML" hx-sync="this:drop" hx-disabled-elt="find button[type=submit]">`)

		if data.Error != "" {
			m.Rawf(`<div class="alert" role="alert">%s</div>`, markup.Esc(data.Error))
		}

		m.Rawf(`<input type="hidden" name="submissionToken" value="%s">`, markup.Esc(data.SubmissionToken))
		for _, line := range data.Rooms {
			m.Rawf(`<input type="hidden" name="room" value="%s">`, markup.Esc(line.RoomID.String()))
		}
		hiddenField(m, "destination", data.Destination)
		hiddenField(m, "checkIn", data.CheckIn)
		hiddenField(m, "checkOut", data.CheckOut)
		hiddenField(m, "userId", data.UserID)
		m.Rawf(`<input type="hidden" name="adults" value="%d">`, data.Adults)
		m.Rawf(`<input type="hidden" name="children" value="%d">`, data.Children)

		m.Raw(`<div style="display:flex;gap:1.5rem;align-items:flex-start;flex-wrap:wrap">`)
		m.Raw(`<div style="flex:2;min-width:320px">`)
		if len(data.Rooms) == 0 {
			m.Raw(`<div class="card"><p>ไม่พบข้อมูลห้องพัก กรุณาเลือกห้องพักจากหน้าค้นหา</p></div>`)
		}
		for _, line := range data.Rooms {
			m.Component(ctx, roomCard(line))
		}
		m.Component(ctx, specialRequest(data))
		m.Raw(`</div>`)

		m.Raw(`<div style="flex:1;min-width:280px">`)
		m.Component(ctx, summary(data))
		m.Raw(`</div></div>`)

		m.Raw(`</form>`)
		return m.Err()
	})
}

func hiddenField(m *markup.Writer, name, value string) {
	if value == "" {
		return
	}
	m.Rawf(`<input type="hidden" name="%s" value="%s">`, name, markup.Esc(value))
}

func roomCard(line RoomLine) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Rawf(`<div class="card room-line" data-room-id="%s">`, markup.Esc(line.RoomID.String()))
		m.Rawf(`<img src="%s" alt="%s" style="width:100%%;max-height:280px;object-fit:cover;border-radius:6px">`,
			markup.Esc(line.ImageURL), markup.Esc(line.Name))
		m.Rawf(`<h3>%s</h3>`, markup.Esc(line.Name))
		m.Rawf(`<p>ราคาต่อคืน: %s`, markup.Esc(format.Baht(line.Original)))
		if line.HasDiscount() {
			m.Rawf(`<br>ส่วนลด: %s → ราคา: %s`, markup.Esc(format.Percent(line.Discount)), markup.Esc(format.Baht(line.Discounted)))
		}
		m.Raw(`</p>`)
		if line.Unavailable {
			m.Raw(`<p class="alert">ห้องนี้ไม่ว่างในช่วงวันที่เลือก</p>`)
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

func specialRequest(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div class="card"><h3>คำขอพิเศษ</h3>`)
		m.Raw(`<p class="muted">กรุณาระบุคำขอพิเศษของคุณ (หากมี)</p>`)
		m.Rawf(`<textarea name="specialRequest" rows="4" maxlength="1000" style="width:100%%" placeholder="เช่น ไดร์เป่าผม, สถานที่รับหรือส่ง">%s</textarea>`,
			markup.Esc(data.SpecialRequest))
		m.Raw(`<p class="muted" style="font-size:.85rem">* ไม่มีการรับประกันคำขอพิเศษ แต่เราจะดำเนินการตามคำขอของคุณให้ดีที่สุด</p>`)
		m.Rawf(`<label style="display:block;margin:.5rem 0">เบอร์โทรติดต่อ<br><input type="tel" name="contactPhone" value="%s" placeholder="081 234 5678"></label>`,
			markup.Esc(data.ContactPhone))
		m.Rawf(`<label><input type="checkbox" name="subscribeOffers" value="true"%s> ส่งข้อเสนอล่าสุดมาให้ฉัน</label>`,
			markup.Checked(data.SubscribeOffers))
		m.Raw(`</div>`)
		return m.Err()
	})
}

func summary(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div class="card booking-summary"><h3>สรุปการจอง</h3>`)
		for _, line := range data.Rooms {
			m.Rawf(`<div class="price-row">%s: %s/คืน</div>`, markup.Esc(line.Name), markup.Esc(format.Baht(line.Discounted)))
		}
		m.Rawf(`<div class="price-row">จำนวนคืน: <strong>%d คืน</strong></div>`, data.Nights)
		m.Raw(`<div class="price-row">ค่าธรรมเนียมการจอง: <strong style="color:#16a34a">ฟรี</strong></div>`)
		m.Raw(`<hr>`)
		m.Rawf(`<div class="price-row total">รวมทั้งหมด <strong id="booking-total">%s</strong></div>`, markup.Esc(format.Baht(data.Total)))
		m.Raw(`<div style="display:flex;gap:.75rem;margin-top:1rem">`)
		m.Rawf(`<a class="btn btn-outline" href="%s">ย้อนกลับ</a>`, markup.Esc(data.BackURL))
		m.Raw(`<button type="submit" class="btn">ยืนยันการจอง<span class="htmx-indicator"> ...</span></button>`)
		m.Raw(`</div></div>`)
		return m.Err()
	})
}
