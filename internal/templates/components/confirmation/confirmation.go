package confirmation

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/resort-booking/internal/templates/format"
	"github.com/codr1/resort-booking/internal/templates/markup"
)

// Email status values for the summary-email fragment.
const (
	EmailSent        = "sent"
	EmailInvalid     = "invalid"
	EmailRateLimited = "rate_limited"
	EmailFailed      = "failed"
)

// Loading is served while the browser is sent back to the start page
// because no draft exists.
func Loading() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div class="card" id="confirmation-loading"><p>กำลังโหลด...</p>`)
		m.Raw(`<p class="muted"><a href="/">กลับไปหน้าแรก</a></p></div>`)
		return m.Err()
	})
}

func Summary(data SummaryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div id="confirmation" style="display:flex;gap:1.5rem;flex-wrap:wrap;align-items:flex-start">`)

		m.Raw(`<div style="flex:2;min-width:320px">`)
		m.Raw(`<div class="card"><h2>ข้อมูลผู้เข้าพัก</h2>`)
		m.Rawf(`<p>ชื่อ: <strong>%s</strong></p>`, markup.Esc(data.GuestName))
		m.Rawf(`<p>อีเมล: <strong>%s</strong></p>`, markup.Esc(data.GuestEmail))
		if data.ContactPhone != "" {
			m.Rawf(`<p>เบอร์โทร: <strong>%s</strong></p>`, markup.Esc(data.ContactPhone))
		}
		m.Raw(`</div>`)

		m.Raw(`<div class="card"><h2>รายละเอียดการจอง</h2>`)
		if data.MissingRooms {
			m.Raw(`<p class="alert">ไม่พบข้อมูลห้องพัก กรุณาทำการจองใหม่อีกครั้ง</p>`)
		} else {
			m.Rawf(`<p>ห้องพัก: <strong class="room-names">%s</strong></p>`, markup.Esc(data.RoomNames))
		}
		m.Rawf(`<p>เช็คอิน: <strong>%s</strong></p>`, markup.Esc(data.CheckIn))
		m.Rawf(`<p>เช็คเอาท์: <strong>%s</strong></p>`, markup.Esc(data.CheckOut))
		m.Rawf(`<p>จำนวนคืน: <strong>%d คืน</strong></p>`, data.Nights)
		m.Rawf(`<p>ผู้ใหญ่ %d คน, เด็ก %d คน, %d ห้อง</p>`, data.Adults, data.Children, data.RoomsCount)
		if data.SpecialRequest != "" {
			m.Rawf(`<p>คำขอพิเศษ: %s</p>`, markup.Esc(data.SpecialRequest))
		}
		m.Raw(`</div>`)
		m.Component(ctx, EmailForm("", ""))
		m.Raw(`</div>`)

		m.Raw(`<div style="flex:1;min-width:280px"><div class="card price-summary"><h2>สรุปราคา</h2>`)
		for _, line := range data.Lines {
			m.Raw(`<div class="price-line">`)
			m.Rawf(`<div>%s</div>`, markup.Esc(line.Name))
			if line.HasDiscount() {
				m.Rawf(`<span class="strike">%s</span> `, markup.Esc(format.Baht(line.Original)))
				m.Rawf(`<span class="badge">-%s</span> `, markup.Esc(format.Percent(line.Discount)))
			}
			m.Rawf(`<span>%s x %d คืน = <strong>%s</strong></span>`,
				markup.Esc(format.Baht(line.Discounted)), line.Nights, markup.Esc(format.Baht(line.Total)))
			m.Raw(`</div>`)
		}
		if data.Savings > 0 {
			m.Rawf(`<p class="savings">ประหยัด <strong>%s</strong></p>`, markup.Esc(format.Baht(data.Savings)))
		}
		m.Raw(`<p class="muted">ค่าธรรมเนียมการจอง: ฟรี</p><hr>`)
		m.Rawf(`<p class="total">ราคารวม <strong id="confirmation-total">%s</strong></p>`, markup.Esc(format.Baht(data.Total)))
		m.Raw(`<div style="display:flex;gap:.75rem">`)
		m.Raw(`<button type="button" class="btn btn-outline" onclick="history.back()">ย้อนกลับ</button>`)
		m.Raw(`<a class="btn" href="/payment">ชำระเงิน</a>`)
		m.Raw(`</div></div></div>`)

		m.Raw(`</div>`)
		return m.Err()
	})
}

// EmailForm asks for an address to send the booking summary to. status
// selects the feedback line shown under the input.
func EmailForm(recipient, status string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<form id="summary-email" class="card" method="post" action="/booking-confirmation/email"`)
		m.Raw(` hx-post="/booking-confirmation/email" hx-target="this" hx-swap="outerHTML" hx-disabled-elt="find button[type=submit]">`)
		m.Raw(`<h3>ส่งสรุปการจองทางอีเมล</h3>`)
		m.Rawf(`<input type="email" name="email" required value="%s" placeholder="you@example.com">`, markup.Esc(recipient))
		m.Raw(` <button type="submit" class="btn">ส่ง</button>`)
		switch status {
		case EmailSent:
			m.Raw(`<p class="email-status sent">ส่งอีเมลเรียบร้อยแล้ว</p>`)
		case EmailInvalid:
			m.Raw(`<p class="email-status alert">กรุณากรอกอีเมลให้ถูกต้อง</p>`)
		case EmailRateLimited:
			m.Raw(`<p class="email-status alert">ส่งอีเมลบ่อยเกินไป กรุณาลองใหม่ภายหลัง</p>`)
		case EmailFailed:
			m.Raw(`<p class="email-status alert">ไม่สามารถส่งอีเมลได้ กรุณาลองใหม่อีกครั้ง</p>`)
		}
		m.Raw(`</form>`)
		return m.Err()
	})
}
