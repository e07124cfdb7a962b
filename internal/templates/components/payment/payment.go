package payment

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/resort-booking/internal/templates/markup"
)

// Placeholder ends the booking flow until online payment is available.
func Placeholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div class="card" id="payment"><h2>ชำระเงิน</h2>`)
		m.Raw(`<p class="muted">ระบบชำระเงินออนไลน์จะเปิดให้บริการเร็ว ๆ นี้</p>`)
		m.Raw(`<a class="btn" href="/">กลับไปหน้าแรก</a></div>`)
		return m.Err()
	})
}
