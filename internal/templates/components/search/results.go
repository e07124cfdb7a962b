package search

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/templates/components/searchbox"
	"github.com/codr1/resort-booking/internal/templates/format"
	"github.com/codr1/resort-booking/internal/templates/markup"
)

// ResultsPage is the full results view: search box, filter panel and the
// results region.
func ResultsPage(data ResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Component(ctx, searchbox.SearchBox(data.SearchBox))
		m.Raw(`<div style="display:flex;gap:1.5rem;align-items:flex-start">`)
		m.Component(ctx, FilterPanel(data))
		m.Raw(`<div style="flex:1">`)
		m.Component(ctx, Results(data))
		m.Raw(`</div></div>`)
		return m.Err()
	})
}

// FilterPanel re-requests the results region whenever a checkbox changes.
// hx-sync replace aborts an in-flight request so an older response can
// never overwrite a newer one.
func FilterPanel(data ResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<form id="filters" class="card" style="min-width:220px" action="/search-results" method="get"`)
		m.Raw(` hx-get="/search-results" hx-trigger="change" hx-target="#results" hx-swap="outerHTML" hx-sync="this:replace" hx-push-url="true">`)
		m.Raw(`<h3>ประเภทห้องพัก</h3>`)

		hidden := map[string]string{
			"destination": data.Criteria.Destination,
			"checkIn":     data.Criteria.CheckInString(),
			"checkOut":    data.Criteria.CheckOutString(),
		}
		for _, name := range []string{"destination", "checkIn", "checkOut"} {
			if hidden[name] == "" {
				continue
			}
			m.Rawf(`<input type="hidden" name="%s" value="%s">`, name, markup.Esc(hidden[name]))
		}
		m.Rawf(`<input type="hidden" name="adults" value="%d">`, data.Criteria.Adults)
		m.Rawf(`<input type="hidden" name="children" value="%d">`, data.Criteria.Children)
		if data.Criteria.Guests != data.Criteria.Adults+data.Criteria.Children {
			m.Rawf(`<input type="hidden" name="guests" value="%d">`, data.Criteria.Guests)
		}

		if len(data.Types) == 0 {
			m.Raw(`<p class="muted">ไม่มีข้อมูลประเภทห้องพัก</p>`)
		}
		for _, option := range data.Types {
			m.Rawf(`<label style="display:block"><input type="checkbox" name="type" value="%s"%s> %s</label>`,
				markup.Esc(option.Name), markup.Checked(option.Selected), markup.Esc(option.Name))
		}
		m.Raw(`<noscript><button type="submit" class="btn">กรอง</button></noscript>`)
		m.Raw(`<span class="htmx-indicator muted">กำลังโหลด...</span>`)
		m.Raw(`</form>`)
		return m.Err()
	})
}

// Results is the swappable results region.
func Results(data ResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<section id="results">`)
		m.Component(ctx, SearchSummary(data.Criteria))
		if data.Count == 0 {
			m.Raw(`<div class="card no-results"><h3>ไม่พบห้องพักที่ตรงกับการค้นหา</h3>`)
			m.Raw(`<p class="muted">ลองเปลี่ยนวันที่ ปลายทาง หรือประเภทห้องพัก</p></div>`)
			m.Raw(`</section>`)
			return m.Err()
		}

		m.Rawf(`<p class="muted">พบ %s รายการ</p>`, strconv.Itoa(data.Count))
		for _, group := range data.Groups {
			m.Rawf(`<h2 class="group-title">%s</h2>`, markup.Esc(group.TypeName))
			for _, card := range group.Cards {
				m.Component(ctx, ResultCard(card))
			}
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

// SearchSummary echoes the stay being searched; absent dates read "ไม่ระบุ".
func SearchSummary(criteria models.SearchCriteria) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div class="muted search-summary">`)
		m.Rawf(`<span>เช็คอิน: <b>%s</b></span> `, markup.Esc(summaryDate(criteria.CheckIn)))
		m.Rawf(`<span>เช็คเอาท์: <b>%s</b></span> `, markup.Esc(summaryDate(criteria.CheckOut)))
		m.Rawf(`<span>จำนวนผู้เข้าพัก: <b>%d</b></span>`, criteria.Guests)
		m.Raw(`</div>`)
		return m.Err()
	})
}

func summaryDate(t *time.Time) string {
	if t == nil {
		return "ไม่ระบุ"
	}
	return format.LongDate(*t)
}

func ResultCard(card Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Rawf(`<article class="card room-card" data-room-id="%s" style="display:flex;gap:1rem">`, markup.Esc(card.ID))
		m.Rawf(`<img src="%s" alt="%s" width="240" height="160" style="object-fit:cover;border-radius:6px">`,
			markup.Esc(card.ImageURL), markup.Esc(card.Name))
		m.Raw(`<div style="flex:1">`)
		m.Rawf(`<h3>%s</h3>`, markup.Esc(card.Name))
		if card.Location != "" {
			m.Rawf(`<p class="muted">%s</p>`, markup.Esc(card.Location))
		}
		switch card.Availability {
		case AvailabilityAvailable:
			if card.RemainingRoom != nil {
				m.Rawf(`<p class="availability">ว่าง เหลือ %d ห้อง</p>`, *card.RemainingRoom)
			} else {
				m.Raw(`<p class="availability">ว่าง</p>`)
			}
		case AvailabilitySoldOut:
			m.Raw(`<p class="availability sold-out">เต็ม</p>`)
		}
		m.Raw(`</div><div style="text-align:right">`)
		if card.HasDiscount {
			m.Rawf(`<div class="strike">%s</div>`, markup.Esc(format.Number(card.Original)))
			m.Rawf(`<span class="badge">ประหยัด %s</span>`, markup.Esc(format.Percent(card.Discount)))
		}
		m.Rawf(`<div class="price"><strong>%s</strong> / คืน</div>`, markup.Esc(format.Baht(card.Price)))
		if card.Availability == AvailabilitySoldOut {
			m.Raw(`<span class="btn" aria-disabled="true" style="opacity:.5">เต็ม</span>`)
		} else {
			m.Rawf(`<a class="btn" href="%s">จองเลย</a>`, markup.Esc(card.BookURL))
		}
		m.Raw(`</div></article>`)
		return m.Err()
	})
}
