package layouts

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/templates/markup"
)

const siteName = "Barali Beach Resort"

const baseStyles = `body{background:var(--theme-surface);font-family:system-ui,sans-serif;margin:0;color:#1f2937}
header.site{background:var(--theme-primary);color:#fff;padding:1rem 2rem}
header.site a{color:#fff;text-decoration:none;font-weight:600}
main{max-width:1100px;margin:0 auto;padding:1.5rem}
.btn{background:var(--theme-primary);color:#fff;border:0;border-radius:6px;padding:.6rem 1.2rem;cursor:pointer;text-decoration:none;display:inline-block}
.btn-outline{background:#fff;color:var(--theme-primary);border:1px solid var(--theme-primary)}
.btn[disabled]{opacity:.6;cursor:wait}
.card{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:1rem;margin-bottom:1rem}
.strike{text-decoration:line-through;color:#6b7280}
.badge{background:var(--theme-accent);color:#000;border-radius:4px;padding:0 .4rem;font-size:.85rem}
.alert{background:#fee2e2;color:#991b1b;border-radius:6px;padding:.75rem 1rem;margin-bottom:1rem}
.muted{color:#6b7280}
.htmx-request .htmx-indicator{display:inline}
.htmx-indicator{display:none}`

// 422, 429 and 502 responses carry a form fragment that must still be
// swapped in.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"429","swap":true},{"code":"502","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

// Base wraps content in the site shell. The theme becomes CSS variables
// consumed by baseStyles.
func Base(title string, theme models.Theme, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		pageTitle := siteName
		if strings.TrimSpace(title) != "" {
			pageTitle = title + " | " + siteName
		}

		m.Raw(`<!DOCTYPE html><html lang="th"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Rawf(`<title>%s</title>`, markup.Esc(pageTitle))
		m.Rawf(`<style>%s%s</style>`, theme.CSSVars(), baseStyles)
		m.Raw(`<meta name="htmx-config" content='` + htmxConfig + `'>`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js" defer></script>`)
		m.Raw(`</head><body>`)
		m.Rawf(`<header class="site"><a href="/">%s</a></header>`, markup.Esc(siteName))
		m.Raw(`<main id="main">`)
		m.Component(ctx, content)
		m.Raw(`</main></body></html>`)
		return m.Err()
	})
}
