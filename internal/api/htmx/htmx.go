package htmx

import (
	"net/http"
	"net/url"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// CurrentURL returns the page URL htmx reports for the request, or nil.
func CurrentURL(r *http.Request) *url.URL {
	raw := strings.TrimSpace(r.Header.Get("HX-Current-URL"))
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return parsed
}

// Redirect sends the browser to location. htmx requests get HX-Redirect so
// the whole page navigates; everything else gets a 303.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if IsRequest(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
