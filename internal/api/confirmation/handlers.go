// internal/api/confirmation/handlers.go
package confirmation

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/codr1/resort-booking/internal/api/apiutil"
	"github.com/codr1/resort-booking/internal/api/htmx"
	"github.com/codr1/resort-booking/internal/drafts"
	"github.com/codr1/resort-booking/internal/email"
	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/ratelimit"
	"github.com/codr1/resort-booking/internal/request"
	confirmtempl "github.com/codr1/resort-booking/internal/templates/components/confirmation"
	"github.com/codr1/resort-booking/internal/templates/layouts"
)

const (
	homePath  = "/"
	pageTitle = "ยืนยันการจอง"
)

var (
	draftStore *drafts.Store
	cookies    *drafts.Cookies
	sender     email.EmailSender
	limiter    *ratelimit.Limiter
	trustProxy bool
	theme      = models.DefaultTheme()
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(store *drafts.Store, draftCookies *drafts.Cookies, emailSender email.EmailSender, emailLimiter *ratelimit.Limiter, trustProxyHeaders bool, brand models.Theme) {
	if store == nil || draftCookies == nil {
		return
	}
	draftStore = store
	cookies = draftCookies
	sender = emailSender
	limiter = emailLimiter
	trustProxy = trustProxyHeaders
	theme = brand
}

// /booking-confirmation
func HandleConfirmationPage(w http.ResponseWriter, r *http.Request) {
	draft, ok := loadDraft(w, r)
	if !ok {
		return
	}

	data := confirmtempl.NewSummaryData(draft)
	page := layouts.Base(pageTitle, theme, confirmtempl.Summary(data))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render confirmation page", "Failed to render page")
}

// /booking-confirmation/email
func HandleSummaryEmail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if sender == nil || limiter == nil {
		logger.Error().Msg("Summary email not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	draft, ok := loadDraft(w, r)
	if !ok {
		return
	}

	form, err := request.DecodeSummaryEmailForm(r)
	if err != nil {
		logger.Debug().Err(err).Msg("Invalid summary email address")
		renderEmailForm(w, r, http.StatusUnprocessableEntity, form.Email, confirmtempl.EmailInvalid)
		return
	}

	ip := ratelimit.GetClientIP(r, trustProxy)
	if result := limiter.Check(form.Email, ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded(logger, form.Email, ip, result)
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds()))))
		renderEmailForm(w, r, http.StatusTooManyRequests, form.Email, confirmtempl.EmailRateLimited)
		return
	}
	limiter.Record(form.Email, ip)

	data := confirmtempl.NewSummaryData(draft)
	msg := email.BuildBookingSummary(draft, data.Lines)
	if err := email.Deliver(r.Context(), sender, form.Email, msg); err != nil {
		renderEmailForm(w, r, http.StatusBadGateway, form.Email, confirmtempl.EmailFailed)
		return
	}
	renderEmailForm(w, r, http.StatusOK, form.Email, confirmtempl.EmailSent)
}

// loadDraft resolves the draft named by the signed cookie. When there is
// none it answers with a redirect home and reports false.
func loadDraft(w http.ResponseWriter, r *http.Request) (models.BookingDraft, bool) {
	logger := log.Ctx(r.Context())

	if draftStore == nil || cookies == nil {
		logger.Error().Msg("Confirmation handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return models.BookingDraft{}, false
	}

	token, err := cookies.Token(r)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected booking draft cookie")
		cookies.Clear(w)
		redirectHome(w, r)
		return models.BookingDraft{}, false
	}
	if token == "" {
		redirectHome(w, r)
		return models.BookingDraft{}, false
	}

	draft, err := draftStore.Get(token)
	if err != nil {
		if !errors.Is(err, drafts.ErrNotFound) {
			logger.Error().Err(err).Msg("Failed to load booking draft")
		}
		cookies.Clear(w)
		redirectHome(w, r)
		return models.BookingDraft{}, false
	}
	return draft, true
}

// redirectHome sends the browser to the start page. The body is a loading
// placeholder shown until navigation happens.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	status := http.StatusSeeOther
	headers := map[string]string{"Location": homePath}
	if htmx.IsRequest(r) {
		status = http.StatusOK
		headers = map[string]string{"HX-Redirect": homePath}
	}
	page := layouts.Base(pageTitle, theme, confirmtempl.Loading())
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, page, headers, "Failed to render loading page", "Failed to render page")
}

func renderEmailForm(w http.ResponseWriter, r *http.Request, status int, recipient, emailStatus string) {
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, confirmtempl.EmailForm(recipient, emailStatus), nil,
		"Failed to render summary email form", "Failed to render form")
}
