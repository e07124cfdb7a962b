// internal/api/booking/handlers.go
package booking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/resort-booking/internal/api/apiutil"
	"github.com/codr1/resort-booking/internal/api/htmx"
	bookingflow "github.com/codr1/resort-booking/internal/booking"
	"github.com/codr1/resort-booking/internal/drafts"
	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
	"github.com/codr1/resort-booking/internal/request"
	"github.com/codr1/resort-booking/internal/resortapi"
	bookingtempl "github.com/codr1/resort-booking/internal/templates/components/booking"
	"github.com/codr1/resort-booking/internal/templates/components/searchbox"
	"github.com/codr1/resort-booking/internal/templates/layouts"
)

const (
	ConfirmationPath = "/booking-confirmation"
	pageTitle        = "จองห้องพัก"
)

var (
	service     resortapi.Service
	draftStore  *drafts.Store
	cookies     *drafts.Cookies
	uploadsBase string
	theme       = models.DefaultTheme()
	now         = time.Now
	guard       bookingflow.SubmitGuard
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(api resortapi.Service, store *drafts.Store, draftCookies *drafts.Cookies, uploads string, brand models.Theme) {
	if api == nil || store == nil || draftCookies == nil {
		return
	}
	service = api
	draftStore = store
	cookies = draftCookies
	uploadsBase = uploads
	theme = brand
}

// /booking
func HandleBookingPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if service == nil {
		logger.Error().Msg("Resort API client not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query := request.SearchQueryFromRequest(r)
	data := newFormData(r.Context(), query)
	data.SubmissionToken = uuid.NewString()

	page := layouts.Base(pageTitle, theme, bookingtempl.Page(data))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render booking page", "Failed to render page")
}

// /booking/confirm
func HandleConfirm(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if service == nil || draftStore == nil || cookies == nil {
		logger.Error().Msg("Booking handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	form, err := request.DecodeConfirmForm(r)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form data", Err: err}, "Invalid form data")
		return
	}

	var rooms []models.Accommodation
	resolved := false
	draftToken, shared, err := guard.Do(form.SubmissionToken, func() (string, error) {
		rooms = resolveRooms(r.Context(), form.Search.RoomIDs)
		resolved = true

		criteria := form.Search.Criteria()
		draft, err := bookingflow.Assemble(bookingflow.Request{
			UserID:          form.Search.UserID,
			Destination:     criteria.Destination,
			Rooms:           rooms,
			CheckIn:         criteria.CheckIn,
			CheckOut:        criteria.CheckOut,
			Adults:          criteria.Adults,
			Children:        criteria.Children,
			SpecialRequest:  form.SpecialRequest,
			SubscribeOffers: form.SubscribeOffers,
			ContactPhone:    form.ContactPhone,
		}, now())
		if err != nil {
			return "", err
		}

		token, err := draftStore.Put(draft)
		if err != nil {
			return "", apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save booking", Err: err}
		}
		logger.Info().
			Strs("room_ids", form.Search.RoomIDs).
			Int("nights", draft.Nights).
			Float64("total_price", draft.TotalPrice).
			Msg("Booking draft created")
		return token, nil
	})

	var validationErr bookingflow.ValidationError
	switch {
	case errors.Is(err, bookingflow.ErrMissingSubmissionToken):
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Missing submission token", Err: err}, "Missing submission token")
		return
	case errors.As(err, &validationErr):
		logger.Debug().Err(validationErr.Err).Bool("shared", shared).Msg("Booking confirm rejected")
		if !resolved {
			rooms = resolveRooms(r.Context(), form.Search.RoomIDs)
		}
		renderFormError(w, r, form, rooms, validationErr.Message)
		return
	case err != nil:
		apiutil.WriteError(w, r, err, "Failed to confirm booking")
		return
	}

	if err := cookies.Set(w, draftToken); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save booking", Err: err}, "Failed to save booking")
		return
	}
	htmx.Redirect(w, r, ConfirmationPath)
}

// renderFormError re-renders the form with an inline alert. htmx swaps
// the 422 response in place of the form.
func renderFormError(w http.ResponseWriter, r *http.Request, form request.ConfirmForm, rooms []models.Accommodation, message string) {
	criteria := form.Search.Criteria()
	data := formData(form.Search, criteria, rooms, nil)
	data.SpecialRequest = form.SpecialRequest
	data.SubscribeOffers = form.SubscribeOffers
	data.ContactPhone = form.ContactPhone
	data.SubmissionToken = form.SubmissionToken
	data.Error = message

	var component = bookingtempl.Form(data)
	if !htmx.IsRequest(r) {
		component = layouts.Base(pageTitle, theme, bookingtempl.Page(data))
	}
	apiutil.RenderHTMLComponentStatus(r.Context(), w, http.StatusUnprocessableEntity, component, nil,
		"Failed to render booking form", "Failed to render page")
}

func newFormData(ctx context.Context, query request.SearchQuery) bookingtempl.FormData {
	criteria := query.Criteria()

	var (
		rooms        []models.Accommodation
		availability models.AvailabilityMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rooms = resolveRooms(gctx, query.RoomIDs)
		return nil
	})
	if criteria.ValidStay() {
		g.Go(func() error {
			result, err := service.GetRoomAvailability(gctx, *criteria.CheckIn, *criteria.CheckOut)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("Failed to fetch room availability")
				return nil
			}
			availability = result
			return nil
		})
	}
	_ = g.Wait()

	return formData(query, criteria, rooms, availability)
}

func formData(query request.SearchQuery, criteria models.SearchCriteria, rooms []models.Accommodation, availability models.AvailabilityMap) bookingtempl.FormData {
	nights := pricing.Nights(criteria.CheckIn, criteria.CheckOut)
	return bookingtempl.FormData{
		SearchBox:   searchbox.NewData(criteria, now()),
		Rooms:       bookingtempl.NewRoomLines(rooms, nights, availability, uploadsBase),
		Destination: criteria.Destination,
		CheckIn:     criteria.CheckInString(),
		CheckOut:    criteria.CheckOutString(),
		Adults:      criteria.Adults,
		Children:    criteria.Children,
		UserID:      query.UserID,
		Nights:      max(nights, 0),
		Total:       pricing.Total(rooms, nights),
		BackURL: bookingflow.BackToSearchURL(criteria.Destination, criteria.CheckIn, criteria.CheckOut,
			criteria.Adults, criteria.Children),
	}
}

// resolveRooms looks the requested ids up in the full listing, keeping the
// requested order. Unknown ids are skipped; a failed fetch yields no rooms.
func resolveRooms(ctx context.Context, ids []string) []models.Accommodation {
	if len(ids) == 0 {
		return nil
	}

	all, err := service.ListAccommodations(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Strs("room_ids", ids).Msg("Failed to fetch accommodations for booking")
		return nil
	}

	byID := make(map[models.ID]models.Accommodation, len(all))
	for _, acc := range all {
		byID[acc.ID] = acc
	}

	rooms := make([]models.Accommodation, 0, len(ids))
	for _, id := range ids {
		if acc, ok := byID[models.ID(id)]; ok {
			rooms = append(rooms, acc)
		}
	}
	return rooms
}
