// internal/api/search/handlers.go
package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/resort-booking/internal/api/apiutil"
	"github.com/codr1/resort-booking/internal/api/htmx"
	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/request"
	"github.com/codr1/resort-booking/internal/resortapi"
	resultfilter "github.com/codr1/resort-booking/internal/search"
	searchtempl "github.com/codr1/resort-booking/internal/templates/components/search"
	"github.com/codr1/resort-booking/internal/templates/components/searchbox"
	"github.com/codr1/resort-booking/internal/templates/layouts"
)

var (
	service     resortapi.Service
	uploadsBase string
	theme       = models.DefaultTheme()
	now         = time.Now
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(api resortapi.Service, uploads string, brand models.Theme) {
	if api == nil {
		return
	}
	service = api
	uploadsBase = uploads
	theme = brand
}

// /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	criteria := request.SearchQueryFromRequest(r).Criteria()
	page := layouts.Base("", theme, searchbox.Home(searchbox.NewData(criteria, now())))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render home page", "Failed to render page")
}

// /search-results
func HandleSearchResults(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if service == nil {
		logger.Error().Msg("Resort API client not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query := request.SearchQueryFromRequest(r)
	criteria := query.Criteria()

	fetched := fetchResults(r.Context(), service, criteria)
	if r.Context().Err() != nil {
		// The browser replaced or abandoned this request.
		logger.Debug().Err(r.Context().Err()).Msg("Search request cancelled")
		return
	}

	visible := resultfilter.Apply(fetched.results, resultfilter.Filters{
		SelectedTypes: query.Types,
		Term:          criteria.Destination,
	})
	groups, count := searchtempl.NewGroups(resultfilter.GroupByType(visible), criteria, fetched.availability, uploadsBase)

	data := searchtempl.ResultsData{
		SearchBox: searchbox.NewData(criteria, now()),
		Criteria:  criteria,
		Types:     searchtempl.NewTypeOptions(fetched.types, query.Types),
		Groups:    groups,
		Count:     count,
	}

	logger.Debug().
		Str("destination", criteria.Destination).
		Int("fetched", len(fetched.results)).
		Int("visible", count).
		Strs("types", query.Types).
		Msg("Rendering search results")

	if htmx.IsRequest(r) && strings.TrimSpace(r.Header.Get("HX-Target")) == "results" {
		apiutil.RenderHTMLComponent(r.Context(), w, searchtempl.Results(data), nil, "Failed to render search results", "Failed to render results")
		return
	}

	page := layouts.Base("ผลการค้นหา", theme, searchtempl.ResultsPage(data))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render search results page", "Failed to render page")
}

type searchFetch struct {
	results      []models.Accommodation
	types        []models.AccommodationType
	availability models.AvailabilityMap
}

// fetchResults runs the listing, type and availability calls concurrently.
// Each call logs and drops its own error so one failure never blanks the
// rest of the page.
func fetchResults(ctx context.Context, api resortapi.Service, criteria models.SearchCriteria) searchFetch {
	logger := log.Ctx(ctx)
	var out searchFetch
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var (
			results []models.Accommodation
			err     error
		)
		if criteria.Destination != "" {
			results, err = api.SearchAccommodations(gctx, criteria.Destination, criteria.CheckIn, criteria.CheckOut, criteria.Guests)
		} else {
			results, err = api.ListAccommodations(gctx)
		}
		if err != nil {
			logger.Error().Err(err).Str("destination", criteria.Destination).Msg("Failed to fetch accommodations")
			return nil
		}
		out.results = results
		return nil
	})

	g.Go(func() error {
		types, err := api.ListAccommodationTypes(gctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to fetch accommodation types")
			return nil
		}
		out.types = types
		return nil
	})

	if criteria.ValidStay() {
		g.Go(func() error {
			availability, err := api.GetRoomAvailability(gctx, *criteria.CheckIn, *criteria.CheckOut)
			if err != nil {
				logger.Error().Err(err).
					Str("check_in", criteria.CheckInString()).
					Str("check_out", criteria.CheckOutString()).
					Msg("Failed to fetch room availability")
				return nil
			}
			out.availability = availability
			return nil
		})
	}

	_ = g.Wait()
	return out
}
