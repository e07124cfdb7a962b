package request

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/rs/zerolog/log"

	"github.com/codr1/resort-booking/internal/api/htmx"
	"github.com/codr1/resort-booking/internal/models"
)

var (
	decoder  = newDecoder()
	validate = validator.New()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// SearchQuery is the raw query-string shape shared by the results and
// booking views. Values stay strings so one bad field never discards the rest.
type SearchQuery struct {
	Destination string   `schema:"destination"`
	CheckIn     string   `schema:"checkIn"`
	CheckOut    string   `schema:"checkOut"`
	Adults      string   `schema:"adults"`
	Children    string   `schema:"children"`
	Guests      string   `schema:"guests"`
	Types       []string `schema:"type"`
	RoomIDs     []string `schema:"room"`
	UserID      string   `schema:"userId"`
}

type guestCounts struct {
	Adults   int `validate:"min=1,max=4"`
	Children int `validate:"min=0,max=2"`
}

// DecodeSearchQuery maps url values onto a SearchQuery.
func DecodeSearchQuery(values url.Values) (SearchQuery, error) {
	var q SearchQuery
	if err := decoder.Decode(&q, values); err != nil {
		return SearchQuery{}, err
	}
	q.Destination = strings.TrimSpace(q.Destination)
	q.UserID = strings.TrimSpace(q.UserID)
	q.Types = compact(q.Types)
	q.RoomIDs = compact(q.RoomIDs)
	return q, nil
}

// Criteria converts the raw query into SearchCriteria. Unparseable dates
// are treated as absent; out-of-range guest counts fall back to defaults.
func (q SearchQuery) Criteria() models.SearchCriteria {
	criteria := models.DefaultSearchCriteria()
	criteria.Destination = q.Destination
	criteria.CheckIn = ParseDate(q.CheckIn)
	criteria.CheckOut = ParseDate(q.CheckOut)

	counts := guestCounts{
		Adults:   parseIntOr(q.Adults, models.MinAdults),
		Children: parseIntOr(q.Children, models.MinChildren),
	}
	if err := validate.Struct(counts); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				switch fieldErr.Field() {
				case "Adults":
					counts.Adults = models.MinAdults
				case "Children":
					counts.Children = models.MinChildren
				}
			}
		}
	}
	criteria.Adults = counts.Adults
	criteria.Children = counts.Children

	criteria.Guests = criteria.Adults + criteria.Children
	if guests, err := strconv.Atoi(strings.TrimSpace(q.Guests)); err == nil && guests > 0 {
		criteria.Guests = guests
	}
	return criteria
}

// SearchQueryFromRequest decodes the search parameters of r. HTMX fragment
// requests that carry no query fall back to the HX-Current-URL header.
func SearchQueryFromRequest(r *http.Request) SearchQuery {
	logger := log.Ctx(r.Context())

	values := r.URL.Query()
	if len(values) == 0 {
		if currentURL := htmx.CurrentURL(r); currentURL != nil {
			values = currentURL.Query()
		}
	}

	q, err := DecodeSearchQuery(values)
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to decode search query")
		return SearchQuery{}
	}
	return q
}

// ParseDate parses a YYYY-MM-DD value; anything else is nil.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// ValidateStruct runs struct-tag validation.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}

func parseIntOr(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func compact(values []string) []string {
	out := values[:0]
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
