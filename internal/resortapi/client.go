// Package resortapi is the client for the external accommodation API that
// owns availability, pricing and persistence.
package resortapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/resort-booking/internal/models"
)

const (
	accommodationsPath = "/accommodation"
	searchPath         = "/accommodation/search"
	typesPath          = "/accommodation/type"
	availabilityPath   = "/accommodation/availability"

	maxResponseBytes = 4 << 20
)

// Service is the set of collaborator operations the booking views consume.
type Service interface {
	SearchAccommodations(ctx context.Context, destination string, checkIn, checkOut *time.Time, guests int) ([]models.Accommodation, error)
	ListAccommodations(ctx context.Context) ([]models.Accommodation, error)
	ListAccommodationTypes(ctx context.Context) ([]models.AccommodationType, error)
	GetRoomAvailability(ctx context.Context, checkIn, checkOut time.Time) (models.AvailabilityMap, error)
}

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// Client talks to the resort API over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client for baseURL. A nil httpClient gets one with timeout.
func New(baseURL string, timeout time.Duration, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// SearchAccommodations calls the parametrized search endpoint. Absent dates
// are sent as empty values.
func (c *Client) SearchAccommodations(ctx context.Context, destination string, checkIn, checkOut *time.Time, guests int) ([]models.Accommodation, error) {
	query := url.Values{}
	query.Set("destination", destination)
	query.Set("checkIn", models.FormatDate(checkIn))
	query.Set("checkOut", models.FormatDate(checkOut))
	query.Set("guests", strconv.Itoa(guests))

	var rows []models.Accommodation
	if err := c.getJSON(ctx, searchPath, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAccommodations returns the unfiltered listing.
func (c *Client) ListAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	var rows []models.Accommodation
	if err := c.getJSON(ctx, accommodationsPath, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAccommodationTypes returns the types offered in the filter panel.
func (c *Client) ListAccommodationTypes(ctx context.Context) ([]models.AccommodationType, error) {
	var rows []models.AccommodationType
	if err := c.getJSON(ctx, typesPath, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRoomAvailability returns the availability map for a date range.
func (c *Client) GetRoomAvailability(ctx context.Context, checkIn, checkOut time.Time) (models.AvailabilityMap, error) {
	query := url.Values{}
	query.Set("checkIn", checkIn.Format(models.DateLayout))
	query.Set("checkOut", checkOut.Format(models.DateLayout))

	availability := models.AvailabilityMap{}
	if err := c.getJSON(ctx, availabilityPath, query, &availability); err != nil {
		return nil, err
	}
	return availability, nil
}

// ImageURL resolves an uploaded image name against uploadsBase. Empty
// names return fallback.
func ImageURL(uploadsBase, imageName, fallback string) string {
	imageName = strings.TrimSpace(imageName)
	if imageName == "" {
		return fallback
	}
	return strings.TrimRight(uploadsBase, "/") + "/uploads/accommodations/" + url.PathEscape(imageName)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	log.Ctx(ctx).Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Resort API call completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method: http.MethodGet,
			Path:   path,
			Status: resp.StatusCode,
			Body:   truncate(string(body), 256),
		}
	}

	if err := decodePayload(body, dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodePayload accepts a bare payload or one wrapped as {"data": ...}.
func decodePayload(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	if body[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
			trimmed := bytes.TrimSpace(envelope.Data)
			if bytes.Equal(trimmed, []byte("null")) {
				return nil
			}
			return json.Unmarshal(trimmed, dst)
		}
	}
	return json.Unmarshal(body, dst)
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
