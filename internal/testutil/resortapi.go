package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/codr1/resort-booking/internal/models"
)

// FakeResortAPI is an in-memory resortapi.Service. Set the *Err fields to
// make the matching call fail.
type FakeResortAPI struct {
	mu sync.Mutex

	Accommodations []models.Accommodation
	SearchResults  []models.Accommodation
	Types          []models.AccommodationType
	Availability   models.AvailabilityMap

	SearchErr       error
	ListErr         error
	TypesErr        error
	AvailabilityErr error

	Calls           map[string]int
	LastDestination string
	LastGuests      int
}

// NewFakeResortAPI returns a fake seeded with accommodations, which serve
// both the listing and the search endpoints.
func NewFakeResortAPI(t *testing.T, accommodations ...models.Accommodation) *FakeResortAPI {
	t.Helper()
	return &FakeResortAPI{
		Accommodations: accommodations,
		SearchResults:  accommodations,
		Calls:          make(map[string]int),
	}
}

func (f *FakeResortAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[name]++
}

// CallCount returns how many times the named operation ran.
func (f *FakeResortAPI) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

func (f *FakeResortAPI) SearchAccommodations(ctx context.Context, destination string, checkIn, checkOut *time.Time, guests int) ([]models.Accommodation, error) {
	_ = ctx
	f.record("search")
	f.mu.Lock()
	f.LastDestination = destination
	f.LastGuests = guests
	f.mu.Unlock()
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	return f.SearchResults, nil
}

func (f *FakeResortAPI) ListAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	_ = ctx
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Accommodations, nil
}

func (f *FakeResortAPI) ListAccommodationTypes(ctx context.Context) ([]models.AccommodationType, error) {
	_ = ctx
	f.record("types")
	if f.TypesErr != nil {
		return nil, f.TypesErr
	}
	return f.Types, nil
}

func (f *FakeResortAPI) GetRoomAvailability(ctx context.Context, checkIn, checkOut time.Time) (models.AvailabilityMap, error) {
	_ = ctx
	f.record("availability")
	if f.AvailabilityErr != nil {
		return nil, f.AvailabilityErr
	}
	return f.Availability, nil
}

// Room builds an accommodation for tests.
func Room(id, name, typeName string, price float64, discount *float64) models.Accommodation {
	acc := models.Accommodation{
		ID:            models.ID(id),
		Name:          name,
		PricePerNight: price,
	}
	if typeName != "" {
		acc.Type = &models.AccommodationType{Name: typeName}
	}
	if discount != nil {
		acc.Discount = models.NewPercent(*discount)
	}
	return acc
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}
