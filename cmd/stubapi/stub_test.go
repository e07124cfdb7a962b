package main

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/resortapi"
)

func newStubClient(t *testing.T) *resortapi.Client {
	t.Helper()

	f, err := parseFixture(defaultFixture)
	require.NoError(t, err)

	server := httptest.NewServer(newRouter(f))
	t.Cleanup(server.Close)

	client, err := resortapi.New(server.URL, time.Second, nil)
	require.NoError(t, err)
	return client
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(dateLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestStub_ListAndTypes(t *testing.T) {
	client := newStubClient(t)
	ctx := context.Background()

	rooms, err := client.ListAccommodations(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 6)
	assert.Equal(t, models.ID("1"), rooms[0].ID)
	assert.Equal(t, "Villa", rooms[0].TypeName())
	assert.Equal(t, 15.0, rooms[0].EffectiveDiscount())
	assert.Equal(t, 10.0, rooms[1].EffectiveDiscount(), "promotion discount is the fallback")
	assert.Equal(t, 0.0, rooms[2].EffectiveDiscount(), "quoted discount is not a number")
	assert.Equal(t, "", rooms[5].TypeName())

	types, err := client.ListAccommodationTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 3)
}

func TestStub_SearchFiltersByDestinationAndGuests(t *testing.T) {
	client := newStubClient(t)

	rooms, err := client.SearchAccommodations(context.Background(), "bungalow", nil, nil, 2)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Beachfront Bungalow", rooms[0].Name)

	rooms, err = client.SearchAccommodations(context.Background(), "koh chang", nil, nil, 4)
	require.NoError(t, err)
	for _, room := range rooms {
		assert.Contains(t, []string{"Sea View Pool Villa", "Garden Pool Villa"}, room.Name)
	}
}

func TestStub_Availability(t *testing.T) {
	client := newStubClient(t)

	availability, err := client.GetRoomAvailability(context.Background(), date(t, "2024-12-25"), date(t, "2024-12-26"))
	require.NoError(t, err)

	villa, ok := availability.Lookup("1")
	require.True(t, ok)
	assert.False(t, villa.Available, "both villa units are booked")

	garden, ok := availability.Lookup("2")
	require.True(t, ok)
	assert.True(t, garden.Available)
	require.NotNil(t, garden.Remaining)
	assert.Equal(t, 3, *garden.Remaining)
}

func TestStub_AvailabilityRejectsBadRange(t *testing.T) {
	client := newStubClient(t)

	_, err := client.GetRoomAvailability(context.Background(), date(t, "2024-12-26"), date(t, "2024-12-25"))
	require.Error(t, err)
	var statusErr *resortapi.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestParseFixtureRejectsBadDates(t *testing.T) {
	_, err := parseFixture([]byte("bookings:\n  - room_id: 1\n    check_in: tomorrow\n    check_out: \"2024-01-02\"\n"))
	assert.Error(t, err)
}
