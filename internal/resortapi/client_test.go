package resortapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/resort-booking/internal/models"
)

func newTestClient(t *testing.T, router *mux.Router) *Client {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := New(server.URL+"/", time.Second, nil)
	require.NoError(t, err)
	return client
}

func TestClient_SearchAccommodations(t *testing.T) {
	router := mux.NewRouter()
	var gotQuery map[string]string
	router.HandleFunc("/accommodation/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"destination": q.Get("destination"),
			"checkIn":     q.Get("checkIn"),
			"checkOut":    q.Get("checkOut"),
			"guests":      q.Get("guests"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"name":"Beach Villa","type":{"name":"Villa"},"price_per_night":2500,"discount":10}]}`))
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)

	checkIn := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	rows, err := client.SearchAccommodations(context.Background(), "beach", &checkIn, &checkOut, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, models.ID("1"), rows[0].ID)
	assert.Equal(t, "Villa", rows[0].TypeName())
	assert.Equal(t, 10.0, rows[0].EffectiveDiscount())
	assert.Equal(t, map[string]string{
		"destination": "beach",
		"checkIn":     "2024-01-10",
		"checkOut":    "2024-01-12",
		"guests":      "3",
	}, gotQuery)
}

func TestClient_SearchAccommodationsWithoutDates(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "", r.URL.Query().Get("checkIn"))
		assert.Equal(t, "", r.URL.Query().Get("checkOut"))
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, router)
	rows, err := client.SearchAccommodations(context.Background(), "villa", nil, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClient_ListAccommodationsBarePayload(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a1","name":"Garden Room","price_per_night":1200},{"id":"a2","name":"Pool Villa","price_per_night":3000,"discount":"oops"}]`))
	})

	client := newTestClient(t, router)
	rows, err := client.ListAccommodations(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0.0, rows[1].EffectiveDiscount())
}

func TestClient_ListAccommodationTypes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation/type", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"name":"Villa"},{"id":2,"name":"Deluxe"}]}`))
	})

	client := newTestClient(t, router)
	types, err := client.ListAccommodationTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Deluxe", types[1].Name)
}

func TestClient_GetRoomAvailability(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation/availability", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-10", r.URL.Query().Get("checkIn"))
		assert.Equal(t, "2024-01-12", r.URL.Query().Get("checkOut"))
		w.Write([]byte(`{"1":true,"2":{"available":false}}`))
	})

	client := newTestClient(t, router)
	availability, err := client.GetRoomAvailability(
		context.Background(),
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	room1, ok := availability.Lookup("1")
	require.True(t, ok)
	assert.True(t, room1.Available)
	room2, ok := availability.Lookup("2")
	require.True(t, ok)
	assert.False(t, room2.Available)
}

func TestClient_StatusError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	client := newTestClient(t, router)
	_, err := client.ListAccommodations(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	assert.Equal(t, "/accommodation", statusErr.Path)
}

func TestClient_ContextCancelled(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, router)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListAccommodations(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("/api", time.Second, nil)
	assert.Error(t, err)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/uploads/accommodations/villa%201.jpg",
		ImageURL("https://cdn.example.com/", "villa 1.jpg", "fallback"))
	assert.Equal(t, "fallback", ImageURL("https://cdn.example.com", "  ", "fallback"))
}
