package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type fixtureType struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type fixtureRoom struct {
	ID                int     `yaml:"id"`
	Name              string  `yaml:"name"`
	Type              string  `yaml:"type"`
	PricePerNight     float64 `yaml:"price_per_night"`
	Discount          any     `yaml:"discount"`
	PromotionDiscount any     `yaml:"promotion_discount"`
	ImageName         string  `yaml:"image_name"`
	City              string  `yaml:"city"`
	Province          string  `yaml:"province"`
	MaxGuests         int     `yaml:"max_guests"`
	TotalRooms        int     `yaml:"total_rooms"`
}

type fixtureBooking struct {
	RoomID   int    `yaml:"room_id"`
	CheckIn  string `yaml:"check_in"`
	CheckOut string `yaml:"check_out"`
}

type fixture struct {
	Types          []fixtureType    `yaml:"types"`
	Accommodations []fixtureRoom    `yaml:"accommodations"`
	Bookings       []fixtureBooking `yaml:"bookings"`
}

type roomJSON struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Type          *fixtureType `json:"type,omitempty"`
	PricePerNight float64      `json:"price_per_night"`
	Discount      any          `json:"discount"`
	Promotions    *promoJSON   `json:"promotions,omitempty"`
	ImageName     string       `json:"image_name,omitempty"`
	City          string       `json:"city,omitempty"`
	Province      string       `json:"province,omitempty"`
}

type promoJSON struct {
	Discount any `json:"discount"`
}

type availabilityJSON struct {
	Available bool `json:"available"`
	Remaining int  `json:"remaining"`
}

func loadFixture(path string, fallback []byte) (*fixture, error) {
	data := fallback
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		data = raw
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*fixture, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for _, b := range f.Bookings {
		if _, _, err := b.dates(); err != nil {
			return nil, fmt.Errorf("booking for room %d: %w", b.RoomID, err)
		}
	}
	return &f, nil
}

func (b fixtureBooking) dates() (time.Time, time.Time, error) {
	in, err := time.Parse(dateLayout, b.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in: %w", err)
	}
	out, err := time.Parse(dateLayout, b.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_out: %w", err)
	}
	return in, out, nil
}

func newRouter(f *fixture) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/accommodation", f.handleList).Methods(http.MethodGet)
	router.HandleFunc("/accommodation/search", f.handleSearch).Methods(http.MethodGet)
	router.HandleFunc("/accommodation/type", f.handleTypes).Methods(http.MethodGet)
	router.HandleFunc("/accommodation/availability", f.handleAvailability).Methods(http.MethodGet)
	router.PathPrefix("/uploads/accommodations/").HandlerFunc(handleImage).Methods(http.MethodGet)
	router.Use(logRequests)
	return router
}

func (f *fixture) handleList(w http.ResponseWriter, r *http.Request) {
	rows := make([]roomJSON, 0, len(f.Accommodations))
	for _, room := range f.Accommodations {
		rows = append(rows, f.toJSON(room))
	}
	writeData(w, rows)
}

// handleSearch matches destination against name, city and province and
// drops rooms that cannot hold the party or are booked out for the dates.
func (f *fixture) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	destination := strings.ToLower(strings.TrimSpace(q.Get("destination")))
	guests, _ := strconv.Atoi(q.Get("guests"))
	checkIn, errIn := time.Parse(dateLayout, q.Get("checkIn"))
	checkOut, errOut := time.Parse(dateLayout, q.Get("checkOut"))
	withDates := errIn == nil && errOut == nil && checkOut.After(checkIn)

	rows := make([]roomJSON, 0, len(f.Accommodations))
	for _, room := range f.Accommodations {
		if destination != "" && !matches(room, destination) {
			continue
		}
		if guests > 0 && room.MaxGuests > 0 && guests > room.MaxGuests {
			continue
		}
		if withDates && f.remaining(room, checkIn, checkOut) <= 0 {
			continue
		}
		rows = append(rows, f.toJSON(room))
	}
	writeData(w, rows)
}

func (f *fixture) handleTypes(w http.ResponseWriter, r *http.Request) {
	writeData(w, f.Types)
}

func (f *fixture) handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	checkIn, errIn := time.Parse(dateLayout, q.Get("checkIn"))
	checkOut, errOut := time.Parse(dateLayout, q.Get("checkOut"))
	if errIn != nil || errOut != nil || !checkOut.After(checkIn) {
		http.Error(w, `{"message":"checkIn and checkOut must be a valid range"}`, http.StatusBadRequest)
		return
	}

	out := make(map[string]availabilityJSON, len(f.Accommodations))
	for _, room := range f.Accommodations {
		remaining := f.remaining(room, checkIn, checkOut)
		out[strconv.Itoa(room.ID)] = availabilityJSON{Available: remaining > 0, Remaining: remaining}
	}
	writeData(w, out)
}

// handleImage serves a flat placeholder so image URLs resolve locally.
func handleImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="480" height="320"><rect width="100%" height="100%" fill="#bfe9f7"/></svg>`))
}

// remaining counts rooms not taken by a booking overlapping [in, out).
func (f *fixture) remaining(room fixtureRoom, in, out time.Time) int {
	total := room.TotalRooms
	if total <= 0 {
		total = 1
	}
	for _, b := range f.Bookings {
		if b.RoomID != room.ID {
			continue
		}
		bookedIn, bookedOut, err := b.dates()
		if err != nil {
			continue
		}
		if bookedIn.Before(out) && in.Before(bookedOut) {
			total--
		}
	}
	return max(total, 0)
}

func (f *fixture) toJSON(room fixtureRoom) roomJSON {
	row := roomJSON{
		ID:            room.ID,
		Name:          room.Name,
		PricePerNight: room.PricePerNight,
		Discount:      room.Discount,
		ImageName:     room.ImageName,
		City:          room.City,
		Province:      room.Province,
	}
	if room.PromotionDiscount != nil {
		row.Promotions = &promoJSON{Discount: room.PromotionDiscount}
	}
	for _, t := range f.Types {
		if t.Name == room.Type {
			typeCopy := t
			row.Type = &typeCopy
			break
		}
	}
	return row
}

func matches(room fixtureRoom, term string) bool {
	for _, field := range []string{room.Name, room.City, room.Province, room.Type} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func writeData(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"data": payload}); err != nil {
		log.Error().Err(err).Msg("Failed to encode stub response")
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Dur("duration", time.Since(start)).
			Msg("Stub request")
	})
}
