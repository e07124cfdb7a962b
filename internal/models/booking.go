// internal/models/booking.go
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the wire and query format for calendar dates.
const DateLayout = "2006-01-02"

const (
	MinAdults       = 1
	MaxAdults       = 4
	MinChildren     = 0
	MaxChildren     = 2
	FixedRoomsCount = 1
)

// SearchCriteria carries what the guest asked for. Dates are optional.
type SearchCriteria struct {
	Destination string
	CheckIn     *time.Time
	CheckOut    *time.Time
	Adults      int
	Children    int
	Rooms       int
	// Guests is sent to the search endpoint; defaults to adults + children.
	Guests int
}

// DefaultSearchCriteria returns the form defaults: one adult, no children.
func DefaultSearchCriteria() SearchCriteria {
	return SearchCriteria{
		Adults: MinAdults,
		Rooms:  FixedRoomsCount,
		Guests: MinAdults,
	}
}

// HasDates reports whether both check-in and check-out are set.
func (c SearchCriteria) HasDates() bool {
	return c.CheckIn != nil && c.CheckOut != nil
}

// ValidStay reports whether check-out is strictly after check-in.
func (c SearchCriteria) ValidStay() bool {
	return c.HasDates() && c.CheckOut.After(*c.CheckIn)
}

// CheckInString formats the check-in date or returns "".
func (c SearchCriteria) CheckInString() string {
	return FormatDate(c.CheckIn)
}

// CheckOutString formats the check-out date or returns "".
func (c SearchCriteria) CheckOutString() string {
	return FormatDate(c.CheckOut)
}

// FormatDate formats an optional date with DateLayout.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// RoomAvailability is the bookable status of one room for a date range.
type RoomAvailability struct {
	Available bool `json:"available"`
	Remaining *int `json:"remaining,omitempty"`
}

// UnmarshalJSON accepts either a bare boolean or an object.
func (a *RoomAvailability) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*a = RoomAvailability{Available: true}
		return nil
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*a = RoomAvailability{}
		return nil
	}

	type plain RoomAvailability
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*a = RoomAvailability(decoded)
	return nil
}

// AvailabilityMap is keyed by room id and scoped to one date range.
type AvailabilityMap map[string]RoomAvailability

// Lookup returns the availability for a room and whether the map knows it.
func (m AvailabilityMap) Lookup(roomID ID) (RoomAvailability, bool) {
	if m == nil {
		return RoomAvailability{}, false
	}
	availability, ok := m[roomID.String()]
	return availability, ok
}

// BookingDraft is the unpersisted payload assembled when the guest confirms
// a room selection. Once handed to the confirmation view it is never
// modified.
type BookingDraft struct {
	UserID          string
	RoomIDs         []ID
	Rooms           []Accommodation
	Destination     string
	CheckIn         time.Time
	CheckOut        time.Time
	Nights          int
	Adults          int
	Children        int
	SpecialRequest  string
	SubscribeOffers bool
	ContactPhone    string
	TotalPrice      float64
	CreatedAt       time.Time
}

// Clone returns a deep copy so callers cannot share slices with the store.
func (d BookingDraft) Clone() BookingDraft {
	cloned := d
	cloned.RoomIDs = append([]ID(nil), d.RoomIDs...)
	cloned.Rooms = make([]Accommodation, len(d.Rooms))
	for i, room := range d.Rooms {
		if room.Type != nil {
			typeCopy := *room.Type
			room.Type = &typeCopy
		}
		if room.Promotions != nil {
			promoCopy := *room.Promotions
			room.Promotions = &promoCopy
		}
		cloned.Rooms[i] = room
	}
	return cloned
}
