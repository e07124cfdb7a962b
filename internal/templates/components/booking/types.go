package booking

import (
	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
	"github.com/codr1/resort-booking/internal/resortapi"
	"github.com/codr1/resort-booking/internal/templates/components/searchbox"
)

const PlaceholderImage = "/static/img/room-placeholder.svg"

type RoomLine struct {
	pricing.RoomPrice
	ImageURL    string
	Unavailable bool
}

// FormData backs the booking page and the re-rendered form after a failed
// confirm.
type FormData struct {
	SearchBox searchbox.Data

	Rooms       []RoomLine
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
	Children    int
	UserID      string

	Nights int
	Total  float64

	SpecialRequest  string
	SubscribeOffers bool
	ContactPhone    string

	SubmissionToken string
	BackURL         string
	Error           string
}

// NewRoomLines prices rooms for nights and flags any the availability map
// reports as not bookable.
func NewRoomLines(rooms []models.Accommodation, nights int, availability models.AvailabilityMap, uploadsBase string) []RoomLine {
	quote := pricing.QuoteStay(rooms, nights, availability)
	unavailable := make(map[models.ID]struct{}, len(quote.Unavailable))
	for _, id := range quote.Unavailable {
		unavailable[id] = struct{}{}
	}

	lines := make([]RoomLine, 0, len(rooms))
	for i, room := range rooms {
		_, blocked := unavailable[room.ID]
		lines = append(lines, RoomLine{
			RoomPrice:   quote.Rooms[i],
			ImageURL:    resortapi.ImageURL(uploadsBase, room.ImageName, PlaceholderImage),
			Unavailable: blocked,
		})
	}
	return lines
}
