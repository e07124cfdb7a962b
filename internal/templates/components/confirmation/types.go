package confirmation

import (
	"strings"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
	"github.com/codr1/resort-booking/internal/templates/format"
)

// Placeholder identity until guests have accounts.
const (
	GuestName  = "John Doe"
	GuestEmail = "john.doe@email.com"
)

type SummaryData struct {
	GuestName  string
	GuestEmail string

	RoomNames  string
	CheckIn    string
	CheckOut   string
	Nights     int
	Adults     int
	Children   int
	RoomsCount int

	Lines    []pricing.RoomPrice
	Original float64
	Savings  float64
	Total    float64

	SpecialRequest string
	ContactPhone   string

	// MissingRooms is set when the draft carries no rooms.
	MissingRooms bool
}

// NewSummaryData derives display values from draft. Lines are recomputed
// from the stored rooms; Total is always the draft's carried total.
func NewSummaryData(draft models.BookingDraft) SummaryData {
	data := SummaryData{
		GuestName:      GuestName,
		GuestEmail:     GuestEmail,
		CheckIn:        format.LongDate(draft.CheckIn),
		CheckOut:       format.LongDate(draft.CheckOut),
		Nights:         draft.Nights,
		Adults:         draft.Adults,
		Children:       draft.Children,
		RoomsCount:     models.FixedRoomsCount,
		Total:          draft.TotalPrice,
		SpecialRequest: draft.SpecialRequest,
		ContactPhone:   draft.ContactPhone,
		MissingRooms:   len(draft.Rooms) == 0,
	}

	names := make([]string, 0, len(draft.Rooms))
	data.Lines = make([]pricing.RoomPrice, 0, len(draft.Rooms))
	for _, room := range draft.Rooms {
		line := pricing.Breakdown(room, draft.Nights)
		data.Lines = append(data.Lines, line)
		data.Original += line.Original * float64(line.Nights)
		data.Savings += (line.Original - line.Discounted) * float64(line.Nights)
		names = append(names, room.Name)
	}
	data.RoomNames = strings.Join(names, ", ")
	return data
}
