// Package pricing derives display and booking prices from accommodation
// records. Nothing here is authoritative; the resort API owns pricing.
package pricing

import (
	"math"
	"time"

	"github.com/codr1/resort-booking/internal/models"
)

// RoomPrice is the per-room breakdown for a stay.
type RoomPrice struct {
	RoomID     models.ID
	Name       string
	Original   float64
	Discount   float64
	Discounted float64
	Nights     int
	Total      float64
}

// HasDiscount reports whether a discount applies to this room.
func (p RoomPrice) HasDiscount() bool {
	return p.Discount > 0
}

// Quote aggregates room prices across a stay.
type Quote struct {
	Nights int
	Rooms  []RoomPrice
	Total  float64
	// Unavailable lists rooms the availability map reports as not bookable.
	Unavailable []models.ID
}

// Discounted applies a percentage discount to a nightly price. A discount
// of zero or less returns the price untouched; otherwise the result is
// rounded half away from zero.
func Discounted(price, discount float64) float64 {
	if discount <= 0 {
		return price
	}
	if discount > 100 {
		discount = 100
	}
	return math.Round(price * (1 - discount/100))
}

// DiscountedPrice is the single-night price shown on listing cards.
func DiscountedPrice(acc models.Accommodation) float64 {
	return Discounted(acc.PricePerNight, acc.EffectiveDiscount())
}

// DateDiff returns the number of calendar days from checkIn to checkOut.
// The result is negative when checkOut precedes checkIn.
func DateDiff(checkOut, checkIn time.Time) int {
	out := civilDate(checkOut).Unix()
	in := civilDate(checkIn).Unix()
	return int((out - in) / secondsPerDay)
}

// Nights counts nights for optional dates; absent dates yield 0. The
// result may be zero or negative and must be validated before booking.
func Nights(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	return DateDiff(*checkOut, *checkIn)
}

// Breakdown computes one room's price for the given number of nights.
// Non-positive night counts price the stay at zero.
func Breakdown(acc models.Accommodation, nights int) RoomPrice {
	discount := acc.EffectiveDiscount()
	discounted := Discounted(acc.PricePerNight, discount)
	billable := nights
	if billable < 0 {
		billable = 0
	}
	return RoomPrice{
		RoomID:     acc.ID,
		Name:       acc.Name,
		Original:   acc.PricePerNight,
		Discount:   discount,
		Discounted: discounted,
		Nights:     billable,
		Total:      discounted * float64(billable),
	}
}

// Total sums discounted nightly prices over nights for every room.
func Total(rooms []models.Accommodation, nights int) float64 {
	return QuoteStay(rooms, nights, nil).Total
}

// QuoteStay builds the per-room breakdown and total for a stay. When an
// availability map is supplied, rooms it marks unavailable are reported
// but still priced; blocking them is the caller's decision.
func QuoteStay(rooms []models.Accommodation, nights int, availability models.AvailabilityMap) Quote {
	quote := Quote{
		Nights: nights,
		Rooms:  make([]RoomPrice, 0, len(rooms)),
	}
	if quote.Nights < 0 {
		quote.Nights = 0
	}

	for _, room := range rooms {
		line := Breakdown(room, nights)
		quote.Rooms = append(quote.Rooms, line)
		quote.Total += line.Total

		if status, ok := availability.Lookup(room.ID); ok && !status.Available {
			quote.Unavailable = append(quote.Unavailable, room.ID)
		}
	}

	return quote
}

const secondsPerDay = 24 * 60 * 60

func civilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
