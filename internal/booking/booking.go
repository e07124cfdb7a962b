// Package booking assembles and validates booking drafts.
package booking

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
)

// DefaultPhoneRegion is used to interpret numbers written without a
// country code.
const DefaultPhoneRegion = "TH"

const maxSpecialRequestLength = 1000

var (
	ErrMissingDates      = errors.New("check-in and check-out dates are required")
	ErrNonPositiveNights = errors.New("check-out must be after check-in")
	ErrNoRooms           = errors.New("no rooms selected")
	ErrInvalidPhone      = errors.New("contact phone number is invalid")
)

// ValidationError is returned when a confirm request cannot proceed.
// Message is shown inline next to the form.
type ValidationError struct {
	Err     error
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Request is what the booking view collects before confirming.
type Request struct {
	UserID          string
	Destination     string
	Rooms           []models.Accommodation
	CheckIn         *time.Time
	CheckOut        *time.Time
	Adults          int
	Children        int
	SpecialRequest  string
	SubscribeOffers bool
	ContactPhone    string
}

// Nights returns the stay length, or 0 when a date is missing.
func (r Request) Nights() int {
	return pricing.Nights(r.CheckIn, r.CheckOut)
}

// TotalPrice sums discounted nightly prices across rooms. It is 0 when
// nights is not positive.
func (r Request) TotalPrice() float64 {
	return pricing.Total(r.Rooms, r.Nights())
}

// Validate checks, in order: both dates present, positive night count,
// at least one room, and a parseable contact phone when one is given.
func Validate(r Request) error {
	if r.CheckIn == nil || r.CheckOut == nil {
		return ValidationError{Err: ErrMissingDates, Message: "กรุณาระบุวันที่เช็คอินและเช็คเอาท์"}
	}
	if r.Nights() <= 0 {
		return ValidationError{Err: ErrNonPositiveNights, Message: "วันที่เช็คเอาท์ต้องมากกว่าวันที่เช็คอิน"}
	}
	if len(r.Rooms) == 0 {
		return ValidationError{Err: ErrNoRooms, Message: "ไม่พบข้อมูลห้องพัก กรุณาทำการจองใหม่"}
	}
	if strings.TrimSpace(r.ContactPhone) != "" {
		if _, err := NormalizePhone(r.ContactPhone); err != nil {
			return ValidationError{Err: ErrInvalidPhone, Message: "กรุณากรอกเบอร์โทรศัพท์ให้ถูกต้อง"}
		}
	}
	return nil
}

// Assemble validates r and builds the immutable draft handed to the
// confirmation view.
func Assemble(r Request, now time.Time) (models.BookingDraft, error) {
	if err := Validate(r); err != nil {
		return models.BookingDraft{}, err
	}

	phone := ""
	if strings.TrimSpace(r.ContactPhone) != "" {
		normalized, err := NormalizePhone(r.ContactPhone)
		if err != nil {
			return models.BookingDraft{}, ValidationError{Err: ErrInvalidPhone, Message: "กรุณากรอกเบอร์โทรศัพท์ให้ถูกต้อง"}
		}
		phone = normalized
	}

	roomIDs := make([]models.ID, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	specialRequest := truncateRunes(strings.TrimSpace(r.SpecialRequest), maxSpecialRequestLength)

	draft := models.BookingDraft{
		UserID:          r.UserID,
		RoomIDs:         roomIDs,
		Rooms:           r.Rooms,
		Destination:     r.Destination,
		CheckIn:         *r.CheckIn,
		CheckOut:        *r.CheckOut,
		Nights:          r.Nights(),
		Adults:          r.Adults,
		Children:        r.Children,
		SpecialRequest:  specialRequest,
		SubscribeOffers: r.SubscribeOffers,
		ContactPhone:    phone,
		TotalPrice:      r.TotalPrice(),
		CreatedAt:       now.UTC(),
	}
	return draft.Clone(), nil
}

// NormalizePhone parses a phone number and returns it in E.164 form.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("phone number is required")
	}
	parsed, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("phone number %q is not valid", raw)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// BackToSearchURL rebuilds the results-view URL from the booking view's
// search values, omitting anything empty.
func BackToSearchURL(destination string, checkIn, checkOut *time.Time, adults, children int) string {
	query := url.Values{}
	if destination != "" {
		query.Set("destination", destination)
	}
	if checkIn != nil {
		query.Set("checkIn", checkIn.Format(models.DateLayout))
	}
	if checkOut != nil {
		query.Set("checkOut", checkOut.Format(models.DateLayout))
	}
	if adults > 0 {
		query.Set("adults", strconv.Itoa(adults))
	}
	if children > 0 {
		query.Set("children", strconv.Itoa(children))
	}

	if len(query) == 0 {
		return "/search-results"
	}
	return "/search-results?" + query.Encode()
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
