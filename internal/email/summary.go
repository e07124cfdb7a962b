package email

import (
	"fmt"
	"strings"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
	"github.com/codr1/resort-booking/internal/templates/format"
)

const resortName = "Barali Beach Resort"

// Message is a plain-text email ready to send.
type Message struct {
	Subject string
	Body    string
}

// BuildBookingSummary renders the confirmation summary for draft. The
// total is the one carried by the draft; rooms only contribute line items.
func BuildBookingSummary(draft models.BookingDraft, rooms []pricing.RoomPrice) Message {
	subject := fmt.Sprintf("%s booking summary: %s to %s",
		resortName,
		format.LongDate(draft.CheckIn),
		format.LongDate(draft.CheckOut),
	)

	var body strings.Builder
	fmt.Fprintf(&body, "Thank you for choosing %s.\n\n", resortName)
	body.WriteString("Stay\n")
	fmt.Fprintf(&body, "  Check-in: %s\n", format.LongDate(draft.CheckIn))
	fmt.Fprintf(&body, "  Check-out: %s\n", format.LongDate(draft.CheckOut))
	fmt.Fprintf(&body, "  Nights: %d\n", draft.Nights)
	fmt.Fprintf(&body, "  Adults: %d\n", draft.Adults)
	fmt.Fprintf(&body, "  Children: %d\n", draft.Children)
	fmt.Fprintf(&body, "  Rooms: %d\n", models.FixedRoomsCount)

	if len(rooms) > 0 {
		body.WriteString("\nRooms\n")
		for _, room := range rooms {
			fmt.Fprintf(&body, "  %s: %s x %d nights = %s", room.Name, format.Baht(room.Discounted), room.Nights, format.Baht(room.Total))
			if room.HasDiscount() {
				fmt.Fprintf(&body, " (was %s per night, save %s)", format.Baht(room.Original), format.Percent(room.Discount))
			}
			body.WriteString("\n")
		}
	}

	if draft.SpecialRequest != "" {
		fmt.Fprintf(&body, "\nSpecial request\n  %s\n", draft.SpecialRequest)
	}
	if draft.ContactPhone != "" {
		fmt.Fprintf(&body, "\nContact phone: %s\n", draft.ContactPhone)
	}

	fmt.Fprintf(&body, "\nTotal due: %s\n", format.Baht(draft.TotalPrice))
	body.WriteString("\nThis summary is not a receipt. Your booking is complete once payment is received.\n")

	return Message{Subject: subject, Body: body.String()}
}
