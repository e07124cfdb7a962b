package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
)

type fakeEmailSender struct {
	mu        sync.Mutex
	recipient string
	subject   string
	body      string
	ctxErr    error
	err       error
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipient = recipient
	f.subject = subject
	f.body = body
	f.ctxErr = ctx.Err()
	return f.err
}

func sampleDraft() models.BookingDraft {
	return models.BookingDraft{
		Rooms: []models.Accommodation{
			{ID: "1", Name: "Garden Room", PricePerNight: 1000, Discount: models.NewPercent(10)},
		},
		CheckIn:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		Nights:         2,
		Adults:         2,
		Children:       1,
		SpecialRequest: "Late arrival",
		ContactPhone:   "+66812345678",
		TotalPrice:     1800,
	}
}

func TestBuildBookingSummary(t *testing.T) {
	draft := sampleDraft()
	rooms := []pricing.RoomPrice{pricing.Breakdown(draft.Rooms[0], draft.Nights)}

	msg := BuildBookingSummary(draft, rooms)

	if !strings.Contains(msg.Subject, "10 มกราคม 2024") {
		t.Fatalf("expected check-in in subject, got %q", msg.Subject)
	}
	for _, want := range []string{
		"Nights: 2",
		"Adults: 2",
		"Children: 1",
		"Garden Room: 900 บาท x 2 nights = 1,800 บาท",
		"save 10%",
		"Late arrival",
		"+66812345678",
		"Total due: 1,800 บาท",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("expected body to contain %q\n%s", want, msg.Body)
		}
	}
}

func TestBuildBookingSummaryUsesCarriedTotal(t *testing.T) {
	draft := sampleDraft()
	draft.TotalPrice = 4321

	msg := BuildBookingSummary(draft, nil)
	if !strings.Contains(msg.Body, "Total due: 4,321 บาท") {
		t.Fatalf("expected carried total, got\n%s", msg.Body)
	}
	if strings.Contains(msg.Body, "\nRooms\n") {
		t.Fatal("expected no room section without line items")
	}
}

func TestDeliverDetachesCancellation(t *testing.T) {
	sender := &fakeEmailSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Deliver(ctx, sender, " guest@example.com ", Message{Subject: "s", Body: "b"})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if sender.ctxErr != nil {
		t.Fatalf("expected send context to outlive the request, got %v", sender.ctxErr)
	}
	if sender.recipient != "guest@example.com" {
		t.Fatalf("expected trimmed recipient, got %q", sender.recipient)
	}
}

func TestDeliverErrors(t *testing.T) {
	msg := Message{Subject: "s", Body: "b"}
	if err := Deliver(context.Background(), nil, "guest@example.com", msg); err == nil {
		t.Fatal("expected error without sender")
	}
	if err := Deliver(context.Background(), &fakeEmailSender{}, "", msg); err == nil {
		t.Fatal("expected error without recipient")
	}
	if err := Deliver(context.Background(), &fakeEmailSender{}, "guest@example.com", Message{}); err == nil {
		t.Fatal("expected error for empty message")
	}

	failure := errors.New("ses down")
	if err := Deliver(context.Background(), &fakeEmailSender{err: failure}, "guest@example.com", msg); !errors.Is(err, failure) {
		t.Fatalf("expected wrapped send failure, got %v", err)
	}
}

func TestLogSenderAcceptsMessages(t *testing.T) {
	if err := (LogSender{}).Send(context.Background(), "guest@example.com", "s", "b"); err != nil {
		t.Fatalf("log sender: %v", err)
	}
}

func TestNewSESClientRequiresCredentials(t *testing.T) {
	if _, err := NewSESClient(context.Background(), "", "secret", "ap-southeast-1", "noreply@example.com"); err == nil {
		t.Fatal("expected error without access key")
	}
	if _, err := NewSESClient(context.Background(), "key", "secret", "ap-southeast-1", ""); err == nil {
		t.Fatal("expected error without sender")
	}
}
