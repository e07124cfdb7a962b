package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sendTimeout = 10 * time.Second

// EmailSender provides a testable abstraction over SES delivery.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them. It is
// used when SES is not configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	log.Ctx(ctx).Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("Email delivery disabled; message logged only")
	return nil
}

// Deliver sends msg to recipient and waits for the result. The send is
// bounded by its own timeout and is not cancelled if the caller's request
// ends first.
func Deliver(ctx context.Context, sender EmailSender, recipient string, msg Message) error {
	if sender == nil {
		return fmt.Errorf("email sender is not configured")
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if msg.Subject == "" || msg.Body == "" {
		return fmt.Errorf("email subject and body are required")
	}

	sendCtx, cancel := sendContext(ctx)
	defer cancel()

	logger := zerolog.Ctx(ctx)
	if err := sender.Send(sendCtx, recipient, msg.Subject, msg.Body); err != nil {
		logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send booking summary email")
		return fmt.Errorf("send booking summary: %w", err)
	}
	logger.Info().Str("recipient", recipient).Msg("Booking summary email sent")
	return nil
}

// sendContext keeps the request's values (and its logger) but not its
// cancellation, bounded by sendTimeout.
func sendContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(context.WithoutCancel(parent), sendTimeout)
}
