package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/travelbook/flightbooking/internal/kafka"
)

// Notifier turns booking lifecycle events into user-facing notices. Notices
// are written to the log for now.
type Notifier struct {
	log *zap.SugaredLogger
}

func NewNotifier(log *zap.SugaredLogger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, ok := Message(event)
	if !ok {
		n.log.Warnw("unknown booking event", "type", event.Type, "event_id", event.ID)
		return nil
	}
	n.log.Infow(msg,
		"event_id", event.ID,
		"type", event.Type,
		"user_id", event.UserID,
		"booking_id", event.BookingID,
		"occurred_at", event.OccurredAt,
	)
	return nil
}

// Message renders the notice text for event.
func Message(event kafka.BookingEvent) (string, bool) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("booking %d confirmed for user %d", event.BookingID, event.UserID), true
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("booking %d cancelled for user %d", event.BookingID, event.UserID), true
	case kafka.EventBookingHistoryCleared:
		return fmt.Sprintf("%d cancelled bookings cleared for user %d", event.Cleared, event.UserID), true
	default:
		return "", false
	}
}
