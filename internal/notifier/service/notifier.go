package service

import (
	"context"
	"fmt"

	"openinterview/pkg/contracts"
	"openinterview/pkg/kafka"
	"openinterview/pkg/logger"
)

// Notifier consumes booking events and emits guest notifications. Delivery
// is the log for now; the handler shape stays the same when a mail or SMS
// gateway replaces it.
type Notifier struct {
	log *logger.Logger
}

func NewNotifier(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

// HandleMessage is the kafka.MessageHandler for the booking events topic.
func (n *Notifier) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var event contracts.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		// Malformed payloads can never succeed on retry.
		return fmt.Errorf("invalid booking event payload: %w", err)
	}

	switch msg.GetEventType() {
	case contracts.EventBookingCreated:
		n.log.Info("Sending booking confirmation",
			"booking_id", event.BookingID,
			"profile_id", event.ProfileID,
			"guest_name", event.GuestName,
			"guest_email", event.GuestEmail,
			"start_time", event.StartTime,
			"duration_minutes", event.DurationMinutes,
			"event_id", msg.GetEventID(),
		)
	case contracts.EventBookingCanceled:
		n.log.Info("Sending cancellation notice",
			"booking_id", event.BookingID,
			"profile_id", event.ProfileID,
			"guest_email", event.GuestEmail,
			"start_time", event.StartTime,
			"event_id", msg.GetEventID(),
		)
	default:
		n.log.Warn("Ignoring unknown booking event type",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
		)
	}

	return nil
}
