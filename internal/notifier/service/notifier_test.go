package service

import (
	"context"
	"testing"
	"time"

	"openinterview/pkg/contracts"
	"openinterview/pkg/kafka"
	"openinterview/pkg/logger"
)

func newTestNotifier() *Notifier {
	return NewNotifier(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "notifier-test",
	}))
}

func bookingEventMessage(eventType string) kafka.Message {
	return kafka.NewMessage().
		WithKey("64f1b2a3c4d5e6f7a8b9c0d2").
		WithValue(contracts.BookingEvent{
			BookingID:       "64f1b2a3c4d5e6f7a8b9c0d2",
			ProfileID:       "64f1b2a3c4d5e6f7a8b9c0d1",
			GuestName:       "Grace Hopper",
			GuestEmail:      "grace@example.com",
			StartTime:       time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			EndTime:         time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
			DurationMinutes: 30,
			Status:          "scheduled",
		}).
		WithEventType(eventType).
		WithSource("bookings").
		Build()
}

func TestHandleMessageKnownEvents(t *testing.T) {
	n := newTestNotifier()

	for _, eventType := range []string{contracts.EventBookingCreated, contracts.EventBookingCanceled} {
		if err := n.HandleMessage(context.Background(), bookingEventMessage(eventType)); err != nil {
			t.Errorf("%s: unexpected error: %v", eventType, err)
		}
	}
}

func TestHandleMessageUnknownEventTypeIsIgnored(t *testing.T) {
	n := newTestNotifier()

	if err := n.HandleMessage(context.Background(), bookingEventMessage("booking.rescheduled")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHandleMessageMalformedPayload(t *testing.T) {
	n := newTestNotifier()

	msg := kafka.NewMessage().
		WithKey("junk").
		WithEventType(contracts.EventBookingCreated).
		Build()
	msg.Value = []byte("{not json")

	if err := n.HandleMessage(context.Background(), msg); err == nil {
		t.Error("expected error for malformed payload, got nil")
	}
}
