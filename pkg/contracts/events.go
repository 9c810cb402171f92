package contracts

import "time"

// Booking event topics.
const (
	TopicBookingEvents    = "booking.events"
	TopicBookingEventsDLQ = "booking.events.dlq"
)

// Booking event types.
const (
	EventBookingCreated  = "booking.created"
	EventBookingCanceled = "booking.canceled"
)

// BookingEvent is the payload published on TopicBookingEvents and consumed
// by the notifier.
type BookingEvent struct {
	BookingID       string    `json:"booking_id"`
	ProfileID       string    `json:"profile_id"`
	GuestName       string    `json:"guest_name"`
	GuestEmail      string    `json:"guest_email"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
}
