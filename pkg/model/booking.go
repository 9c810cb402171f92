package model

import (
	"time"
)

const (
	BookingScheduled = "scheduled"
	BookingCanceled  = "canceled"
)

type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProfileID       string    `json:"profile_id" bson:"profile_id" validate:"required,mongodb"`
	GuestName       string    `json:"guest_name" bson:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail      string    `json:"guest_email" bson:"guest_email" validate:"required,email"`
	Note            string    `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=500"`
	StartTime       time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=5,max=480"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=scheduled canceled"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BookingUpdate struct {
	GuestName  string     `json:"guest_name,omitempty" validate:"omitempty,min=2,max=100"`
	GuestEmail string     `json:"guest_email,omitempty" validate:"omitempty,email"`
	Note       *string    `json:"note,omitempty" validate:"omitempty,max=500"`
	StartTime  *time.Time `json:"start_time,omitempty" validate:"omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty" validate:"omitempty,gtfield=StartTime"`
	Status     string     `json:"status,omitempty" validate:"omitempty,oneof=scheduled canceled"`
}

// BookingLock is an advisory lock preventing concurrent creation of bookings
// for the same slot while the overlap check runs.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
