package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type identifies a booking lifecycle event
type Type string

const (
	TypeCheckoutConfirmed Type = "checkout.confirmed"
	TypePaymentFailed     Type = "payment.failed"
	TypePaymentCancelled  Type = "payment.cancelled"
)

// BookingEvent is one booking lifecycle event, published for downstream
// analytics and notification consumers.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	TripID     string    `json:"trip_id"`
	PaymentID  string    `json:"payment_id,omitempty"`
	BookingRef string    `json:"booking_ref,omitempty"`
	SeatCount  int       `json:"seat_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one trip to the same partition
func (e *BookingEvent) GetPartitionKey() string {
	if e.TripID != "" {
		return e.TripID
	}
	return e.ID
}

// fill populates identity and timestamp if the publisher left them empty
func (e *BookingEvent) fill() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
}
