package history

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRecord is the locally kept receipt of a confirmed booking, backing
// the booking-history surface. The booking backend stays the source of
// truth; this table only mirrors what this device confirmed.
type BookingRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingRef     string    `gorm:"uniqueIndex;not null" json:"booking_ref"`
	BookingGroupID string    `gorm:"index" json:"booking_group_id"`
	PaymentID      string    `gorm:"not null" json:"payment_id"`
	TripID         string    `gorm:"index;not null" json:"trip_id"`
	FromStopID     string    `gorm:"not null" json:"from_stop_id"`
	ToStopID       string    `gorm:"not null" json:"to_stop_id"`
	SeatNumbers    string    `gorm:"not null" json:"seat_numbers"`
	SeatCount      int       `gorm:"not null" json:"seat_count"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName sets the table name for BookingRecord
func (BookingRecord) TableName() string {
	return "booking_records"
}

// BeforeCreate assigns the record id
func (r *BookingRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SeatNumberList splits the stored seat numbers back into a slice
func (r *BookingRecord) SeatNumberList() []string {
	if r.SeatNumbers == "" {
		return nil
	}
	return strings.Split(r.SeatNumbers, ",")
}
