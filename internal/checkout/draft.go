package checkout

import (
	"errors"
	"fmt"

	"busbook/internal/fares"
	"busbook/internal/seatmap"
	"busbook/internal/upstream"

	"github.com/go-playground/validator/v10"
)

// ErrSeatPassengerMismatch is a state-consistency error: the passenger list
// no longer matches the selected seats. The offending step must stop and
// rebuild the list from the seats rather than guess.
var ErrSeatPassengerMismatch = errors.New("passenger list does not match selected seats")

var validate = validator.New()

// Passenger is one traveller bound to a selected seat
type Passenger struct {
	SeatID string `json:"seatId" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Age    int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Gender string `json:"gender,omitempty"`
}

// Draft is the accumulating booking for one in-progress checkout. It has no
// owner object at runtime: each step receives it serialized, extends it, and
// hands the new value forward. Steps never mutate a received draft in place.
type Draft struct {
	TripID     string `json:"tripId" validate:"required"`
	FromStopID string `json:"fromStopId" validate:"required"`
	ToStopID   string `json:"toStopId" validate:"required"`

	// Route context captured at seat selection, needed for fare math and
	// point validation on later steps
	Route upstream.RouteInfo `json:"route"`

	Seats         []seatmap.Seat        `json:"seats"`
	BoardingPoint *upstream.RoutePoint  `json:"boardingPoint,omitempty"`
	DroppingPoint *upstream.RoutePoint  `json:"droppingPoint,omitempty"`
	Passengers    []Passenger           `json:"passengers"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
	Coupon        *fares.CouponState    `json:"coupon,omitempty"`
}

// SeatIDs returns the draft's selected seat ids in draft order
func (d Draft) SeatIDs() []string {
	ids := make([]string, 0, len(d.Seats))
	for _, seat := range d.Seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

// WithSeats returns a copy of the draft with the given seats and the
// passenger list reconciled to them.
func (d Draft) WithSeats(seats []seatmap.Seat) Draft {
	d.Seats = seats
	d.Passengers = ReconcilePassengers(seats, d.Passengers)
	return d
}

// ReconcilePassengers rebuilds the passenger list to match the seat list,
// one passenger per seat. Already-entered entries are preserved by
// positional index; seat bindings are re-derived from the seat list.
func ReconcilePassengers(seats []seatmap.Seat, passengers []Passenger) []Passenger {
	if len(seats) == 0 {
		return nil
	}

	out := make([]Passenger, len(seats))
	for i, seat := range seats {
		if i < len(passengers) {
			out[i] = passengers[i]
		}
		out[i].SeatID = seat.ID
	}
	return out
}

// CheckConsistency verifies the seat/passenger invariant that must hold on
// every step past seat selection.
func (d Draft) CheckConsistency() error {
	if len(d.Passengers) != len(d.Seats) {
		return fmt.Errorf("%w: %d passengers for %d seats",
			ErrSeatPassengerMismatch, len(d.Passengers), len(d.Seats))
	}
	for i, p := range d.Passengers {
		if p.SeatID != d.Seats[i].ID {
			return fmt.Errorf("%w: passenger %d bound to seat %s, expected %s",
				ErrSeatPassengerMismatch, i, p.SeatID, d.Seats[i].ID)
		}
	}
	return nil
}

// ValidateIdentity checks the trip identity fields present from the first step
func (d Draft) ValidateIdentity() error {
	if d.TripID == "" || d.FromStopID == "" || d.ToStopID == "" {
		return fmt.Errorf("draft is missing trip or stop identity")
	}
	return nil
}

// ValidateForPayment checks everything payment initiation needs, before any
// network call: trip identity, resolved seats, points, and complete
// passenger records.
func (d Draft) ValidateForPayment() error {
	if err := d.ValidateIdentity(); err != nil {
		return err
	}
	if len(d.Seats) == 0 {
		return fmt.Errorf("no seats selected")
	}
	if d.BoardingPoint == nil || d.BoardingPoint.ID == "" {
		return fmt.Errorf("boarding point is not set")
	}
	if d.DroppingPoint == nil || d.DroppingPoint.ID == "" {
		return fmt.Errorf("dropping point is not set")
	}
	if d.PaymentMethod == "" {
		return fmt.Errorf("payment method is not set")
	}
	if err := d.CheckConsistency(); err != nil {
		return err
	}
	for i, p := range d.Passengers {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("passenger %d is incomplete: %w", i, err)
		}
	}
	return nil
}
