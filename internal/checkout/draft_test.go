package checkout

import (
	"testing"

	"busbook/internal/seatmap"
	"busbook/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftSeats(ids ...string) []seatmap.Seat {
	seats := make([]seatmap.Seat, 0, len(ids))
	for _, id := range ids {
		seats = append(seats, seatmap.Seat{ID: id, SeatNumber: "N-" + id})
	}
	return seats
}

func TestReconcilePassengersGrow(t *testing.T) {
	passengers := []Passenger{
		{SeatID: "a", Name: "Asha", Email: "asha@example.com"},
	}

	out := ReconcilePassengers(draftSeats("a", "b", "c"), passengers)
	require.Len(t, out, 3)

	// The entered record survives; the new slots carry only their seat binding
	assert.Equal(t, "Asha", out[0].Name)
	assert.Equal(t, "a", out[0].SeatID)
	assert.Equal(t, "b", out[1].SeatID)
	assert.Empty(t, out[1].Name)
	assert.Equal(t, "c", out[2].SeatID)
}

func TestReconcilePassengersShrink(t *testing.T) {
	passengers := []Passenger{
		{SeatID: "a", Name: "Asha", Email: "asha@example.com"},
		{SeatID: "b", Name: "Binod", Email: "binod@example.com"},
		{SeatID: "c", Name: "Chitra", Email: "chitra@example.com"},
	}

	out := ReconcilePassengers(draftSeats("a", "b"), passengers)
	require.Len(t, out, 2)
	assert.Equal(t, "Asha", out[0].Name)
	assert.Equal(t, "Binod", out[1].Name)
}

func TestReconcilePassengersRebindsSeatIDs(t *testing.T) {
	passengers := []Passenger{
		{SeatID: "stale-1", Name: "Asha", Email: "asha@example.com"},
		{SeatID: "stale-2", Name: "Binod", Email: "binod@example.com"},
	}

	out := ReconcilePassengers(draftSeats("x", "y"), passengers)
	assert.Equal(t, "x", out[0].SeatID)
	assert.Equal(t, "y", out[1].SeatID)
}

func TestReconcilePassengersNoSeats(t *testing.T) {
	out := ReconcilePassengers(nil, []Passenger{{SeatID: "a", Name: "Asha"}})
	assert.Nil(t, out)
}

func TestCheckConsistency(t *testing.T) {
	draft := Draft{
		Seats: draftSeats("a", "b"),
		Passengers: []Passenger{
			{SeatID: "a", Name: "Asha", Email: "asha@example.com"},
			{SeatID: "b", Name: "Binod", Email: "binod@example.com"},
		},
	}
	assert.NoError(t, draft.CheckConsistency())

	draft.Passengers = draft.Passengers[:1]
	assert.ErrorIs(t, draft.CheckConsistency(), ErrSeatPassengerMismatch)

	draft.Passengers = []Passenger{
		{SeatID: "b", Name: "Asha", Email: "asha@example.com"},
		{SeatID: "a", Name: "Binod", Email: "binod@example.com"},
	}
	assert.ErrorIs(t, draft.CheckConsistency(), ErrSeatPassengerMismatch)
}

func TestValidateForPayment(t *testing.T) {
	complete := Draft{
		TripID:     "trip-1",
		FromStopID: "stop-1",
		ToStopID:   "stop-5",
		Seats:      draftSeats("a"),
		BoardingPoint: &upstream.RoutePoint{ID: "bp-1", Name: "Central"},
		DroppingPoint: &upstream.RoutePoint{ID: "dp-1", Name: "Airport"},
		Passengers: []Passenger{
			{SeatID: "a", Name: "Asha", Email: "asha@example.com", Age: 30},
		},
		PaymentMethod: "upi",
	}
	assert.NoError(t, complete.ValidateForPayment())

	tests := []struct {
		name   string
		mutate func(d *Draft)
	}{
		{"missing trip identity", func(d *Draft) { d.TripID = "" }},
		{"no seats", func(d *Draft) { d.Seats = nil; d.Passengers = nil }},
		{"no boarding point", func(d *Draft) { d.BoardingPoint = nil }},
		{"no dropping point", func(d *Draft) { d.DroppingPoint = nil }},
		{"no payment method", func(d *Draft) { d.PaymentMethod = "" }},
		{"incomplete passenger", func(d *Draft) { d.Passengers[0].Email = "" }},
		{"invalid email", func(d *Draft) { d.Passengers[0].Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := complete
			draft.Passengers = append([]Passenger(nil), complete.Passengers...)
			tt.mutate(&draft)
			assert.Error(t, draft.ValidateForPayment())
		})
	}
}
