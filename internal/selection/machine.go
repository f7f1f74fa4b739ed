package selection

import (
	"errors"
	"fmt"

	"busbook/internal/seatmap"
)

// Status is the per-seat selection state
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusSelected  Status = "SELECTED"
	StatusBooked    Status = "BOOKED"
)

var (
	// ErrSeatBooked rejects a toggle on a booked seat. BOOKED is absorbing:
	// it only ever arises from the server-reported baseline, never from a
	// client action.
	ErrSeatBooked = errors.New("seat is already booked")

	// ErrUnknownSeat rejects a toggle for an id outside the catalog
	ErrUnknownSeat = errors.New("seat not in catalog")

	// ErrNothingSelected gates advancement to the next checkout step
	ErrNothingSelected = errors.New("no seats selected")

	// ErrUnresolvedSeat is a fatal client-state error: a selected id no
	// longer resolves to a catalog seat. Advancement must be blocked, never
	// continued with a silently dropped seat.
	ErrUnresolvedSeat = errors.New("selected seat cannot be resolved")
)

// Machine tracks per-seat selection state for one fetched catalog. It is
// created fresh whenever the seat catalog is fetched and discarded when the
// selection step completes; its result is projected into the booking draft.
type Machine struct {
	states map[string]Status
	order  []string
}

// NewMachine seeds a machine from the normalized catalog: unavailable seats
// are BOOKED, everything else AVAILABLE.
func NewMachine(seats []seatmap.Seat) *Machine {
	m := &Machine{
		states: make(map[string]Status, len(seats)),
		order:  make([]string, 0, len(seats)),
	}
	for _, seat := range seats {
		status := StatusAvailable
		if !seat.IsAvailable {
			status = StatusBooked
		}
		m.states[seat.ID] = status
		m.order = append(m.order, seat.ID)
	}
	return m
}

// Toggle flips a seat between AVAILABLE and SELECTED. Toggling a BOOKED seat
// is rejected explicitly rather than silently ignored.
func (m *Machine) Toggle(seatID string) (Status, error) {
	status, ok := m.states[seatID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSeat, seatID)
	}

	switch status {
	case StatusAvailable:
		m.states[seatID] = StatusSelected
	case StatusSelected:
		m.states[seatID] = StatusAvailable
	case StatusBooked:
		return StatusBooked, fmt.Errorf("%w: %s", ErrSeatBooked, seatID)
	}
	return m.states[seatID], nil
}

// Status returns the current state of a seat
func (m *Machine) Status(seatID string) (Status, bool) {
	status, ok := m.states[seatID]
	return status, ok
}

// SelectedIDs returns the selected seat ids in catalog order, which keeps
// the result stable across calls.
func (m *Machine) SelectedIDs() []string {
	var ids []string
	for _, id := range m.order {
		if m.states[id] == StatusSelected {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectedCount returns the number of selected seats
func (m *Machine) SelectedCount() int {
	count := 0
	for _, status := range m.states {
		if status == StatusSelected {
			count++
		}
	}
	return count
}

// CanAdvance reports whether checkout may proceed past seat selection
func (m *Machine) CanAdvance() bool {
	return m.SelectedCount() > 0
}

// ResolveSelected maps every selected id back to its full Seat before the
// hand-off to the next step. Any id that fails to resolve is fatal.
func (m *Machine) ResolveSelected(index seatmap.Index) ([]seatmap.Seat, error) {
	ids := m.SelectedIDs()
	if len(ids) == 0 {
		return nil, ErrNothingSelected
	}
	return ResolveSeats(index, ids)
}

// ResolveSeats resolves seat ids against a catalog index, failing on the
// first id with no catalog entry.
func ResolveSeats(index seatmap.Index, ids []string) ([]seatmap.Seat, error) {
	seats := make([]seatmap.Seat, 0, len(ids))
	for _, id := range ids {
		seat, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedSeat, id)
		}
		seats = append(seats, seat)
	}
	return seats, nil
}
