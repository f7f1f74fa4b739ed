package selection

import (
	"testing"

	"busbook/internal/seatmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []seatmap.Seat {
	return []seatmap.Seat{
		{ID: "a", Deck: seatmap.DeckLower, SeatNumber: "L1", IsAvailable: true},
		{ID: "b", Deck: seatmap.DeckLower, SeatNumber: "L2", IsAvailable: true},
		{ID: "c", Deck: seatmap.DeckLower, SeatNumber: "L3", IsAvailable: false},
	}
}

func TestMachineSeedsFromCatalog(t *testing.T) {
	m := NewMachine(testCatalog())

	status, ok := m.Status("a")
	require.True(t, ok)
	assert.Equal(t, StatusAvailable, status)

	status, ok = m.Status("c")
	require.True(t, ok)
	assert.Equal(t, StatusBooked, status)
}

func TestToggleRoundTrip(t *testing.T) {
	m := NewMachine(testCatalog())

	status, err := m.Toggle("a")
	require.NoError(t, err)
	assert.Equal(t, StatusSelected, status)

	status, err = m.Toggle("a")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, status)
	assert.Empty(t, m.SelectedIDs())
}

func TestToggleBookedSeatRejected(t *testing.T) {
	m := NewMachine(testCatalog())

	status, err := m.Toggle("c")
	assert.ErrorIs(t, err, ErrSeatBooked)
	assert.Equal(t, StatusBooked, status)

	// BOOKED is absorbing: the rejected toggle changed nothing
	status, _ = m.Status("c")
	assert.Equal(t, StatusBooked, status)
}

func TestToggleUnknownSeat(t *testing.T) {
	m := NewMachine(testCatalog())

	_, err := m.Toggle("zz")
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestSelectedIDsCatalogOrder(t *testing.T) {
	m := NewMachine(testCatalog())

	_, err := m.Toggle("b")
	require.NoError(t, err)
	_, err = m.Toggle("a")
	require.NoError(t, err)

	// Selection order does not matter; catalog order does
	assert.Equal(t, []string{"a", "b"}, m.SelectedIDs())
}

func TestCanAdvance(t *testing.T) {
	m := NewMachine(testCatalog())
	assert.False(t, m.CanAdvance())

	_, err := m.Toggle("a")
	require.NoError(t, err)
	assert.True(t, m.CanAdvance())
	assert.Equal(t, 1, m.SelectedCount())
}

func TestResolveSelected(t *testing.T) {
	catalog := testCatalog()
	m := NewMachine(catalog)

	_, err := m.Toggle("b")
	require.NoError(t, err)

	seats, err := m.ResolveSelected(seatmap.NewIndex(catalog))
	require.NoError(t, err)
	require.Len(t, seats, 1)
	assert.Equal(t, "L2", seats[0].SeatNumber)
}

func TestResolveSelectedNothingSelected(t *testing.T) {
	catalog := testCatalog()
	m := NewMachine(catalog)

	_, err := m.ResolveSelected(seatmap.NewIndex(catalog))
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestResolveSeatsUnresolvedIsFatal(t *testing.T) {
	index := seatmap.NewIndex(testCatalog())

	_, err := ResolveSeats(index, []string{"a", "gone"})
	assert.ErrorIs(t, err, ErrUnresolvedSeat)
}
