package seatmap

import (
	"testing"

	"busbook/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestNormalizeDefaults(t *testing.T) {
	groups := upstream.SeatGroups{
		LowerDeck: []upstream.RawSeat{
			{ID: "s1", SeatNumber: "L1", Row: 0, Column: 0},
		},
		UpperDeck: []upstream.RawSeat{
			{ID: "s2", SeatNumber: "U1", Row: 1, Column: 2, Type: "sleeper", RowSpan: 0, ColumnSpan: 2},
		},
	}

	seats, err := Normalize(groups)
	require.NoError(t, err)
	require.Len(t, seats, 2)

	lower := seats[0]
	assert.Equal(t, DeckLower, lower.Deck)
	assert.Equal(t, SeatTypeSeater, lower.Type)
	assert.Equal(t, 1, lower.RowSpan)
	assert.Equal(t, 1, lower.ColumnSpan)
	assert.True(t, lower.IsAvailable)

	upper := seats[1]
	assert.Equal(t, DeckUpper, upper.Deck)
	assert.Equal(t, SeatTypeSleeper, upper.Type)
	assert.Equal(t, 1, upper.RowSpan)
	assert.Equal(t, 2, upper.ColumnSpan)
}

func TestNormalizeExplicitFieldsWin(t *testing.T) {
	groups := upstream.SeatGroups{
		LowerDeck: []upstream.RawSeat{
			{ID: "s1", SeatNumber: "L1", Deck: "upper", Type: "semi_sleeper", IsAvailable: boolPtr(false)},
		},
	}

	seats, err := Normalize(groups)
	require.NoError(t, err)
	require.Len(t, seats, 1)

	assert.Equal(t, DeckUpper, seats[0].Deck)
	assert.Equal(t, SeatTypeSemiSleeper, seats[0].Type)
	assert.False(t, seats[0].IsAvailable)
}

func TestNormalizeUnknownTypeCarriedThrough(t *testing.T) {
	groups := upstream.SeatGroups{
		LowerDeck: []upstream.RawSeat{
			{ID: "s1", SeatNumber: "L1", Type: "recliner"},
		},
	}

	seats, err := Normalize(groups)
	require.NoError(t, err)
	assert.Equal(t, SeatType("RECLINER"), seats[0].Type)
}

func TestNormalizeMissingIDFails(t *testing.T) {
	groups := upstream.SeatGroups{
		LowerDeck: []upstream.RawSeat{
			{ID: "s1", SeatNumber: "L1"},
			{SeatNumber: "L2"},
		},
	}

	_, err := Normalize(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
	assert.Contains(t, err.Error(), "L2")
}
