package seatmap

import (
	"fmt"
	"strings"

	"busbook/internal/upstream"
)

// Normalize converts the backend's raw per-deck seat arrays into the
// canonical Seat list. A record without an id cannot participate in
// selection, so normalization fails loudly rather than dropping it.
func Normalize(groups upstream.SeatGroups) ([]Seat, error) {
	seats := make([]Seat, 0, len(groups.LowerDeck)+len(groups.UpperDeck))

	for i, raw := range groups.LowerDeck {
		seat, err := normalizeSeat(raw, DeckLower)
		if err != nil {
			return nil, fmt.Errorf("lower deck seat %d: %w", i, err)
		}
		seats = append(seats, seat)
	}
	for i, raw := range groups.UpperDeck {
		seat, err := normalizeSeat(raw, DeckUpper)
		if err != nil {
			return nil, fmt.Errorf("upper deck seat %d: %w", i, err)
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

func normalizeSeat(raw upstream.RawSeat, defaultDeck Deck) (Seat, error) {
	if raw.ID == "" {
		return Seat{}, fmt.Errorf("seat record has no id (number %q)", raw.SeatNumber)
	}

	deck := defaultDeck
	if raw.Deck != "" {
		deck = Deck(strings.ToUpper(raw.Deck))
	}

	seatType := SeatTypeSeater
	if raw.Type != "" {
		seatType = SeatType(strings.ToUpper(raw.Type))
	}

	rowSpan := raw.RowSpan
	if rowSpan < 1 {
		rowSpan = 1
	}
	colSpan := raw.ColumnSpan
	if colSpan < 1 {
		colSpan = 1
	}

	// Availability defaults to true when the feed omits the field; a missing
	// flag must not brick the whole deck into BOOKED.
	available := true
	if raw.IsAvailable != nil {
		available = *raw.IsAvailable
	}

	return Seat{
		ID:          raw.ID,
		Deck:        deck,
		Type:        seatType,
		Row:         raw.Row,
		Column:      raw.Column,
		RowSpan:     rowSpan,
		ColumnSpan:  colSpan,
		SeatNumber:  raw.SeatNumber,
		IsAvailable: available,
	}, nil
}
