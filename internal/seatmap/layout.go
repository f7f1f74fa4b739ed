package seatmap

import (
	"errors"

	"busbook/internal/shared/config"
)

// ErrNoSeats signals that the requested deck has no seats. Callers surface
// "no seats for this deck" instead of rendering a zero-size grid.
var ErrNoSeats = errors.New("no seats for this deck")

// Engine computes absolute pixel placement for the seats of one deck.
// Layout is a pure function of the seat list, cell size and gap: identical
// inputs always yield identical placement. The engine assumes valid,
// non-overlapping spans; it does not detect or repair overlaps.
type Engine struct {
	CellSize int
	CellGap  int
}

// NewEngine creates a layout engine with the configured cell geometry
func NewEngine(cfg config.LayoutConfig) Engine {
	return Engine{CellSize: cfg.CellSize, CellGap: cfg.CellGap}
}

// LayoutDeck places every seat of the given deck on an absolute canvas.
// grid is the backend-reported deck grid, nil when the backend does not
// report one.
//
// Coordinate origin is ambiguous upstream: operator feeds are inconsistently
// 0- or 1-based. When a grid size is reported and the observed bounding box
// fits within [0, rows) x [0, columns), coordinates are taken as 0-based;
// otherwise the observed minimum becomes the origin and the layout is marked
// OriginFallback so the catalog can be flagged for inspection.
func (e Engine) LayoutDeck(seats []Seat, deck Deck, grid *GridSize) (*DeckLayout, error) {
	deckSeats := make([]Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.Deck == deck {
			deckSeats = append(deckSeats, seat)
		}
	}
	if len(deckSeats) == 0 {
		return nil, ErrNoSeats
	}

	minRow, minCol := deckSeats[0].Row, deckSeats[0].Column
	maxRowEnd := deckSeats[0].Row + deckSeats[0].RowSpan
	maxColEnd := deckSeats[0].Column + deckSeats[0].ColumnSpan
	for _, seat := range deckSeats {
		if seat.Row < minRow {
			minRow = seat.Row
		}
		if seat.Column < minCol {
			minCol = seat.Column
		}
		if end := seat.Row + seat.RowSpan; end > maxRowEnd {
			maxRowEnd = end
		}
		if end := seat.Column + seat.ColumnSpan; end > maxColEnd {
			maxColEnd = end
		}
	}

	originRow, originCol := 0, 0
	fallback := false
	if grid == nil || minRow < 0 || minCol < 0 || maxRowEnd > grid.Rows || maxColEnd > grid.Columns {
		originRow, originCol = minRow, minCol
		fallback = true
	}

	totalRows := maxRowEnd - originRow
	totalCols := maxColEnd - originCol
	if grid != nil {
		totalRows = grid.Rows
		totalCols = grid.Columns
	}

	step := e.CellSize + e.CellGap
	placements := make([]Placement, 0, len(deckSeats))
	for _, seat := range deckSeats {
		placements = append(placements, Placement{
			Seat:   seat,
			Left:   (seat.Column - originCol) * step,
			Top:    (seat.Row - originRow) * step,
			Width:  seat.ColumnSpan*e.CellSize + (seat.ColumnSpan-1)*e.CellGap,
			Height: seat.RowSpan*e.CellSize + (seat.RowSpan-1)*e.CellGap,
		})
	}

	return &DeckLayout{
		Deck:           deck,
		CanvasWidth:    totalCols*e.CellSize + (totalCols-1)*e.CellGap,
		CanvasHeight:   totalRows*e.CellSize + (totalRows-1)*e.CellGap,
		Placements:     placements,
		OriginFallback: fallback,
	}, nil
}
