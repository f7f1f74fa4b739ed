package seatmap

// Deck is a physical seating level of the vehicle
type Deck string

const (
	DeckLower Deck = "LOWER"
	DeckUpper Deck = "UPPER"
)

// SeatType classifies a seat. The set is open-ended; unknown types from the
// backend are carried through upper-cased.
type SeatType string

const (
	SeatTypeSeater      SeatType = "SEATER"
	SeatTypeSleeper     SeatType = "SLEEPER"
	SeatTypeSemiSleeper SeatType = "SEMI_SLEEPER"
)

// Seat is the canonical seat model used by everything downstream of the
// normalizer: stable server-assigned id, upper-cased deck and type, spans
// defaulted to at least 1.
type Seat struct {
	ID          string   `json:"id"`
	Deck        Deck     `json:"deck"`
	Type        SeatType `json:"type"`
	Row         int      `json:"row"`
	Column      int      `json:"column"`
	RowSpan     int      `json:"rowSpan"`
	ColumnSpan  int      `json:"columnSpan"`
	SeatNumber  string   `json:"seatNumber"`
	IsAvailable bool     `json:"isAvailable"`
}

// GridSize is the backend-reported seat grid of a deck, when available
type GridSize struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Placement is a seat's absolute rectangle in layout units
type Placement struct {
	Seat   Seat `json:"seat"`
	Left   int  `json:"left"`
	Top    int  `json:"top"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

// DeckLayout is the computed layout of one deck: every seat placed on an
// absolute canvas. OriginFallback marks catalogs whose coordinate origin
// could not be confirmed against the reported grid size.
type DeckLayout struct {
	Deck           Deck        `json:"deck"`
	CanvasWidth    int         `json:"canvasWidth"`
	CanvasHeight   int         `json:"canvasHeight"`
	Placements     []Placement `json:"placements"`
	OriginFallback bool        `json:"originFallback"`
}

// Index maps seat ids back to their canonical Seat
type Index map[string]Seat

// NewIndex builds a seat index from a normalized catalog
func NewIndex(seats []Seat) Index {
	idx := make(Index, len(seats))
	for _, seat := range seats {
		idx[seat.ID] = seat
	}
	return idx
}
