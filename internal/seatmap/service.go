package seatmap

import (
	"context"
	"fmt"

	"busbook/internal/upstream"
	"busbook/pkg/logger"
)

// SeatMapView is the fully prepared seat map for one trip+route pair:
// normalized catalog, per-deck layouts, and the route context needed by the
// following checkout steps.
type SeatMapView struct {
	TripID         string                `json:"tripId"`
	FromStop       upstream.StopFare     `json:"fromStop"`
	ToStop         upstream.StopFare     `json:"toStop"`
	BoardingPoints []upstream.RoutePoint `json:"boardingPoints"`
	DroppingPoints []upstream.RoutePoint `json:"droppingPoints"`
	SeatRate       float64               `json:"seatRate"`
	AvailableCount int                   `json:"availableCount"`
	Seats          []Seat                `json:"seats"`
	Decks          []DeckLayout          `json:"decks"`
}

// Service prepares seat maps for the seat-selection step
type Service interface {
	GetSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*SeatMapView, error)
}

type service struct {
	client upstream.Client
	engine Engine
	log    *logger.Logger
}

// NewService creates a seat map service
func NewService(client upstream.Client, engine Engine, log *logger.Logger) Service {
	return &service{
		client: client,
		engine: engine,
		log:    log,
	}
}

func (s *service) GetSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*SeatMapView, error) {
	info, err := s.client.GetTripSeatMap(ctx, tripID, fromStopID, toStopID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seat map: %w", err)
	}

	seats, err := Normalize(info.Seats)
	if err != nil {
		return nil, fmt.Errorf("invalid seat catalog: %w", err)
	}

	var grid *GridSize
	if info.Bus.GridRows != nil && info.Bus.GridColumns != nil {
		grid = &GridSize{Rows: *info.Bus.GridRows, Columns: *info.Bus.GridColumns}
	}

	var decks []DeckLayout
	for _, deck := range []Deck{DeckLower, DeckUpper} {
		layout, err := s.engine.LayoutDeck(seats, deck, grid)
		if err != nil {
			if err == ErrNoSeats {
				continue
			}
			return nil, fmt.Errorf("failed to lay out %s deck: %w", deck, err)
		}

		// A reported grid that the coordinates do not fit is the known
		// 0-/1-based ambiguity; flag the catalog for inspection.
		if layout.OriginFallback && grid != nil {
			s.log.LogLayoutOriginFallback(ctx, tripID, string(deck), minRowOf(layout.Placements), minColOf(layout.Placements))
		}
		decks = append(decks, *layout)
	}

	return &SeatMapView{
		TripID:         tripID,
		FromStop:       info.Route.FromStop,
		ToStop:         info.Route.ToStop,
		BoardingPoints: info.Route.BoardingPoints,
		DroppingPoints: info.Route.DroppingPoints,
		SeatRate:       info.Route.SeatRate,
		AvailableCount: info.Seats.AvailableCount,
		Seats:          seats,
		Decks:          decks,
	}, nil
}

func minRowOf(placements []Placement) int {
	min := placements[0].Seat.Row
	for _, p := range placements {
		if p.Seat.Row < min {
			min = p.Seat.Row
		}
	}
	return min
}

func minColOf(placements []Placement) int {
	min := placements[0].Seat.Column
	for _, p := range placements {
		if p.Seat.Column < min {
			min = p.Seat.Column
		}
	}
	return min
}
