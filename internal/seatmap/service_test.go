package seatmap

import (
	"context"
	"errors"
	"testing"

	"busbook/internal/upstream"
	"busbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUpstream struct {
	resp *upstream.TripSeatMapResponse
	err  error
}

func (s *stubUpstream) GetTripSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*upstream.TripSeatMapResponse, error) {
	return s.resp, s.err
}
func (s *stubUpstream) ApplyCoupon(ctx context.Context, req upstream.ApplyCouponRequest) (*upstream.CouponResult, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUpstream) InitiatePayment(ctx context.Context, req upstream.InitiatePaymentRequest) (*upstream.PaymentIntent, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUpstream) VerifyPayment(ctx context.Context, req upstream.VerifyPaymentRequest) (*upstream.VerifyPaymentResult, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUpstream) DownloadTicket(ctx context.Context, bookingGroupID string) ([]byte, string, error) {
	return nil, "", errors.New("not implemented")
}

func intPtr(v int) *int { return &v }

func TestGetSeatMap(t *testing.T) {
	client := &stubUpstream{resp: &upstream.TripSeatMapResponse{
		Seats: upstream.SeatGroups{
			LowerDeck: []upstream.RawSeat{
				{ID: "s1", SeatNumber: "L1", Row: 0, Column: 0},
			},
			UpperDeck: []upstream.RawSeat{
				{ID: "s2", SeatNumber: "U1", Row: 0, Column: 0, IsAvailable: boolPtr(false)},
			},
			AvailableCount: 1,
		},
		Route: upstream.RouteInfo{
			FromStop: upstream.StopFare{ID: "stop-1"},
			ToStop:   upstream.StopFare{ID: "stop-5"},
			SeatRate: 520,
		},
		Bus: upstream.BusInfo{GridRows: intPtr(1), GridColumns: intPtr(1)},
	}}
	svc := NewService(client, testEngine(), logger.GetDefault())

	view, err := svc.GetSeatMap(context.Background(), "trip-1", "stop-1", "stop-5")
	require.NoError(t, err)

	assert.Equal(t, "trip-1", view.TripID)
	assert.Equal(t, 1, view.AvailableCount)
	assert.Len(t, view.Seats, 2)

	// One layout per populated deck
	require.Len(t, view.Decks, 2)
	assert.Equal(t, DeckLower, view.Decks[0].Deck)
	assert.Equal(t, DeckUpper, view.Decks[1].Deck)
}

func TestGetSeatMapSingleDeck(t *testing.T) {
	client := &stubUpstream{resp: &upstream.TripSeatMapResponse{
		Seats: upstream.SeatGroups{
			LowerDeck: []upstream.RawSeat{{ID: "s1", SeatNumber: "L1"}},
		},
	}}
	svc := NewService(client, testEngine(), logger.GetDefault())

	view, err := svc.GetSeatMap(context.Background(), "trip-1", "stop-1", "stop-5")
	require.NoError(t, err)
	require.Len(t, view.Decks, 1)
	assert.Equal(t, DeckLower, view.Decks[0].Deck)
}

func TestGetSeatMapInvalidCatalog(t *testing.T) {
	client := &stubUpstream{resp: &upstream.TripSeatMapResponse{
		Seats: upstream.SeatGroups{
			LowerDeck: []upstream.RawSeat{{SeatNumber: "L1"}},
		},
	}}
	svc := NewService(client, testEngine(), logger.GetDefault())

	_, err := svc.GetSeatMap(context.Background(), "trip-1", "stop-1", "stop-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seat catalog")
}

func TestGetSeatMapUpstreamError(t *testing.T) {
	client := &stubUpstream{err: upstream.ErrUnreachable}
	svc := NewService(client, testEngine(), logger.GetDefault())

	_, err := svc.GetSeatMap(context.Background(), "trip-1", "stop-1", "stop-5")
	assert.True(t, upstream.IsUnreachable(err))
}
