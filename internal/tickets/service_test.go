package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"busbook/internal/history"
	"busbook/internal/payments"
	"busbook/internal/upstream"
	"busbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTicketClient struct {
	body        []byte
	contentType string
	err         error
}

func (s *stubTicketClient) GetTripSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*upstream.TripSeatMapResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTicketClient) ApplyCoupon(ctx context.Context, req upstream.ApplyCouponRequest) (*upstream.CouponResult, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTicketClient) InitiatePayment(ctx context.Context, req upstream.InitiatePaymentRequest) (*upstream.PaymentIntent, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTicketClient) VerifyPayment(ctx context.Context, req upstream.VerifyPaymentRequest) (*upstream.VerifyPaymentResult, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTicketClient) DownloadTicket(ctx context.Context, bookingGroupID string) ([]byte, string, error) {
	return s.body, s.contentType, s.err
}

type stubHistory struct {
	record *history.BookingRecord
	err    error
}

func (s *stubHistory) Record(ctx context.Context, booking payments.ConfirmedBooking) (*history.BookingRecord, error) {
	return nil, errors.New("not implemented")
}
func (s *stubHistory) GetByRef(ctx context.Context, bookingRef string) (*history.BookingRecord, error) {
	return s.record, s.err
}
func (s *stubHistory) List(ctx context.Context, limit, offset int) ([]history.BookingRecord, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func TestDownloadProxiesBackendTicket(t *testing.T) {
	client := &stubTicketClient{body: []byte("%PDF-1.4"), contentType: "application/pdf"}
	svc := NewService(client, &stubHistory{}, logger.GetDefault())

	ticket, err := svc.Download(context.Background(), "bg-1")
	require.NoError(t, err)

	assert.Equal(t, "ticket-bg-1.pdf", ticket.FileName)
	assert.Equal(t, "application/pdf", ticket.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), ticket.Content)
}

func TestDownloadDefaultsContentType(t *testing.T) {
	client := &stubTicketClient{body: []byte("%PDF-1.4")}
	svc := NewService(client, &stubHistory{}, logger.GetDefault())

	ticket, err := svc.Download(context.Background(), "bg-1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ticket.ContentType)
}

func TestSummaryRendersPDF(t *testing.T) {
	hist := &stubHistory{record: &history.BookingRecord{
		BookingRef:  "BR-1001",
		TripID:      "trip-1",
		FromStopID:  "stop-1",
		ToStopID:    "stop-5",
		SeatNumbers: "L1,L2",
		SeatCount:   2,
		Amount:      1187,
		Currency:    "INR",
		CreatedAt:   time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
	}}
	svc := NewService(&stubTicketClient{}, hist, logger.GetDefault())

	ticket, err := svc.Summary(context.Background(), "BR-1001")
	require.NoError(t, err)

	assert.Equal(t, "booking-BR-1001.pdf", ticket.FileName)
	assert.Equal(t, "application/pdf", ticket.ContentType)
	// Rendered document starts with the PDF magic bytes
	require.Greater(t, len(ticket.Content), 4)
	assert.Equal(t, "%PDF", string(ticket.Content[:4]))
}

func TestSummaryUnknownBooking(t *testing.T) {
	hist := &stubHistory{err: history.ErrRecordNotFound}
	svc := NewService(&stubTicketClient{}, hist, logger.GetDefault())

	_, err := svc.Summary(context.Background(), "BR-missing")
	assert.ErrorIs(t, err, history.ErrRecordNotFound)
}
