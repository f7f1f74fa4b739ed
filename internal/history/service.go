package history

import (
	"context"
	"log/slog"
	"strings"

	"busbook/internal/payments"
	"busbook/pkg/logger"
)

// Service reads and records the device-local booking history
type Service interface {
	Record(ctx context.Context, booking payments.ConfirmedBooking) (*BookingRecord, error)
	GetByRef(ctx context.Context, bookingRef string) (*BookingRecord, error)
	List(ctx context.Context, limit, offset int) ([]BookingRecord, int64, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

// Record stores the receipt of a verified booking
func (s *service) Record(ctx context.Context, booking payments.ConfirmedBooking) (*BookingRecord, error) {
	record := &BookingRecord{
		BookingRef:     booking.BookingRef,
		BookingGroupID: booking.BookingGroupID,
		PaymentID:      booking.PaymentID,
		TripID:         booking.TripID,
		FromStopID:     booking.FromStopID,
		ToStopID:       booking.ToStopID,
		SeatNumbers:    strings.Join(booking.SeatNumbers, ","),
		SeatCount:      booking.SeatCount,
		Amount:         booking.Amount,
		Currency:       booking.Currency,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "Booking Recorded",
		slog.String("booking_ref", booking.BookingRef),
		slog.String("trip_id", booking.TripID),
		slog.Int("seat_count", booking.SeatCount),
	)
	return record, nil
}

func (s *service) GetByRef(ctx context.Context, bookingRef string) (*BookingRecord, error) {
	return s.repo.GetByRef(ctx, bookingRef)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]BookingRecord, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
