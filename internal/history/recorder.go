package history

import (
	"context"

	"busbook/internal/payments"
)

// RecorderAdapter implements the payment orchestrator's Recorder on top of
// the history service.
type RecorderAdapter struct {
	service Service
}

func NewRecorderAdapter(service Service) *RecorderAdapter {
	return &RecorderAdapter{service: service}
}

func (a *RecorderAdapter) SaveConfirmed(ctx context.Context, booking payments.ConfirmedBooking) error {
	_, err := a.service.Record(ctx, booking)
	return err
}
