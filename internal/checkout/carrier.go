package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busbook/internal/seatmap"
	"busbook/internal/shared/constants"
	"busbook/pkg/logger"
	"busbook/pkg/store"
)

// ErrDraftUnrecoverable terminates a step entered without its seat payload
// when the persistent backup cannot restore it either. The only way forward
// is back to seat selection; a fabricated empty seat set is never an option.
var ErrDraftUnrecoverable = errors.New("booking draft cannot be recovered")

// SeatBackup is the persisted snapshot of the selected-seats portion of a
// draft, written whenever seats are confirmed. It exists solely to survive
// loss of the in-flight step payload.
type SeatBackup struct {
	TripID     string         `json:"tripId"`
	FromStopID string         `json:"fromStopId"`
	ToStopID   string         `json:"toStopId"`
	Seats      []seatmap.Seat `json:"seats"`
	SavedAt    time.Time      `json:"savedAt"`
}

// Carrier threads the booking draft between checkout steps and owns the
// backup side channel. The backup is a recovery store, never a primary
// source of truth.
type Carrier struct {
	store     store.Service
	backupTTL time.Duration
	log       *logger.Logger
}

// NewCarrier creates a checkout session carrier
func NewCarrier(st store.Service, backupTTL time.Duration, log *logger.Logger) *Carrier {
	return &Carrier{
		store:     st,
		backupTTL: backupTTL,
		log:       log,
	}
}

// BackupSeats persists the draft's selected seats under the well-known
// backup key. Last writer wins; the backup is a single-draft artifact.
func (c *Carrier) BackupSeats(ctx context.Context, draft Draft) error {
	backup := SeatBackup{
		TripID:     draft.TripID,
		FromStopID: draft.FromStopID,
		ToStopID:   draft.ToStopID,
		Seats:      draft.Seats,
		SavedAt:    time.Now().UTC(),
	}
	if err := c.store.Set(ctx, constants.KeySeatBackup, backup, c.backupTTL); err != nil {
		return fmt.Errorf("failed to write seat backup: %w", err)
	}
	return nil
}

// ClearBackup drops the seat backup once the booking has completed
func (c *Carrier) ClearBackup(ctx context.Context) error {
	return c.store.Delete(ctx, constants.KeySeatBackup)
}

// EnsureSeats returns the draft ready for a step past seat selection. When
// the incoming payload carries no seats, recovery from the persistent backup
// is attempted exactly once; if that also fails, or the backup belongs to a
// different trip, the step is terminal and the caller must offer "go back".
func (c *Carrier) EnsureSeats(ctx context.Context, draft Draft) (Draft, error) {
	if err := draft.ValidateIdentity(); err != nil {
		return draft, err
	}
	if len(draft.Seats) > 0 {
		return draft, nil
	}

	var backup SeatBackup
	if err := c.store.Get(ctx, constants.KeySeatBackup, &backup); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return draft, ErrDraftUnrecoverable
		}
		return draft, fmt.Errorf("%w: %v", ErrDraftUnrecoverable, err)
	}

	// A backup from another trip or route must not leak into this draft
	if backup.TripID != draft.TripID ||
		backup.FromStopID != draft.FromStopID ||
		backup.ToStopID != draft.ToStopID ||
		len(backup.Seats) == 0 {
		return draft, ErrDraftUnrecoverable
	}

	c.log.LogDraftRecovered(ctx, draft.TripID, len(backup.Seats))
	return draft.WithSeats(backup.Seats), nil
}
