package checkout

import (
	"context"
	"errors"
	"fmt"

	"busbook/internal/fares"
	"busbook/internal/seatmap"
	"busbook/internal/selection"
	"busbook/internal/upstream"
)

// ErrPaymentInProgress rejects draft changes that would conflict with an
// in-flight payment for the same draft.
var ErrPaymentInProgress = errors.New("a payment is already in progress for this booking")

// PendingChecker reports whether a payment initiation is in flight for a
// draft (implemented by the payment orchestrator; interface here to avoid a
// circular dependency).
type PendingChecker interface {
	PaymentPending(ctx context.Context, tripID, fromStopID, toStopID string) bool
}

// ConfirmSeatsRequest carries the seat-selection step's outcome: the catalog
// the selection was made against and the toggled seat ids.
type ConfirmSeatsRequest struct {
	TripID          string             `json:"tripId" binding:"required"`
	FromStopID      string             `json:"fromStopId" binding:"required"`
	ToStopID        string             `json:"toStopId" binding:"required"`
	Route           upstream.RouteInfo `json:"route"`
	Catalog         []seatmap.Seat     `json:"catalog" binding:"required,min=1"`
	SelectedSeatIDs []string           `json:"selectedSeatIds" binding:"required,min=1"`
}

// Service runs the checkout steps. Every operation takes the prior step's
// draft value and returns the extended draft; nothing is kept server-side
// between calls except the seat backup.
type Service interface {
	ConfirmSeats(ctx context.Context, req ConfirmSeatsRequest) (Draft, error)
	SetPoints(ctx context.Context, draft Draft, boardingPointID, droppingPointID string) (Draft, error)
	SetPassengers(ctx context.Context, draft Draft, passengers []Passenger) (Draft, error)
	Review(ctx context.Context, draft Draft, paymentMethod string) (Draft, fares.Quote, error)
	ApplyCoupon(ctx context.Context, draft Draft, code string) (Draft, fares.Quote, error)
	RemoveCoupon(ctx context.Context, draft Draft) (Draft, fares.Quote, error)
}

type service struct {
	carrier    *Carrier
	calculator fares.Calculator
	coupons    fares.CouponService
	pending    PendingChecker
}

// NewService creates a checkout service
func NewService(carrier *Carrier, calculator fares.Calculator, coupons fares.CouponService, pending PendingChecker) Service {
	return &service{
		carrier:    carrier,
		calculator: calculator,
		coupons:    coupons,
		pending:    pending,
	}
}

// ConfirmSeats replays the selection against a fresh state machine seeded
// from the submitted catalog, resolves every selected id to its full seat,
// and produces the initial draft. The seat backup is written here.
func (s *service) ConfirmSeats(ctx context.Context, req ConfirmSeatsRequest) (Draft, error) {
	machine := selection.NewMachine(req.Catalog)
	for _, id := range req.SelectedSeatIDs {
		if _, err := machine.Toggle(id); err != nil {
			return Draft{}, fmt.Errorf("seat %s cannot be selected: %w", id, err)
		}
	}

	if !machine.CanAdvance() {
		return Draft{}, selection.ErrNothingSelected
	}

	seats, err := machine.ResolveSelected(seatmap.NewIndex(req.Catalog))
	if err != nil {
		return Draft{}, err
	}

	draft := Draft{
		TripID:     req.TripID,
		FromStopID: req.FromStopID,
		ToStopID:   req.ToStopID,
		Route:      req.Route,
	}.WithSeats(seats)

	if err := s.carrier.BackupSeats(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// SetPoints records the boarding and dropping points, validating both
// against the draft's route.
func (s *service) SetPoints(ctx context.Context, draft Draft, boardingPointID, droppingPointID string) (Draft, error) {
	draft, err := s.carrier.EnsureSeats(ctx, draft)
	if err != nil {
		return draft, err
	}

	boarding, err := findPoint(draft.Route.BoardingPoints, boardingPointID)
	if err != nil {
		return draft, fmt.Errorf("boarding point: %w", err)
	}
	dropping, err := findPoint(draft.Route.DroppingPoints, droppingPointID)
	if err != nil {
		return draft, fmt.Errorf("dropping point: %w", err)
	}

	draft.BoardingPoint = &boarding
	draft.DroppingPoint = &dropping
	return draft, nil
}

// SetPassengers records one passenger per selected seat. A submitted list of
// the wrong size is reconciled to the seat count, preserving entries
// positionally, then each record is checked for completeness.
func (s *service) SetPassengers(ctx context.Context, draft Draft, passengers []Passenger) (Draft, error) {
	draft, err := s.carrier.EnsureSeats(ctx, draft)
	if err != nil {
		return draft, err
	}

	draft.Passengers = ReconcilePassengers(draft.Seats, passengers)
	for i, p := range draft.Passengers {
		if err := validate.Struct(p); err != nil {
			return draft, fmt.Errorf("passenger %d is incomplete: %w", i, err)
		}
	}
	return draft, nil
}

// Review fixes the payment method and returns the fare quote for the draft
func (s *service) Review(ctx context.Context, draft Draft, paymentMethod string) (Draft, fares.Quote, error) {
	draft, err := s.carrier.EnsureSeats(ctx, draft)
	if err != nil {
		return draft, fares.Quote{}, err
	}
	if err := draft.CheckConsistency(); err != nil {
		// Stop and re-derive from the seat list rather than guess
		draft.Passengers = ReconcilePassengers(draft.Seats, draft.Passengers)
	}
	if paymentMethod != "" {
		draft.PaymentMethod = paymentMethod
	}
	return draft, s.quoteFor(draft), nil
}

// ApplyCoupon validates the code against the backend and stores its amounts
// on the draft. Rejected while a payment for the draft is in flight.
func (s *service) ApplyCoupon(ctx context.Context, draft Draft, code string) (Draft, fares.Quote, error) {
	draft, err := s.carrier.EnsureSeats(ctx, draft)
	if err != nil {
		return draft, fares.Quote{}, err
	}
	if s.pending != nil && s.pending.PaymentPending(ctx, draft.TripID, draft.FromStopID, draft.ToStopID) {
		return draft, fares.Quote{}, ErrPaymentInProgress
	}

	quote, err := s.coupons.Apply(ctx, s.baseQuote(draft), code, draft.TripID)
	if err != nil {
		return draft, fares.Quote{}, err
	}

	draft.Coupon = quote.Coupon
	return draft, quote, nil
}

// RemoveCoupon clears the active coupon and reverts to the pre-coupon total
func (s *service) RemoveCoupon(ctx context.Context, draft Draft) (Draft, fares.Quote, error) {
	draft, err := s.carrier.EnsureSeats(ctx, draft)
	if err != nil {
		return draft, fares.Quote{}, err
	}

	quote := s.coupons.Remove(s.baseQuote(draft))
	draft.Coupon = nil
	return draft, quote, nil
}

// baseQuote computes the undiscounted quote for the draft
func (s *service) baseQuote(draft Draft) fares.Quote {
	return s.calculator.Quote(draft.Seats, draft.Route)
}

// quoteFor computes the quote with the draft's stored coupon applied
func (s *service) quoteFor(draft Draft) fares.Quote {
	quote := s.baseQuote(draft)
	if draft.Coupon != nil {
		quote.Coupon = draft.Coupon
		quote.FinalAmount = draft.Coupon.FinalAmount
	}
	return quote
}

func findPoint(points []upstream.RoutePoint, id string) (upstream.RoutePoint, error) {
	if id == "" {
		return upstream.RoutePoint{}, fmt.Errorf("point ID is required")
	}
	for _, p := range points {
		if p.ID == id {
			return p, nil
		}
	}
	return upstream.RoutePoint{}, fmt.Errorf("point %s is not on this route", id)
}
