package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busbook/internal/checkout"
	"busbook/internal/events"
	"busbook/internal/shared/constants"
	"busbook/internal/upstream"
	"busbook/pkg/logger"
	"busbook/pkg/store"
)

var (
	// ErrValidation marks a local pre-flight failure; no backend call was made
	ErrValidation = errors.New("payment validation failed")

	// ErrIntentMismatch is a fatal state error: the submitted proof does not
	// belong to the intent initiated for this draft.
	ErrIntentMismatch = errors.New("payment proof does not match the initiated intent")

	// ErrOutcomeUnknown marks a transport failure where the server-side
	// effect is unknowable. The user must check booking status; the client
	// must not assume success or failure.
	ErrOutcomeUnknown = errors.New("payment outcome unknown, check booking status")
)

// Recorder persists confirmed bookings for the history surface
type Recorder interface {
	SaveConfirmed(ctx context.Context, booking ConfirmedBooking) error
}

// pendingPayment is the store marker for an in-flight initiation. It pins
// the intent identity and authoritative amount between Initiate and
// Complete/Cancel.
type pendingPayment struct {
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// Orchestrator drives a payment intent through
// NONE -> INITIATING -> AWAITING_GATEWAY -> VERIFYING -> CONFIRMED/FAILED/CANCELLED.
// The redirect flow splits at the gateway hand-off: Initiate covers
// everything up to AWAITING_GATEWAY, Complete and Cancel consume the
// gateway's answer. Checkout composes the whole run for an in-process
// Gateway.
type Orchestrator interface {
	Initiate(ctx context.Context, draft checkout.Draft) (*Result, error)
	Complete(ctx context.Context, draft checkout.Draft, paymentID string, auth Authorization) (*Result, error)
	Cancel(ctx context.Context, draft checkout.Draft, paymentID, reason string) (*Result, error)
	Checkout(ctx context.Context, draft checkout.Draft, gateway Gateway) (*Result, error)

	// PaymentPending implements the checkout conflict guard
	PaymentPending(ctx context.Context, tripID, fromStopID, toStopID string) bool
}

type orchestrator struct {
	client     upstream.Client
	store      store.Service
	carrier    *checkout.Carrier
	recorder   Recorder
	producer   events.Producer
	redirect   *RedirectGateway
	pendingTTL time.Duration
	log        *logger.Logger
}

// NewOrchestrator creates a payment orchestrator
func NewOrchestrator(client upstream.Client, st store.Service, carrier *checkout.Carrier,
	recorder Recorder, producer events.Producer, redirect *RedirectGateway,
	pendingTTL time.Duration, log *logger.Logger) Orchestrator {
	return &orchestrator{
		client:     client,
		store:      st,
		carrier:    carrier,
		recorder:   recorder,
		producer:   producer,
		redirect:   redirect,
		pendingTTL: pendingTTL,
		log:        log,
	}
}

// Initiate validates the draft locally and asks the backend for a payment
// intent. Any missing field fails here, before any network call. On success
// the draft is marked pending and the gateway parameters are returned with
// the intent's authoritative amount.
func (o *orchestrator) Initiate(ctx context.Context, draft checkout.Draft) (*Result, error) {
	o.log.LogPaymentTransition(ctx, "", string(StateNone), string(StateInitiating))

	if err := draft.ValidateForPayment(); err != nil {
		o.log.LogPaymentTransition(ctx, "", string(StateInitiating), string(StateFailed))
		return &Result{State: StateFailed, FailureReason: err.Error()},
			fmt.Errorf("%w: %v", ErrValidation, err)
	}

	pendingKey := constants.PaymentPendingKey(draft.TripID, draft.FromStopID, draft.ToStopID)
	if o.store.Exists(ctx, pendingKey) {
		return &Result{State: StateInitiating}, checkout.ErrPaymentInProgress
	}

	passengers := make([]upstream.PassengerRecord, 0, len(draft.Passengers))
	for _, p := range draft.Passengers {
		passengers = append(passengers, upstream.PassengerRecord{
			SeatID: p.SeatID,
			Name:   p.Name,
			Email:  p.Email,
			Age:    p.Age,
			Gender: p.Gender,
		})
	}

	req := upstream.InitiatePaymentRequest{
		TripID:          draft.TripID,
		FromStopID:      draft.FromStopID,
		ToStopID:        draft.ToStopID,
		SeatIDs:         draft.SeatIDs(),
		Passengers:      passengers,
		PaymentMethod:   draft.PaymentMethod,
		BoardingPointID: draft.BoardingPoint.ID,
		DroppingPointID: draft.DroppingPoint.ID,
	}
	if draft.Coupon != nil {
		req.CouponCode = draft.Coupon.Code
	}

	intent, err := o.client.InitiatePayment(ctx, req)
	if err != nil {
		o.log.LogPaymentTransition(ctx, "", string(StateInitiating), string(StateFailed))
		if upstream.IsUnreachable(err) {
			// The initiate may or may not have landed server-side
			return &Result{State: StateFailed, FailureReason: ErrOutcomeUnknown.Error()},
				fmt.Errorf("%w: %v", ErrOutcomeUnknown, err)
		}
		return &Result{State: StateFailed, FailureReason: err.Error()},
			fmt.Errorf("payment initiation failed: %w", err)
	}

	pending := pendingPayment{PaymentID: intent.PaymentID, Amount: intent.Amount, Currency: intent.Currency}
	if err := o.store.Set(ctx, pendingKey, pending, o.pendingTTL); err != nil {
		return &Result{State: StateFailed, FailureReason: err.Error()},
			fmt.Errorf("failed to mark payment pending: %w", err)
	}

	o.log.LogPaymentTransition(ctx, intent.PaymentID, string(StateInitiating), string(StateAwaitingGateway))

	params := &CheckoutParams{
		KeyID:    intent.GatewayKeyID,
		OrderID:  intent.OrderID,
		Amount:   intent.Amount,
		Currency: intent.Currency,
	}
	result := &Result{
		State:         StateAwaitingGateway,
		Intent:        intent,
		GatewayParams: params,
	}
	if o.redirect != nil {
		result.CheckoutURL = o.redirect.CheckoutURL(*params)
	}
	return result, nil
}

// Complete relays the gateway proof to the backend for verification. The
// proof must belong to the intent initiated for this draft; CONFIRMED is
// reached only on an explicit backend acknowledgement.
func (o *orchestrator) Complete(ctx context.Context, draft checkout.Draft, paymentID string, auth Authorization) (*Result, error) {
	pendingKey := constants.PaymentPendingKey(draft.TripID, draft.FromStopID, draft.ToStopID)

	var pending pendingPayment
	if err := o.store.Get(ctx, pendingKey, &pending); err != nil {
		return &Result{State: StateFailed, FailureReason: ErrIntentMismatch.Error()},
			fmt.Errorf("%w: no payment was initiated for this draft", ErrIntentMismatch)
	}
	if pending.PaymentID != paymentID {
		return &Result{State: StateFailed, FailureReason: ErrIntentMismatch.Error()},
			fmt.Errorf("%w: expected %s", ErrIntentMismatch, pending.PaymentID)
	}

	o.log.LogPaymentTransition(ctx, paymentID, string(StateAwaitingGateway), string(StateVerifying))

	verifyResult, err := o.client.VerifyPayment(ctx, upstream.VerifyPaymentRequest{
		PaymentID:        paymentID,
		GatewayOrderID:   auth.OrderID,
		GatewayPaymentID: auth.PaymentID,
		GatewaySignature: auth.Signature,
	})

	// The intent is consumed either way; retrying means a fresh initiate
	_ = o.store.Delete(ctx, pendingKey)

	if err != nil || !verifyResult.Success {
		o.log.LogPaymentTransition(ctx, paymentID, string(StateVerifying), string(StateFailed))
		reason := "payment verification was not acknowledged"
		if err != nil {
			reason = err.Error()
		} else if verifyResult.Message != "" {
			reason = verifyResult.Message
		}
		o.publish(ctx, events.TypePaymentFailed, draft, paymentID, "", 0)
		if err != nil {
			return &Result{State: StateFailed, FailureReason: reason},
				fmt.Errorf("payment verification failed: %w", err)
		}
		return &Result{State: StateFailed, FailureReason: reason},
			fmt.Errorf("payment verification failed: %s", reason)
	}

	o.log.LogPaymentTransition(ctx, paymentID, string(StateVerifying), string(StateConfirmed))
	o.log.LogBookingConfirmed(ctx, verifyResult.BookingRef, draft.TripID, len(draft.Seats))

	o.finalizeConfirmed(ctx, draft, pending, verifyResult)

	return &Result{
		State:          StateConfirmed,
		BookingGroupID: verifyResult.BookingGroupID,
		BookingRef:     verifyResult.BookingRef,
	}, nil
}

// Cancel records a gateway cancellation or error. No verify call is made.
func (o *orchestrator) Cancel(ctx context.Context, draft checkout.Draft, paymentID, reason string) (*Result, error) {
	pendingKey := constants.PaymentPendingKey(draft.TripID, draft.FromStopID, draft.ToStopID)
	_ = o.store.Delete(ctx, pendingKey)

	o.log.LogPaymentTransition(ctx, paymentID, string(StateAwaitingGateway), string(StateCancelled))
	o.publish(ctx, events.TypePaymentCancelled, draft, paymentID, "", 0)

	if reason == "" {
		reason = ErrGatewayCancelled.Error()
	}
	return &Result{State: StateCancelled, FailureReason: reason}, nil
}

// Checkout runs the whole flow against an in-process gateway
func (o *orchestrator) Checkout(ctx context.Context, draft checkout.Draft, gateway Gateway) (*Result, error) {
	result, err := o.Initiate(ctx, draft)
	if err != nil {
		return result, err
	}

	auth, err := gateway.OpenCheckout(ctx, *result.GatewayParams)
	if err != nil {
		if errors.Is(err, ErrGatewayCancelled) {
			return o.Cancel(ctx, draft, result.Intent.PaymentID, err.Error())
		}
		cancelResult, _ := o.Cancel(ctx, draft, result.Intent.PaymentID, err.Error())
		cancelResult.State = StateFailed
		return cancelResult, fmt.Errorf("gateway checkout failed: %w", err)
	}

	return o.Complete(ctx, draft, result.Intent.PaymentID, *auth)
}

// PaymentPending reports an in-flight initiation for the draft identity
func (o *orchestrator) PaymentPending(ctx context.Context, tripID, fromStopID, toStopID string) bool {
	return o.store.Exists(ctx, constants.PaymentPendingKey(tripID, fromStopID, toStopID))
}

// finalizeConfirmed clears the now-stale seat backup, saves the receipt and
// publishes the lifecycle event. None of these can fail the confirmation;
// the booking is already verified server-side.
func (o *orchestrator) finalizeConfirmed(ctx context.Context, draft checkout.Draft, pending pendingPayment, verify *upstream.VerifyPaymentResult) {
	if err := o.carrier.ClearBackup(ctx); err != nil {
		o.log.WithError(err).Warn("failed to clear seat backup after confirmation")
	}

	if o.recorder != nil {
		seatNumbers := make([]string, 0, len(draft.Seats))
		for _, seat := range draft.Seats {
			seatNumbers = append(seatNumbers, seat.SeatNumber)
		}
		receipt := ConfirmedBooking{
			BookingRef:     verify.BookingRef,
			BookingGroupID: verify.BookingGroupID,
			PaymentID:      pending.PaymentID,
			TripID:         draft.TripID,
			FromStopID:     draft.FromStopID,
			ToStopID:       draft.ToStopID,
			SeatNumbers:    seatNumbers,
			SeatCount:      len(draft.Seats),
			Amount:         pending.Amount,
			Currency:       pending.Currency,
		}
		if err := o.recorder.SaveConfirmed(ctx, receipt); err != nil {
			o.log.WithError(err).Warn("failed to record confirmed booking")
		}
	}

	o.publish(ctx, events.TypeCheckoutConfirmed, draft, pending.PaymentID, verify.BookingRef, len(draft.Seats))
}

func (o *orchestrator) publish(ctx context.Context, eventType events.Type, draft checkout.Draft, paymentID, bookingRef string, seatCount int) {
	if o.producer == nil {
		return
	}
	event := events.BookingEvent{
		Type:       eventType,
		TripID:     draft.TripID,
		PaymentID:  paymentID,
		BookingRef: bookingRef,
		SeatCount:  seatCount,
	}
	if err := o.producer.Publish(ctx, event); err != nil {
		o.log.WithError(err).Warn("failed to publish booking event")
	}
}
