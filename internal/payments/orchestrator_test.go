package payments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"busbook/internal/checkout"
	"busbook/internal/events"
	"busbook/internal/seatmap"
	"busbook/internal/shared/config"
	"busbook/internal/upstream"
	"busbook/pkg/logger"
	"busbook/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	intent        *upstream.PaymentIntent
	initiateErr   error
	initiateCalls int

	verifyResult *upstream.VerifyPaymentResult
	verifyErr    error
	verifyCalls  int
	lastVerify   upstream.VerifyPaymentRequest
}

func (m *mockClient) GetTripSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*upstream.TripSeatMapResponse, error) {
	return nil, errors.New("not implemented")
}
func (m *mockClient) ApplyCoupon(ctx context.Context, req upstream.ApplyCouponRequest) (*upstream.CouponResult, error) {
	return nil, errors.New("not implemented")
}
func (m *mockClient) InitiatePayment(ctx context.Context, req upstream.InitiatePaymentRequest) (*upstream.PaymentIntent, error) {
	m.initiateCalls++
	return m.intent, m.initiateErr
}
func (m *mockClient) VerifyPayment(ctx context.Context, req upstream.VerifyPaymentRequest) (*upstream.VerifyPaymentResult, error) {
	m.verifyCalls++
	m.lastVerify = req
	return m.verifyResult, m.verifyErr
}
func (m *mockClient) DownloadTicket(ctx context.Context, bookingGroupID string) ([]byte, string, error) {
	return nil, "", errors.New("not implemented")
}

type mockRecorder struct {
	saved []ConfirmedBooking
	err   error
}

func (m *mockRecorder) SaveConfirmed(ctx context.Context, booking ConfirmedBooking) error {
	m.saved = append(m.saved, booking)
	return m.err
}

type capturingProducer struct {
	published []events.BookingEvent
}

func (p *capturingProducer) Publish(ctx context.Context, event events.BookingEvent) error {
	p.published = append(p.published, event)
	return nil
}
func (p *capturingProducer) Close() error { return nil }

type fixture struct {
	orchestrator Orchestrator
	client       *mockClient
	store        store.Service
	carrier      *checkout.Carrier
	recorder     *mockRecorder
	producer     *capturingProducer
}

func newFixture(client *mockClient) *fixture {
	st := store.NewMemory()
	carrier := checkout.NewCarrier(st, time.Hour, logger.GetDefault())
	recorder := &mockRecorder{}
	producer := &capturingProducer{}
	redirect := NewRedirectGateway(config.GatewayConfig{
		KeyID:           "key_test",
		CheckoutBaseURL: "https://checkout.gateway.example",
	})

	return &fixture{
		orchestrator: NewOrchestrator(client, st, carrier, recorder, producer, redirect, 5*time.Minute, logger.GetDefault()),
		client:       client,
		store:        st,
		carrier:      carrier,
		recorder:     recorder,
		producer:     producer,
	}
}

func completeDraft() checkout.Draft {
	return checkout.Draft{
		TripID:     "trip-1",
		FromStopID: "stop-1",
		ToStopID:   "stop-5",
		Seats: []seatmap.Seat{
			{ID: "a", SeatNumber: "L1"},
			{ID: "b", SeatNumber: "L2"},
		},
		BoardingPoint: &upstream.RoutePoint{ID: "bp-1"},
		DroppingPoint: &upstream.RoutePoint{ID: "dp-1"},
		Passengers: []checkout.Passenger{
			{SeatID: "a", Name: "Asha", Email: "asha@example.com"},
			{SeatID: "b", Name: "Binod", Email: "binod@example.com"},
		},
		PaymentMethod: "upi",
	}
}

func testIntent() *upstream.PaymentIntent {
	return &upstream.PaymentIntent{
		PaymentID:    "pay_1",
		OrderID:      "order_1",
		Amount:       1187,
		Currency:     "INR",
		GatewayKeyID: "key_test",
	}
}

func TestInitiateValidationFailsBeforeNetwork(t *testing.T) {
	f := newFixture(&mockClient{intent: testIntent()})

	draft := completeDraft()
	draft.PaymentMethod = ""

	result, err := f.orchestrator.Initiate(context.Background(), draft)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateFailed, result.State)
	assert.Zero(t, f.client.initiateCalls)
}

func TestInitiate(t *testing.T) {
	f := newFixture(&mockClient{intent: testIntent()})

	result, err := f.orchestrator.Initiate(context.Background(), completeDraft())
	require.NoError(t, err)

	assert.Equal(t, StateAwaitingGateway, result.State)
	require.NotNil(t, result.GatewayParams)
	assert.Equal(t, "order_1", result.GatewayParams.OrderID)
	// The gateway charges the intent's amount, never a client-side total
	assert.Equal(t, 1187.0, result.GatewayParams.Amount)
	assert.Contains(t, result.CheckoutURL, "order_id=order_1")

	assert.True(t, f.orchestrator.PaymentPending(context.Background(), "trip-1", "stop-1", "stop-5"))
}

func TestInitiateRejectsConcurrentAttempt(t *testing.T) {
	f := newFixture(&mockClient{intent: testIntent()})
	ctx := context.Background()

	_, err := f.orchestrator.Initiate(ctx, completeDraft())
	require.NoError(t, err)

	_, err = f.orchestrator.Initiate(ctx, completeDraft())
	assert.ErrorIs(t, err, checkout.ErrPaymentInProgress)
	assert.Equal(t, 1, f.client.initiateCalls)
}

func TestInitiateUnreachableBackend(t *testing.T) {
	f := newFixture(&mockClient{initiateErr: fmt.Errorf("%w: connection refused", upstream.ErrUnreachable)})

	result, err := f.orchestrator.Initiate(context.Background(), completeDraft())
	assert.ErrorIs(t, err, ErrOutcomeUnknown)
	assert.Equal(t, StateFailed, result.State)
}

func TestComplete(t *testing.T) {
	f := newFixture(&mockClient{
		intent: testIntent(),
		verifyResult: &upstream.VerifyPaymentResult{
			Success:        true,
			BookingGroupID: "bg_1",
			BookingRef:     "BR-1001",
		},
	})
	ctx := context.Background()
	draft := completeDraft()

	require.NoError(t, f.carrier.BackupSeats(ctx, draft))

	_, err := f.orchestrator.Initiate(ctx, draft)
	require.NoError(t, err)

	result, err := f.orchestrator.Complete(ctx, draft, "pay_1", Authorization{
		OrderID: "order_1", PaymentID: "gw_pay_1", Signature: "sig",
	})
	require.NoError(t, err)

	assert.Equal(t, StateConfirmed, result.State)
	assert.Equal(t, "BR-1001", result.BookingRef)
	assert.Equal(t, "gw_pay_1", f.client.lastVerify.GatewayPaymentID)

	// Receipt carries the intent's amounts and the draft's seats
	require.Len(t, f.recorder.saved, 1)
	receipt := f.recorder.saved[0]
	assert.Equal(t, "BR-1001", receipt.BookingRef)
	assert.Equal(t, 1187.0, receipt.Amount)
	assert.Equal(t, "INR", receipt.Currency)
	assert.Equal(t, []string{"L1", "L2"}, receipt.SeatNumbers)

	// The intent is consumed and the seat backup cleared
	assert.False(t, f.orchestrator.PaymentPending(ctx, "trip-1", "stop-1", "stop-5"))
	_, err = f.carrier.EnsureSeats(ctx, checkout.Draft{TripID: "trip-1", FromStopID: "stop-1", ToStopID: "stop-5"})
	assert.ErrorIs(t, err, checkout.ErrDraftUnrecoverable)

	require.Len(t, f.producer.published, 1)
	assert.Equal(t, events.TypeCheckoutConfirmed, f.producer.published[0].Type)
}

func TestCompleteWithoutInitiate(t *testing.T) {
	f := newFixture(&mockClient{})

	_, err := f.orchestrator.Complete(context.Background(), completeDraft(), "pay_1", Authorization{})
	assert.ErrorIs(t, err, ErrIntentMismatch)
	assert.Zero(t, f.client.verifyCalls)
}

func TestCompleteRejectsForeignProof(t *testing.T) {
	f := newFixture(&mockClient{intent: testIntent()})
	ctx := context.Background()

	_, err := f.orchestrator.Initiate(ctx, completeDraft())
	require.NoError(t, err)

	_, err = f.orchestrator.Complete(ctx, completeDraft(), "pay_other", Authorization{})
	assert.ErrorIs(t, err, ErrIntentMismatch)
	assert.Zero(t, f.client.verifyCalls)
}

func TestCompleteVerificationNotAcknowledged(t *testing.T) {
	f := newFixture(&mockClient{
		intent:       testIntent(),
		verifyResult: &upstream.VerifyPaymentResult{Success: false, Message: "signature mismatch"},
	})
	ctx := context.Background()

	_, err := f.orchestrator.Initiate(ctx, completeDraft())
	require.NoError(t, err)

	result, err := f.orchestrator.Complete(ctx, completeDraft(), "pay_1", Authorization{})
	require.Error(t, err)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, "signature mismatch", result.FailureReason)
	assert.Empty(t, f.recorder.saved)

	// Retrying means a fresh intent, never a resend of the stale proof
	assert.False(t, f.orchestrator.PaymentPending(ctx, "trip-1", "stop-1", "stop-5"))

	require.Len(t, f.producer.published, 1)
	assert.Equal(t, events.TypePaymentFailed, f.producer.published[0].Type)
}

func TestCancelSkipsVerification(t *testing.T) {
	f := newFixture(&mockClient{intent: testIntent()})
	ctx := context.Background()

	_, err := f.orchestrator.Initiate(ctx, completeDraft())
	require.NoError(t, err)

	result, err := f.orchestrator.Cancel(ctx, completeDraft(), "pay_1", "user dismissed checkout")
	require.NoError(t, err)

	assert.Equal(t, StateCancelled, result.State)
	assert.Zero(t, f.client.verifyCalls)
	assert.False(t, f.orchestrator.PaymentPending(ctx, "trip-1", "stop-1", "stop-5"))

	require.Len(t, f.producer.published, 1)
	assert.Equal(t, events.TypePaymentCancelled, f.producer.published[0].Type)
}

type scriptedGateway struct {
	auth *Authorization
	err  error
}

func (g *scriptedGateway) OpenCheckout(ctx context.Context, params CheckoutParams) (*Authorization, error) {
	return g.auth, g.err
}

func TestCheckoutFlowConfirmed(t *testing.T) {
	f := newFixture(&mockClient{
		intent:       testIntent(),
		verifyResult: &upstream.VerifyPaymentResult{Success: true, BookingRef: "BR-1001"},
	})

	gateway := &scriptedGateway{auth: &Authorization{OrderID: "order_1", PaymentID: "gw_pay_1", Signature: "sig"}}
	result, err := f.orchestrator.Checkout(context.Background(), completeDraft(), gateway)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, result.State)
}

func TestCheckoutFlowCancelled(t *testing.T) {
	f := newFixture(&mockClient{intent: testIntent()})

	gateway := &scriptedGateway{err: ErrGatewayCancelled}
	result, err := f.orchestrator.Checkout(context.Background(), completeDraft(), gateway)
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, result.State)
	assert.Zero(t, f.client.verifyCalls)
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateConfirmed.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.False(t, StateAwaitingGateway.Terminal())
	assert.False(t, StateVerifying.Terminal())
}
