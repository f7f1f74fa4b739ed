package payments

import "busbook/internal/upstream"

// Result is the orchestrator's answer for one payment operation: the state
// reached, the intent in play, and on confirmation the booking references.
type Result struct {
	State          State                   `json:"state"`
	Intent         *upstream.PaymentIntent `json:"intent,omitempty"`
	CheckoutURL    string                  `json:"checkoutUrl,omitempty"`
	GatewayParams  *CheckoutParams         `json:"gatewayParams,omitempty"`
	BookingGroupID string                  `json:"bookingGroupId,omitempty"`
	BookingRef     string                  `json:"bookingRef,omitempty"`
	FailureReason  string                  `json:"failureReason,omitempty"`
}

// ConfirmedBooking is the receipt of a verified booking, handed to the
// recorder for the booking-history surface.
type ConfirmedBooking struct {
	BookingRef     string   `json:"bookingRef"`
	BookingGroupID string   `json:"bookingGroupId"`
	PaymentID      string   `json:"paymentId"`
	TripID         string   `json:"tripId"`
	FromStopID     string   `json:"fromStopId"`
	ToStopID       string   `json:"toStopId"`
	SeatNumbers    []string `json:"seatNumbers"`
	SeatCount      int      `json:"seatCount"`
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
}
