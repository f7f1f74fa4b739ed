package payments

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"busbook/internal/shared/config"
)

// ErrGatewayCancelled signals that the user abandoned the gateway checkout.
// No verify call may follow a cancellation.
var ErrGatewayCancelled = errors.New("payment cancelled at gateway")

// CheckoutParams hands the gateway everything it needs to collect the
// charge. Amount and order reference come from the backend-issued intent;
// a client-computed total is never passed here.
type CheckoutParams struct {
	KeyID       string  `json:"keyId"`
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

// Authorization is the proof issued by the gateway after a successful
// charge. The client only relays it for backend verification; it has no
// capability to produce a valid proof itself.
type Authorization struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// Gateway is the external payment capability: open a checkout for the
// intent's amount and come back with either an authorization proof or a
// cancellation.
type Gateway interface {
	OpenCheckout(ctx context.Context, params CheckoutParams) (*Authorization, error)
}

// RedirectGateway builds hosted-checkout URLs for the redirect flow. The
// UI's gateway SDK (or the hosted page) collects the charge and posts the
// resulting proof back through the complete endpoint.
type RedirectGateway struct {
	cfg config.GatewayConfig
}

// NewRedirectGateway creates a hosted-checkout gateway handle
func NewRedirectGateway(cfg config.GatewayConfig) *RedirectGateway {
	return &RedirectGateway{cfg: cfg}
}

// CheckoutURL builds the hosted checkout page URL for an intent
func (g *RedirectGateway) CheckoutURL(params CheckoutParams) string {
	q := url.Values{}
	q.Set("key_id", g.cfg.KeyID)
	q.Set("order_id", params.OrderID)
	q.Set("amount", fmt.Sprintf("%.2f", params.Amount))
	q.Set("currency", params.Currency)
	return g.cfg.CheckoutBaseURL + "/checkout?" + q.Encode()
}
