package fares

import (
	"context"
	"fmt"

	"busbook/internal/upstream"
)

// CouponService validates coupon codes against the backend and applies the
// returned amounts to a quote. All discount math happens server-side.
type CouponService interface {
	Apply(ctx context.Context, quote Quote, code, tripID string) (Quote, error)
	Remove(quote Quote) Quote
}

type couponService struct {
	client upstream.Client
}

// NewCouponService creates a coupon service backed by the booking backend
func NewCouponService(client upstream.Client) CouponService {
	return &couponService{client: client}
}

// Apply submits the code for validation against the quote's pre-coupon
// total. A coupon already active on the quote is cleared first, so the
// backend always validates against the undiscounted amount.
func (s *couponService) Apply(ctx context.Context, quote Quote, code, tripID string) (Quote, error) {
	if code == "" {
		return quote, fmt.Errorf("coupon code is required")
	}

	quote = s.Remove(quote)

	result, err := s.client.ApplyCoupon(ctx, upstream.ApplyCouponRequest{
		Code:        code,
		TripID:      tripID,
		TotalAmount: quote.Breakdown.Total,
	})
	if err != nil {
		return quote, fmt.Errorf("coupon validation failed: %w", err)
	}

	quote.Coupon = &CouponState{
		Code:           code,
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    result.FinalAmount,
	}
	quote.FinalAmount = result.FinalAmount
	return quote, nil
}

// Remove clears any active coupon and reverts the final amount to the
// pre-coupon total.
func (s *couponService) Remove(quote Quote) Quote {
	quote.Coupon = nil
	quote.FinalAmount = quote.Breakdown.Total
	return quote
}
