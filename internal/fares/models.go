package fares

// Breakdown is the computed fare for a draft: base fare, fixed percentage
// tax (rounded to whole currency units), fixed service fee, and their total.
type Breakdown struct {
	BaseFare   float64 `json:"baseFare"`
	Tax        float64 `json:"tax"`
	ServiceFee float64 `json:"serviceFee"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`

	// Display is advisory only and never authoritative for payment
	Display DisplayAmount `json:"display"`
}

// DisplayAmount is the secondary-currency presentation value, derived from a
// fixed conversion rate. It must never be sent to the backend as a charge
// amount.
type DisplayAmount struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// CouponState is the backend-validated coupon currently applied to a quote.
// The client stores the returned amounts verbatim; it is not authoritative
// for coupon logic.
type CouponState struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// Quote couples a fare breakdown with the optional active coupon. At most
// one coupon is active at a time; FinalAmount reflects the coupon when set,
// else the breakdown total.
type Quote struct {
	Breakdown   Breakdown    `json:"breakdown"`
	Coupon      *CouponState `json:"coupon,omitempty"`
	FinalAmount float64      `json:"finalAmount"`
}
