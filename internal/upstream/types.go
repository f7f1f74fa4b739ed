package upstream

// Request/response contracts for the remote booking backend. These mirror the
// wire shapes exactly; everything downstream works on normalized models built
// from them at the seatmap/checkout boundaries.

// RawSeat is a seat record as reported by the backend. Coordinates may be
// 0- or 1-based depending on the operator feed; spans and availability are
// frequently omitted.
type RawSeat struct {
	ID          string `json:"id"`
	Deck        string `json:"deck"`
	Type        string `json:"type"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	RowSpan     int    `json:"rowSpan,omitempty"`
	ColumnSpan  int    `json:"columnSpan,omitempty"`
	SeatNumber  string `json:"seatNumber"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// SeatGroups carries the per-deck seat arrays
type SeatGroups struct {
	LowerDeck      []RawSeat `json:"lowerDeck"`
	UpperDeck      []RawSeat `json:"upperDeck"`
	AvailableCount int       `json:"availableCount"`
}

// StopFare is a route stop with optional cumulative per-seat-type pricing.
// Rates accumulate along the route; the fare between two stops is the
// absolute difference of their cumulative rates.
type StopFare struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	SeatTypeRates map[string]float64 `json:"seatTypeRates,omitempty"`
}

// RoutePoint is a boarding or dropping point on the route
type RoutePoint struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Time    string `json:"time,omitempty"`
}

// RouteInfo describes the trip route between the queried stops
type RouteInfo struct {
	FromStop       StopFare     `json:"fromStop"`
	ToStop         StopFare     `json:"toStop"`
	BoardingPoints []RoutePoint `json:"boardingPoints"`
	DroppingPoints []RoutePoint `json:"droppingPoints"`
	SeatRate       float64      `json:"seatRate,omitempty"`
}

// BusInfo carries vehicle metadata. Grid size is optional and, when present,
// disambiguates the seat coordinate origin.
type BusInfo struct {
	Name        string `json:"name,omitempty"`
	GridRows    *int   `json:"gridRows,omitempty"`
	GridColumns *int   `json:"gridColumns,omitempty"`
}

// TripSeatMapResponse is the seat/bus info payload for (tripId, fromStopId, toStopId)
type TripSeatMapResponse struct {
	Seats SeatGroups `json:"seats"`
	Route RouteInfo  `json:"route"`
	Bus   BusInfo    `json:"bus"`
}

// ApplyCouponRequest submits a coupon code for backend validation
type ApplyCouponRequest struct {
	Code        string  `json:"code"`
	TripID      string  `json:"tripId"`
	TotalAmount float64 `json:"totalAmount"`
}

// CouponResult is the backend's coupon decision. The client never computes
// the discount itself.
type CouponResult struct {
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// PassengerRecord is one passenger tied to a selected seat
type PassengerRecord struct {
	SeatID string `json:"seatId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// InitiatePaymentRequest creates a payment intent for a completed draft
type InitiatePaymentRequest struct {
	TripID          string            `json:"tripId"`
	FromStopID      string            `json:"fromStopId"`
	ToStopID        string            `json:"toStopId"`
	SeatIDs         []string          `json:"seatIds"`
	Passengers      []PassengerRecord `json:"passengers"`
	PaymentMethod   string            `json:"paymentMethod"`
	BoardingPointID string            `json:"boardingPointId"`
	DroppingPointID string            `json:"droppingPointId"`
	CouponCode      string            `json:"couponCode,omitempty"`
}

// PaymentIntent is the backend-issued authorization to charge a specific
// amount. The amount here is authoritative; client-side totals are display only.
type PaymentIntent struct {
	PaymentID    string  `json:"paymentId"`
	OrderID      string  `json:"orderId"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	GatewayKeyID string  `json:"gatewayKeyId"`
}

// VerifyPaymentRequest relays the gateway-issued proof for backend verification
type VerifyPaymentRequest struct {
	PaymentID        string `json:"paymentId"`
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	GatewaySignature string `json:"gatewaySignature"`
}

// VerifyPaymentResult is the backend's verification acknowledgement
type VerifyPaymentResult struct {
	Success        bool   `json:"success"`
	BookingGroupID string `json:"bookingGroupId,omitempty"`
	BookingRef     string `json:"bookingRef,omitempty"`
	Message        string `json:"message,omitempty"`
}
