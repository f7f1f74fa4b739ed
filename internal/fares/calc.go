package fares

import (
	"math"

	"busbook/internal/seatmap"
	"busbook/internal/shared/config"
	"busbook/internal/upstream"
)

// Calculator derives fare breakdowns from fixed configured parameters
type Calculator struct {
	taxRatePercent  float64
	serviceFee      float64
	currency        string
	displayCurrency string
	displayRate     float64
}

// NewCalculator creates a calculator from the fare configuration
func NewCalculator(cfg config.FareConfig) Calculator {
	return Calculator{
		taxRatePercent:  cfg.TaxRatePercent,
		serviceFee:      cfg.ServiceFee,
		currency:        cfg.Currency,
		displayCurrency: cfg.DisplayCurrency,
		displayRate:     cfg.DisplayRate,
	}
}

// Quote computes the fare for the selected seats on a route. When the route
// carries cumulative per-seat-type rates for both stops, each seat is priced
// by the absolute difference between them (stops may be encoded in either
// direction); otherwise every seat costs the route's flat per-seat rate.
func (c Calculator) Quote(seats []seatmap.Seat, route upstream.RouteInfo) Quote {
	baseFare := 0.0
	for _, seat := range seats {
		baseFare += c.seatFare(seat, route)
	}

	tax := math.Round(baseFare * c.taxRatePercent / 100)
	total := baseFare + tax + c.serviceFee

	breakdown := Breakdown{
		BaseFare:   baseFare,
		Tax:        tax,
		ServiceFee: c.serviceFee,
		Total:      total,
		Currency:   c.currency,
		Display: DisplayAmount{
			Currency: c.displayCurrency,
			Rate:     c.displayRate,
			Amount:   roundCents(total * c.displayRate),
		},
	}

	return Quote{
		Breakdown:   breakdown,
		FinalAmount: total,
	}
}

func (c Calculator) seatFare(seat seatmap.Seat, route upstream.RouteInfo) float64 {
	fromRate, fromOK := route.FromStop.SeatTypeRates[string(seat.Type)]
	toRate, toOK := route.ToStop.SeatTypeRates[string(seat.Type)]
	if fromOK && toOK {
		return math.Abs(toRate - fromRate)
	}
	return route.SeatRate
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
