package fares

import (
	"testing"

	"busbook/internal/seatmap"
	"busbook/internal/shared/config"
	"busbook/internal/upstream"

	"github.com/stretchr/testify/assert"
)

func testCalculator() Calculator {
	return NewCalculator(config.FareConfig{
		TaxRatePercent:  12,
		ServiceFee:      22,
		Currency:        "INR",
		DisplayCurrency: "USD",
		DisplayRate:     0.012,
	})
}

func flatRateRoute(rate float64) upstream.RouteInfo {
	return upstream.RouteInfo{SeatRate: rate}
}

func TestQuoteFlatRate(t *testing.T) {
	seats := []seatmap.Seat{
		{ID: "a", Type: seatmap.SeatTypeSeater},
		{ID: "b", Type: seatmap.SeatTypeSeater},
		{ID: "c", Type: seatmap.SeatTypeSleeper},
	}

	quote := testCalculator().Quote(seats, flatRateRoute(520))

	assert.Equal(t, 1560.0, quote.Breakdown.BaseFare)
	assert.Equal(t, 187.0, quote.Breakdown.Tax)
	assert.Equal(t, 22.0, quote.Breakdown.ServiceFee)
	assert.Equal(t, 1769.0, quote.Breakdown.Total)
	assert.Equal(t, 1769.0, quote.FinalAmount)
	assert.Equal(t, "INR", quote.Breakdown.Currency)
	assert.Nil(t, quote.Coupon)
}

func TestQuoteDisplayConversion(t *testing.T) {
	seats := []seatmap.Seat{{ID: "a", Type: seatmap.SeatTypeSeater}}

	quote := testCalculator().Quote(seats, flatRateRoute(520))

	// 520 + 62 tax + 22 fee = 604; 604 * 0.012 = 7.248 -> 7.25
	assert.Equal(t, 604.0, quote.Breakdown.Total)
	assert.Equal(t, "USD", quote.Breakdown.Display.Currency)
	assert.Equal(t, 0.012, quote.Breakdown.Display.Rate)
	assert.Equal(t, 7.25, quote.Breakdown.Display.Amount)
}

func TestQuoteCumulativeStopRates(t *testing.T) {
	seats := []seatmap.Seat{
		{ID: "a", Type: seatmap.SeatTypeSeater},
		{ID: "b", Type: seatmap.SeatTypeSleeper},
	}
	route := upstream.RouteInfo{
		FromStop: upstream.StopFare{
			ID:            "stop-1",
			SeatTypeRates: map[string]float64{"SEATER": 100, "SLEEPER": 150},
		},
		ToStop: upstream.StopFare{
			ID:            "stop-5",
			SeatTypeRates: map[string]float64{"SEATER": 620, "SLEEPER": 950},
		},
		SeatRate: 999,
	}

	quote := testCalculator().Quote(seats, route)

	// (620-100) + (950-150) = 1320; flat rate is ignored
	assert.Equal(t, 1320.0, quote.Breakdown.BaseFare)
}

func TestQuoteStopRatesDirectionAgnostic(t *testing.T) {
	seats := []seatmap.Seat{{ID: "a", Type: seatmap.SeatTypeSeater}}
	route := upstream.RouteInfo{
		FromStop: upstream.StopFare{SeatTypeRates: map[string]float64{"SEATER": 620}},
		ToStop:   upstream.StopFare{SeatTypeRates: map[string]float64{"SEATER": 100}},
	}

	quote := testCalculator().Quote(seats, route)
	assert.Equal(t, 520.0, quote.Breakdown.BaseFare)
}

func TestQuoteMissingTypeRateFallsBackToFlatRate(t *testing.T) {
	seats := []seatmap.Seat{{ID: "a", Type: seatmap.SeatTypeSemiSleeper}}
	route := upstream.RouteInfo{
		FromStop: upstream.StopFare{SeatTypeRates: map[string]float64{"SEATER": 100}},
		ToStop:   upstream.StopFare{SeatTypeRates: map[string]float64{"SEATER": 620}},
		SeatRate: 450,
	}

	quote := testCalculator().Quote(seats, route)
	assert.Equal(t, 450.0, quote.Breakdown.BaseFare)
}
