package services

import (
	"math"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Pricing parameters. Fees are in the marketplace currency, distances in
// kilometers, the courier speed in km/h.
var (
	baseFee           = decimal.RequireFromString("3.00")
	perKmRate         = decimal.RequireFromString("1.50")
	minimumFee        = decimal.RequireFromString("2.00")
	peakMultiplier    = decimal.RequireFromString("1.5")
	weatherMultiplier = decimal.RequireFromString("1.2")
	earningsShare     = decimal.RequireFromString("0.80")
)

const (
	preparationMinutes = 10
	courierSpeedKmh    = 20.0
	fallbackEtaMinutes = 45
)

// Quote is the pricing engine's output for one order: the delivery fee with
// the surcharges that went into it, and the delivery time estimate.
type Quote struct {
	Fee            kernel.Money
	PeakApplied    bool
	WeatherApplied bool
	EtaMinutes     int
}

// PricingEngine computes delivery fees and time estimates. Quotes are pure
// functions of their inputs: the same distance, time, and weather always
// produce the same quote, so callers can re-derive a quote for display
// without changing what was frozen on the order.
type PricingEngine interface {
	Quote(distanceKm *float64, staticFee kernel.Money, at time.Time, badWeather bool) Quote
	DriverEarnings(fee kernel.Money) kernel.Money
}

type pricingEngine struct{}

// NewPricingEngine creates the standard fee calculator.
func NewPricingEngine() PricingEngine {
	return pricingEngine{}
}

// Quote computes the delivery fee and ETA for an order.
//
// With a known distance the fee is base + per-km rate times distance, scaled
// by the peak multiplier during lunch and dinner rush and by the weather
// multiplier in bad weather, floored at the minimum fee, rounded half-up to
// 2 decimals. The ETA is a fixed preparation time plus travel at the assumed
// courier speed, rounded up to a whole minute.
//
// When the distance is nil (either endpoint was never geocoded) the
// restaurant's static fee is used as-is with a fixed fallback ETA, and no
// surcharges apply.
func (pricingEngine) Quote(distanceKm *float64, staticFee kernel.Money, at time.Time, badWeather bool) Quote {
	if distanceKm == nil {
		return Quote{
			Fee:        staticFee.Round2(),
			EtaMinutes: fallbackEtaMinutes,
		}
	}

	distance := decimal.NewFromFloat(*distanceKm)
	fee := baseFee.Add(perKmRate.Mul(distance))

	peak := IsPeakHour(at)
	if peak {
		fee = fee.Mul(peakMultiplier)
	}
	if badWeather {
		fee = fee.Mul(weatherMultiplier)
	}
	if fee.LessThan(minimumFee) {
		fee = minimumFee
	}

	travelMinutes := int(math.Ceil(*distanceKm / courierSpeedKmh * 60))

	return Quote{
		Fee:            kernel.NewMoneyFromDecimal(fee).Round2(),
		PeakApplied:    peak,
		WeatherApplied: badWeather,
		EtaMinutes:     preparationMinutes + travelMinutes,
	}
}

// DriverEarnings returns the driver's share of a delivery fee, rounded
// half-up to 2 decimals.
func (pricingEngine) DriverEarnings(fee kernel.Money) kernel.Money {
	return fee.Mul(earningsShare).Round2()
}

// IsPeakHour reports whether t falls in the lunch rush (11:00-12:59) or the
// dinner rush (17:00-19:59), by the wall clock of t's own location.
func IsPeakHour(t time.Time) bool {
	hour := t.Hour()
	return (hour >= 11 && hour < 13) || (hour >= 17 && hour < 20)
}
