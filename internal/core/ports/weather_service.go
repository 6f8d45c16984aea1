package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// WeatherConditions is the outcome of a weather lookup at order time.
type WeatherConditions struct {
	// Bad reports whether conditions are severe enough to surcharge delivery.
	Bad bool
	// Label is the human-readable condition, e.g. "CLEAR" or "HEAVY_RAIN".
	Label string
}

// WeatherService resolves current weather at a point for pricing.
// Implementations must not fail an order over a weather lookup; when the
// source is unreachable they return clear conditions and an UpstreamFailure
// the caller is free to log and ignore.
type WeatherService interface {
	Current(ctx context.Context, point kernel.GeoPoint) (WeatherConditions, error)
}
