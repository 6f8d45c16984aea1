// Package weathersim provides a simulated weather source. Conditions are
// drawn from a seeded random generator, so runs are reproducible under a
// fixed seed while still exercising the bad-weather pricing path.
package weathersim

import (
	"context"
	"math/rand"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// badWeatherChance is the probability any lookup reports conditions that
// trigger the weather surcharge.
const badWeatherChance = 0.15

var clearConditions = []string{"CLEAR", "PARTLY_CLOUDY", "OVERCAST"}

var badConditions = []string{"HEAVY_RAIN", "THUNDERSTORM", "SNOW"}

// Service implements WeatherService with simulated conditions.
type Service struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a simulated weather service with the given seed.
func NewService(seed int64) *Service {
	return &Service{rng: rand.New(rand.NewSource(seed))}
}

// Current reports simulated weather at the given point. The location is
// accepted for interface compatibility; conditions do not vary by geography.
func (s *Service) Current(_ context.Context, _ kernel.GeoPoint) (ports.WeatherConditions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < badWeatherChance {
		return ports.WeatherConditions{
			Bad:   true,
			Label: badConditions[s.rng.Intn(len(badConditions))],
		}, nil
	}

	return ports.WeatherConditions{
		Bad:   false,
		Label: clearConditions[s.rng.Intn(len(clearConditions))],
	}, nil
}
