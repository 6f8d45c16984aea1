package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{"valid_san_francisco", 37.7749, -122.4194, false},
		{"valid_boundaries", 90, 180, false},
		{"valid_negative_boundaries", -90, -180, false},
		{"latitude_too_high", 90.1, 0, true},
		{"latitude_too_low", -90.1, 0, true},
		{"longitude_too_high", 0, 180.1, true},
		{"longitude_too_low", 0, -180.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.latitude, p.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, p.Longitude(), 1e-9)
			require.NoError(t, p.Validate())
		})
	}
}

func TestGeoPoint_Validate_ZeroValue(t *testing.T) {
	var p kernel.GeoPoint
	require.Error(t, p.Validate())
}

func TestGeoPoint_DistanceKmTo(t *testing.T) {
	sf, err := kernel.NewGeoPoint(37.7749, -122.4194)
	require.NoError(t, err)
	oakland, err := kernel.NewGeoPoint(37.8044, -122.2712)
	require.NoError(t, err)

	t.Run("zero_distance_to_self", func(t *testing.T) {
		assert.InDelta(t, 0, sf.DistanceKmTo(sf), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, sf.DistanceKmTo(oakland), oakland.DistanceKmTo(sf), 1e-9)
	})

	t.Run("sf_to_oakland_about_13km", func(t *testing.T) {
		d := sf.DistanceKmTo(oakland)
		assert.Greater(t, d, 12.0)
		assert.Less(t, d, 14.0)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, sf.DistanceKmTo(oakland), sf.DistanceKmTo(oakland))
	})

	t.Run("one_degree_latitude_about_111km", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(1, 0)
		assert.InDelta(t, 111.2, a.DistanceKmTo(b), 0.5)
	})
}
