package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

func TestHaversineProviderEstimates(t *testing.T) {
	p := NewHaversineProvider(48)

	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	dest := domain.Coordinates{Lat: 44.81, Lon: -91.50} // ~1.11 km due north

	r, err := p.GetDistance(context.Background(), origin, dest)
	require.NoError(t, err)

	assert.InDelta(t, 1112, r.DistanceMeters, 5)
	// 1.11 km at 48 km/h is about 83 seconds.
	assert.InDelta(t, 83, r.DurationSeconds, 3)
}

func TestHaversineProviderDefaultsSpeed(t *testing.T) {
	p := NewHaversineProvider(0)

	r, err := p.GetDistance(context.Background(),
		domain.Coordinates{Lat: 44.80, Lon: -91.50},
		domain.Coordinates{Lat: 44.81, Lon: -91.50})
	require.NoError(t, err)
	assert.Positive(t, r.DurationSeconds)
}

func TestHaversineProviderMatrix(t *testing.T) {
	p := NewHaversineProvider(48)

	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	dests := []domain.Coordinates{
		{Lat: 44.81, Lon: -91.49},
		{Lat: 44.79, Lon: -91.52},
	}

	results, err := p.GetDistances(context.Background(), origin, dests)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, d := range dests {
		single, err := p.GetDistance(context.Background(), origin, d)
		require.NoError(t, err)
		assert.Equal(t, single, results[d.Key()])
	}
}
