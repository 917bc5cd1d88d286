package distance

import (
	"context"
	"math"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// HaversineProvider estimates legs from great-circle distance and a fixed
// average driving speed. It is the always-available fallback when no road
// routing provider is configured or the provider fails; plans built from it
// are marked estimate-based.
type HaversineProvider struct {
	averageSpeedKmh float64
}

func NewHaversineProvider(averageSpeedKmh float64) *HaversineProvider {
	if averageSpeedKmh <= 0 {
		averageSpeedKmh = 48 // blended urban/rural assumption, ~30 mph
	}
	return &HaversineProvider{averageSpeedKmh: averageSpeedKmh}
}

func (p *HaversineProvider) GetDistance(
	_ context.Context,
	origin, destination domain.Coordinates,
) (ports.DistanceResult, error) {
	meters := domain.HaversineMeters(origin, destination)
	seconds := meters / (p.averageSpeedKmh * 1000 / 3600)

	return ports.DistanceResult{
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(seconds)),
	}, nil
}

func (p *HaversineProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, err := p.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, err
		}
		out[d.Key()] = r
	}
	return out, nil
}
