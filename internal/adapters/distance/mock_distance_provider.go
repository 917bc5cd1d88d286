package distance

import (
	"context"
	"fmt"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockDistanceProvider serves fixed pairs in tests. Fail makes every lookup
// error, for exercising the estimate fallback.
type MockDistanceProvider struct {
	m    map[string]ports.DistanceResult
	Fail bool
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From.Key()+"|"+p.To.Key()] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	if p.Fail {
		return ports.DistanceResult{}, domain.ErrUpstreamUnavailable
	}

	r, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %s -> %s", origin.Key(), destination.Key())
	}

	return r, nil
}
