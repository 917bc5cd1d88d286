package ports

import (
	"context"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// DistanceCache fronts the routing provider with previously fetched legs.
// Cache misses are simply absent from GetMany's result; cache failures are
// logged by callers and never abort route computation.
type DistanceCache interface {
	// Fetch cached results for one origin and many destinations, keyed by
	// destination coordinate key.
	GetMany(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) (map[string]DistanceResult, error)
	// Store results for a single origin, keyed by destination coordinate key.
	PutMany(ctx context.Context, origin domain.Coordinates, results map[string]DistanceResult) error
}
