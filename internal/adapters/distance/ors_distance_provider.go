package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/platform/obs"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// ORSDistanceProvider implements DistanceProvider using OpenRouteService.
//
// It coordinates:
//   - Persistent distance caching (optional)
//   - External matrix API calls with retry/backoff
//
// Record-store entities arrive already geocoded, so the provider works in
// coordinates only. The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	cache   ports.DistanceCache
	logger  *zap.Logger
}

func NewORSDistanceProvider(apiKey string, cache ports.DistanceCache, logger *zap.Logger) (*ORSDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSDistanceProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
		cache:   cache,
		logger:  logger,
	}, nil
}

// Delegate to the batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (ports.DistanceResult, error) {
	results, err := o.GetDistances(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distances %s -> %s: %w",
			origin.Key(), destination.Key(), err,
		)
	}

	result, ok := results[destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %s -> %s", origin.Key(), destination.Key())
	}

	return result, nil
}

// Compute distances from a single origin to many destinations.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, o.logger, "ors.GetDistances")(&err)

	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]domain.Coordinates, 0, len(destinations))
	for _, d := range destinations {
		if d.Key() == origin.Key() {
			continue
		}
		if _, ok := seen[d.Key()]; ok {
			continue
		}
		seen[d.Key()] = struct{}{}
		destList = append(destList, d)
	}

	if len(destList) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	hits := make(map[string]ports.DistanceResult)
	// Check the persistent cache before issuing external API calls. Cache
	// failures only cost a provider round-trip.
	if o.cache != nil {
		cached, err := o.cache.GetMany(ctx, origin, destList)
		if err != nil {
			o.logger.Warn("distance cache read failed", zap.Error(err))
		} else {
			hits = cached
		}
	}

	misses := make([]domain.Coordinates, 0, len(destList))
	for _, d := range destList {
		if _, ok := hits[d.Key()]; !ok {
			misses = append(misses, d)
		}
	}

	if len(misses) == 0 {
		return hits, nil
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, origin, misses)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	for _, d := range misses {
		if _, ok := fetched[d.Key()]; !ok {
			return nil, fmt.Errorf("ORS matrix service did not return destination %s", d.Key())
		}
	}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, origin, fetched); err != nil {
			o.logger.Warn("distance cache write failed", zap.Error(err))
		}
	}

	out := make(map[string]ports.DistanceResult, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}

	return out, nil
}
