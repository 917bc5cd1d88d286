package distance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

type memoryCache struct {
	entries map[string]ports.DistanceResult
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]ports.DistanceResult)}
}

func (c *memoryCache) GetMany(_ context.Context, origin domain.Coordinates, dests []domain.Coordinates) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult)
	for _, d := range dests {
		if r, ok := c.entries[origin.Key()+"|"+d.Key()]; ok {
			out[d.Key()] = r
		}
	}
	return out, nil
}

func (c *memoryCache) PutMany(_ context.Context, origin domain.Coordinates, results map[string]ports.DistanceResult) error {
	for k, r := range results {
		c.entries[origin.Key()+"|"+k] = r
	}
	return nil
}

func f64(v float64) *float64 { return &v }

func newTestProvider(t *testing.T, handler http.HandlerFunc, cache ports.DistanceCache) *ORSDistanceProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewORSDistanceProvider("test-key", cache, zap.NewNop())
	require.NoError(t, err)
	p.baseURL = srv.URL
	return p
}

func TestORSGetDistancesMatrixRow(t *testing.T) {
	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	destA := domain.Coordinates{Lat: 44.81, Lon: -91.49}
	destB := domain.Coordinates{Lat: 44.79, Lon: -91.52}

	var calls int
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v2/matrix/driving-car", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var req matrixRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int{0}, req.Sources)
		assert.Len(t, req.Locations, 3)

		_ = json.NewEncoder(w).Encode(matrixResponse{
			Distances: [][]*float64{{f64(2000.4), f64(3500.6)}},
			Durations: [][]*float64{{f64(240.2), f64(400.1)}},
		})
	}, nil)

	got, err := p.GetDistances(context.Background(), origin, []domain.Coordinates{destA, destB})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 2000, DurationSeconds: 240}, got[destA.Key()])
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 3501, DurationSeconds: 400}, got[destB.Key()])
}

func TestORSGetDistancesSkipsOriginAndDuplicates(t *testing.T) {
	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	dest := domain.Coordinates{Lat: 44.81, Lon: -91.49}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var req matrixRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Origin plus exactly one deduplicated destination.
		assert.Len(t, req.Locations, 2)

		_ = json.NewEncoder(w).Encode(matrixResponse{
			Distances: [][]*float64{{f64(2000)}},
			Durations: [][]*float64{{f64(240)}},
		})
	}, nil)

	got, err := p.GetDistances(context.Background(), origin,
		[]domain.Coordinates{origin, dest, dest})

	require.NoError(t, err)
	require.Len(t, got, 1)
	_, ok := got[origin.Key()]
	assert.False(t, ok)
}

func TestORSGetDistancesCacheHitSkipsHTTP(t *testing.T) {
	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	dest := domain.Coordinates{Lat: 44.81, Lon: -91.49}

	cache := newMemoryCache()
	require.NoError(t, cache.PutMany(context.Background(), origin, map[string]ports.DistanceResult{
		dest.Key(): {DistanceMeters: 1234, DurationSeconds: 99},
	}))

	var calls int
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, cache)

	got, err := p.GetDistance(context.Background(), origin, dest)

	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 1234, DurationSeconds: 99}, got)
}

func TestORSGetDistancesWritesThroughCache(t *testing.T) {
	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	dest := domain.Coordinates{Lat: 44.81, Lon: -91.49}

	cache := newMemoryCache()
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(matrixResponse{
			Distances: [][]*float64{{f64(2000)}},
			Durations: [][]*float64{{f64(240)}},
		})
	}, cache)

	_, err := p.GetDistance(context.Background(), origin, dest)
	require.NoError(t, err)

	cached, err := cache.GetMany(context.Background(), origin, []domain.Coordinates{dest})
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 2000, DurationSeconds: 240}, cached[dest.Key()])
}

func TestORSUpstreamFailureIsSentinel(t *testing.T) {
	origin := domain.Coordinates{Lat: 44.80, Lon: -91.50}
	dest := domain.Coordinates{Lat: 44.81, Lon: -91.49}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}, nil)

	_, err := p.GetDistance(context.Background(), origin, dest)

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
