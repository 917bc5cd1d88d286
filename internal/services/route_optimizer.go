package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// RouteDeps are the collaborators for route optimization. Provider is the
// optional road-network source; Fallback produces great-circle estimates and
// must be infallible. A nil Provider means every plan is estimate-based.
type RouteDeps struct {
	Caregivers      ports.CaregiverRepository
	Clients         ports.ClientRepository
	Provider        ports.DistanceProvider
	Fallback        ports.DistanceProvider
	ProviderTimeout time.Duration
	Logger          *zap.Logger
}

// RouteRequest describes one caregiver's day of client visits.
// FixedOrder preserves the caller-supplied stop sequence (drag-and-drop
// reordering in the UI reduces to exactly this flag).
type RouteRequest struct {
	CaregiverID string
	Date        time.Time
	StartTime   domain.TimeOfDay
	Stops       []domain.StopRequest
	FixedOrder  bool
}

// OptimizeRoute computes a visiting order, per-stop arrival/departure
// estimates, and distance totals for a caregiver's day.
//
// Ordering uses a greedy nearest-neighbor walk from home: repeatedly visit
// the closest unvisited stop. It minimizes immediate travel at each step and
// does not attempt global optimization; for single-digit daily stop counts
// the O(n²) heuristic is adequate and deterministic.
//
// Road-network legs are preferred. If the provider is absent or any call
// fails, the whole plan transparently degrades to great-circle estimates and
// is marked EstimateBased; a usable approximation beats blocking the
// administrator.
func OptimizeRoute(ctx context.Context, deps RouteDeps, req RouteRequest) (*domain.RoutePlan, error) {
	if req.CaregiverID == "" {
		return nil, &domain.ValidationError{Field: "caregiver_id", Reason: "must be non-empty"}
	}
	if len(req.Stops) == 0 {
		return nil, &domain.ValidationError{Field: "stops", Reason: "must contain at least one stop"}
	}
	for i, s := range req.Stops {
		if s.ClientID == "" {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("stops[%d].client_id", i),
				Reason: "must be non-empty",
			}
		}
		if s.ServiceUnits < 1 {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("stops[%d].service_units", i),
				Reason: "must be at least 1 (15 minutes)",
			}
		}
		if s.FixedStart != nil && s.FixedEnd != nil && *s.FixedEnd <= *s.FixedStart {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("stops[%d].fixed_end", i),
				Reason: "fixed end must be after fixed start",
			}
		}
	}

	caregiver, err := deps.Caregivers.GetCaregiver(ctx, req.CaregiverID)
	if err != nil {
		return nil, fmt.Errorf("optimize route: get caregiver %s: %w", req.CaregiverID, err)
	}

	// Every participant must be geocoded before any distance work; missing
	// coordinates are a hard, named error rather than a silent zero.
	var missing []string
	if caregiver.Home == nil {
		missing = append(missing, fmt.Sprintf("caregiver %s (%s)", caregiver.ID, caregiver.Name))
	}

	stopClients := make([]*domain.Client, len(req.Stops))
	for i, s := range req.Stops {
		client, err := deps.Clients.GetClient(ctx, s.ClientID)
		if err != nil {
			return nil, fmt.Errorf("optimize route: get client %s: %w", s.ClientID, err)
		}
		if client.Location == nil {
			missing = append(missing, fmt.Sprintf("client %s (%s)", client.ID, client.Name))
		}
		stopClients[i] = client
	}
	if len(missing) > 0 {
		return nil, &domain.MissingGeodataError{Entities: missing}
	}

	home := *caregiver.Home
	positions := []domain.Coordinates{home}
	for _, c := range stopClients {
		positions = append(positions, *c.Location)
	}

	legs, estimateBased, err := gatherLegs(ctx, deps, positions)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	order := make([]int, len(req.Stops))
	if req.FixedOrder {
		for i := range order {
			order[i] = i
		}
	} else {
		order = nearestNeighborOrder(home, req.Stops, stopClients, legs)
	}

	// Walk the ordered stops from the route start time.
	date := domain.DateOnly(req.Date)
	current := req.StartTime.On(date)
	currentPos := home

	stops := make([]domain.RouteStop, 0, len(order))
	totalDistance := 0
	totalDrive := 0
	totalService := 0

	for _, idx := range order {
		stop := req.Stops[idx]
		client := stopClients[idx]
		// Co-located positions have no stored leg; the zero value is correct.
		leg := legs[currentPos.Key()+"|"+client.Location.Key()]

		arrival := current.Add(time.Duration(leg.DurationSeconds) * time.Second)
		serviceStart := arrival
		idle := 0

		if stop.FixedStart != nil {
			fixed := stop.FixedStart.On(date)
			if arrival.Before(fixed) {
				idle = int(fixed.Sub(arrival).Minutes())
				serviceStart = fixed
			}
		}

		serviceMinutes := stop.ServiceUnits * domain.MinutesPerUnit
		departure := serviceStart.Add(time.Duration(serviceMinutes) * time.Minute)
		if stop.FixedEnd != nil {
			// Caller-pinned window wins; drive/arrival stay recorded for mileage.
			departure = stop.FixedEnd.On(date)
		}

		stops = append(stops, domain.RouteStop{
			ClientID:       client.ID,
			ClientName:     client.Name,
			ServiceUnits:   stop.ServiceUnits,
			Arrival:        arrival,
			Departure:      departure,
			IdleMinutes:    idle,
			DistanceMeters: leg.DistanceMeters,
			DriveSeconds:   leg.DurationSeconds,
		})

		totalDistance += leg.DistanceMeters
		totalDrive += leg.DurationSeconds
		totalService += serviceMinutes
		current = departure
		currentPos = *client.Location
	}

	returnLeg := legs[currentPos.Key()+"|"+home.Key()]
	totalDistance += returnLeg.DistanceMeters
	totalDrive += returnLeg.DurationSeconds
	endOfDay := current.Add(time.Duration(returnLeg.DurationSeconds) * time.Second)

	return &domain.RoutePlan{
		CaregiverID:          caregiver.ID,
		Date:                 date,
		StartAt:              req.StartTime.On(date),
		Stops:                stops,
		ReturnDistanceMeters: returnLeg.DistanceMeters,
		ReturnDriveSeconds:   returnLeg.DurationSeconds,
		TotalDistanceMeters:  totalDistance,
		TotalDriveSeconds:    totalDrive,
		TotalServiceMinutes:  totalService,
		EndOfDay:             endOfDay,
		EstimateBased:        estimateBased,
	}, nil
}

// gatherLegs fetches distance results for every ordered pair of positions.
// Keys are "originKey|destKey". Falls back to the estimate provider when the
// road-network provider is absent or any lookup fails.
func gatherLegs(
	ctx context.Context,
	deps RouteDeps,
	positions []domain.Coordinates,
) (map[string]ports.DistanceResult, bool, error) {
	if deps.Fallback == nil {
		return nil, false, errors.New("gather legs: fallback provider must be configured")
	}

	if deps.Provider != nil {
		legs, err := fetchAllLegs(ctx, deps.Provider, deps.ProviderTimeout, positions)
		if err == nil {
			return legs, false, nil
		}
		// Absorbed per policy: degrade to estimates, never fail the route.
		deps.Logger.Warn("routing provider failed; using great-circle estimates",
			zap.Error(err))
	}

	legs, err := fetchAllLegs(ctx, deps.Fallback, 0, positions)
	if err != nil {
		return nil, false, fmt.Errorf("gather legs: estimate provider: %w", err)
	}
	return legs, true, nil
}

func fetchAllLegs(
	ctx context.Context,
	provider ports.DistanceProvider,
	timeout time.Duration,
	positions []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Deduplicate positions; co-located stops share legs.
	uniq := make([]domain.Coordinates, 0, len(positions))
	seen := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		uniq = append(uniq, p)
	}

	legs := make(map[string]ports.DistanceResult, len(uniq)*len(uniq))
	matrix, hasMatrix := provider.(ports.DistanceMatrixProvider)

	for _, origin := range uniq {
		targets := make([]domain.Coordinates, 0, len(uniq)-1)
		for _, t := range uniq {
			if t.Key() != origin.Key() {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}

		// Prefer batched lookups when supported to reduce external API calls.
		if hasMatrix {
			results, err := matrix.GetDistances(ctx, origin, targets)
			if err != nil {
				return nil, fmt.Errorf("fetch legs from %s: %w", origin.Key(), err)
			}
			for _, t := range targets {
				r, ok := results[t.Key()]
				if !ok {
					return nil, fmt.Errorf("fetch legs: missing result %s -> %s", origin.Key(), t.Key())
				}
				legs[origin.Key()+"|"+t.Key()] = r
			}
		} else {
			for _, t := range targets {
				r, err := provider.GetDistance(ctx, origin, t)
				if err != nil {
					return nil, fmt.Errorf("fetch legs %s -> %s: %w", origin.Key(), t.Key(), err)
				}
				legs[origin.Key()+"|"+t.Key()] = r
			}
		}
	}

	return legs, nil
}

// nearestNeighborOrder returns stop indexes ordered by repeatedly picking the
// unvisited stop closest to the current position, starting from home.
func nearestNeighborOrder(
	home domain.Coordinates,
	stops []domain.StopRequest,
	clients []*domain.Client,
	legs map[string]ports.DistanceResult,
) []int {
	remaining := make([]int, len(stops))
	for i := range stops {
		remaining[i] = i
	}

	order := make([]int, 0, len(stops))
	currentPos := home

	for len(remaining) > 0 {
		best := -1
		bestDist := math.MaxInt64

		// Select next stop by minimum distance (greedy step).
		for _, idx := range remaining {
			loc := *clients[idx].Location
			d := math.MaxInt64
			if loc.Key() == currentPos.Key() {
				d = 0
			} else if leg, ok := legs[currentPos.Key()+"|"+loc.Key()]; ok {
				d = leg.DistanceMeters
			}
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if d < bestDist || (d == bestDist && best >= 0 && clients[idx].ID < clients[best].ID) {
				bestDist = d
				best = idx
			}
		}

		order = append(order, best)
		currentPos = *clients[best].Location

		next := remaining[:0]
		for _, idx := range remaining {
			if idx != best {
				next = append(next, idx)
			}
		}
		remaining = next
	}

	return order
}
