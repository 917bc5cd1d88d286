package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// RankWeights is the tunable scoring policy for caregiver suggestions.
// Weights are named configuration rather than inline constants so changes
// are documented and the algorithm stays deterministic and testable.
type RankWeights struct {
	// MaxDistancePoints is awarded at zero distance, falling linearly to
	// zero at DistanceFalloffKm.
	MaxDistancePoints float64
	DistanceFalloffKm float64
	// MaxHeadroomPoints scales with remaining weekly-hours headroom; zero
	// headroom floors the contribution.
	MaxHeadroomPoints float64
	// MaxContinuityPoints rewards prior visits with the same client, with
	// diminishing returns.
	MaxContinuityPoints float64
	ConflictPenalty     float64
	OverHoursPenalty    float64
}

// DefaultRankWeights reflect the documented starting policy: distance 40,
// headroom 30, continuity 20, conflict -25, over-hours -15, on a 0-100 scale.
// The 25 km falloff suits a rural service area.
func DefaultRankWeights() RankWeights {
	return RankWeights{
		MaxDistancePoints:   40,
		DistanceFalloffKm:   25,
		MaxHeadroomPoints:   30,
		MaxContinuityPoints: 20,
		ConflictPenalty:     25,
		OverHoursPenalty:    15,
	}
}

// RankedCaregiver is one scored suggestion for a visit slot.
type RankedCaregiver struct {
	CaregiverID string
	Name        string
	Score       float64
	// DistanceKm is nil when either party lacks coordinates.
	DistanceKm  *float64
	WeeklyHours float64
	Conflict    bool
	CertGaps    []string
	OverHours   bool
}

// SuggestionResult carries the ranked candidates plus a reduced-confidence
// flag set when the client has no coordinates and distance scoring was
// neutralized.
type SuggestionResult struct {
	Candidates        []RankedCaregiver
	ReducedConfidence bool
}

// Trailing window for the continuity bonus.
const continuityLookbackDays = 90

// Candidates are scored concurrently; bound the repository fan-out.
const rankingConcurrency = 8

// SuggestCaregivers scores every active caregiver for a client visit slot
// and returns them sorted descending by score.
//
// Hard gates (candidate excluded): weekly availability does not cover the
// window, or a blackout covers the date. Soft signals (candidate kept, score
// reduced or annotated): certification gaps, schedule conflicts, going over
// max weekly hours. Administrators may intentionally double-book pending
// reassignment, so a conflict must stay choosable.
func SuggestCaregivers(
	ctx context.Context,
	caregivers ports.CaregiverRepository,
	clients ports.ClientRepository,
	shifts ports.ShiftRepository,
	logger *zap.Logger,
	weights RankWeights,
	clientID string,
	date time.Time,
	start, end domain.TimeOfDay,
) (*SuggestionResult, error) {
	if clientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "must be non-empty"}
	}
	if end <= start {
		return nil, &domain.ValidationError{
			Field:  "end",
			Reason: fmt.Sprintf("end %s must be after start %s", end, start),
		}
	}

	client, err := clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("suggest caregivers: get client %s: %w", clientID, err)
	}

	candidates, err := caregivers.ListActiveCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest caregivers: list caregivers: %w", err)
	}

	reducedConfidence := client.Location == nil
	if reducedConfidence {
		logger.Warn("client has no coordinates; distance scoring neutralized",
			zap.String("client_id", clientID))
	}

	type scored struct {
		ranked *RankedCaregiver
		err    error
	}

	sem := make(chan struct{}, rankingConcurrency)
	results := make(chan scored, len(candidates))
	var wg sync.WaitGroup

	for _, cg := range candidates {
		if !cg.AvailableFor(date, start, end) || cg.BlackedOut(date) {
			continue
		}

		wg.Add(1)
		go func(cg *domain.Caregiver) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			r, err := scoreCaregiver(ctx, shifts, weights, cg, client, date, start, end)
			results <- scored{ranked: r, err: err}
		}(cg)
	}

	wg.Wait()
	close(results)

	ranked := make([]RankedCaregiver, 0, len(candidates))
	for res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("suggest caregivers: %w", res.err)
		}
		ranked = append(ranked, *res.ranked)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		// Tie-breaker ensures deterministic ordering when scores are equal.
		return ranked[i].CaregiverID < ranked[j].CaregiverID
	})

	return &SuggestionResult{Candidates: ranked, ReducedConfidence: reducedConfidence}, nil
}

func scoreCaregiver(
	ctx context.Context,
	shifts ports.ShiftRepository,
	weights RankWeights,
	cg *domain.Caregiver,
	client *domain.Client,
	date time.Time,
	start, end domain.TimeOfDay,
) (*RankedCaregiver, error) {
	conflicts, err := CheckConflicts(ctx, shifts, cg.ID, date, start, end)
	if err != nil {
		return nil, fmt.Errorf("score caregiver %s: %w", cg.ID, err)
	}

	defs, err := shifts.ListActiveByCaregiver(ctx, cg.ID)
	if err != nil {
		return nil, fmt.Errorf("score caregiver %s: list shifts: %w", cg.ID, err)
	}

	weekStart := domain.DateOnly(date).AddDate(0, 0, -int(date.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	weeklyMinutes := 0
	for _, occ := range ExpandAll(defs, weekStart, weekEnd) {
		weeklyMinutes += occ.End.Minutes() - occ.Start.Minutes()
	}
	weeklyHours := float64(weeklyMinutes) / 60

	priorVisits := 0
	lookbackFrom := domain.DateOnly(date).AddDate(0, 0, -continuityLookbackDays)
	lookbackTo := domain.DateOnly(date).AddDate(0, 0, -1)
	for _, occ := range ExpandAll(defs, lookbackFrom, lookbackTo) {
		if occ.ClientID == client.ID {
			priorVisits++
		}
	}

	candidateHours := float64(end.Minutes()-start.Minutes()) / 60
	overHours := cg.MaxWeeklyHours > 0 && weeklyHours+candidateHours > cg.MaxWeeklyHours

	var distanceKm *float64
	score := 0.0

	switch {
	case client.Location == nil:
		// No target to measure against: neutral, not penalized.
		score += weights.MaxDistancePoints / 2
	case cg.Home == nil:
		// Caregiver not routable; contributes nothing but stays listed.
	default:
		km := domain.HaversineMeters(*cg.Home, *client.Location) / 1000
		distanceKm = &km
		if km < weights.DistanceFalloffKm {
			score += weights.MaxDistancePoints * (1 - km/weights.DistanceFalloffKm)
		}
	}

	if cg.MaxWeeklyHours > 0 {
		headroom := (cg.MaxWeeklyHours - weeklyHours) / cg.MaxWeeklyHours
		if headroom > 0 {
			score += weights.MaxHeadroomPoints * math.Min(headroom, 1)
		}
	}

	// Diminishing continuity bonus: ~30 prior visits reach the maximum.
	continuity := math.Log10(float64(priorVisits)+1) * weights.MaxContinuityPoints / math.Log10(31)
	score += math.Min(continuity, weights.MaxContinuityPoints)

	if len(conflicts) > 0 {
		score -= weights.ConflictPenalty
	}
	if overHours {
		score -= weights.OverHoursPenalty
	}

	score = math.Max(0, math.Min(100, score))

	return &RankedCaregiver{
		CaregiverID: cg.ID,
		Name:        cg.Name,
		Score:       math.Round(score*10) / 10,
		DistanceKm:  distanceKm,
		WeeklyHours: math.Round(weeklyHours*100) / 100,
		Conflict:    len(conflicts) > 0,
		CertGaps:    cg.MissingCertifications(client.RequiredCertifications),
		OverHours:   overHours,
	}, nil
}
