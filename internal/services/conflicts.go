package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// CheckConflicts reports every existing occurrence for the caregiver on the
// candidate date whose [start, end) interval overlaps the candidate window.
//
// This is the sole overlap authority: the ranking engine and the recurring
// generator both call it rather than reimplementing interval logic. Pure
// query, no side effects.
func CheckConflicts(
	ctx context.Context,
	shifts ports.ShiftRepository,
	caregiverID string,
	date time.Time,
	start, end domain.TimeOfDay,
) ([]domain.ShiftOccurrence, error) {
	if caregiverID == "" {
		return nil, &domain.ValidationError{Field: "caregiver_id", Reason: "must be non-empty"}
	}
	if end <= start {
		return nil, &domain.ValidationError{
			Field:  "end",
			Reason: fmt.Sprintf("end %s must be after start %s", end, start),
		}
	}

	defs, err := shifts.ListActiveByCaregiver(ctx, caregiverID)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: list shifts for caregiver %s: %w", caregiverID, err)
	}

	conflicts := []domain.ShiftOccurrence{}
	for _, occ := range ExpandAll(defs, date, date) {
		if occ.Overlaps(start, end) {
			conflicts = append(conflicts, occ)
		}
	}

	// Stable output order for API consumers and deterministic tests.
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Start != conflicts[j].Start {
			return conflicts[i].Start < conflicts[j].Start
		}
		return conflicts[i].DefinitionID < conflicts[j].DefinitionID
	})

	return conflicts, nil
}
