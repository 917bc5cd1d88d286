package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// TemplateEntry is one weekday/time slot in a weekly schedule template.
type TemplateEntry struct {
	Weekday time.Weekday
	Start   domain.TimeOfDay
	End     domain.TimeOfDay
}

// BulkCreateResult reports the skip-and-continue outcome of a bulk
// generation. It is a result, never an error: one colliding day must not
// abort the remaining days.
type BulkCreateResult struct {
	Created          int
	SkippedConflicts int
}

const (
	minBulkWeeks = 1
	maxBulkWeeks = 12
)

// BulkCreate expands a weekly template into concrete shift definitions over
// the given number of weeks, skipping days where the conflict detector finds
// an overlap.
//
// Creations are issued sequentially so the conflict check re-reads state
// immediately before each write, keeping skip semantics deterministic
// relative to write order. Callers needing all-or-nothing behavior must
// pre-check with CheckConflicts before committing.
func BulkCreate(
	ctx context.Context,
	shifts ports.ShiftRepository,
	logger *zap.Logger,
	caregiverID, clientID string,
	template []TemplateEntry,
	startDate time.Time,
	weeks int,
	notes string,
) (*BulkCreateResult, error) {
	if caregiverID == "" {
		return nil, &domain.ValidationError{Field: "caregiver_id", Reason: "must be non-empty"}
	}
	if clientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "must be non-empty"}
	}
	if weeks < minBulkWeeks || weeks > maxBulkWeeks {
		return nil, &domain.ValidationError{
			Field:  "weeks",
			Reason: fmt.Sprintf("must be between %d and %d", minBulkWeeks, maxBulkWeeks),
		}
	}
	if len(template) == 0 {
		return nil, &domain.ValidationError{Field: "template", Reason: "must contain at least one entry"}
	}
	for i, entry := range template {
		if entry.Weekday < time.Sunday || entry.Weekday > time.Saturday {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("template[%d].weekday", i),
				Reason: "must be 0 (Sunday) through 6 (Saturday)",
			}
		}
		if entry.End <= entry.Start {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("template[%d].end", i),
				Reason: fmt.Sprintf("end %s must be after start %s", entry.End, entry.Start),
			}
		}
	}

	startDate = domain.DateOnly(startDate)
	result := &BulkCreateResult{}

	for week := 0; week < weeks; week++ {
		for _, entry := range template {
			date := concreteDate(startDate, week, entry.Weekday)

			conflicts, err := CheckConflicts(ctx, shifts, caregiverID, date, entry.Start, entry.End)
			if err != nil {
				return nil, fmt.Errorf("bulk create: %w", err)
			}
			if len(conflicts) > 0 {
				result.SkippedConflicts++
				logger.Info("skipping conflicting day",
					zap.String("caregiver_id", caregiverID),
					zap.String("date", date.Format(time.DateOnly)),
					zap.Int("conflicts", len(conflicts)))
				continue
			}

			def := &domain.ShiftDefinition{
				ID:          uuid.NewString(),
				CaregiverID: caregiverID,
				ClientID:    clientID,
				Schedule:    domain.OneTime{Date: date},
				Start:       entry.Start,
				End:         entry.End,
				Notes:       notes,
				Active:      true,
			}
			if err := def.Validate(); err != nil {
				return nil, fmt.Errorf("bulk create: %w", err)
			}
			if err := shifts.CreateShift(ctx, def); err != nil {
				return nil, fmt.Errorf("bulk create: create shift on %s: %w",
					date.Format(time.DateOnly), err)
			}
			result.Created++
		}
	}

	return result, nil
}

// concreteDate maps (week index, weekday) onto the calendar, anchored at the
// first occurrence of each weekday on or after the start date. Weekdays that
// fall before the start date in week zero roll into the following week, so a
// mid-week start never generates dates in the past.
func concreteDate(startDate time.Time, week int, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(startDate.Weekday()) + 7) % 7
	return startDate.AddDate(0, 0, offset+week*7)
}
