package domain

import (
	"fmt"
	"time"
)

// ShiftSchedule is the recurrence part of a shift definition, modeled as a
// sum type so "one-time with a weekday" or "recurring with a fixed date"
// cannot be represented.
type ShiftSchedule interface {
	isShiftSchedule()
	// OccursOn reports whether the schedule produces an occurrence on the date.
	OccursOn(date time.Time) bool
}

// OneTime is a shift on a single calendar date.
type OneTime struct {
	Date time.Time
}

func (OneTime) isShiftSchedule() {}

func (s OneTime) OccursOn(date time.Time) bool { return SameDate(s.Date, date) }

// Recurring is a weekly shift on a fixed weekday. EffectiveFrom bounds the
// recurrence so it does not appear on calendar weeks before it was created;
// nil means the rule applies unboundedly into the past.
type Recurring struct {
	Weekday       time.Weekday
	EffectiveFrom *time.Time
}

func (Recurring) isShiftSchedule() {}

func (s Recurring) OccursOn(date time.Time) bool {
	if date.Weekday() != s.Weekday {
		return false
	}
	if s.EffectiveFrom != nil && DateOnly(date).Before(DateOnly(*s.EffectiveFrom)) {
		return false
	}
	return true
}

// ShiftDefinition is a persisted shift assignment of a caregiver to a client.
// Times are site-local wall clock. A move to a different day is modeled as
// delete-and-recreate, never an in-place schedule mutation.
type ShiftDefinition struct {
	ID          string
	CaregiverID string
	ClientID    string
	Schedule    ShiftSchedule
	Start       TimeOfDay
	End         TimeOfDay
	Notes       string
	Active      bool
}

func (d *ShiftDefinition) Validate() error {
	if d.CaregiverID == "" {
		return &ValidationError{Field: "caregiver_id", Reason: "must be non-empty"}
	}
	if d.ClientID == "" {
		return &ValidationError{Field: "client_id", Reason: "must be non-empty"}
	}
	if d.Schedule == nil {
		return &ValidationError{Field: "schedule", Reason: "one-time date or recurring weekday is required"}
	}
	if d.End <= d.Start {
		return &ValidationError{
			Field:  "end",
			Reason: fmt.Sprintf("end %s must be after start %s", d.End, d.Start),
		}
	}
	return nil
}

// DurationMinutes is the shift length per occurrence.
func (d *ShiftDefinition) DurationMinutes() int {
	return d.End.Minutes() - d.Start.Minutes()
}

// ShiftOccurrence is a definition resolved to one concrete calendar date.
// Derived, never persisted.
type ShiftOccurrence struct {
	DefinitionID string
	CaregiverID  string
	ClientID     string
	Date         time.Time
	Start        TimeOfDay
	End          TimeOfDay
	Notes        string
}

// Overlaps reports half-open interval overlap with a candidate window.
// Boundary-touching intervals (end == start) do not overlap.
func (o ShiftOccurrence) Overlaps(start, end TimeOfDay) bool {
	return o.Start < end && start < o.End
}
