package services

import (
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// ExpandOccurrences resolves a shift definition to its concrete dates inside
// [from, to] (inclusive calendar dates).
//
// One-time definitions yield at most one occurrence. Recurring definitions
// yield every weekday match at or after their effective-from date; a nil
// effective-from applies unboundedly into the past within the query range.
// Inactive definitions never expand.
func ExpandOccurrences(def *domain.ShiftDefinition, from, to time.Time) []domain.ShiftOccurrence {
	if def == nil || !def.Active || def.Schedule == nil {
		return nil
	}

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)
	if to.Before(from) {
		return nil
	}

	var dates []time.Time

	switch s := def.Schedule.(type) {
	case domain.OneTime:
		d := domain.DateOnly(s.Date)
		if !d.Before(from) && !d.After(to) {
			dates = append(dates, d)
		}
	case domain.Recurring:
		// Jump to the first weekday match, then step a week at a time.
		d := from
		offset := (int(s.Weekday) - int(d.Weekday()) + 7) % 7
		d = d.AddDate(0, 0, offset)
		for !d.After(to) {
			if s.OccursOn(d) {
				dates = append(dates, d)
			}
			d = d.AddDate(0, 0, 7)
		}
	}

	occurrences := make([]domain.ShiftOccurrence, 0, len(dates))
	for _, d := range dates {
		occurrences = append(occurrences, domain.ShiftOccurrence{
			DefinitionID: def.ID,
			CaregiverID:  def.CaregiverID,
			ClientID:     def.ClientID,
			Date:         d,
			Start:        def.Start,
			End:          def.End,
			Notes:        def.Notes,
		})
	}

	return occurrences
}

// ExpandAll expands many definitions over the same range.
func ExpandAll(defs []*domain.ShiftDefinition, from, to time.Time) []domain.ShiftOccurrence {
	var out []domain.ShiftOccurrence
	for _, def := range defs {
		out = append(out, ExpandOccurrences(def, from, to)...)
	}
	return out
}
