package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestOverlapsHalfOpen(t *testing.T) {
	occ := ShiftOccurrence{Start: tod(t, "08:00"), End: tod(t, "10:00")}

	assert.True(t, occ.Overlaps(tod(t, "09:00"), tod(t, "11:00")))
	assert.True(t, occ.Overlaps(tod(t, "07:00"), tod(t, "09:00")))
	assert.True(t, occ.Overlaps(tod(t, "08:30"), tod(t, "09:30")), "contained window")
	assert.True(t, occ.Overlaps(tod(t, "07:00"), tod(t, "11:00")), "containing window")

	// Boundary-touching intervals are back-to-back shifts, not conflicts.
	assert.False(t, occ.Overlaps(tod(t, "10:00"), tod(t, "12:00")))
	assert.False(t, occ.Overlaps(tod(t, "06:00"), tod(t, "08:00")))
	assert.False(t, occ.Overlaps(tod(t, "11:00"), tod(t, "12:00")))
}

func TestRecurringOccursOn(t *testing.T) {
	effective := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	s := Recurring{Weekday: time.Monday, EffectiveFrom: &effective}

	assert.False(t, s.OccursOn(date(t, "2025-06-03")), "wrong weekday")
	assert.False(t, s.OccursOn(date(t, "2025-06-02")), "Monday before effective-from")
	assert.True(t, s.OccursOn(date(t, "2025-06-09")), "effective-from day itself")
	assert.True(t, s.OccursOn(date(t, "2025-06-16")))

	unbounded := Recurring{Weekday: time.Monday}
	assert.True(t, unbounded.OccursOn(date(t, "1999-01-04")))
}

func TestOneTimeOccursOn(t *testing.T) {
	s := OneTime{Date: date(t, "2025-06-15")}

	assert.True(t, s.OccursOn(date(t, "2025-06-15")))
	assert.False(t, s.OccursOn(date(t, "2025-06-16")))
}

func TestShiftDefinitionValidate(t *testing.T) {
	valid := ShiftDefinition{
		CaregiverID: "cg-1",
		ClientID:    "cl-1",
		Schedule:    OneTime{Date: date(t, "2025-06-15")},
		Start:       tod(t, "09:00"),
		End:         tod(t, "11:00"),
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(d *ShiftDefinition){
		"missing caregiver": func(d *ShiftDefinition) { d.CaregiverID = "" },
		"missing client":    func(d *ShiftDefinition) { d.ClientID = "" },
		"missing schedule":  func(d *ShiftDefinition) { d.Schedule = nil },
		"zero length":       func(d *ShiftDefinition) { d.End = d.Start },
		"inverted times":    func(d *ShiftDefinition) { d.Start, d.End = d.End, d.Start },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := valid
			mutate(&d)
			var verr *ValidationError
			assert.ErrorAs(t, d.Validate(), &verr)
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	d := ShiftDefinition{Start: tod(t, "09:30"), End: tod(t, "11:00")}
	assert.Equal(t, 90, d.DurationMinutes())
}
