package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingCertifications(t *testing.T) {
	cg := Caregiver{Certifications: []string{"CPR", "CBRF"}}

	assert.Empty(t, cg.MissingCertifications([]string{"CPR"}))
	assert.Empty(t, cg.MissingCertifications(nil))
	assert.Equal(t, []string{"Med Admin"}, cg.MissingCertifications([]string{"CPR", "Med Admin"}))
}

func TestAvailableFor(t *testing.T) {
	var cg Caregiver
	// Mondays 08:00-16:00 only.
	cg.Availability[1] = AvailabilityWindow{Available: true, Start: tod(t, "08:00"), End: tod(t, "16:00")}

	monday := date(t, "2025-06-02")
	tuesday := date(t, "2025-06-03")

	assert.True(t, cg.AvailableFor(monday, tod(t, "09:00"), tod(t, "11:00")))
	assert.True(t, cg.AvailableFor(monday, tod(t, "08:00"), tod(t, "16:00")), "exact window boundaries")
	assert.False(t, cg.AvailableFor(monday, tod(t, "07:00"), tod(t, "09:00")), "starts before window")
	assert.False(t, cg.AvailableFor(monday, tod(t, "15:00"), tod(t, "17:00")), "ends after window")
	assert.False(t, cg.AvailableFor(tuesday, tod(t, "09:00"), tod(t, "11:00")), "not a working day")
}

func TestBlackedOut(t *testing.T) {
	cg := Caregiver{Blackouts: []DateRange{
		{Start: date(t, "2025-06-10"), End: date(t, "2025-06-14")},
	}}

	assert.False(t, cg.BlackedOut(date(t, "2025-06-09")))
	assert.True(t, cg.BlackedOut(date(t, "2025-06-10")), "range start is inclusive")
	assert.True(t, cg.BlackedOut(date(t, "2025-06-12")))
	assert.True(t, cg.BlackedOut(date(t, "2025-06-14")), "range end is inclusive")
	assert.False(t, cg.BlackedOut(date(t, "2025-06-15")))
}
