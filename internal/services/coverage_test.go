package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

func authorizedUnits(n int) *int { return &n }

func TestWeekCoverageReport(t *testing.T) {
	caregivers := newFakeCaregiverRepo(&domain.Caregiver{
		ID: "cg-1", Name: "Alice K", MaxWeeklyHours: 40, Active: true,
	})
	clients := newFakeClientRepo(&domain.Client{
		ID: "cl-1", Name: "Dorothy M", AuthorizedUnits: authorizedUnits(80), Active: true,
	})

	// Three 4-hour recurring visits: 12 scheduled hours = 48 units.
	shifts := newFakeShiftRepo(
		&domain.ShiftDefinition{
			ID: "s1", CaregiverID: "cg-1", ClientID: "cl-1",
			Schedule: domain.Recurring{Weekday: time.Monday},
			Start:    mustTime("08:00"), End: mustTime("12:00"), Active: true,
		},
		&domain.ShiftDefinition{
			ID: "s2", CaregiverID: "cg-1", ClientID: "cl-1",
			Schedule: domain.Recurring{Weekday: time.Wednesday},
			Start:    mustTime("08:00"), End: mustTime("12:00"), Active: true,
		},
		&domain.ShiftDefinition{
			ID: "s3", CaregiverID: "cg-1", ClientID: "cl-1",
			Schedule: domain.Recurring{Weekday: time.Friday},
			Start:    mustTime("08:00"), End: mustTime("12:00"), Active: true,
		},
	)

	report, err := WeekCoverage(context.Background(), caregivers, clients, shifts,
		mustDate("2025-06-01")) // a Sunday

	require.NoError(t, err)

	require.Len(t, report.Caregivers, 1)
	util := report.Caregivers[0]
	assert.Equal(t, 12.0, util.ScheduledHours)
	assert.Equal(t, 30.0, util.UtilizationPercent)
	assert.Equal(t, 3, util.ShiftCount)

	require.Len(t, report.Clients, 1)
	cov := report.Clients[0]
	assert.Equal(t, 48, cov.ScheduledUnits)
	require.NotNil(t, cov.CoveragePercent)
	assert.Equal(t, 60.0, *cov.CoveragePercent)
	require.NotNil(t, cov.ShortfallUnits)
	assert.Equal(t, 32, *cov.ShortfallUnits)
}

func TestWeekCoverageNoAuthorization(t *testing.T) {
	caregivers := newFakeCaregiverRepo()
	clients := newFakeClientRepo(&domain.Client{ID: "cl-1", Name: "Dorothy M", Active: true})
	shifts := newFakeShiftRepo()

	report, err := WeekCoverage(context.Background(), caregivers, clients, shifts,
		mustDate("2025-06-01"))

	require.NoError(t, err)
	require.Len(t, report.Clients, 1)
	// Absence of a target is not a violation: no shortfall, no percent.
	assert.Nil(t, report.Clients[0].ShortfallUnits)
	assert.Nil(t, report.Clients[0].CoveragePercent)
}

func TestWeekCoverageOverScheduledNotClamped(t *testing.T) {
	caregivers := newFakeCaregiverRepo()
	clients := newFakeClientRepo(&domain.Client{
		ID: "cl-1", Name: "Dorothy M", AuthorizedUnits: authorizedUnits(8), Active: true,
	})
	shifts := newFakeShiftRepo(&domain.ShiftDefinition{
		ID: "s1", CaregiverID: "cg-1", ClientID: "cl-1",
		Schedule: domain.OneTime{Date: mustDate("2025-06-03")},
		Start:    mustTime("08:00"), End: mustTime("12:00"), Active: true,
	})

	report, err := WeekCoverage(context.Background(), caregivers, clients, shifts,
		mustDate("2025-06-01"))

	require.NoError(t, err)
	require.Len(t, report.Clients, 1)
	cov := report.Clients[0]
	assert.Equal(t, 16, cov.ScheduledUnits)
	require.NotNil(t, cov.CoveragePercent)
	assert.Equal(t, 200.0, *cov.CoveragePercent)
	require.NotNil(t, cov.ShortfallUnits)
	assert.Equal(t, 0, *cov.ShortfallUnits)
}

func TestWeekCoverageRejectsNonSunday(t *testing.T) {
	_, err := WeekCoverage(context.Background(),
		newFakeCaregiverRepo(), newFakeClientRepo(), newFakeShiftRepo(),
		mustDate("2025-06-02")) // a Monday

	assert.True(t, domain.IsValidation(err))
}
