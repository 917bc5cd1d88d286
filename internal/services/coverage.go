package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// CaregiverUtilization is one caregiver's scheduled load for a week.
type CaregiverUtilization struct {
	CaregiverID    string
	Name           string
	ScheduledHours float64
	MaxWeeklyHours float64
	// UtilizationPercent is 0 when no max is on file.
	UtilizationPercent float64
	ShiftCount         int
}

// ClientCoverage is one client's scheduled service against their weekly
// authorization. AuthorizedUnits nil means no target is on file; such
// clients report scheduled units only (absence of a target is not a
// violation, so shortfall and percent are omitted).
type ClientCoverage struct {
	ClientID        string
	Name            string
	ScheduledUnits  int
	AuthorizedUnits *int
	ShortfallUnits  *int
	// CoveragePercent is not clamped: values over 100 surface as
	// over-scheduled rather than being hidden.
	CoveragePercent *float64
}

// WeekCoverageReport aggregates one Sunday-aligned week.
type WeekCoverageReport struct {
	WeekStart  time.Time
	Caregivers []CaregiverUtilization
	Clients    []ClientCoverage
}

// WeekCoverage expands every active shift definition over the week starting
// at weekStart (must be a Sunday) and reports per-caregiver utilization and
// per-client coverage.
func WeekCoverage(
	ctx context.Context,
	caregivers ports.CaregiverRepository,
	clients ports.ClientRepository,
	shifts ports.ShiftRepository,
	weekStart time.Time,
) (*WeekCoverageReport, error) {
	weekStart = domain.DateOnly(weekStart)
	if weekStart.Weekday() != time.Sunday {
		return nil, &domain.ValidationError{
			Field:  "week_start",
			Reason: fmt.Sprintf("%s is a %s; weeks are Sunday-aligned", weekStart.Format(time.DateOnly), weekStart.Weekday()),
		}
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	defs, err := shifts.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("week coverage: list shifts: %w", err)
	}
	occurrences := ExpandAll(defs, weekStart, weekEnd)

	minutesByCaregiver := make(map[string]int)
	countByCaregiver := make(map[string]int)
	minutesByClient := make(map[string]int)
	for _, occ := range occurrences {
		dur := occ.End.Minutes() - occ.Start.Minutes()
		minutesByCaregiver[occ.CaregiverID] += dur
		countByCaregiver[occ.CaregiverID]++
		minutesByClient[occ.ClientID] += dur
	}

	activeCaregivers, err := caregivers.ListActiveCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("week coverage: list caregivers: %w", err)
	}

	report := &WeekCoverageReport{WeekStart: weekStart}
	for _, cg := range activeCaregivers {
		hours := float64(minutesByCaregiver[cg.ID]) / 60
		util := 0.0
		if cg.MaxWeeklyHours > 0 {
			util = math.Round(hours/cg.MaxWeeklyHours*1000) / 10
		}
		report.Caregivers = append(report.Caregivers, CaregiverUtilization{
			CaregiverID:        cg.ID,
			Name:               cg.Name,
			ScheduledHours:     math.Round(hours*100) / 100,
			MaxWeeklyHours:     cg.MaxWeeklyHours,
			UtilizationPercent: util,
			ShiftCount:         countByCaregiver[cg.ID],
		})
	}

	activeClients, err := clients.ListActiveClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("week coverage: list clients: %w", err)
	}

	for _, cl := range activeClients {
		scheduledUnits := minutesByClient[cl.ID] / domain.MinutesPerUnit
		cov := ClientCoverage{
			ClientID:        cl.ID,
			Name:            cl.Name,
			ScheduledUnits:  scheduledUnits,
			AuthorizedUnits: cl.AuthorizedUnits,
		}
		if cl.AuthorizedUnits != nil && *cl.AuthorizedUnits > 0 {
			shortfall := *cl.AuthorizedUnits - scheduledUnits
			if shortfall < 0 {
				shortfall = 0
			}
			pct := math.Round(float64(scheduledUnits)/float64(*cl.AuthorizedUnits)*1000) / 10
			cov.ShortfallUnits = &shortfall
			cov.CoveragePercent = &pct
		}
		report.Clients = append(report.Clients, cov)
	}

	sort.Slice(report.Caregivers, func(i, j int) bool {
		return report.Caregivers[i].CaregiverID < report.Caregivers[j].CaregiverID
	})
	sort.Slice(report.Clients, func(i, j int) bool {
		return report.Clients[i].ClientID < report.Clients[j].ClientID
	})

	return report, nil
}
