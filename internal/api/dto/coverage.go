package dto

type CaregiverUtilizationResponse struct {
	CaregiverID        string  `json:"caregiver_id"`
	Name               string  `json:"name"`
	ScheduledHours     float64 `json:"scheduled_hours"`
	MaxWeeklyHours     float64 `json:"max_weekly_hours"`
	UtilizationPercent float64 `json:"utilization_percent"`
	ShiftCount         int     `json:"shift_count"`
}

type ClientCoverageResponse struct {
	ClientID        string   `json:"client_id"`
	Name            string   `json:"name"`
	ScheduledUnits  int      `json:"scheduled_units"`
	AuthorizedUnits *int     `json:"authorized_units,omitempty"`
	ShortfallUnits  *int     `json:"shortfall_units,omitempty"`
	CoveragePercent *float64 `json:"coverage_percent,omitempty"`
}

type WeekCoverageResponse struct {
	WeekStart  string                         `json:"week_start"`
	Caregivers []CaregiverUtilizationResponse `json:"caregivers"`
	Clients    []ClientCoverageResponse       `json:"clients"`
}
