package dto

// OccurrenceResponse is one concrete shift occurrence on a calendar date.
type OccurrenceResponse struct {
	DefinitionID string `json:"definition_id"`
	CaregiverID  string `json:"caregiver_id"`
	ClientID     string `json:"client_id"`
	Date         string `json:"date"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Notes        string `json:"notes,omitempty"`
}

type ConflictCheckRequest struct {
	CaregiverID string `json:"caregiver_id"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type ConflictCheckResponse struct {
	Conflicts []OccurrenceResponse `json:"conflicts"`
}

// CreateShiftRequest carries exactly one of date (one-time) or weekday
// (recurring); effective_from only applies to recurring shifts.
type CreateShiftRequest struct {
	CaregiverID   string  `json:"caregiver_id"`
	ClientID      string  `json:"client_id"`
	Date          *string `json:"date"`
	Weekday       *int    `json:"weekday"`
	EffectiveFrom *string `json:"effective_from"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Notes         string  `json:"notes"`
}

type ShiftResponse struct {
	ID            string  `json:"id"`
	CaregiverID   string  `json:"caregiver_id"`
	ClientID      string  `json:"client_id"`
	Kind          string  `json:"kind"`
	Date          *string `json:"date,omitempty"`
	Weekday       *int    `json:"weekday,omitempty"`
	EffectiveFrom *string `json:"effective_from,omitempty"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Notes         string  `json:"notes,omitempty"`
	Active        bool    `json:"active"`
}

type ReassignShiftRequest struct {
	ShiftID     string `json:"shift_id"`
	CaregiverID string `json:"caregiver_id"`
}
