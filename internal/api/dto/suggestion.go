package dto

type SuggestionRequest struct {
	ClientID string `json:"client_id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type CandidateResponse struct {
	CaregiverID string   `json:"caregiver_id"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	WeeklyHours float64  `json:"weekly_hours"`
	Conflict    bool     `json:"conflict"`
	CertGaps    []string `json:"cert_gaps,omitempty"`
	OverHours   bool     `json:"over_hours"`
}

type SuggestionResponse struct {
	// ReducedConfidence is true when the client lacks coordinates and
	// distance scoring was neutralized.
	ReducedConfidence bool                `json:"reduced_confidence"`
	Candidates        []CandidateResponse `json:"candidates"`
}
