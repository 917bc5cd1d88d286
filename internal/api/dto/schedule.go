package dto

type TemplateEntryRequest struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type BulkCreateRequest struct {
	CaregiverID string                 `json:"caregiver_id"`
	ClientID    string                 `json:"client_id"`
	Template    []TemplateEntryRequest `json:"template"`
	StartDate   string                 `json:"start_date"`
	Weeks       int                    `json:"weeks"`
	Notes       string                 `json:"notes"`
}

type BulkCreateResponse struct {
	Created          int `json:"created"`
	SkippedConflicts int `json:"skipped_conflicts"`
}
