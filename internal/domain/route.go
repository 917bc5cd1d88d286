package domain

import "time"

// RoutePlanStatus marks whether a persisted plan is still editable.
type RoutePlanStatus string

const (
	RoutePlanDraft     RoutePlanStatus = "draft"
	RoutePlanPublished RoutePlanStatus = "published"
)

// StopRequest is one requested client visit before route computation.
// FixedStart/FixedEnd pin the visit to a caller-chosen window; when set they
// take precedence over the computed timeline.
type StopRequest struct {
	ClientID     string
	ServiceUnits int
	FixedStart   *TimeOfDay
	FixedEnd     *TimeOfDay
}

// RouteStop is one visit in a computed route, in visiting order.
// Distance and drive metrics describe the leg from the previous position
// (home for the first stop).
type RouteStop struct {
	ClientID       string
	ClientName     string
	ServiceUnits   int
	Arrival        time.Time
	Departure      time.Time
	IdleMinutes    int
	DistanceMeters int
	DriveSeconds   int
}

// RoutePlan is the planned day route for one caregiver. It is derived
// planning data: persisted only on explicit save, and never a source of
// truth for actual worked hours.
type RoutePlan struct {
	ID                   string
	CaregiverID          string
	Date                 time.Time
	StartAt              time.Time
	Stops                []RouteStop
	ReturnDistanceMeters int
	ReturnDriveSeconds   int
	TotalDistanceMeters  int
	TotalDriveSeconds    int
	TotalServiceMinutes  int
	EndOfDay             time.Time
	// EstimateBased is true when legs were computed from great-circle
	// estimates instead of a road-network routing provider.
	EstimateBased bool
}
