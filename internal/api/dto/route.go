package dto

import "time"

type StopRequest struct {
	ClientID     string  `json:"client_id"`
	ServiceUnits int     `json:"service_units"`
	FixedStart   *string `json:"fixed_start"`
	FixedEnd     *string `json:"fixed_end"`
}

type OptimizeRouteRequest struct {
	CaregiverID string        `json:"caregiver_id"`
	Date        string        `json:"date"`
	StartTime   string        `json:"start_time"`
	FixedOrder  bool          `json:"fixed_order"`
	Stops       []StopRequest `json:"stops"`
}

// SaveRouteRequest recomputes and persists a plan; numbers are never trusted
// from the client.
type SaveRouteRequest struct {
	OptimizeRouteRequest
	Status string `json:"status"`
}

type RouteStopResponse struct {
	ClientID       string    `json:"client_id"`
	ClientName     string    `json:"client_name"`
	ServiceUnits   int       `json:"service_units"`
	Arrival        time.Time `json:"arrival"`
	Departure      time.Time `json:"departure"`
	IdleMinutes    int       `json:"idle_minutes,omitempty"`
	DistanceMeters int       `json:"distance_meters"`
	DriveSeconds   int       `json:"drive_seconds"`
}

type RoutePlanResponse struct {
	ID                   string              `json:"id,omitempty"`
	CaregiverID          string              `json:"caregiver_id"`
	Date                 string              `json:"date"`
	StartAt              time.Time           `json:"start_at"`
	Stops                []RouteStopResponse `json:"stops"`
	ReturnDistanceMeters int                 `json:"return_distance_meters"`
	ReturnDriveSeconds   int                 `json:"return_drive_seconds"`
	TotalDistanceMeters  int                 `json:"total_distance_meters"`
	TotalDriveSeconds    int                 `json:"total_drive_seconds"`
	TotalServiceMinutes  int                 `json:"total_service_minutes"`
	EndOfDay             time.Time           `json:"end_of_day"`
	EstimateBased        bool                `json:"estimate_based"`
	Status               string              `json:"status,omitempty"`
}
