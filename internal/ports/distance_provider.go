package ports

import (
	"context"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// Distance and travel duration between two coordinates.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between coordinates.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two points.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
