package ports

import (
	"context"
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// Port: boundary to the agency record store for caregiver master data.
type CaregiverRepository interface {
	GetCaregiver(ctx context.Context, id string) (*domain.Caregiver, error)
	ListActiveCaregivers(ctx context.Context) ([]*domain.Caregiver, error)
}

// Port: boundary to the agency record store for client master data.
type ClientRepository interface {
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListActiveClients(ctx context.Context) ([]*domain.Client, error)
}

// Port: boundary to the agency record store for shift definitions.
// Definitions are created and deleted whole; a reassignment swaps the
// caregiver without touching the schedule.
type ShiftRepository interface {
	GetShift(ctx context.Context, id string) (*domain.ShiftDefinition, error)
	// ListActiveByCaregiver returns every active definition for one caregiver.
	ListActiveByCaregiver(ctx context.Context, caregiverID string) ([]*domain.ShiftDefinition, error)
	// ListActive returns every active definition agency-wide.
	ListActive(ctx context.Context) ([]*domain.ShiftDefinition, error)
	CreateShift(ctx context.Context, def *domain.ShiftDefinition) error
	ReassignShift(ctx context.Context, id, newCaregiverID string) error
	DeleteShift(ctx context.Context, id string) error
}

// Port: persistence for explicitly saved route plans (draft or published).
type RoutePlanRepository interface {
	SaveRoutePlan(ctx context.Context, plan *domain.RoutePlan, status domain.RoutePlanStatus, savedAt time.Time) error
}
