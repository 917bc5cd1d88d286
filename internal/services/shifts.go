package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// CreateShift validates and persists a single shift definition, assigning it
// an ID. Moving a shift to a different day is delete-and-recreate; there is
// deliberately no partial date/time update.
func CreateShift(ctx context.Context, shifts ports.ShiftRepository, def *domain.ShiftDefinition) (*domain.ShiftDefinition, error) {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	def.Active = true
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if err := shifts.CreateShift(ctx, def); err != nil {
		return nil, fmt.Errorf("create shift: %w", err)
	}
	return def, nil
}

// ReassignShift swaps the caregiver on an existing definition, leaving the
// schedule untouched.
func ReassignShift(
	ctx context.Context,
	shifts ports.ShiftRepository,
	caregivers ports.CaregiverRepository,
	shiftID, newCaregiverID string,
) error {
	if shiftID == "" {
		return &domain.ValidationError{Field: "shift_id", Reason: "must be non-empty"}
	}
	if newCaregiverID == "" {
		return &domain.ValidationError{Field: "caregiver_id", Reason: "must be non-empty"}
	}
	if _, err := caregivers.GetCaregiver(ctx, newCaregiverID); err != nil {
		return fmt.Errorf("reassign shift: get caregiver %s: %w", newCaregiverID, err)
	}
	if err := shifts.ReassignShift(ctx, shiftID, newCaregiverID); err != nil {
		return fmt.Errorf("reassign shift %s: %w", shiftID, err)
	}
	return nil
}

// DeleteShift removes a definition entirely.
func DeleteShift(ctx context.Context, shifts ports.ShiftRepository, shiftID string) error {
	if shiftID == "" {
		return &domain.ValidationError{Field: "shift_id", Reason: "must be non-empty"}
	}
	if err := shifts.DeleteShift(ctx, shiftID); err != nil {
		return fmt.Errorf("delete shift %s: %w", shiftID, err)
	}
	return nil
}
