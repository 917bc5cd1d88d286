package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// Postgres-backed implementation of the RoutePlanRepository port.
// Plans are stored whole as JSONB: they are planning snapshots, never
// queried field-by-field, and never a source of truth for worked hours.
type PostgresRoutePlanRepository struct{ DB *sql.DB }

func NewPostgresRoutePlanRepository(db *sql.DB) *PostgresRoutePlanRepository {
	return &PostgresRoutePlanRepository{DB: db}
}

func (r *PostgresRoutePlanRepository) SaveRoutePlan(
	ctx context.Context,
	plan *domain.RoutePlan,
	status domain.RoutePlanStatus,
	savedAt time.Time,
) error {
	if r.DB == nil {
		return errors.New("route plan repository: DB is nil")
	}
	if plan == nil || plan.ID == "" {
		return errors.New("save route plan: plan with ID is required")
	}
	if status != domain.RoutePlanDraft && status != domain.RoutePlanPublished {
		return fmt.Errorf("save route plan %s: unknown status %q", plan.ID, status)
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save route plan %s: encode payload: %w", plan.ID, err)
	}

	_, err = r.DB.ExecContext(ctx, `
	INSERT INTO route_plans (id, caregiver_id, plan_date, status, payload, saved_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET status = EXCLUDED.status,
		payload = EXCLUDED.payload,
		saved_at = EXCLUDED.saved_at;
	`, plan.ID, plan.CaregiverID, domain.DateOnly(plan.Date), string(status), payload, savedAt)
	if err != nil {
		return fmt.Errorf("save route plan %s: %w", plan.ID, err)
	}

	return nil
}
