package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// Postgres-backed implementation of the CaregiverRepository port.
// Availability windows and blackout ranges are stored as JSONB documents;
// they are read-modify-write blobs owned by the excluded admin layer.
type PostgresCaregiverRepository struct{ DB *sql.DB }

func NewPostgresCaregiverRepository(db *sql.DB) *PostgresCaregiverRepository {
	return &PostgresCaregiverRepository{DB: db}
}

const caregiverColumns = `
	id,
	name,
	lat,
	lon,
	max_weekly_hours,
	certifications,
	availability,
	blackouts,
	active
`

func (r *PostgresCaregiverRepository) GetCaregiver(ctx context.Context, id string) (*domain.Caregiver, error) {
	if r.DB == nil {
		return nil, errors.New("caregiver repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE id = $1;`, id)

	cg, err := scanCaregiver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get caregiver %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get caregiver %s: %w", id, err)
	}
	return cg, nil
}

func (r *PostgresCaregiverRepository) ListActiveCaregivers(ctx context.Context) ([]*domain.Caregiver, error) {
	if r.DB == nil {
		return nil, errors.New("caregiver repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE active ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list caregivers: query caregivers table: %w", err)
	}
	defer rows.Close()

	caregivers := make([]*domain.Caregiver, 0, 64)
	for rows.Next() {
		cg, err := scanCaregiver(rows)
		if err != nil {
			return nil, fmt.Errorf("list caregivers: %w", err)
		}
		caregivers = append(caregivers, cg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list caregivers: row iteration: %w", err)
	}

	return caregivers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCaregiver(row rowScanner) (*domain.Caregiver, error) {
	var (
		cg               domain.Caregiver
		lat, lon         sql.NullFloat64
		certsJSON        []byte
		availabilityJSON []byte
		blackoutsJSON    []byte
	)

	err := row.Scan(&cg.ID, &cg.Name, &lat, &lon, &cg.MaxWeeklyHours,
		&certsJSON, &availabilityJSON, &blackoutsJSON, &cg.Active)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lon.Valid {
		cg.Home = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	if len(certsJSON) > 0 {
		if err := json.Unmarshal(certsJSON, &cg.Certifications); err != nil {
			return nil, fmt.Errorf("scan caregiver %s: decode certifications: %w", cg.ID, err)
		}
	}
	if len(availabilityJSON) > 0 {
		if err := json.Unmarshal(availabilityJSON, &cg.Availability); err != nil {
			return nil, fmt.Errorf("scan caregiver %s: decode availability: %w", cg.ID, err)
		}
	}
	if len(blackoutsJSON) > 0 {
		if err := json.Unmarshal(blackoutsJSON, &cg.Blackouts); err != nil {
			return nil, fmt.Errorf("scan caregiver %s: decode blackouts: %w", cg.ID, err)
		}
	}

	return &cg, nil
}
