package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
)

// InitSchema creates the engine's tables if they do not exist. Caregiver and
// client master data is owned by the wider CRM; these tables mirror the
// subset the scheduling engine reads plus the rows it writes.
func InitSchema(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS caregivers (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		lat               DOUBLE PRECISION,
		lon               DOUBLE PRECISION,
		max_weekly_hours  DOUBLE PRECISION NOT NULL DEFAULT 40,
		certifications    JSONB NOT NULL DEFAULT '[]',
		availability      JSONB NOT NULL DEFAULT '[]',
		blackouts         JSONB NOT NULL DEFAULT '[]',
		active            BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE TABLE IF NOT EXISTS clients (
		id                       TEXT PRIMARY KEY,
		name                     TEXT NOT NULL,
		lat                      DOUBLE PRECISION,
		lon                      DOUBLE PRECISION,
		authorized_units         INTEGER,
		required_certifications  JSONB NOT NULL DEFAULT '[]',
		active                   BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id             TEXT PRIMARY KEY,
		caregiver_id   TEXT NOT NULL REFERENCES caregivers(id),
		client_id      TEXT NOT NULL REFERENCES clients(id),
		kind           TEXT NOT NULL CHECK (kind IN ('one_time', 'recurring')),
		shift_date     DATE,
		weekday        SMALLINT CHECK (weekday BETWEEN 0 AND 6),
		effective_from DATE,
		start_minutes  INTEGER NOT NULL,
		end_minutes    INTEGER NOT NULL CHECK (end_minutes > start_minutes),
		notes          TEXT NOT NULL DEFAULT '',
		active         BOOLEAN NOT NULL DEFAULT TRUE,
		CHECK (
			(kind = 'one_time' AND shift_date IS NOT NULL AND weekday IS NULL AND effective_from IS NULL)
			OR
			(kind = 'recurring' AND weekday IS NOT NULL AND shift_date IS NULL)
		)
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_caregiver ON shifts (caregiver_id) WHERE active;

	CREATE TABLE IF NOT EXISTS route_plans (
		id           TEXT PRIMARY KEY,
		caregiver_id TEXT NOT NULL REFERENCES caregivers(id),
		plan_date    DATE NOT NULL,
		status       TEXT NOT NULL CHECK (status IN ('draft', 'published')),
		payload      JSONB NOT NULL,
		saved_at     TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS distance_cache (
		origin           TEXT NOT NULL,
		destination      TEXT NOT NULL,
		distance_meters  INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	return nil
}

type seedCaregiver struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Lat            *float64        `json:"lat"`
	Lon            *float64        `json:"lon"`
	MaxWeeklyHours float64         `json:"max_weekly_hours"`
	Certifications json.RawMessage `json:"certifications"`
	Availability   json.RawMessage `json:"availability"`
	Blackouts      json.RawMessage `json:"blackouts"`
}

type seedClient struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Lat             *float64        `json:"lat"`
	Lon             *float64        `json:"lon"`
	AuthorizedUnits *int            `json:"authorized_units"`
	RequiredCerts   json.RawMessage `json:"required_certifications"`
}

type seedFile struct {
	Caregivers []seedCaregiver `json:"caregivers"`
	Clients    []seedClient    `json:"clients"`
}

// SeedFromJSON loads demo caregivers and clients for local runs. Existing
// rows are left untouched.
func SeedFromJSON(db *sql.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed: decode %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, cg := range seed.Caregivers {
		certs := orEmptyArray(cg.Certifications)
		avail := orEmptyArray(cg.Availability)
		blackouts := orEmptyArray(cg.Blackouts)

		_, err := tx.Exec(`
		INSERT INTO caregivers (id, name, lat, lon, max_weekly_hours, certifications, availability, blackouts, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (id) DO NOTHING;
		`, cg.ID, cg.Name, cg.Lat, cg.Lon, cg.MaxWeeklyHours, certs, avail, blackouts)
		if err != nil {
			return fmt.Errorf("seed: caregiver %s: %w", cg.ID, err)
		}
	}

	for _, cl := range seed.Clients {
		certs := orEmptyArray(cl.RequiredCerts)

		_, err := tx.Exec(`
		INSERT INTO clients (id, name, lat, lon, authorized_units, required_certifications, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (id) DO NOTHING;
		`, cl.ID, cl.Name, cl.Lat, cl.Lon, cl.AuthorizedUnits, certs)
		if err != nil {
			return fmt.Errorf("seed: client %s: %w", cl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	return nil
}

func orEmptyArray(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "[]"
	}
	return string(raw)
}
