package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// Postgres-backed implementation of the ShiftRepository port.
//
// The one-time/recurring sum type maps onto a kind column plus mutually
// exclusive nullable columns; a table CHECK constraint enforces exactly one
// representation and scanning rejects rows that violate it anyway.
type PostgresShiftRepository struct{ DB *sql.DB }

func NewPostgresShiftRepository(db *sql.DB) *PostgresShiftRepository {
	return &PostgresShiftRepository{DB: db}
}

const (
	kindOneTime   = "one_time"
	kindRecurring = "recurring"
)

const shiftColumns = `
	id,
	caregiver_id,
	client_id,
	kind,
	shift_date,
	weekday,
	effective_from,
	start_minutes,
	end_minutes,
	notes,
	active
`

func (r *PostgresShiftRepository) GetShift(ctx context.Context, id string) (*domain.ShiftDefinition, error) {
	if r.DB == nil {
		return nil, errors.New("shift repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE id = $1;`, id)

	def, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get shift %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get shift %s: %w", id, err)
	}
	return def, nil
}

func (r *PostgresShiftRepository) ListActiveByCaregiver(ctx context.Context, caregiverID string) ([]*domain.ShiftDefinition, error) {
	return r.list(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE active AND caregiver_id = $1 ORDER BY id;`,
		caregiverID)
}

func (r *PostgresShiftRepository) ListActive(ctx context.Context) ([]*domain.ShiftDefinition, error) {
	return r.list(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE active ORDER BY id;`)
}

func (r *PostgresShiftRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ShiftDefinition, error) {
	if r.DB == nil {
		return nil, errors.New("shift repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: query shifts table: %w", err)
	}
	defer rows.Close()

	defs := make([]*domain.ShiftDefinition, 0, 64)
	for rows.Next() {
		def, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("list shifts: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shifts: row iteration: %w", err)
	}

	return defs, nil
}

func (r *PostgresShiftRepository) CreateShift(ctx context.Context, def *domain.ShiftDefinition) error {
	if r.DB == nil {
		return errors.New("shift repository: DB is nil")
	}

	var (
		kind          string
		shiftDate     sql.NullTime
		weekday       sql.NullInt64
		effectiveFrom sql.NullTime
	)

	switch s := def.Schedule.(type) {
	case domain.OneTime:
		kind = kindOneTime
		shiftDate = sql.NullTime{Time: domain.DateOnly(s.Date), Valid: true}
	case domain.Recurring:
		kind = kindRecurring
		weekday = sql.NullInt64{Int64: int64(s.Weekday), Valid: true}
		if s.EffectiveFrom != nil {
			effectiveFrom = sql.NullTime{Time: domain.DateOnly(*s.EffectiveFrom), Valid: true}
		}
	default:
		return fmt.Errorf("create shift %s: unsupported schedule type %T", def.ID, def.Schedule)
	}

	_, err := r.DB.ExecContext(ctx, `
	INSERT INTO shifts (id, caregiver_id, client_id, kind, shift_date, weekday,
		effective_from, start_minutes, end_minutes, notes, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		def.ID, def.CaregiverID, def.ClientID, kind, shiftDate, weekday,
		effectiveFrom, def.Start.Minutes(), def.End.Minutes(), def.Notes, def.Active)
	if err != nil {
		return fmt.Errorf("create shift %s: %w", def.ID, err)
	}

	return nil
}

func (r *PostgresShiftRepository) ReassignShift(ctx context.Context, id, newCaregiverID string) error {
	if r.DB == nil {
		return errors.New("shift repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE shifts SET caregiver_id = $2 WHERE id = $1;`, id, newCaregiverID)
	if err != nil {
		return fmt.Errorf("reassign shift %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("reassign shift %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresShiftRepository) DeleteShift(ctx context.Context, id string) error {
	if r.DB == nil {
		return errors.New("shift repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete shift %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete shift %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanShift(row rowScanner) (*domain.ShiftDefinition, error) {
	var (
		def           domain.ShiftDefinition
		kind          string
		shiftDate     sql.NullTime
		weekday       sql.NullInt64
		effectiveFrom sql.NullTime
		startMinutes  int
		endMinutes    int
	)

	err := row.Scan(&def.ID, &def.CaregiverID, &def.ClientID, &kind, &shiftDate,
		&weekday, &effectiveFrom, &startMinutes, &endMinutes, &def.Notes, &def.Active)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindOneTime:
		if !shiftDate.Valid || weekday.Valid {
			return nil, fmt.Errorf("scan shift %s: one-time row with invalid columns", def.ID)
		}
		def.Schedule = domain.OneTime{Date: domain.DateOnly(shiftDate.Time)}
	case kindRecurring:
		if !weekday.Valid || shiftDate.Valid {
			return nil, fmt.Errorf("scan shift %s: recurring row with invalid columns", def.ID)
		}
		rec := domain.Recurring{Weekday: time.Weekday(weekday.Int64)}
		if effectiveFrom.Valid {
			from := domain.DateOnly(effectiveFrom.Time)
			rec.EffectiveFrom = &from
		}
		def.Schedule = rec
	default:
		return nil, fmt.Errorf("scan shift %s: unknown kind %q", def.ID, kind)
	}

	def.Start = domain.TimeOfDay(startMinutes)
	def.End = domain.TimeOfDay(endMinutes)

	return &def, nil
}
