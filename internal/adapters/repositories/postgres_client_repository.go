package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

// Postgres-backed implementation of the ClientRepository port.
type PostgresClientRepository struct{ DB *sql.DB }

func NewPostgresClientRepository(db *sql.DB) *PostgresClientRepository {
	return &PostgresClientRepository{DB: db}
}

const clientColumns = `
	id,
	name,
	lat,
	lon,
	authorized_units,
	required_certifications,
	active
`

func (r *PostgresClientRepository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if r.DB == nil {
		return nil, errors.New("client repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1;`, id)

	cl, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get client %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return cl, nil
}

func (r *PostgresClientRepository) ListActiveClients(ctx context.Context) ([]*domain.Client, error) {
	if r.DB == nil {
		return nil, errors.New("client repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE active ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list clients: query clients table: %w", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0, 64)
	for rows.Next() {
		cl, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("list clients: %w", err)
		}
		clients = append(clients, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: row iteration: %w", err)
	}

	return clients, nil
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var (
		cl        domain.Client
		lat, lon  sql.NullFloat64
		units     sql.NullInt64
		certsJSON []byte
	)

	err := row.Scan(&cl.ID, &cl.Name, &lat, &lon, &units, &certsJSON, &cl.Active)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lon.Valid {
		cl.Location = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	if units.Valid {
		u := int(units.Int64)
		cl.AuthorizedUnits = &u
	}
	if len(certsJSON) > 0 {
		if err := json.Unmarshal(certsJSON, &cl.RequiredCertifications); err != nil {
			return nil, fmt.Errorf("scan client %s: decode required certifications: %w", cl.ID, err)
		}
	}

	return &cl, nil
}
