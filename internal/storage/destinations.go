package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const destinationColumns = "id, name, description, best_months, ideal_profiles, airport_codes, status, created_at"

// CreateDestination inserts a catalog entry and returns its id.
// An empty status defaults to "active".
func (s *Store) CreateDestination(ctx context.Context, d Destination) (int64, error) {
	if d.Status == "" {
		d.Status = "active"
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO destinations (name, description, best_months, ideal_profiles, airport_codes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Description, d.BestMonths, d.IdealProfiles, d.AirportCodes, d.Status,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetDestination returns one catalog entry, or ErrNotFound.
func (s *Store) GetDestination(ctx context.Context, id int64) (Destination, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE id = ?", id)
	return scanDestination(row)
}

// ListDestinations returns the whole catalog, newest first.
func (s *Store) ListDestinations(ctx context.Context) ([]Destination, error) {
	return s.listDestinations(ctx, "SELECT "+destinationColumns+" FROM destinations ORDER BY id DESC")
}

// ListActiveDestinations returns the sellable catalog in insertion order,
// which is the priority order the pricing estimator scans in.
func (s *Store) ListActiveDestinations(ctx context.Context) ([]Destination, error) {
	return s.listDestinations(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE status = 'active' ORDER BY id ASC")
}

func (s *Store) listDestinations(ctx context.Context, query string) ([]Destination, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// UpdateDestination replaces every editable field of the entry.
func (s *Store) UpdateDestination(ctx context.Context, d Destination) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE destinations
		SET name = ?, description = ?, best_months = ?, ideal_profiles = ?, airport_codes = ?, status = ?
		WHERE id = ?`,
		d.Name, d.Description, d.BestMonths, d.IdealProfiles, d.AirportCodes, d.Status, d.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDestination removes a catalog entry.
func (s *Store) DeleteDestination(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM destinations WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (Destination, error) {
	var d Destination
	var createdAt string
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.BestMonths, &d.IdealProfiles,
		&d.AirportCodes, &d.Status, &createdAt)
	if err == sql.ErrNoRows {
		return Destination{}, ErrNotFound
	}
	if err != nil {
		return Destination{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Destination{}, fmt.Errorf("parsing created_at: %w", err)
	}
	d.CreatedAt = t
	return d, nil
}

// seedDestinations holds the launch catalog, inserted once on first boot.
var seedDestinations = []Destination{
	{
		Name:          "Rio de Janeiro",
		Description:   "Cidade Maravilhosa com praias icônicas, Cristo Redentor e vida noturna vibrante",
		BestMonths:    "Dezembro a Março",
		IdealProfiles: "adventure,cultural,luxury",
		AirportCodes:  "GIG,SDU",
	},
	{
		Name:          "Salvador",
		Description:   "Capital da Bahia rica em cultura afro-brasileira, música e Pelourinho histórico",
		BestMonths:    "Setembro a Março",
		IdealProfiles: "cultural,spiritual",
		AirportCodes:  "SSA",
	},
	{
		Name:          "Chapada Diamantina",
		Description:   "Paraíso natural com cachoeiras, cavernas e trilhas na Bahia",
		BestMonths:    "Abril a Setembro",
		IdealProfiles: "adventure,spiritual",
		AirportCodes:  "LEC",
	},
}

// SeedDestinations inserts the launch catalog when the table is empty.
// Idempotent: an already-populated catalog is left untouched.
func (s *Store) SeedDestinations(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM destinations").Scan(&count); err != nil {
		return fmt.Errorf("counting destinations: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, d := range seedDestinations {
		if _, err := s.CreateDestination(ctx, d); err != nil {
			return fmt.Errorf("seeding destination %q: %w", d.Name, err)
		}
	}
	return nil
}
