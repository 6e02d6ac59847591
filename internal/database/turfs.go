package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"turfbook/internal/models"
)

func (d *DB) CreateTurf(ctx context.Context, turf *models.Turf) error {
	now := time.Now()
	result, err := d.db.ExecContext(ctx,
		`INSERT INTO turfs (name, location, sport_type, owner_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		turf.Name, turf.Location, turf.SportType, turf.OwnerID, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create turf: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	turf.ID = id
	turf.CreatedAt = now
	return nil
}

func (d *DB) GetTurfByID(ctx context.Context, id int64) (*models.Turf, error) {
	return d.scanTurf(d.db.QueryRowContext(ctx,
		`SELECT id, name, location, sport_type, owner_id, created_at FROM turfs WHERE id = ?`, id))
}

func (d *DB) GetTurfByOwner(ctx context.Context, ownerID int64) (*models.Turf, error) {
	return d.scanTurf(d.db.QueryRowContext(ctx,
		`SELECT id, name, location, sport_type, owner_id, created_at FROM turfs WHERE owner_id = ?`, ownerID))
}

func (d *DB) scanTurf(row *sql.Row) (*models.Turf, error) {
	var turf models.Turf
	err := row.Scan(&turf.ID, &turf.Name, &turf.Location, &turf.SportType, &turf.OwnerID, &turf.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTurfNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get turf: %w", err)
	}
	return &turf, nil
}

// SearchTurfs filters by case-insensitive substring on location and
// sport type. Empty filters match everything.
func (d *DB) SearchTurfs(ctx context.Context, location, sport string) ([]*models.Turf, error) {
	query := `SELECT id, name, location, sport_type, owner_id, created_at FROM turfs
              WHERE LOWER(location) LIKE ? AND LOWER(sport_type) LIKE ?
              ORDER BY name ASC`
	rows, err := d.db.QueryContext(ctx, query, likePattern(location), likePattern(sport))
	if err != nil {
		return nil, fmt.Errorf("failed to search turfs: %w", err)
	}
	defer rows.Close()

	var turfs []*models.Turf
	for rows.Next() {
		var turf models.Turf
		if err := rows.Scan(&turf.ID, &turf.Name, &turf.Location, &turf.SportType, &turf.OwnerID, &turf.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turf: %w", err)
		}
		turfs = append(turfs, &turf)
	}
	return turfs, rows.Err()
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
