package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"turfbook/internal/models"
	"turfbook/internal/schedule"
)

func (d *DB) CreateSlot(ctx context.Context, slot *models.Slot) error {
	now := time.Now()
	result, err := d.db.ExecContext(ctx,
		`INSERT INTO slots (turf_id, date, start_time, end_time, is_booked, created_at, updated_at)
         VALUES (?, ?, ?, ?, 0, ?, ?)`,
		slot.TurfID, slot.Date, slot.StartTime, slot.EndTime, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	slot.ID = id
	slot.IsBooked = false
	slot.CreatedAt = now
	slot.UpdatedAt = now
	return nil
}

func (d *DB) GetSlot(ctx context.Context, id int64) (*models.Slot, error) {
	var slot models.Slot
	err := d.db.QueryRowContext(ctx,
		`SELECT id, turf_id, date, start_time, end_time, is_booked, created_at, updated_at
         FROM slots WHERE id = ?`, id,
	).Scan(&slot.ID, &slot.TurfID, &slot.Date, &slot.StartTime, &slot.EndTime,
		&slot.IsBooked, &slot.CreatedAt, &slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

// ListAvailableSlots returns the turf's booking-eligible slots:
// unbooked and not yet started relative to now, ordered by date then
// start time. An expired slot stays out even with is_booked=0.
func (d *DB) ListAvailableSlots(ctx context.Context, turfID int64, now time.Time) ([]*models.Slot, error) {
	return d.queryEligibleSlots(ctx, turfID, now, "")
}

// ListEligibleSlots is ListAvailableSlots optionally pinned to one
// date; an empty date means any future window.
func (d *DB) ListEligibleSlots(ctx context.Context, turfID int64, now time.Time, date string) ([]*models.Slot, error) {
	return d.queryEligibleSlots(ctx, turfID, now, date)
}

func (d *DB) queryEligibleSlots(ctx context.Context, turfID int64, now time.Time, date string) ([]*models.Slot, error) {
	today := now.Format(schedule.DateLayout)
	currentTime := now.Format(schedule.TimeLayout)

	query := `SELECT id, turf_id, date, start_time, end_time, is_booked, created_at, updated_at
              FROM slots
              WHERE turf_id = ? AND is_booked = 0
                AND (date > ? OR (date = ? AND start_time > ?))`
	args := []any{turfID, today, today, currentTime}
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY date ASC, start_time ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListSlotsByTurf returns every slot of a turf regardless of state,
// ordered by date then start time. Used by the owner view, which
// derives available/booked/expired per slot.
func (d *DB) ListSlotsByTurf(ctx context.Context, turfID int64) ([]*models.Slot, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, turf_id, date, start_time, end_time, is_booked, created_at, updated_at
         FROM slots WHERE turf_id = ? ORDER BY date ASC, start_time ASC`, turfID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func scanSlots(rows *sql.Rows) ([]*models.Slot, error) {
	var slots []*models.Slot
	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(&slot.ID, &slot.TurfID, &slot.Date, &slot.StartTime, &slot.EndTime,
			&slot.IsBooked, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}
	return slots, rows.Err()
}
