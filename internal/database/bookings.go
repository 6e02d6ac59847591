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

// CreateBookingTx runs the whole booking sequence inside a single
// transaction: slot existence, availability, the caller's overlapping
// bookings, the ledger insert and the slot flag flip. The flip is a
// compare-and-set on is_booked, so two concurrent requests for the
// same slot cannot both commit; the loser gets ErrSlotTaken.
func (d *DB) CreateBookingTx(ctx context.Context, userID, slotID int64) (*models.BookingDetail, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var slot models.Slot
	err = tx.QueryRowContext(ctx,
		`SELECT id, turf_id, date, start_time, end_time, is_booked, created_at, updated_at
         FROM slots WHERE id = ?`, slotID,
	).Scan(&slot.ID, &slot.TurfID, &slot.Date, &slot.StartTime, &slot.EndTime,
		&slot.IsBooked, &slot.CreatedAt, &slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot in tx: %w", err)
	}

	if slot.IsBooked {
		return nil, ErrSlotTaken
	}

	if err := d.checkOverlap(ctx, tx, userID, &slot); err != nil {
		return nil, err
	}

	var turf models.Turf
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, location, sport_type, owner_id, created_at FROM turfs WHERE id = ?`, slot.TurfID,
	).Scan(&turf.ID, &turf.Name, &turf.Location, &turf.SportType, &turf.OwnerID, &turf.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get turf in tx: %w", err)
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, slot_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, slotID, models.StatusConfirmed, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking in tx: %w", err)
	}
	bookingID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE slots SET is_booked = 1, updated_at = ? WHERE id = ? AND is_booked = 0`, now, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark slot booked in tx: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected in tx: %w", err)
	}
	if rowsAffected == 0 {
		// Someone else flipped the flag between our read and write.
		return nil, ErrSlotTaken
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	slot.IsBooked = true
	slot.UpdatedAt = now
	return &models.BookingDetail{
		Booking: models.Booking{
			ID:        bookingID,
			UserID:    userID,
			SlotID:    slotID,
			Status:    models.StatusConfirmed,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slot: slot,
		Turf: turf,
	}, nil
}

// checkOverlap scans the user's non-cancelled bookings that share the
// requested slot's date and rejects the first intersecting window.
// Cancelled bookings stay out of the set, so a slot the user cancelled
// earlier can be re-booked without conflict.
func (d *DB) checkOverlap(ctx context.Context, tx *sql.Tx, userID int64, slot *models.Slot) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT s.date, s.start_time, s.end_time
         FROM bookings b JOIN slots s ON s.id = b.slot_id
         WHERE b.user_id = ? AND b.status != ? AND s.date = ?`,
		userID, models.StatusCancelled, slot.Date)
	if err != nil {
		return fmt.Errorf("failed to query user bookings in tx: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date, start, end string
		if err := rows.Scan(&date, &start, &end); err != nil {
			return fmt.Errorf("failed to scan booking window in tx: %w", err)
		}
		if schedule.Overlaps(slot.StartTime, slot.EndTime, start, end) {
			return &OverlapError{Date: date, StartTime: start, EndTime: end}
		}
	}
	return rows.Err()
}

// GetBookingForUser returns the booking with its slot, scoped to the
// requesting user. A booking owned by someone else is reported as
// absent so existence does not leak across users.
func (d *DB) GetBookingForUser(ctx context.Context, bookingID, userID int64) (*models.Booking, *models.Slot, error) {
	var booking models.Booking
	var slot models.Slot
	err := d.db.QueryRowContext(ctx,
		`SELECT b.id, b.user_id, b.slot_id, b.status, b.created_at, b.updated_at,
                s.id, s.turf_id, s.date, s.start_time, s.end_time, s.is_booked, s.created_at, s.updated_at
         FROM bookings b JOIN slots s ON s.id = b.slot_id
         WHERE b.id = ? AND b.user_id = ?`, bookingID, userID,
	).Scan(&booking.ID, &booking.UserID, &booking.SlotID, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
		&slot.ID, &slot.TurfID, &slot.Date, &slot.StartTime, &slot.EndTime, &slot.IsBooked, &slot.CreatedAt, &slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, &slot, nil
}

// CancelBookingTx flips the booking to cancelled and frees its slot in
// one transaction. The status update is a compare-and-set: if another
// request cancelled the booking first, the result is ErrAlreadyCancelled
// and nothing is mutated further.
func (d *DB) CancelBookingTx(ctx context.Context, bookingID, userID int64) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var slotID int64
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT slot_id, status FROM bookings WHERE id = ? AND user_id = ?`, bookingID, userID,
	).Scan(&slotID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get booking in tx: %w", err)
	}
	if status == models.StatusCancelled {
		return ErrAlreadyCancelled
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status != ?`,
		models.StatusCancelled, now, bookingID, models.StatusCancelled)
	if err != nil {
		return fmt.Errorf("failed to cancel booking in tx: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected in tx: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyCancelled
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE slots SET is_booked = 0, updated_at = ? WHERE id = ?`, now, slotID); err != nil {
		return fmt.Errorf("failed to free slot in tx: %w", err)
	}

	return tx.Commit()
}

// ListUserBookings returns the user's bookings with slot and turf
// detail, most recent first.
func (d *DB) ListUserBookings(ctx context.Context, userID int64) ([]*models.BookingDetail, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT b.id, b.user_id, b.slot_id, b.status, b.created_at, b.updated_at,
                s.id, s.turf_id, s.date, s.start_time, s.end_time, s.is_booked, s.created_at, s.updated_at,
                t.id, t.name, t.location, t.sport_type, t.owner_id, t.created_at
         FROM bookings b
         JOIN slots s ON s.id = b.slot_id
         JOIN turfs t ON t.id = s.turf_id
         WHERE b.user_id = ?
         ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var details []*models.BookingDetail
	for rows.Next() {
		var detail models.BookingDetail
		if err := rows.Scan(
			&detail.Booking.ID, &detail.Booking.UserID, &detail.Booking.SlotID, &detail.Booking.Status,
			&detail.Booking.CreatedAt, &detail.Booking.UpdatedAt,
			&detail.Slot.ID, &detail.Slot.TurfID, &detail.Slot.Date, &detail.Slot.StartTime, &detail.Slot.EndTime,
			&detail.Slot.IsBooked, &detail.Slot.CreatedAt, &detail.Slot.UpdatedAt,
			&detail.Turf.ID, &detail.Turf.Name, &detail.Turf.Location, &detail.Turf.SportType,
			&detail.Turf.OwnerID, &detail.Turf.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking detail: %w", err)
		}
		details = append(details, &detail)
	}
	return details, rows.Err()
}

// ListTurfBookings returns bookings on a turf with the booking
// player's contact, newest first. Ownership is checked by the caller.
func (d *DB) ListTurfBookings(ctx context.Context, turfID int64) ([]*models.TurfBooking, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT b.id, b.user_id, b.slot_id, b.status, b.created_at, b.updated_at,
                s.id, s.turf_id, s.date, s.start_time, s.end_time, s.is_booked, s.created_at, s.updated_at,
                u.name, u.email, u.phone
         FROM bookings b
         JOIN slots s ON s.id = b.slot_id
         JOIN users u ON u.id = b.user_id
         WHERE s.turf_id = ?
         ORDER BY b.created_at DESC, b.id DESC`, turfID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turf bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.TurfBooking
	for rows.Next() {
		var tb models.TurfBooking
		if err := rows.Scan(
			&tb.Booking.ID, &tb.Booking.UserID, &tb.Booking.SlotID, &tb.Booking.Status,
			&tb.Booking.CreatedAt, &tb.Booking.UpdatedAt,
			&tb.Slot.ID, &tb.Slot.TurfID, &tb.Slot.Date, &tb.Slot.StartTime, &tb.Slot.EndTime,
			&tb.Slot.IsBooked, &tb.Slot.CreatedAt, &tb.Slot.UpdatedAt,
			&tb.Player.Name, &tb.Player.Email, &tb.Player.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan turf booking: %w", err)
		}
		bookings = append(bookings, &tb)
	}
	return bookings, rows.Err()
}
