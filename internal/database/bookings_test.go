package database

import (
	"context"
	"testing"

	"turfbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	detail, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)

	assert.NotZero(t, detail.Booking.ID)
	assert.Equal(t, models.StatusConfirmed, detail.Booking.Status)
	assert.Equal(t, player.ID, detail.Booking.UserID)
	assert.Equal(t, slot.ID, detail.Booking.SlotID)
	assert.True(t, detail.Slot.IsBooked)
	assert.Equal(t, turf.Name, detail.Turf.Name)

	// The slot flag was persisted, not just echoed back.
	stored, err := db.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBooked)
}

func TestCreateBookingTx_SlotNotFound(t *testing.T) {
	db := setupTestDB(t)

	player := createTestUser(t, db, "player@example.com", models.RolePlayer)

	_, err := db.CreateBookingTx(context.Background(), player.ID, 9999)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateBookingTx_SlotTaken(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	first := createTestUser(t, db, "first@example.com", models.RolePlayer)
	second := createTestUser(t, db, "second@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	_, err := db.CreateBookingTx(ctx, first.ID, slot.ID)
	require.NoError(t, err)

	_, err = db.CreateBookingTx(ctx, second.ID, slot.ID)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateBookingTx_OverlapRejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)

	booked := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")
	overlapping := createTestSlot(t, db, turf.ID, "2026-10-01", "10:30", "11:30")

	_, err := db.CreateBookingTx(ctx, player.ID, booked.ID)
	require.NoError(t, err)

	_, err = db.CreateBookingTx(ctx, player.ID, overlapping.ID)
	var overlapErr *OverlapError
	require.ErrorAs(t, err, &overlapErr)
	assert.Equal(t, "2026-10-01", overlapErr.Date)
	assert.Equal(t, "10:00", overlapErr.StartTime)
	assert.Equal(t, "11:00", overlapErr.EndTime)
	assert.Contains(t, err.Error(), "10:00")
}

func TestCreateBookingTx_AdjacentSlotsAllowed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)

	first := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")
	adjacent := createTestSlot(t, db, turf.ID, "2026-10-01", "11:00", "12:00")

	_, err := db.CreateBookingTx(ctx, player.ID, first.ID)
	require.NoError(t, err)

	_, err = db.CreateBookingTx(ctx, player.ID, adjacent.ID)
	assert.NoError(t, err)
}

func TestCreateBookingTx_SameTimeDifferentDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)

	day1 := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")
	day2 := createTestSlot(t, db, turf.ID, "2026-10-02", "10:00", "11:00")

	_, err := db.CreateBookingTx(ctx, player.ID, day1.ID)
	require.NoError(t, err)

	_, err = db.CreateBookingTx(ctx, player.ID, day2.ID)
	assert.NoError(t, err)
}

func TestCancelBookingTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	detail, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)

	require.NoError(t, db.CancelBookingTx(ctx, detail.Booking.ID, player.ID))

	booking, storedSlot, err := db.GetBookingForUser(ctx, detail.Booking.ID, player.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.False(t, storedSlot.IsBooked)
}

func TestCancelBookingTx_DoubleCancel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	detail, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)

	require.NoError(t, db.CancelBookingTx(ctx, detail.Booking.ID, player.ID))
	err = db.CancelBookingTx(ctx, detail.Booking.ID, player.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingTx_OtherUsersBookingHidden(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	intruder := createTestUser(t, db, "intruder@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	detail, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)

	err = db.CancelBookingTx(ctx, detail.Booking.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRebookAfterCancel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	detail, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)
	require.NoError(t, db.CancelBookingTx(ctx, detail.Booking.ID, player.ID))

	// The cancelled booking no longer counts toward overlap, so the
	// same player can take the freed slot again.
	rebooked, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)
	assert.NotEqual(t, detail.Booking.ID, rebooked.Booking.ID)
}

func TestListUserBookings_Order(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)

	first := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")
	second := createTestSlot(t, db, turf.ID, "2026-10-02", "10:00", "11:00")

	d1, err := db.CreateBookingTx(ctx, player.ID, first.ID)
	require.NoError(t, err)
	d2, err := db.CreateBookingTx(ctx, player.ID, second.ID)
	require.NoError(t, err)

	details, err := db.ListUserBookings(ctx, player.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	// Newest first; equal timestamps fall back to id order.
	assert.Equal(t, d2.Booking.ID, details[0].Booking.ID)
	assert.Equal(t, d1.Booking.ID, details[1].Booking.ID)
	assert.Equal(t, turf.Name, details[0].Turf.Name)
}

func TestListUserBookings_Empty(t *testing.T) {
	db := setupTestDB(t)

	player := createTestUser(t, db, "player@example.com", models.RolePlayer)

	details, err := db.ListUserBookings(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestListTurfBookings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	_, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)

	bookings, err := db.ListTurfBookings(ctx, turf.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, player.Name, bookings[0].Player.Name)
	assert.Equal(t, player.Email, bookings[0].Player.Email)
	assert.Equal(t, "2026-10-01", bookings[0].Slot.Date)
}
