package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"turfbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentBooking_SameSlot(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	const numGoroutines = 10
	players := make([]*models.User, numGoroutines)
	for i := range players {
		players[i] = createTestUser(t, db, fmt.Sprintf("player%d@example.com", i), models.RolePlayer)
	}

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(userID int64) {
			defer wg.Done()
			_, err := db.CreateBookingTx(ctx, userID, slot.ID)
			results <- err
		}(players[i].ID)
	}

	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one booking must win")
	assert.Equal(t, numGoroutines-1, conflicts)

	stored, err := db.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBooked)
}

func TestConcurrentCancel_SameBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleTurfOwner)
	player := createTestUser(t, db, "player@example.com", models.RolePlayer)
	turf := createTestTurf(t, db, owner.ID)
	slot := createTestSlot(t, db, turf.ID, "2026-10-01", "10:00", "11:00")

	detail, err := db.CreateBookingTx(ctx, player.ID, slot.ID)
	require.NoError(t, err)

	const numGoroutines = 5
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			results <- db.CancelBookingTx(ctx, detail.Booking.ID, player.ID)
		}()
	}

	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyCancelled)
		}
	}
	assert.Equal(t, 1, successes, "exactly one cancel must win")
}
