package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/events"
	"turfbook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fixedClock pins Now for deadline and expiry tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func setupRepo(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "service.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, repo domain.Repository, email, role string) *models.User {
	t.Helper()
	user := &models.User{Name: "Seed User", Email: email, PasswordHash: "hash", Role: role}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func seedTurf(t *testing.T, repo domain.Repository, ownerID int64) *models.Turf {
	t.Helper()
	turf := &models.Turf{Name: "Seed Arena", Location: "Bangalore", SportType: "football", OwnerID: ownerID}
	require.NoError(t, repo.CreateTurf(context.Background(), turf))
	return turf
}

func seedSlot(t *testing.T, repo domain.Repository, turfID int64, date, start, end string) *models.Slot {
	t.Helper()
	slot := &models.Slot{TurfID: turfID, Date: date, StartTime: start, EndTime: end}
	require.NoError(t, repo.CreateSlot(context.Background(), slot))
	return slot
}

// capturingBus records published events for assertions.
type capturingBus struct {
	bus       *events.EventBus
	published []string
}

func newCapturingBus() *capturingBus {
	c := &capturingBus{bus: events.NewEventBus()}
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingCancelled,
		events.EventSlotPublished,
	} {
		et := eventType
		c.bus.Subscribe(et, func(*events.Event) error {
			c.published = append(c.published, et)
			return nil
		})
	}
	return c
}

func (c *capturingBus) PublishJSON(eventType string, payload interface{}) error {
	return c.bus.PublishJSON(eventType, payload)
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
