package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStateRepository fails every call.
type brokenStateRepository struct{}

func (brokenStateRepository) CheckRateLimit(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func (brokenStateRepository) RevokeToken(context.Context, string, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStateRepository) IsTokenRevoked(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func newFailover(primaryBroken bool) *FailoverStateRepository {
	logger := zerolog.Nop()
	fallback := NewMemoryStateRepository()
	if primaryBroken {
		return NewFailoverStateRepository(brokenStateRepository{}, fallback, &logger)
	}
	return NewFailoverStateRepository(NewMemoryStateRepository(), fallback, &logger)
}

func TestFailover_UsesFallbackWhenPrimaryDown(t *testing.T) {
	repo := newFailover(true)
	ctx := context.Background()

	// The first call hits the broken primary, then the fallback serves.
	for i := 0; i < 3; i++ {
		ok, err := repo.CheckRateLimit(ctx, "user:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.CheckRateLimit(ctx, "user:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFailover_RevocationSurvivesPrimaryOutage(t *testing.T) {
	repo := newFailover(true)
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "tok-1", time.Hour))

	revoked, err := repo.IsTokenRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestFailover_HealthyPrimaryServes(t *testing.T) {
	repo := newFailover(false)
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "tok-1", time.Hour))

	revoked, err := repo.IsTokenRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, repo.isDown.Load())
}

func TestFailover_MarksPrimaryDown(t *testing.T) {
	repo := newFailover(true)

	_, _ = repo.CheckRateLimit(context.Background(), "user:1", 3, time.Minute)
	assert.True(t, repo.isDown.Load())
	assert.False(t, repo.usePrimary(), "no probe before the recovery interval")
}
