package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRepository_RateLimit(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := repo.CheckRateLimit(ctx, "user:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.CheckRateLimit(ctx, "user:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStateRepository_RateLimitWindowExpiry(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := repo.CheckRateLimit(ctx, "user:1", 3, 10*time.Millisecond)
		require.NoError(t, err)
	}

	time.Sleep(20 * time.Millisecond)

	ok, err := repo.CheckRateLimit(ctx, "user:1", 3, 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStateRepository_TokenRevocation(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "tok-1", time.Hour))

	revoked, err := repo.IsTokenRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsTokenRevoked(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStateRepository_ExpiredRevocation(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "tok-1", 5*time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := repo.IsTokenRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStateRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.CheckRateLimit(ctx, "shared", 100, time.Minute)
			_ = repo.RevokeToken(ctx, "tok", time.Minute)
			_, _ = repo.IsTokenRevoked(ctx, "tok")
		}()
	}
	wg.Wait()
}
