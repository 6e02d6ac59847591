package repository

import (
	"context"
	"sync/atomic"
	"time"

	"turfbook/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverStateRepository serves from the primary (redis) until it
// fails, then from the fallback (memory), probing the primary again
// after a minute.
type FailoverStateRepository struct {
	primary   domain.StateRepository
	fallback  domain.StateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverStateRepository(primary, fallback domain.StateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

const recoveryProbeInterval = time.Minute

func (r *FailoverStateRepository) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	last := time.Unix(0, r.lastCheck.Load())
	return time.Since(last) > recoveryProbeInterval
}

func (r *FailoverStateRepository) markDown() {
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverStateRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		ok, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return ok, nil
		}
		r.logger.Error().Err(err).Msg("primary state repository failed, falling back to memory")
		r.markDown()
	}
	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}

func (r *FailoverStateRepository) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	// Revocations always land in the fallback too, so a redis outage
	// cannot resurrect a revoked token.
	if err := r.fallback.RevokeToken(ctx, token, ttl); err != nil {
		return err
	}
	if r.usePrimary() {
		if err := r.primary.RevokeToken(ctx, token, ttl); err != nil {
			r.logger.Error().Err(err).Msg("primary state repository failed, falling back to memory")
			r.markDown()
		} else {
			r.isDown.Store(false)
		}
	}
	return nil
}

func (r *FailoverStateRepository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if revoked, err := r.fallback.IsTokenRevoked(ctx, token); err == nil && revoked {
		return true, nil
	}
	if r.usePrimary() {
		revoked, err := r.primary.IsTokenRevoked(ctx, token)
		if err == nil {
			r.isDown.Store(false)
			return revoked, nil
		}
		r.logger.Error().Err(err).Msg("primary state repository failed, falling back to memory")
		r.markDown()
	}
	return false, nil
}
