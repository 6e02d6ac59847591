package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryStateRepository is the in-process fallback when redis is down
// or not configured. Entries expire lazily on access.
type MemoryStateRepository struct {
	mu         sync.Mutex
	rateLimits map[string]*rateLimitEntry
	revoked    map[string]time.Time
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{
		rateLimits: make(map[string]*rateLimitEntry),
		revoked:    make(map[string]time.Time),
	}
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryStateRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rateLimits[key]
	if !ok || now.After(entry.expiresAt) {
		r.rateLimits[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
		return true, nil
	}

	entry.count++
	return entry.count <= limit, nil
}

func (r *MemoryStateRepository) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (r *MemoryStateRepository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiresAt, ok := r.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(r.revoked, token)
		return false, nil
	}
	return true, nil
}
