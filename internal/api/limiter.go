package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter keeps a token bucket per authenticated user.
type userLimiter struct {
	limiters sync.Map // map[int64]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newUserLimiter(rps float64, burst int) *userLimiter {
	return &userLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *userLimiter) allow(userID int64) bool {
	if l.rps <= 0 {
		return true
	}
	val, _ := l.limiters.LoadOrStore(userID, rate.NewLimiter(l.rps, l.burst))
	return val.(*rate.Limiter).Allow()
}

// allowUser enforces both the in-process token bucket and the shared
// redis window counter. Either rejection yields 429.
func (s *HTTPServer) allowUser(ctx context.Context, userID int64, w http.ResponseWriter) bool {
	if !s.limiter.allow(userID) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}

	key := fmt.Sprintf("user:%d", userID)
	window := time.Duration(s.cfg.RateLimitWindow) * time.Second
	ok, err := s.state.CheckRateLimit(ctx, key, s.cfg.RateLimitRequests, window)
	if err != nil {
		// State store trouble should not block traffic.
		s.logger.Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !ok {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}
	return true
}
