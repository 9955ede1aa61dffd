package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/carson-networks/resell-server/internal/logging"
)

// UsernameHeader carries the authenticated username.
const UsernameHeader = "X-Username"

// rateLimiter keeps one token bucket per key, forgetting idle keys.
type rateLimiter struct {
	// mu makes get-or-create atomic so concurrent first requests share a bucket.
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			10000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: max(requestsPerMin/10, 1),
	}
}

func (rl *rateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}

func (rl *rateLimiter) Allow(key string) error {
	if !rl.limiterFor(key).Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}

// RateLimit throttles the listed operations per requesting username.
// A requestsPerMin of zero disables the limit.
func RateLimit(api huma.API, requestsPerMin int, operationIDs ...string) func(huma.Context, func(huma.Context)) {
	if requestsPerMin <= 0 {
		return func(ctx huma.Context, next func(huma.Context)) { next(ctx) }
	}

	limited := make(map[string]struct{}, len(operationIDs))
	for _, id := range operationIDs {
		limited[id] = struct{}{}
	}
	limiter := newRateLimiter(requestsPerMin)

	return func(ctx huma.Context, next func(huma.Context)) {
		if _, ok := limited[ctx.Operation().OperationID]; !ok {
			next(ctx)
			return
		}

		key := ctx.Header(UsernameHeader)
		if key == "" {
			key = ctx.RemoteAddr()
		}
		if err := limiter.Allow(key); err != nil {
			logging.GetLogData(ctx.Context()).AddData("rateLimited", key)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "too many purchase attempts, slow down", err)
			return
		}
		next(ctx)
	}
}
