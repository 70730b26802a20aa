package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/maypok86/otter/v2"
	"golang.org/x/time/rate"
	"net/http"
	"sync"
	"time"
)

const (
	maxLimitedClients = 100_000
	limiterIdleTTL    = 10 * time.Minute
)

// RateLimiter keeps one token bucket per client IP. Buckets of clients that
// went quiet are dropped by the cache.
type RateLimiter struct {
	mu      sync.Mutex
	clients *otter.Cache[string, *rate.Limiter]
	every   rate.Limit
	burst   int
}

func NewRateLimiter(requests int, per time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: otter.Must(&otter.Options[string, *rate.Limiter]{
			MaximumSize:      maxLimitedClients,
			ExpiryCalculator: otter.ExpiryAccessing[string, *rate.Limiter](limiterIdleTTL),
		}),
		every: rate.Every(per / time.Duration(requests)),
		burst: requests,
	}
}

func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	lim, ok := rl.clients.GetIfPresent(client)
	if !ok {
		lim = rate.NewLimiter(rl.every, rl.burst)
		rl.clients.Set(client, lim)
	}
	rl.mu.Unlock()

	return lim.Allow()
}

// RateLimit answers 429 once a client IP spends its budget. A nil limiter
// lets everything through.
func (m *Middlewares) RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		m.log.Debug("Rate limit exceeded", "client", c.ClientIP(), "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
}
