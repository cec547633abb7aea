package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/salongo/internal/httperr"
)

// IPRateLimiter keeps one token bucket per client ip. Idle buckets
// expire from the cache.
type IPRateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
}

// NewIPRateLimiter allows perMinute requests per ip, with a burst of the
// same size.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &IPRateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		limiters: cache.New(10*time.Minute, 20*time.Minute),
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	if v, ok := l.limiters.Get(ip); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(l.limit, l.burst)
	// Add fails when another request created the bucket first
	if err := l.limiters.Add(ip, lim, cache.DefaultExpiration); err != nil {
		if v, ok := l.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).Allow()
}

func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			httperr.WriteRedirect(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please wait a minute.", "")
			return
		}
		c.Next()
	}
}
