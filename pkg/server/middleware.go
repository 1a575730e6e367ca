package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio-chat/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// requestID reuses an incoming id or mints a ULID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", kv...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", kv...)
		default:
			log.Debug("request", kv...)
		}
	}
}

// rateLimiter keeps one token bucket per client IP. Buckets idle longer than
// staleAfter are dropped on the next call.
type rateLimiter struct {
	limit      rate.Limit
	burst      int
	staleAfter time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(limit rate.Limit, burst int) (rl *rateLimiter) {
	rl = &rateLimiter{
		limit:      limit,
		burst:      burst,
		staleAfter: 10 * time.Minute,
		buckets:    make(map[string]*bucket),
	}
	return rl
}

func (rl *rateLimiter) allow(ip string, now time.Time) (ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.staleAfter {
			delete(rl.buckets, key)
		}
	}

	b, exists := rl.buckets[ip]
	if !exists {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = now

	ok = b.limiter.AllowN(now, 1)
	return ok
}

func (rl *rateLimiter) middleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			log.Warn("rate limited", "client_ip", c.ClientIP(), "path", c.FullPath())
			respondError(c, http.StatusTooManyRequests, "rate_limited", errors.New("too many requests"))
			return
		}
		c.Next()
	}
}
