package middlewares

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// WindowStore counts requests per key inside the current window. Incr returns
// the count after this request and how long until the window resets.
//
// Windows are fixed, not sliding: counters reset all at once when a window
// ends, so a client can burst up to twice the limit across a boundary. Both
// implementations share this behavior because INCR+EXPIRE is what Redis can
// express cheaply.
type WindowStore interface {
	Incr(ctx context.Context, key string) (count int, retryAfter time.Duration, err error)
}

type RateLimiter struct {
	limit    int
	store    WindowStore
	OnDenied func(key string)
}

func NewRateLimiter(limit int, store WindowStore) *RateLimiter {
	return &RateLimiter{
		limit: limit,
		store: store,
	}
}

// Middleware enforces the per-client limit for a derived key. Store failures
// fail open: an unreachable Redis must not take the API down with it.
func (rl *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived
			key = clientIP(c)
		}

		count, retryAfter, err := rl.store.Incr(c.Request.Context(), key)

		if err != nil {
			c.Next()
			return
		}

		if count > rl.limit {
			if rl.OnDenied != nil {
				rl.OnDenied(key)
			}

			secs := int(retryAfter.Seconds())

			if secs < 0 {
				secs = 0
			}

			c.Header("Retry-After", strconv.Itoa(secs))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "rate_limited",
					"message": "Too many requests. Please try again shortly.",
				},
			})

			return
		}

		c.Next()
	}
}

// MemoryStore is the default single-process window counter: one lock, one map
// of client buckets.
type MemoryStore struct {
	mu      sync.Mutex
	window  time.Duration
	clients map[string]*clientBucket
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	return &MemoryStore{
		window:  window,
		clients: make(map[string]*clientBucket),
	}
}

func (s *MemoryStore) Incr(ctx context.Context, key string) (int, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.clients[key]

	if !ok || now.After(b.windowEnd) {
		s.clients[key] = &clientBucket{
			count:     1,
			windowEnd: now.Add(s.window),
		}

		return 1, s.window, nil
	}

	b.count++

	return b.count, time.Until(b.windowEnd), nil
}

// Prune drops expired buckets so idle clients do not accumulate forever.
// Run it on its own goroutine; it returns when ctx is done.
func (s *MemoryStore) Prune(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.mu.Lock()
			for key, b := range s.clients {
				if now.After(b.windowEnd) {
					delete(s.clients, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// RedisStore keeps the window counters in Redis so the limit holds across
// replicas. Fixed windows via INCR + EXPIRE.
type RedisStore struct {
	rdb    *redis.Client
	window time.Duration
}

func NewRedisStore(rdb *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, window: window}
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int, time.Duration, error) {
	rkey := "ratelimit:" + key

	count, err := s.rdb.Incr(ctx, rkey).Result()

	if err != nil {
		return 0, 0, err
	}

	if count == 1 {
		// first hit opens the window
		if err := s.rdb.Expire(ctx, rkey, s.window).Err(); err != nil {
			return int(count), s.window, err
		}

		return int(count), s.window, nil
	}

	ttl, err := s.rdb.TTL(ctx, rkey).Result()

	if err != nil || ttl < 0 {
		ttl = s.window
	}

	return int(count), ttl, nil
}

// helper functions

// for unauthenticated endpoints: rate limit by IP
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	// Normalize a host:port form if one slips through
	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
