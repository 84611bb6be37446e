package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/oksasatya/noteful/pkg/metrics"
	"github.com/oksasatya/noteful/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

// KeyByIPAndPath limits by client IP and route pattern.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits authenticated callers per account; run it after Auth.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

type AllowFunc func(*gin.Context) bool // return true for bypass limit

// Limiter decides whether the request identified by key may proceed.
// remaining and reset feed the X-RateLimit headers.
type Limiter interface {
	Allow(c *gin.Context, key string) (allowed bool, remaining int, reset time.Duration, err error)
	Limit() int
}

// atomic INCR + PEXPIRE on first hit
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window counter shared by every API instance.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window}
}

func (l *RedisLimiter) Limit() int { return l.max }

func (l *RedisLimiter) Allow(c *gin.Context, key string) (bool, int, time.Duration, error) {
	ctx := c.Request.Context()
	countI, err := incrExpireScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return true, l.max, 0, err
	}
	count := toInt(countI)
	ttl, _ := l.rdb.PTTL(ctx, key).Result()
	if ttl < 0 {
		ttl = 0
	}
	return count <= l.max, max(l.max-count, 0), ttl, nil
}

// LocalLimiter is a per-process token bucket per key, used when Redis is
// not configured.
type LocalLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*localBucket
	now     func() time.Time
}

type localBucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewLocalLimiter(max int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{max: max, window: window, buckets: map[string]*localBucket{}, now: time.Now}
}

func (l *LocalLimiter) Limit() int { return l.max }

func (l *LocalLimiter) Allow(_ *gin.Context, key string) (bool, int, time.Duration, error) {
	now := l.now()
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max)}
		l.buckets[key] = b
	}
	b.lastAccess = now
	l.evict(now)
	l.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay, nil
	}
	return true, int(b.limiter.TokensAt(now)), 0, nil
}

// evict drops buckets idle for two windows. Callers must hold mu.
func (l *LocalLimiter) evict(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastAccess) > 2*l.window {
			delete(l.buckets, k)
		}
	}
}

// RateLimit with:
// - standard headers (limit/remaining/reset)
// - optional allowlist bypass & OPTIONS skip
// - fail-open when the backing store errors
func RateLimit(l Limiter, keyFn KeyFunc, allow AllowFunc, rec metrics.Recorder) gin.HandlerFunc {
	if l == nil || l.Limit() <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		ok, remaining, reset, err := l.Allow(c, keyFn(c))
		if err != nil {
			c.Next()
			return
		}
		resetSec := int((reset + time.Second - 1) / time.Second)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if !ok {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			rec.RecordRateLimited(normalizePath(c))
			response.Error(c, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		c.Next()
	}
}

func toInt(v interface{}) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
