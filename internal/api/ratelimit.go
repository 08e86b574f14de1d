package api

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter keeps a token bucket per key. Idle buckets expire.
type MemoryLimiter struct {
	perSecond rate.Limit
	burst     int
	buckets   *gocache.Cache
}

func NewMemoryLimiter(perMinute float64) *MemoryLimiter {
	return &MemoryLimiter{
		perSecond: rate.Limit(perMinute / 60),
		burst:     burstFor(perMinute),
		buckets:   gocache.New(10*time.Minute, 20*time.Minute),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	if value, found := l.buckets.Get(key); found {
		return value.(*rate.Limiter).Allow()
	}

	limiter := rate.NewLimiter(l.perSecond, l.burst)
	if err := l.buckets.Add(key, limiter, gocache.DefaultExpiration); err != nil {
		if value, found := l.buckets.Get(key); found {
			limiter = value.(*rate.Limiter)
		}
	}
	return limiter.Allow()
}

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter counts requests per key in a fixed one minute window shared by
// every instance. Redis failures let the request through.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, perMinute float64) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		limit:  burstFor(perMinute),
		window: time.Minute,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, l.window.Milliseconds(), l.limit).Int64()
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Warnf("rate limiter unavailable: %v", err)
		return true
	}
	return allowed == 1
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

func burstFor(perMinute float64) int {
	return int(math.Max(1, math.Ceil(perMinute)))
}

func rateLimit(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := scope + ":" + actorFrom(c).ID
		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errorBody{
				Code:    "rate_limited",
				Message: "too many requests, try again later",
			}})
			return
		}
		c.Next()
	}
}
