package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mines_backend/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter connects the shared Redis client backing the API rate
// limiter. Without an address, or when the ping fails, the client stays nil
// and the limiter admits everything.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		logger.Warn("REDIS_ADDR not set, API rate limiting disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, API rate limiting disabled", "error", err)
		redisClient = nil
	}
}

// RedisRateLimit caps requests per client IP with a fixed-window counter
// (INCR then EXPIRE under mines:rl:<window_seconds>:<ip>). Redis errors fail
// open so the game API stays available without its limiter.
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "mines:rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := context.Background()

		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if count == 1 {
			// first hit of the window owns the expiry
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			rlBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		rlRequests.WithLabelValues(c.FullPath()).Inc()

		c.Next()
	}
}
