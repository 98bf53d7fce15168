package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hu8wei/chathub/internal/common"
	"github.com/redis/go-redis/v9"
)

// RateLimit enforces a fixed-window per-user cap on the dispatch endpoint.
// A nil client disables limiting; redis outages fail open so the limiter
// can never take the API down with it.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		uid := UserID(c)
		if uid == 0 {
			// anonymous callers are rejected downstream anyway
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:ai:%d", uid)
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[RateLimit] redis incr failed: %v", err)
			c.Next()
			return
		}
		if n == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("[RateLimit] redis expire failed: %v", err)
			}
		}
		if n > int64(limit) {
			common.Fail(c, http.StatusTooManyRequests, 42900, "rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
