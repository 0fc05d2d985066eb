package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/wallet/internal/config"
	"github.com/ruralpay/wallet/internal/logger"
)

// RateLimiter is a per-user fixed window request counter kept in Redis.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, cfg *config.LimitsConfig) *RateLimiter {
	return &RateLimiter{
		redis:  rdb,
		limit:  cfg.RequestsPerWindow,
		window: cfg.RateLimitWindow,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if rl.redis == nil || !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := fmt.Sprintf("ratelimit:user:%d", id.UserID)
		log := logger.WithUser(id.UserID)

		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Warn("[RATELIMIT] counter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			if err := rl.redis.Expire(ctx, key, rl.window).Err(); err != nil {
				log.WithError(err).Warn("[RATELIMIT] could not start window, resetting counter")
				if err := rl.redis.Del(ctx, key).Err(); err != nil {
					log.WithError(err).Error("[RATELIMIT] could not reset counter")
				}
				next.ServeHTTP(w, r)
				return
			}
		}

		if count > int64(rl.limit) {
			// a counter without a TTL would never reset
			if ttl, err := rl.redis.TTL(ctx, key).Result(); err == nil && ttl < 0 {
				log.Warn("[RATELIMIT] counter had no expiry, restarting window")
				rl.redis.Expire(ctx, key, rl.window)
			}
			writeError(w, http.StatusTooManyRequests, "Too many requests made.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
