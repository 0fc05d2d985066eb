package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/wallet/internal/logger"
	"github.com/spf13/viper"
)

// InitRedis returns nil when Redis is unreachable; callers treat that as
// running without the retry queue and rate limiter.
func InitRedis() *redis.Client {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	addr := viper.GetString("redis.host") + ":" + viper.GetString("redis.port")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Warnf("Redis connection failed, continuing without Redis: %v", err)
		rdb.Close()
		return nil
	}

	logger.Log.Info("Redis connection established")
	return rdb
}
