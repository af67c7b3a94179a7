package database

import (
	"context"
	"log"
	"time"

	"memory-backend/config"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis initializes the Redis client used for rate limiting and the
// notification event channel. The server keeps running if Redis is down;
// callers treat a nil/unreachable client as "feature disabled".
func ConnectRedis(cfg *config.Config) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis ping failed: %v (rate limiting and live notifications degraded)", err)
		return
	}
	log.Printf("✅ Connected to Redis (%s:%s)", cfg.RedisHost, cfg.RedisPort)
}
