package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the optional Redis connection used for admin
// sessions. Returns nil when Redis is unconfigured or unreachable; the
// session store degrades to stateless tokens in that case.
func ConnectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Println("⚠️  Invalid REDIS_URL, running without session store:", err)
		return nil
	}

	client := redis.NewClient(opts)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("⚠️  Redis not available, running without session store:", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
