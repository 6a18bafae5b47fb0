package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func revokedTokenKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

// RevokeToken blacklists a token id until the token would have expired
// anyway. Without a Redis client logout only ends the local session.
func RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if RedisClient == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return RedisClient.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err()
}

// IsTokenRevoked reports whether a token id was revoked by logout.
func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if RedisClient == nil || tokenID == "" {
		return false, nil
	}
	_, err := RedisClient.Get(ctx, revokedTokenKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllowSubmission is a fixed-window counter for public form posts keyed
// by form name and client IP. It allows everything when Redis is not
// configured or unreachable.
func AllowSubmission(ctx context.Context, form, clientIP string, limit int64, window time.Duration) bool {
	if RedisClient == nil {
		return true
	}
	key := fmt.Sprintf("ratelimit:%s:%s", form, clientIP)

	pipe := RedisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}
	return incr.Val() <= limit
}
