package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const (
	dashboardCacheTTL = 2 * time.Minute
	resetTokenTTL     = time.Hour
)

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

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CacheDashboardStats stores a user's computed dashboard payload for a short
// window so repeated dashboard loads skip the aggregate queries.
func CacheDashboardStats(ctx context.Context, userID uint, stats interface{}) error {
	if RedisClient == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("dashboard:stats:%d", userID)
	return RedisClient.Set(ctx, key, data, dashboardCacheTTL).Err()
}

// GetCachedDashboardStats retrieves a cached dashboard payload. A cache miss
// returns (nil, nil).
func GetCachedDashboardStats(ctx context.Context, userID uint) (json.RawMessage, error) {
	if RedisClient == nil {
		return nil, nil
	}
	key := fmt.Sprintf("dashboard:stats:%d", userID)
	data, err := RedisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// InvalidateDashboardStats drops a user's cached dashboard after a
// state-changing action.
func InvalidateDashboardStats(ctx context.Context, userID uint) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("dashboard:stats:%d", userID)
	return RedisClient.Del(ctx, key).Err()
}

// SetPasswordResetToken stores a one-shot reset token with a 1 hour TTL.
func SetPasswordResetToken(ctx context.Context, email, token string) error {
	key := fmt.Sprintf("password:reset:%s", email)
	return RedisClient.Set(ctx, key, token, resetTokenTTL).Err()
}

// GetPasswordResetToken returns the stored token for an email, or "" when
// none exists or it has expired.
func GetPasswordResetToken(ctx context.Context, email string) (string, error) {
	key := fmt.Sprintf("password:reset:%s", email)
	token, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// DeletePasswordResetToken consumes a reset token so the link is single use.
func DeletePasswordResetToken(ctx context.Context, email string) error {
	key := fmt.Sprintf("password:reset:%s", email)
	return RedisClient.Del(ctx, key).Err()
}
