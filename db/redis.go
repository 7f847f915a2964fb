package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fairplay-verify/replayverifier/config"
	"github.com/fairplay-verify/replayverifier/replay"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the global Redis client instance used by the replay
// cache. Nil until InitRedis succeeds — every cache function tolerates
// a nil client by behaving as an always-miss cache, so the CLI can run
// with caching disabled rather than failing outright.
var RedisClient *redis.Client

// InitRedis connects to Redis using REDIS_URL/REDIS_PASSWORD/REDIS_DB
// from the environment, defaulting to localhost:6379.
func InitRedis() error {
	log.Println("🔌 Connecting to Redis...")

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsed
		}
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     redisPassword,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient.Close()
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("✅ Redis connected successfully - URL: %s", redisURL)
	return nil
}

// CloseRedis closes the Redis connection, if one was opened.
func CloseRedis() error {
	if RedisClient != nil {
		log.Println("🔌 Closing Redis connection...")
		return RedisClient.Close()
	}
	return nil
}

// HealthCheck performs a Redis health check.
func HealthCheck(ctx context.Context) error {
	if RedisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return RedisClient.Ping(ctx).Err()
}

/* =========================
   REPLAY RESULT CACHE
========================= */

// InputDigest returns a stable cache key for a replay.Input: the hex
// SHA-256 of its canonical JSON encoding. Two inputs that decode to the
// same Go value always produce the same digest regardless of original
// field ordering in the source JSON.
func InputDigest(in replay.Input) (string, error) {
	encoded, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode replay input: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// GetCachedResult looks up a previously cached replay.Result by input
// digest. A cache miss (including a nil RedisClient) returns (nil, nil)
// — callers always fall back to a full replay rather than treating a
// miss as an error.
func GetCachedResult(ctx context.Context, digest string) (*replay.Result, error) {
	if RedisClient == nil {
		return nil, nil
	}

	key := fmt.Sprintf("replay:%s", digest)
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached replay result: %w", err)
	}

	var result replay.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached replay result: %w", err)
	}
	return &result, nil
}

// StoreCachedResult memoizes a replay.Result under its input digest,
// with config.ReplayCacheTTL as the expiry. A nil RedisClient makes
// this a no-op — caching is an optional speedup, never a correctness
// dependency.
func StoreCachedResult(ctx context.Context, digest string, result replay.Result) error {
	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal replay result: %w", err)
	}

	key := fmt.Sprintf("replay:%s", digest)
	if err := RedisClient.Set(ctx, key, data, config.ReplayCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cached replay result: %w", err)
	}

	log.Printf("✅ Cached replay result - digest: %s", digest[:12])
	return nil
}
