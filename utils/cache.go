package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"shutterhub/config"
)

// Redis serves two roles, kept on separate logical DBs so flushing the
// volatile snapshot cache can never touch device tokens:
//
//	snapshot cache  - availability calendar snapshots, short TTL, safe to lose
//	token registry  - FCM device tokens written by client apps at sign-in
var (
	SnapshotCacheClient *redis.Client
	TokenRegistryClient *redis.Client
)

func newRedisClient(role string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis %s (db %d): %v", role, db, err)
	}
	return client
}

// InitSnapshotCache connects the availability snapshot cache.
func InitSnapshotCache() {
	SnapshotCacheClient = newRedisClient("snapshot cache", config.AppConfig.RedisCacheDB)
}

// GetSnapshotCacheClient returns the snapshot cache client, connecting lazily.
func GetSnapshotCacheClient() *redis.Client {
	if SnapshotCacheClient == nil {
		InitSnapshotCache()
	}
	return SnapshotCacheClient
}

// InitTokenRegistry connects the device token registry.
func InitTokenRegistry() {
	TokenRegistryClient = newRedisClient("token registry", config.AppConfig.RedisTokenDB)
}

// GetTokenRegistryClient returns the token registry client, connecting lazily.
func GetTokenRegistryClient() *redis.Client {
	if TokenRegistryClient == nil {
		InitTokenRegistry()
	}
	return TokenRegistryClient
}
