package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthStatus reports reachability of each backing store. Mongo holds the
// bookings and reservations, the other two are the Redis roles from cache.go.
type HealthStatus struct {
	Bookings      bool      `json:"bookings"`
	SnapshotCache bool      `json:"snapshotCache"`
	TokenRegistry bool      `json:"tokenRegistry"`
	CheckedAt     time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest snapshot taken by the monitor.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the stores once a minute and keeps the latest
// result in memory for the health endpoint.
func StartHealthMonitor(snapshots, tokens *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			status := HealthStatus{
				Bookings:      mongoClient.Ping(ctx, readpref.Primary()) == nil,
				SnapshotCache: snapshots.Ping(ctx).Err() == nil,
				TokenRegistry: tokens.Ping(ctx).Err() == nil,
				CheckedAt:     time.Now(),
			}
			cancel()

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
