package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/hotseat-connect4/internal/logger"
)

// Connect returns nil without an error when redis is unreachable; the server runs without the cache.
func Connect(ctx context.Context, addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Log.Warnf("[REDIS] Could not connect to Redis: %v. Running without the snapshot cache.", err)
		client.Close()
		return nil
	}

	logger.Log.Info("[REDIS] Connected successfully")
	return client
}

// ErrSnapshotMiss is returned when a table has no cached snapshot.
var ErrSnapshotMiss = errors.New("snapshot not cached")

// SnapshotCache keeps a JSON copy of each live table under table:<id>.
type SnapshotCache[T any] struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache[T any](client *redis.Client, ttl time.Duration) *SnapshotCache[T] {
	return &SnapshotCache[T]{client: client, ttl: ttl}
}

func key(tableID string) string {
	return "table:" + tableID
}

func (c *SnapshotCache[T]) Put(ctx context.Context, tableID string, snapshot T) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.client.Set(ctx, key(tableID), data, c.ttl).Err()
}

func (c *SnapshotCache[T]) Get(ctx context.Context, tableID string) (T, error) {
	var snapshot T
	data, err := c.client.Get(ctx, key(tableID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snapshot, ErrSnapshotMiss
	}
	if err != nil {
		return snapshot, err
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}

func (c *SnapshotCache[T]) Delete(ctx context.Context, tableID string) error {
	return c.client.Del(ctx, key(tableID)).Err()
}
