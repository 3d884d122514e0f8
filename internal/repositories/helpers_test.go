package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Helper functions for test setup

// getTestStore returns a fresh SQLite store in the test's temp dir
func getTestStore(t *testing.T) *database.Store {
	store, err := database.Open(context.Background(), "sqlite:///"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open test store")
	t.Cleanup(func() { store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// getTestRedisClient returns a Redis client for testing, skipping the test
// when no local Redis is reachable.
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests (different from production DB 0)
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client
}

// cleanupTestSyncKeys removes test data
func cleanupTestSyncKeys(t *testing.T, client *redis.Client, ctx context.Context) {
	keys, err := client.Keys(ctx, "odoosync:sync:*").Result()
	if err != nil {
		t.Logf("Warning: failed to get keys: %v", err)
		return
	}

	if len(keys) > 0 {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			t.Logf("Warning: failed to cleanup sync keys: %v", err)
		}
	}
}
