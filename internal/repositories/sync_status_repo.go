package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prudhvinik1/odoosync/internal/models"
	"github.com/redis/go-redis/v9"
)

const syncStatusKeyPrefix = "odoosync:sync:last:"

type RedisSyncStatusRepository struct {
	client *redis.Client
}

func NewRedisSyncStatusRepository(client *redis.Client) *RedisSyncStatusRepository {
	return &RedisSyncStatusRepository{client: client}
}

// Save records report as the latest outcome for its entity type. Reports
// never expire; each run overwrites the previous one.
func (r *RedisSyncStatusRepository) Save(ctx context.Context, report *models.SyncReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal sync report: %w", err)
	}

	if err := r.client.Set(ctx, syncStatusKey(report.Entity), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save sync report: %w", err)
	}
	return nil
}

func (r *RedisSyncStatusRepository) Get(ctx context.Context, entity models.EntityType) (*models.SyncReport, error) {
	data, err := r.client.Get(ctx, syncStatusKey(entity)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync report: %w", err)
	}

	var report models.SyncReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync report: %w", err)
	}
	return &report, nil
}

// GetAll returns the latest report of every entity type that has one, in
// models.AllEntities order, using a single round trip.
func (r *RedisSyncStatusRepository) GetAll(ctx context.Context) ([]*models.SyncReport, error) {
	keys := make([]string, len(models.AllEntities))
	for i, entity := range models.AllEntities {
		keys[i] = syncStatusKey(entity)
	}

	results, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get sync reports: %w", err)
	}

	reports := make([]*models.SyncReport, 0, len(results))
	for _, result := range results {
		data, ok := result.(string)
		if !ok {
			continue
		}

		var report models.SyncReport
		if err := json.Unmarshal([]byte(data), &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sync report: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, nil
}

func syncStatusKey(entity models.EntityType) string {
	return syncStatusKeyPrefix + string(entity)
}
