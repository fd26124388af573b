package cache

import (
	"context"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps snapshots as plain string keys without expiry.
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(cfg config.RedisConfig) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (c *RedisSnapshotStore) Save(ctx context.Context, name string, data []byte) error {
	if err := c.client.Set(ctx, snapshotKey(name), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", name)
	}
	return nil
}

func (c *RedisSnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := c.client.Get(ctx, snapshotKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, errors.Wrapf(err, "redis get %s", name)
	}
	return data, nil
}

func (c *RedisSnapshotStore) Close() error {
	return c.client.Close()
}

func snapshotKey(name string) string {
	return "snapshot:" + name
}

var _ catalog.Store = (*RedisSnapshotStore)(nil)
