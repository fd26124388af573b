package cache

import (
	"testing"

	"github.com/Domenick1991/airdesk/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisSnapshotStore(t *testing.T) {
	store := NewRedisSnapshotStore(config.RedisConfig{Addr: "localhost:6379"})
	assert.NotNil(t, store)
	assert.NoError(t, store.Close())
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "snapshot:tickets.json", snapshotKey("tickets.json"))
}
