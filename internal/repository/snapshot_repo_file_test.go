package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewFileSnapshotStore(t.TempDir())

	require.NoError(t, store.Save(ctx, "tickets.json", []byte(`{"a":1}`)))
	require.NoError(t, store.Save(ctx, "tickets.json", []byte(`{"b":2}`)))

	data, err := store.Load(ctx, "tickets.json")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(data))
}

func TestFileSnapshotStore_LoadMissing(t *testing.T) {
	store := NewFileSnapshotStore(t.TempDir())

	_, err := store.Load(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestFileSnapshotStore_CreatesDirAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileSnapshotStore(dir)

	require.NoError(t, store.Save(context.Background(), "default.json", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "default.json", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, "default.json"), store.Path("default.json"))
}

func TestNewFileSnapshotStore_DefaultsToWorkingDir(t *testing.T) {
	assert.Equal(t, "tickets.json", NewFileSnapshotStore("").Path("tickets.json"))
}
