package repository

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/pkg/errors"
)

// FileSnapshotStore keeps every snapshot as a file named after it inside dir.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) *FileSnapshotStore {
	if dir == "" {
		dir = "."
	}
	return &FileSnapshotStore{dir: dir}
}

func (s *FileSnapshotStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save replaces the file in one rename so a crash never leaves half a snapshot.
func (s *FileSnapshotStore) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(err, "create snapshot dir %s", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp snapshot")
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return errors.Wrapf(err, "replace snapshot %s", name)
	}
	return nil
}

func (s *FileSnapshotStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %s", name)
	}
	return data, nil
}

var _ catalog.Store = (*FileSnapshotStore)(nil)
