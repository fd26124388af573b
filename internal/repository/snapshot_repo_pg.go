package repository

import (
	"context"

	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS catalog_snapshots (
	name       TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PGSnapshotStore struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) *PGSnapshotStore {
	return &PGSnapshotStore{db: db}
}

// EnsureSchema creates the snapshots table when it does not exist yet.
func (r *PGSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSnapshotsTable); err != nil {
		return errors.Wrap(err, "create catalog_snapshots")
	}
	return nil
}

func (r *PGSnapshotStore) Save(ctx context.Context, name string, data []byte) error {
	_, err := r.db.Exec(ctx, `INSERT INTO catalog_snapshots (name, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`, name, string(data))
	if err != nil {
		return errors.Wrapf(err, "upsert snapshot %s", name)
	}
	return nil
}

func (r *PGSnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := r.db.QueryRow(ctx, `SELECT payload::text FROM catalog_snapshots WHERE name=$1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select snapshot %s", name)
	}
	return []byte(payload), nil
}

var _ catalog.Store = (*PGSnapshotStore)(nil)
