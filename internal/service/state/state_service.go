// Package state saves and restores the whole catalog.
package state

import (
	"context"

	"github.com/Domenick1991/airdesk/internal/catalog"
	log "github.com/sirupsen/logrus"
)

type StateUseCase interface {
	Save(ctx context.Context) error
	// Load and RestoreDefaults report false when the store holds no snapshot;
	// the catalog is left untouched in that case.
	Load(ctx context.Context) (bool, error)
	RestoreDefaults(ctx context.Context) (bool, error)
}

type StateService struct {
	catalog *catalog.Catalog
}

func NewStateService(c *catalog.Catalog) *StateService {
	return &StateService{catalog: c}
}

func (s *StateService) Save(ctx context.Context) error {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	if err := s.catalog.SaveState(ctx); err != nil {
		return err
	}
	log.WithField("snapshot", s.catalog.StateName()).Info("catalog saved")
	return nil
}

func (s *StateService) Load(ctx context.Context) (bool, error) {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	ok, err := s.catalog.LoadState(ctx, "")
	logLoad(s.catalog.StateName(), ok, err)
	return ok, err
}

func (s *StateService) RestoreDefaults(ctx context.Context) (bool, error) {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	ok, err := s.catalog.LoadDefault(ctx)
	logLoad(s.catalog.DefaultName(), ok, err)
	return ok, err
}

func logLoad(name string, ok bool, err error) {
	entry := log.WithField("snapshot", name)
	switch {
	case err != nil:
		entry.WithError(err).Error("catalog load failed")
	case !ok:
		entry.Warn("snapshot not found, catalog unchanged")
	default:
		entry.Info("catalog loaded")
	}
}

var _ StateUseCase = (*StateService)(nil)
