package catalog

import (
	"context"
	"slices"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var errNoStore = errors.New("catalog has no snapshot store")

func (c *Catalog) StateName() string   { return c.stateName }
func (c *Catalog) DefaultName() string { return c.defaultName }

// SaveState overwrites the regular store with every airline, flight and ticket.
func (c *Catalog) SaveState(ctx context.Context) error {
	if c.store == nil {
		return errNoStore
	}
	data, err := encodeSnapshot(c.airlines, c.tickets)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	if err := c.store.Save(ctx, c.stateName, data); err != nil {
		return errors.Wrapf(err, "save snapshot %q", c.stateName)
	}
	return nil
}

// LoadState reads the named store, the regular one when name is empty.
// A missing store yields false and leaves the catalog as it was.
func (c *Catalog) LoadState(ctx context.Context, name string) (bool, error) {
	if name == "" {
		name = c.stateName
	}
	return c.load(ctx, name)
}

// LoadDefault restores the factory state kept under the default store name.
func (c *Catalog) LoadDefault(ctx context.Context) (bool, error) {
	return c.load(ctx, c.defaultName)
}

func (c *Catalog) load(ctx context.Context, name string) (bool, error) {
	if c.store == nil {
		return false, errNoStore
	}
	data, err := c.store.Load(ctx, name)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "load snapshot %q", name)
	}

	snap, err := decodeSnapshot(data, c.airlines)
	if err != nil {
		return false, errors.Wrapf(err, "decode snapshot %q", name)
	}

	if snap.hasAirlines {
		c.airlines = snap.airlines
	}
	switch {
	case snap.hasTickets:
		c.tickets = snap.tickets
	case snap.hasAirlines:
		before := len(c.tickets)
		c.tickets = slices.DeleteFunc(c.tickets, func(t *domain.Ticket) bool {
			return !c.owns(t.Flight)
		})
		if dropped := before - len(c.tickets); dropped > 0 {
			log.WithFields(log.Fields{"snapshot": name, "dropped": dropped}).
				Warn("snapshot has no tickets; dropped tickets of replaced flights")
		}
	}
	return true, nil
}
