// Package catalog holds the authoritative airlines and ticket reservations
// and keeps tickets consistent with the flights they reference.
package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/Domenick1991/airdesk/internal/domain"
)

const (
	DefaultStateName   = "tickets.json"
	DefaultDefaultName = "default.json"
)

// Store keeps named snapshot payloads. Load returns domain.ErrSnapshotNotFound
// for a name that was never saved.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
}

// Catalog methods never lock. Callers sharing a Catalog between goroutines
// hold the embedded mutex for the whole logical operation.
type Catalog struct {
	sync.Mutex

	airlines []*domain.Airline
	tickets  []*domain.Ticket

	store       Store
	stateName   string
	defaultName string
}

type Option func(*Catalog)

func WithStateName(name string) Option {
	return func(c *Catalog) {
		if name != "" {
			c.stateName = name
		}
	}
}

func WithDefaultName(name string) Option {
	return func(c *Catalog) {
		if name != "" {
			c.defaultName = name
		}
	}
}

func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:       store,
		stateName:   DefaultStateName,
		defaultName: DefaultDefaultName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AllAirlines maps names to airlines; with duplicate names the later airline wins.
func (c *Catalog) AllAirlines() map[string]*domain.Airline {
	out := make(map[string]*domain.Airline, len(c.airlines))
	for _, a := range c.airlines {
		out[a.Name()] = a
	}
	return out
}

// Airlines returns the airlines in insertion order.
func (c *Catalog) Airlines() []*domain.Airline {
	return slices.Clone(c.airlines)
}

func (c *Catalog) AirlineAt(idx int) (*domain.Airline, error) {
	if idx < 0 || idx >= len(c.airlines) {
		return nil, domain.ErrAirlineNotFound
	}
	return c.airlines[idx], nil
}

func (c *Catalog) AllFlights() map[string][]*domain.Flight {
	out := make(map[string][]*domain.Flight, len(c.airlines))
	for _, a := range c.airlines {
		out[a.Name()] = a.Flights()
	}
	return out
}

func (c *Catalog) Tickets() []*domain.Ticket {
	return slices.Clone(c.tickets)
}

func (c *Catalog) TicketByToken(token string) (*domain.Ticket, error) {
	for _, t := range c.tickets {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

// TicketsFor lists the tickets referencing exactly this flight.
func (c *Catalog) TicketsFor(f *domain.Flight) []*domain.Ticket {
	var out []*domain.Ticket
	for _, t := range c.tickets {
		if t.Flight == f {
			out = append(out, t)
		}
	}
	return out
}

func (c *Catalog) AddTicket(t *domain.Ticket) bool {
	if t == nil {
		return false
	}
	c.tickets = append(c.tickets, t)
	return true
}

// RemoveTicketAt removes the ticket at idx and returns its refund.
func (c *Catalog) RemoveTicketAt(idx int) (float64, error) {
	if idx < 0 || idx >= len(c.tickets) {
		return 0, domain.ErrInvalidIndex
	}
	return c.RemoveTicket(c.tickets[idx])
}

// RemoveTicket removes t by identity and returns its refund.
func (c *Catalog) RemoveTicket(t *domain.Ticket) (float64, error) {
	idx := slices.Index(c.tickets, t)
	if t == nil || idx == -1 {
		return 0, domain.ErrTicketNotFound
	}
	c.tickets = slices.Delete(c.tickets, idx, idx+1)
	return t.Price, nil
}

func (c *Catalog) AddAirline(a *domain.Airline) {
	c.airlines = append(c.airlines, a)
}

func (c *Catalog) RemoveAirline(a *domain.Airline) error {
	if a == nil {
		return domain.ErrAirlineNotFound
	}
	if len(a.Flights()) > 0 {
		return domain.ErrAirlineNotEmpty
	}
	idx := slices.Index(c.airlines, a)
	if idx == -1 {
		return domain.ErrAirlineNotFound
	}
	c.airlines = slices.Delete(c.airlines, idx, idx+1)
	return nil
}

// CreateReservation books flight at its current price and returns that price.
func (c *Catalog) CreateReservation(name string, flight *domain.Flight) float64 {
	t := domain.NewTicket(name, flight, flight.Price())
	c.AddTicket(t)
	return t.Price
}

// RemoveFlight deletes flight from airline together with every ticket
// referencing it. The removed tickets are returned in catalog order.
func (c *Catalog) RemoveFlight(airline *domain.Airline, flight *domain.Flight) ([]*domain.Ticket, error) {
	if airline == nil {
		return nil, domain.ErrAirlineNotFound
	}
	if err := airline.RemoveFlight(flight); err != nil {
		return nil, err
	}
	voided := c.TicketsFor(flight)
	c.tickets = slices.DeleteFunc(c.tickets, func(t *domain.Ticket) bool {
		return t.Flight == flight
	})
	return voided, nil
}

// OwnerOf finds the airline owning f and its position in the airline list.
func (c *Catalog) OwnerOf(f *domain.Flight) (*domain.Airline, int, bool) {
	for i, a := range c.airlines {
		if a.HasFlight(f) {
			return a, i, true
		}
	}
	return nil, -1, false
}

func (c *Catalog) owns(f *domain.Flight) bool {
	_, _, ok := c.OwnerOf(f)
	return ok
}
