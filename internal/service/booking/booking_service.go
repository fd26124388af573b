package booking

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyPassengerName = errors.New("passenger name is required")

type BookingUseCase interface {
	ListTickets(ctx context.Context) []TicketView
	CreateReservation(ctx context.Context, input CreateReservationInput) (*TicketView, error)
	CancelReservation(ctx context.Context, ticket int) (float64, error)
	CancelByToken(ctx context.Context, token string) (float64, error)
}

type EventEmitter interface {
	Emit(ctx context.Context, event kafka.TicketEvent) error
}

type CreateReservationInput struct {
	AirlineIndex int    `json:"airline"`
	FlightIndex  int    `json:"flight"`
	Name         string `json:"name"`
}

type TicketView struct {
	Index         int     `json:"index"`
	Token         string  `json:"token"`
	Name          string  `json:"name"`
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	Destination   string  `json:"destination"`
	International bool    `json:"international"`
	Price         float64 `json:"price"`
}

type BookingService struct {
	catalog *catalog.Catalog
	events  EventEmitter
}

func NewBookingService(c *catalog.Catalog, events EventEmitter) *BookingService {
	return &BookingService{catalog: c, events: events}
}

func (s *BookingService) ListTickets(_ context.Context) []TicketView {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	tickets := s.catalog.Tickets()
	out := make([]TicketView, 0, len(tickets))
	for i, t := range tickets {
		out = append(out, s.view(i, t))
	}
	return out
}

// CreateReservation books the flight at its current price.
func (s *BookingService) CreateReservation(ctx context.Context, input CreateReservationInput) (*TicketView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyPassengerName
	}

	view, err := s.reserve(input.AirlineIndex, input.FlightIndex, name)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, kafka.EventTicketBooked, view)
	return view, nil
}

func (s *BookingService) reserve(airline, flight int, name string) (*TicketView, error) {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	a, err := s.catalog.AirlineAt(airline)
	if err != nil {
		return nil, err
	}
	f, err := a.FlightAt(flight)
	if err != nil {
		return nil, err
	}
	t := domain.NewTicket(name, f, f.Price())
	s.catalog.AddTicket(t)
	view := s.view(len(s.catalog.Tickets())-1, t)

	log.WithFields(log.Fields{
		"token":     t.Token,
		"passenger": name,
		"flight":    f.FlightNumber(),
		"price":     t.Price,
	}).Info("ticket booked")
	return &view, nil
}

// CancelReservation removes the ticket at position idx and returns the refund.
func (s *BookingService) CancelReservation(ctx context.Context, idx int) (float64, error) {
	return s.cancel(ctx, func() (*domain.Ticket, error) {
		tickets := s.catalog.Tickets()
		if idx < 0 || idx >= len(tickets) {
			return nil, domain.ErrInvalidIndex
		}
		return tickets[idx], nil
	})
}

func (s *BookingService) CancelByToken(ctx context.Context, token string) (float64, error) {
	return s.cancel(ctx, func() (*domain.Ticket, error) {
		return s.catalog.TicketByToken(token)
	})
}

func (s *BookingService) cancel(ctx context.Context, find func() (*domain.Ticket, error)) (float64, error) {
	view, refund, err := s.remove(find)
	if err != nil {
		return 0, err
	}
	s.emit(ctx, kafka.EventTicketCancelled, view)
	return refund, nil
}

func (s *BookingService) remove(find func() (*domain.Ticket, error)) (*TicketView, float64, error) {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	t, err := find()
	if err != nil {
		return nil, 0, err
	}
	view := s.view(-1, t)
	refund, err := s.catalog.RemoveTicket(t)
	if err != nil {
		return nil, 0, err
	}

	log.WithFields(log.Fields{"token": t.Token, "refund": refund}).Info("ticket cancelled")
	return &view, refund, nil
}

// view expects the catalog lock to be held.
func (s *BookingService) view(idx int, t *domain.Ticket) TicketView {
	v := TicketView{
		Index:         idx,
		Token:         t.Token,
		Name:          t.Name,
		FlightNumber:  t.Flight.FlightNumber(),
		Destination:   t.Flight.Destination(),
		International: t.Flight.IsInternational(),
		Price:         t.Price,
	}
	if a, _, ok := s.catalog.OwnerOf(t.Flight); ok {
		v.Airline = a.Name()
	}
	return v
}

func (s *BookingService) emit(ctx context.Context, eventType string, v *TicketView) {
	if s.events == nil {
		return
	}
	event := kafka.TicketEvent{
		Type:         eventType,
		Token:        v.Token,
		Passenger:    v.Name,
		Airline:      v.Airline,
		FlightNumber: v.FlightNumber,
		Destination:  v.Destination,
		Price:        v.Price,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.events.Emit(ctx, event); err != nil {
		log.WithError(err).WithFields(log.Fields{"type": eventType, "token": v.Token}).
			Warn("failed to publish ticket event")
	}
}

var _ BookingUseCase = (*BookingService)(nil)
