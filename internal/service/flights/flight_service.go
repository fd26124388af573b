package flights

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyAirlineName = errors.New("airline name is required")
	ErrInvalidDistance  = errors.New("flight distance must be a positive finite number")
	ErrInvalidPrice     = errors.New("price must be a non-negative finite number")
)

// FlightUseCase addresses airlines and flights by their zero-based position
// in the listing returned by ListAirlines.
type FlightUseCase interface {
	ListAirlines(ctx context.Context) []AirlineView
	CreateAirline(ctx context.Context, name string) (*AirlineView, error)
	DeleteAirline(ctx context.Context, airline int) error
	CreateFlight(ctx context.Context, airline int, input CreateFlightInput) (*FlightView, error)
	DeleteFlight(ctx context.Context, airline, flight int) (int, error)
	RepriceFlight(ctx context.Context, airline, flight int, price float64) (*FlightView, error)
}

type EventEmitter interface {
	Emit(ctx context.Context, event kafka.TicketEvent) error
}

// CreateFlightInput carries a zero Price when the price should be derived
// from the distance.
type CreateFlightInput struct {
	Kind         string  `json:"kind"`
	FlightNumber string  `json:"flight_number"`
	Destination  string  `json:"destination"`
	Distance     float64 `json:"distance"`
	Price        float64 `json:"price"`
}

type FlightView struct {
	Index         int     `json:"index"`
	Kind          string  `json:"kind"`
	FlightNumber  string  `json:"flight_number"`
	Destination   string  `json:"destination"`
	Distance      float64 `json:"distance"`
	Price         float64 `json:"price"`
	International bool    `json:"international"`
}

type AirlineView struct {
	Index   int          `json:"index"`
	Name    string       `json:"name"`
	Flights []FlightView `json:"flights"`
}

type FlightService struct {
	catalog *catalog.Catalog
	events  EventEmitter
}

func NewFlightService(c *catalog.Catalog, events EventEmitter) *FlightService {
	return &FlightService{catalog: c, events: events}
}

func (s *FlightService) ListAirlines(_ context.Context) []AirlineView {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	airlines := s.catalog.Airlines()
	out := make([]AirlineView, 0, len(airlines))
	for i, a := range airlines {
		out = append(out, airlineView(i, a))
	}
	return out
}

func (s *FlightService) CreateAirline(_ context.Context, name string) (*AirlineView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyAirlineName
	}

	s.catalog.Lock()
	defer s.catalog.Unlock()

	a := domain.NewAirline(name)
	s.catalog.AddAirline(a)
	view := airlineView(len(s.catalog.Airlines())-1, a)

	log.WithField("airline", name).Info("airline created")
	return &view, nil
}

func (s *FlightService) DeleteAirline(_ context.Context, airline int) error {
	s.catalog.Lock()
	defer s.catalog.Unlock()

	a, err := s.catalog.AirlineAt(airline)
	if err != nil {
		return err
	}
	if err := s.catalog.RemoveAirline(a); err != nil {
		return errors.Wrapf(err, "delete airline %s", a.Name())
	}

	log.WithField("airline", a.Name()).Info("airline deleted")
	return nil
}

func (s *FlightService) CreateFlight(_ context.Context, airline int, input CreateFlightInput) (*FlightView, error) {
	if !finite(input.Distance) || input.Distance <= 0 {
		return nil, ErrInvalidDistance
	}
	if !finite(input.Price) || input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	var opts []domain.FlightOption
	if input.Price > 0 {
		opts = append(opts, domain.WithPrice(input.Price))
	}
	f, err := domain.NewFlight(input.Kind, input.FlightNumber, input.Destination, input.Distance, opts...)
	if err != nil {
		return nil, err
	}
	if !finite(f.Price()) {
		return nil, errors.Wrapf(ErrInvalidDistance, "derived price for %.0f km overflows", input.Distance)
	}

	s.catalog.Lock()
	defer s.catalog.Unlock()

	a, err := s.catalog.AirlineAt(airline)
	if err != nil {
		return nil, err
	}
	a.AddFlight(f)
	view := flightView(len(a.Flights())-1, f)

	log.WithFields(log.Fields{
		"airline": a.Name(),
		"flight":  f.FlightNumber(),
		"price":   f.Price(),
	}).Info("flight created")
	return &view, nil
}

// DeleteFlight removes the flight and every ticket booked on it, and returns
// how many tickets were voided.
func (s *FlightService) DeleteFlight(ctx context.Context, airline, flight int) (int, error) {
	events, err := s.deleteFlight(airline, flight)
	if err != nil {
		return 0, err
	}
	for _, event := range events {
		s.emit(ctx, event)
	}
	return len(events), nil
}

func (s *FlightService) deleteFlight(airline, flight int) ([]kafka.TicketEvent, error) {
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
	voided, err := s.catalog.RemoveFlight(a, f)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	events := make([]kafka.TicketEvent, 0, len(voided))
	for _, t := range voided {
		events = append(events, kafka.TicketEvent{
			Type:         kafka.EventTicketVoided,
			Token:        t.Token,
			Passenger:    t.Name,
			Airline:      a.Name(),
			FlightNumber: f.FlightNumber(),
			Destination:  f.Destination(),
			Price:        t.Price,
			OccurredAt:   now,
		})
	}

	log.WithFields(log.Fields{
		"airline": a.Name(),
		"flight":  f.FlightNumber(),
		"voided":  len(voided),
	}).Info("flight deleted")
	return events, nil
}

// RepriceFlight sets a new price; zero resets it to the distance formula.
// Existing tickets keep the price they were booked at.
func (s *FlightService) RepriceFlight(_ context.Context, airline, flight int, price float64) (*FlightView, error) {
	if !finite(price) || price < 0 {
		return nil, ErrInvalidPrice
	}

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
	if price == 0 {
		price = f.CalculatePrice(f.Distance())
		if !finite(price) {
			return nil, errors.Wrapf(ErrInvalidPrice, "derived price for %.0f km overflows", f.Distance())
		}
	}
	f.SetPrice(price)
	view := flightView(flight, f)

	log.WithFields(log.Fields{"flight": f.FlightNumber(), "price": f.Price()}).Info("flight repriced")
	return &view, nil
}

func (s *FlightService) emit(ctx context.Context, event kafka.TicketEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Emit(ctx, event); err != nil {
		log.WithError(err).WithFields(log.Fields{"type": event.Type, "token": event.Token}).
			Warn("failed to publish ticket event")
	}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func airlineView(idx int, a *domain.Airline) AirlineView {
	flights := a.Flights()
	view := AirlineView{Index: idx, Name: a.Name(), Flights: make([]FlightView, 0, len(flights))}
	for i, f := range flights {
		view.Flights = append(view.Flights, flightView(i, f))
	}
	return view
}

func flightView(idx int, f *domain.Flight) FlightView {
	return FlightView{
		Index:         idx,
		Kind:          string(f.Kind()),
		FlightNumber:  f.FlightNumber(),
		Destination:   f.Destination(),
		Distance:      f.Distance(),
		Price:         f.Price(),
		International: f.IsInternational(),
	}
}

var _ FlightUseCase = (*FlightService)(nil)
