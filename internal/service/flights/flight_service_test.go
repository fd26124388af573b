package flights

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEmitter struct {
	mock.Mock
}

func (m *MockEmitter) Emit(ctx context.Context, event kafka.TicketEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newService(t *testing.T) (*FlightService, *catalog.Catalog, *MockEmitter) {
	t.Helper()
	c := catalog.New(nil)
	emitter := &MockEmitter{}
	return NewFlightService(c, emitter), c, emitter
}

func TestFlightService_CreateAirline(t *testing.T) {
	service, c, _ := newService(t)
	ctx := context.Background()

	view, err := service.CreateAirline(ctx, "  Aeroflot ")
	require.NoError(t, err)
	assert.Equal(t, AirlineView{Index: 0, Name: "Aeroflot", Flights: []FlightView{}}, *view)

	view, err = service.CreateAirline(ctx, "S7")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index)
	assert.Len(t, c.Airlines(), 2)

	_, err = service.CreateAirline(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyAirlineName)
}

func TestFlightService_CreateFlight(t *testing.T) {
	service, c, _ := newService(t)
	ctx := context.Background()
	_, err := service.CreateAirline(ctx, "Aeroflot")
	require.NoError(t, err)

	derived, err := service.CreateFlight(ctx, 0, CreateFlightInput{
		Kind: "Domestic", FlightNumber: "SU1402", Destination: "Sochi", Distance: 1600,
	})
	require.NoError(t, err)
	assert.Equal(t, 16000.0, derived.Price)
	assert.False(t, derived.International)
	assert.Equal(t, 0, derived.Index)

	explicit, err := service.CreateFlight(ctx, 0, CreateFlightInput{
		Kind: "international", FlightNumber: "SU2454", Destination: "Paris", Distance: 2500, Price: 999,
	})
	require.NoError(t, err)
	assert.Equal(t, 999.0, explicit.Price)
	assert.True(t, explicit.International)
	assert.Equal(t, 1, explicit.Index)

	assert.Len(t, c.Airlines()[0].Flights(), 2)
}

func TestFlightService_CreateFlight_Errors(t *testing.T) {
	service, c, _ := newService(t)
	ctx := context.Background()
	_, err := service.CreateAirline(ctx, "Aeroflot")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		airline  int
		input    CreateFlightInput
		expected error
	}{
		{name: "zero distance", input: CreateFlightInput{Kind: "domestic", Distance: 0}, expected: ErrInvalidDistance},
		{name: "negative price", input: CreateFlightInput{Kind: "domestic", Distance: 5, Price: -1}, expected: ErrInvalidPrice},
		{name: "infinite distance", input: CreateFlightInput{Kind: "domestic", Distance: math.Inf(1)}, expected: ErrInvalidDistance},
		{name: "NaN distance", input: CreateFlightInput{Kind: "domestic", Distance: math.NaN()}, expected: ErrInvalidDistance},
		{name: "derived price overflows", input: CreateFlightInput{Kind: "international", Distance: 1e308}, expected: ErrInvalidDistance},
		{name: "infinite price", input: CreateFlightInput{Kind: "domestic", Distance: 5, Price: math.Inf(1)}, expected: ErrInvalidPrice},
		{name: "NaN price", input: CreateFlightInput{Kind: "domestic", Distance: 5, Price: math.NaN()}, expected: ErrInvalidPrice},
		{name: "unknown kind", input: CreateFlightInput{Kind: "charter", Distance: 5}, expected: domain.ErrUnknownFlightType},
		{name: "unknown airline", airline: 3, input: CreateFlightInput{Kind: "domestic", Distance: 5}, expected: domain.ErrAirlineNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateFlight(ctx, tc.airline, tc.input)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
	assert.Empty(t, c.Airlines()[0].Flights())
}

func TestFlightService_DeleteAirline(t *testing.T) {
	service, c, _ := newService(t)
	ctx := context.Background()
	_, err := service.CreateAirline(ctx, "Aeroflot")
	require.NoError(t, err)
	_, err = service.CreateFlight(ctx, 0, CreateFlightInput{Kind: "domestic", FlightNumber: "SU1", Distance: 10})
	require.NoError(t, err)

	err = service.DeleteAirline(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrAirlineNotEmpty)

	_, err = service.DeleteFlight(ctx, 0, 0)
	require.NoError(t, err)

	require.NoError(t, service.DeleteAirline(ctx, 0))
	assert.Empty(t, c.Airlines())

	assert.ErrorIs(t, service.DeleteAirline(ctx, 0), domain.ErrAirlineNotFound)
}

func TestFlightService_DeleteFlightVoidsTickets(t *testing.T) {
	service, c, emitter := newService(t)
	ctx := context.Background()
	_, err := service.CreateAirline(ctx, "S7")
	require.NoError(t, err)
	_, err = service.CreateFlight(ctx, 0, CreateFlightInput{Kind: "domestic", FlightNumber: "S7100", Destination: "Irkutsk", Distance: 4200})
	require.NoError(t, err)
	_, err = service.CreateFlight(ctx, 0, CreateFlightInput{Kind: "domestic", FlightNumber: "S7200", Destination: "Omsk", Distance: 2200})
	require.NoError(t, err)

	irkutsk := c.Airlines()[0].Flights()[0]
	omsk := c.Airlines()[0].Flights()[1]
	c.CreateReservation("Anna", irkutsk)
	c.CreateReservation("Boris", omsk)
	c.CreateReservation("Clara", irkutsk)

	emitter.On("Emit", ctx, mock.MatchedBy(func(e kafka.TicketEvent) bool {
		return e.Type == kafka.EventTicketVoided && e.FlightNumber == "S7100" && e.Airline == "S7" && e.Price == 42000
	})).Return(nil).Twice()

	voided, err := service.DeleteFlight(ctx, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, voided)
	tickets := c.Tickets()
	require.Len(t, tickets, 1)
	assert.Equal(t, "Boris", tickets[0].Name)
	emitter.AssertExpectations(t)
}

func TestFlightService_DeleteFlight_EmitFailureIsNotReturned(t *testing.T) {
	service, c, emitter := newService(t)
	ctx := context.Background()
	_, _ = service.CreateAirline(ctx, "S7")
	_, _ = service.CreateFlight(ctx, 0, CreateFlightInput{Kind: "domestic", Distance: 1})
	c.CreateReservation("Anna", c.Airlines()[0].Flights()[0])

	emitter.On("Emit", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	voided, err := service.DeleteFlight(ctx, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, voided)
	emitter.AssertExpectations(t)
}

func TestFlightService_DeleteFlight_InvalidPositions(t *testing.T) {
	service, _, emitter := newService(t)
	ctx := context.Background()
	_, _ = service.CreateAirline(ctx, "S7")

	_, err := service.DeleteFlight(ctx, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidFlight)

	_, err = service.DeleteFlight(ctx, 2, 0)
	assert.ErrorIs(t, err, domain.ErrAirlineNotFound)

	emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestFlightService_RepriceFlight(t *testing.T) {
	service, c, _ := newService(t)
	ctx := context.Background()
	_, _ = service.CreateAirline(ctx, "Aeroflot")
	_, err := service.CreateFlight(ctx, 0, CreateFlightInput{Kind: "international", FlightNumber: "SU1", Distance: 100})
	require.NoError(t, err)
	f := c.Airlines()[0].Flights()[0]
	ticketPrice := c.CreateReservation("Anna", f)

	view, err := service.RepriceFlight(ctx, 0, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, view.Price)
	assert.Equal(t, 1200.0, c.Tickets()[0].Price)
	assert.Equal(t, ticketPrice, c.Tickets()[0].Price)

	view, err = service.RepriceFlight(ctx, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, view.Price)

	_, err = service.RepriceFlight(ctx, 0, 0, -5)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = service.RepriceFlight(ctx, 0, 4, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidFlight)
}

func TestFlightService_RepriceFlight_NonFinite(t *testing.T) {
	service, c, _ := newService(t)
	ctx := context.Background()
	a := domain.NewAirline("Aeroflot")
	f := domain.NewInternationalFlight("SU1", "Far away", 1e308, domain.WithPrice(100))
	a.AddFlight(f)
	c.AddAirline(a)

	_, err := service.RepriceFlight(ctx, 0, 0, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = service.RepriceFlight(ctx, 0, 0, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = service.RepriceFlight(ctx, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	assert.Equal(t, 100.0, f.Price())
}

func TestFlightService_ListAirlines(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()
	_, _ = service.CreateAirline(ctx, "Aeroflot")
	_, _ = service.CreateAirline(ctx, "Aeroflot")
	_, _ = service.CreateFlight(ctx, 1, CreateFlightInput{Kind: "domestic", FlightNumber: "SU1", Destination: "Kazan", Distance: 700})

	airlines := service.ListAirlines(ctx)

	require.Len(t, airlines, 2)
	assert.Empty(t, airlines[0].Flights)
	assert.Equal(t, []FlightView{{
		Index: 0, Kind: "domestic", FlightNumber: "SU1", Destination: "Kazan", Distance: 700, Price: 7000,
	}}, airlines[1].Flights)
}

func TestFlightService_NilEmitter(t *testing.T) {
	c := catalog.New(nil)
	service := NewFlightService(c, nil)
	ctx := context.Background()
	_, _ = service.CreateAirline(ctx, "S7")
	_, _ = service.CreateFlight(ctx, 0, CreateFlightInput{Kind: "domestic", Distance: 1})
	c.CreateReservation("Anna", c.Airlines()[0].Flights()[0])

	voided, err := service.DeleteFlight(ctx, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, voided)
}
