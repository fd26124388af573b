package domain

import (
	"fmt"
	"strings"
)

type FlightKind string

const (
	FlightKindDomestic      FlightKind = "domestic"
	FlightKindInternational FlightKind = "international"
)

// Price per kilometre for every known kind.
var pricePerKm = map[FlightKind]float64{
	FlightKindDomestic:      10.0,
	FlightKindInternational: 12.0,
}

// ParseFlightKind matches tag case-insensitively against the known kinds.
func ParseFlightKind(tag string) (FlightKind, error) {
	kind := FlightKind(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := pricePerKm[kind]; !ok {
		return "", ErrUnknownFlightType
	}
	return kind, nil
}

// Rate returns the price per kilometre of the kind, zero for unknown kinds.
func (k FlightKind) Rate() float64 {
	return pricePerKm[k]
}

// Flight is owned by exactly one Airline and may be referenced by any number of tickets.
type Flight struct {
	kind         FlightKind
	flightNumber string
	destination  string
	distance     float64
	price        float64
}

type FlightOption func(*Flight)

// WithPrice overrides the price derived from the distance.
func WithPrice(price float64) FlightOption {
	return func(f *Flight) {
		f.price = price
	}
}

// NewFlight is the flight factory: kind is "domestic" or "international" in any letter case.
func NewFlight(kind, flightNumber, destination string, distance float64, opts ...FlightOption) (*Flight, error) {
	k, err := ParseFlightKind(kind)
	if err != nil {
		return nil, err
	}
	return newFlight(k, flightNumber, destination, distance, opts...), nil
}

func NewDomesticFlight(flightNumber, destination string, distance float64, opts ...FlightOption) *Flight {
	return newFlight(FlightKindDomestic, flightNumber, destination, distance, opts...)
}

func NewInternationalFlight(flightNumber, destination string, distance float64, opts ...FlightOption) *Flight {
	return newFlight(FlightKindInternational, flightNumber, destination, distance, opts...)
}

func newFlight(kind FlightKind, flightNumber, destination string, distance float64, opts ...FlightOption) *Flight {
	f := &Flight{
		kind:         kind,
		flightNumber: flightNumber,
		destination:  destination,
		distance:     distance,
	}
	f.price = f.CalculatePrice(distance)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flight) Kind() FlightKind         { return f.kind }
func (f *Flight) FlightNumber() string     { return f.flightNumber }
func (f *Flight) Destination() string      { return f.destination }
func (f *Flight) Distance() float64        { return f.distance }
func (f *Flight) Price() float64           { return f.price }
func (f *Flight) SetFlightNumber(n string) { f.flightNumber = n }
func (f *Flight) SetDestination(d string)  { f.destination = d }
func (f *Flight) SetPrice(p float64)       { f.price = p }

func (f *Flight) IsInternational() bool {
	return f.kind == FlightKindInternational
}

// CalculatePrice applies the kind's rate to distance without touching the flight.
func (f *Flight) CalculatePrice(distance float64) float64 {
	return distance * f.kind.Rate()
}

// RecalculatePrice resets the price to the formula for the stored distance.
func (f *Flight) RecalculatePrice() float64 {
	f.price = f.CalculatePrice(f.distance)
	return f.price
}

func (f *Flight) String() string {
	label := "DomesticFlight"
	if f.IsInternational() {
		label = "InternationalFlight"
	}
	return fmt.Sprintf("%s[number=%s destination=%s distance=%.1f price=%.2f]",
		label, f.flightNumber, f.destination, f.distance, f.price)
}
