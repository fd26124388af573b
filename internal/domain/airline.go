package domain

import "slices"

// Airline owns an ordered list of flights. Flights are compared by pointer,
// so two flights sharing a number are still distinct.
type Airline struct {
	name    string
	flights []*Flight
}

func NewAirline(name string) *Airline {
	return &Airline{name: name}
}

func (a *Airline) Name() string {
	return a.name
}

// Flights returns a copy; changing it does not change the airline.
func (a *Airline) Flights() []*Flight {
	return slices.Clone(a.flights)
}

func (a *Airline) AddFlight(f *Flight) {
	a.flights = append(a.flights, f)
}

func (a *Airline) FlightAt(idx int) (*Flight, error) {
	if idx < 0 || idx >= len(a.flights) {
		return nil, ErrInvalidFlight
	}
	return a.flights[idx], nil
}

func (a *Airline) HasFlight(f *Flight) bool {
	return slices.Contains(a.flights, f)
}

// RemoveFlightAt deletes the flight at the zero-based position idx.
// Tickets referencing it are left to the catalog.
func (a *Airline) RemoveFlightAt(idx int) (*Flight, error) {
	if idx < 0 || idx >= len(a.flights) {
		return nil, ErrInvalidFlight
	}
	f := a.flights[idx]
	a.flights = slices.Delete(a.flights, idx, idx+1)
	return f, nil
}

func (a *Airline) RemoveFlight(f *Flight) error {
	idx := slices.Index(a.flights, f)
	if idx == -1 {
		return ErrFlightNotFound
	}
	a.flights = slices.Delete(a.flights, idx, idx+1)
	return nil
}
