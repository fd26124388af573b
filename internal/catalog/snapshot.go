package catalog

import (
	"encoding/json"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Tickets point at flights by position: Airline indexes the airlines list
// and Flight indexes that airline's flights.
type ticketRecord struct {
	Token   string  `json:"token"`
	Name    string  `json:"name"`
	Airline int     `json:"airline"`
	Flight  int     `json:"flight"`
	Price   float64 `json:"price"`
}

type flightRecord struct {
	Kind         string  `json:"kind"`
	FlightNumber string  `json:"flight_number"`
	Destination  string  `json:"destination"`
	Distance     float64 `json:"distance"`
	Price        float64 `json:"price"`
}

type airlineRecord struct {
	Name    string         `json:"name"`
	Flights []flightRecord `json:"flights"`
}

type snapshotRecord struct {
	Airlines []airlineRecord `json:"airlines"`
	Tickets  []ticketRecord  `json:"tickets"`
}

// snapshot is a decoded payload. A collection missing from the payload is
// reported through its has* flag and must leave current state alone.
type snapshot struct {
	airlines    []*domain.Airline
	tickets     []*domain.Ticket
	hasAirlines bool
	hasTickets  bool
}

type flightPos struct {
	airline int
	flight  int
}

func encodeSnapshot(airlines []*domain.Airline, tickets []*domain.Ticket) ([]byte, error) {
	positions := make(map[*domain.Flight]flightPos)
	rec := snapshotRecord{
		Airlines: make([]airlineRecord, 0, len(airlines)),
		Tickets:  make([]ticketRecord, 0, len(tickets)),
	}

	for ai, a := range airlines {
		flights := a.Flights()
		ar := airlineRecord{Name: a.Name(), Flights: make([]flightRecord, 0, len(flights))}
		for fi, f := range flights {
			if _, seen := positions[f]; !seen {
				positions[f] = flightPos{airline: ai, flight: fi}
			}
			ar.Flights = append(ar.Flights, flightRecord{
				Kind:         string(f.Kind()),
				FlightNumber: f.FlightNumber(),
				Destination:  f.Destination(),
				Distance:     f.Distance(),
				Price:        f.Price(),
			})
		}
		rec.Airlines = append(rec.Airlines, ar)
	}

	for _, t := range tickets {
		pos, ok := positions[t.Flight]
		if !ok {
			return nil, errors.Wrapf(domain.ErrFlightNotFound, "ticket %s references a flight outside the catalog", t.Token)
		}
		rec.Tickets = append(rec.Tickets, ticketRecord{
			Token:   t.Token,
			Name:    t.Name,
			Airline: pos.airline,
			Flight:  pos.flight,
			Price:   t.Price,
		})
	}

	return json.MarshalIndent(rec, "", "  ")
}

// decodeSnapshot rebuilds the object graph. Tickets are resolved against the
// decoded airlines, or against current when the payload carries none, so a
// ticket always shares its *Flight with the owning airline.
func decodeSnapshot(data []byte, current []*domain.Airline) (*snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(domain.ErrMalformedSnapshot, err.Error())
	}
	if fields == nil {
		return nil, errors.Wrap(domain.ErrMalformedSnapshot, "payload is not an object")
	}

	snap := &snapshot{}
	owners := current

	if raw, ok := present(fields, "airlines"); ok {
		var records []airlineRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, errors.Wrapf(domain.ErrMalformedSnapshot, "airlines: %v", err)
		}
		airlines, err := buildAirlines(records)
		if err != nil {
			return nil, err
		}
		snap.airlines = airlines
		snap.hasAirlines = true
		owners = airlines
	}

	if raw, ok := present(fields, "tickets"); ok {
		var records []ticketRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, errors.Wrapf(domain.ErrMalformedSnapshot, "tickets: %v", err)
		}
		tickets, err := buildTickets(records, owners)
		if err != nil {
			return nil, err
		}
		snap.tickets = tickets
		snap.hasTickets = true
	}

	return snap, nil
}

func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func buildAirlines(records []airlineRecord) ([]*domain.Airline, error) {
	airlines := make([]*domain.Airline, 0, len(records))
	for ai, ar := range records {
		a := domain.NewAirline(ar.Name)
		for fi, fr := range ar.Flights {
			f, err := domain.NewFlight(fr.Kind, fr.FlightNumber, fr.Destination, fr.Distance, domain.WithPrice(fr.Price))
			if err != nil {
				return nil, errors.Wrapf(domain.ErrMalformedSnapshot, "airline %d flight %d: %v", ai, fi, err)
			}
			a.AddFlight(f)
		}
		airlines = append(airlines, a)
	}
	return airlines, nil
}

func buildTickets(records []ticketRecord, owners []*domain.Airline) ([]*domain.Ticket, error) {
	tickets := make([]*domain.Ticket, 0, len(records))
	for i, tr := range records {
		if tr.Airline < 0 || tr.Airline >= len(owners) {
			return nil, errors.Wrapf(domain.ErrMalformedSnapshot, "ticket %d: airline %d out of range", i, tr.Airline)
		}
		f, err := owners[tr.Airline].FlightAt(tr.Flight)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrMalformedSnapshot, "ticket %d: flight %d out of range", i, tr.Flight)
		}
		token := tr.Token
		if token == "" {
			token = uuid.NewString()
		}
		tickets = append(tickets, &domain.Ticket{
			Token:  token,
			Name:   tr.Name,
			Flight: f,
			Price:  tr.Price,
		})
	}
	return tickets, nil
}
