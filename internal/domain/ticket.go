package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Ticket is a passenger's reservation. Flight is shared with the owning
// airline; Price is the amount charged at booking time and never follows
// later changes of the flight price.
type Ticket struct {
	Token  string
	Name   string
	Flight *Flight
	Price  float64
}

func NewTicket(name string, flight *Flight, price float64) *Ticket {
	return &Ticket{
		Token:  uuid.NewString(),
		Name:   name,
		Flight: flight,
		Price:  price,
	}
}

func (t *Ticket) String() string {
	return fmt.Sprintf("Ticket[name=%s flight=%v price=%.2f]", t.Name, t.Flight, t.Price)
}
