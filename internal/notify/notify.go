// Package notify tells passengers what happened to their reservations.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/airdesk/internal/kafka"
)

type Sender struct {
	out io.Writer
}

func NewSender(out io.Writer) *Sender {
	if out == nil {
		out = os.Stdout
	}
	return &Sender{out: out}
}

func (s *Sender) Send(_ context.Context, event kafka.TicketEvent) error {
	_, err := fmt.Fprintf(s.out, "notify %s: %s\n", event.Passenger, describe(event))
	return err
}

func describe(e kafka.TicketEvent) string {
	flight := fmt.Sprintf("%s %s to %s", e.Airline, e.FlightNumber, e.Destination)
	switch e.Type {
	case kafka.EventTicketBooked:
		return fmt.Sprintf("your ticket for %s is booked at %.2f", flight, e.Price)
	case kafka.EventTicketCancelled:
		return fmt.Sprintf("your ticket for %s is cancelled, refund %.2f", flight, e.Price)
	case kafka.EventTicketVoided:
		return fmt.Sprintf("flight %s was withdrawn, refund %.2f", flight, e.Price)
	default:
		return fmt.Sprintf("%s for %s", e.Type, flight)
	}
}
