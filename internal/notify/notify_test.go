package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	testCases := []struct {
		eventType string
		expected  string
	}{
		{kafka.EventTicketBooked, "notify Anna: your ticket for S7 S7100 to Irkutsk is booked at 42000.00\n"},
		{kafka.EventTicketCancelled, "notify Anna: your ticket for S7 S7100 to Irkutsk is cancelled, refund 42000.00\n"},
		{kafka.EventTicketVoided, "notify Anna: flight S7 S7100 to Irkutsk was withdrawn, refund 42000.00\n"},
		{"ticket_renamed", "notify Anna: ticket_renamed for S7 S7100 to Irkutsk\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.eventType, func(t *testing.T) {
			var out bytes.Buffer
			sender := NewSender(&out)

			err := sender.Send(context.Background(), kafka.TicketEvent{
				Type:         tc.eventType,
				Passenger:    "Anna",
				Airline:      "S7",
				FlightNumber: "S7100",
				Destination:  "Irkutsk",
				Price:        42000,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}
