package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const (
	EventTicketBooked    = "ticket_booked"
	EventTicketCancelled = "ticket_cancelled"
	EventTicketVoided    = "ticket_voided"
)

// TicketEvent describes a change of a single reservation. Voided tickets were
// removed together with their flight.
type TicketEvent struct {
	Type         string    `json:"type"`
	Token        string    `json:"token"`
	Passenger    string    `json:"passenger"`
	Airline      string    `json:"airline"`
	FlightNumber string    `json:"flight_number"`
	Destination  string    `json:"destination"`
	Price        float64   `json:"price"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Producer writes JSON payloads keyed by ticket token, so every event of one
// ticket lands on the same partition.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal payload")
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return errors.Wrap(err, "failed to write message to Kafka")
	}

	log.WithFields(log.Fields{"topic": topic, "key": key}).Debug("published to Kafka")
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
