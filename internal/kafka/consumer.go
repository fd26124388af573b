package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Consumer reads one topic as part of a consumer group. Offsets are committed
// only after the handler succeeded, so a crash redelivers the message.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		topic: topic,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			StartOffset:       kafka.FirstOffset,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until ctx is canceled or handler fails.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return errors.Wrapf(err, "handle %s@%d", c.topic, msg.Offset)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return errors.Wrapf(err, "commit %s@%d", c.topic, msg.Offset)
		}
		log.WithFields(log.Fields{"topic": c.topic, "offset": msg.Offset}).Debug("ticket event handled")
	}
}

// TicketEventHandler decodes each message as a TicketEvent. Undecodable
// messages are logged and skipped so one bad record does not stop the group.
func TicketEventHandler(handle func(context.Context, TicketEvent) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event TicketEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.WithError(err).WithField("offset", msg.Offset).Warn("decode ticket event")
			return nil
		}
		return handle(ctx, event)
	}
}
