package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketEventHandler_Decodes(t *testing.T) {
	event := TicketEvent{Type: EventTicketBooked, Token: "tok", Passenger: "Anna", Price: 100}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var got TicketEvent
	handler := TicketEventHandler(func(_ context.Context, e TicketEvent) error {
		got = e
		return nil
	})

	require.NoError(t, handler(context.Background(), kafka.Message{Value: payload}))
	assert.Equal(t, event, got)
}

func TestTicketEventHandler_SkipsGarbage(t *testing.T) {
	called := false
	handler := TicketEventHandler(func(context.Context, TicketEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("{")}))
	assert.False(t, called)
}

func TestTicketEventHandler_PropagatesHandlerError(t *testing.T) {
	expected := errors.New("smtp down")
	handler := TicketEventHandler(func(context.Context, TicketEvent) error {
		return expected
	})

	err := handler(context.Background(), kafka.Message{Value: []byte(`{"type":"ticket_voided"}`)})
	assert.Equal(t, expected, err)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
