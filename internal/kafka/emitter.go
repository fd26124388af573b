package kafka

import "context"

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Emitter sends ticket events to the ticket topic and, when configured, to
// the notifications topic consumed by the worker.
type Emitter struct {
	producer           Publisher
	topic              string
	notificationsTopic string
}

type EmitterOption func(*Emitter)

func WithNotificationsTopic(topic string) EmitterOption {
	return func(e *Emitter) {
		e.notificationsTopic = topic
	}
}

func NewEmitter(producer Publisher, topic string, opts ...EmitterOption) *Emitter {
	e := &Emitter{producer: producer, topic: topic}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit is a no-op on a nil Emitter or one without producer or topic.
func (e *Emitter) Emit(ctx context.Context, event TicketEvent) error {
	if e == nil || e.producer == nil || e.topic == "" {
		return nil
	}
	if err := e.producer.Publish(ctx, e.topic, event.Token, event); err != nil {
		return err
	}
	if e.notificationsTopic != "" {
		return e.producer.Publish(ctx, e.notificationsTopic, event.Token, event)
	}
	return nil
}
