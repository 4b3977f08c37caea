package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, exchange string, routingKey string, body []byte) error
}

type publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) Publisher {
	return &publisher{ch: ch}
}

// Publish sends one persistent JSON message. Outbox rows are only marked
// queued after this returns, so a failed publish means a retry on the
// next tick, never a lost notification.
func (p *publisher) Publish(ctx context.Context, exchange string, routingKey string, body []byte) error {
	return p.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
