package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends order confirmations to the events exchange.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) OrderConfirmed(ctx context.Context, conf OrderConfirmation) error {
	body, err := json.Marshal(conf)
	if err != nil {
		return fmt.Errorf("marshal OrderConfirmation: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		EventsExchange,
		OrderConfirmedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    conf.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish OrderConfirmed: %w", err)
	}
	return nil
}
