package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inkpress/pkg/config"
	"inkpress/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const EventsExchange = "blog.events"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends domain events as persistent JSON messages to a topic
// exchange, routed by event name.
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	logger   *logger.Logger
}

func NewPublisher(cfg *config.Config, log *logger.Logger) (*Publisher, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: EventsExchange,
		logger:   log,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", p.exchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("[RABBITMQ] Published %s: %s", routingKey, string(body))
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
