package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"bid-reconciler/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// Exchange is the topic exchange bid events are published to
	Exchange = "bids.events"
	// WonRoutingKey routes won-bid notifications
	WonRoutingKey = "bid.won"
)

// amqpChannel is the subset of *amqp.Channel used for publishing
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes won-bid messages to RabbitMQ
type AMQPNotifier struct {
	channel amqpChannel
}

// NewAMQPNotifier opens a channel on conn and declares the bid events exchange
func NewAMQPNotifier(conn *amqp.Connection) (*AMQPNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return newAMQPNotifier(ch)
}

func newAMQPNotifier(ch amqpChannel) (*AMQPNotifier, error) {
	err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPNotifier{channel: ch}, nil
}

// Notify publishes the won-bid message
func (n *AMQPNotifier) Notify(ctx context.Context, company models.Company, bid models.Bid) error {
	body, err := json.Marshal(NewMessage(company, bid))
	if err != nil {
		return fmt.Errorf("notify: marshal message: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		Exchange,      // exchange
		WonRoutingKey, // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    bid.ID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("notify: publish to %s: %w", Exchange, err)
	}
	return nil
}

// Close closes the channel
func (n *AMQPNotifier) Close() error {
	return n.channel.Close()
}
