package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rabbitmq/amqp091-go"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
)

const expirationRoutingKey = "subscription.expiration"

// AMQPNotifier publishes expiration notices to a durable topic exchange.
// The notice key rides along as the AMQP message id, so consumers can replace
// an earlier notice for the same service instead of showing a duplicate.
type AMQPNotifier struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewAMQPNotifier connects to the broker and declares the notification
// exchange.
func NewAMQPNotifier(amqpURL, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &AMQPNotifier{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Notify publishes one expiration notice.
func (n *AMQPNotifier) Notify(ctx context.Context, notice domain.ExpirationNotice) error {
	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		n.exchange,
		expirationRoutingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			MessageId:   strconv.FormatUint(uint64(notice.Key), 10),
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish notice for %q: %w", notice.ServiceName, err)
	}
	return nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		n.conn.Close()
	}
}
