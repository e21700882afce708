package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Ensure AMQPNotifier implements Notifier
var _ Notifier = (*AMQPNotifier)(nil)

// AMQPNotifier publishes group events to a topic exchange. Consumers bind
// with a routing key of group.<id> (or group.*) to receive a group's events.
type AMQPNotifier struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// groupEvent is the wire shape of a published notification.
type groupEvent struct {
	Event     string `json:"event"`
	GroupID   int64  `json:"groupId"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// NewAMQPNotifier connects to the broker and declares the exchange.
func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
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
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPNotifier{conn: conn, channel: channel, exchange: exchange}, nil
}

// NotifyGroup publishes one event for the group. At most one attempt; the
// caller decides what to do with the error (in practice: log and move on).
func (n *AMQPNotifier) NotifyGroup(ctx context.Context, groupID int64, event string, payload any) error {
	body, err := json.Marshal(groupEvent{
		Event:     event,
		GroupID:   groupID,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = n.channel.PublishWithContext(
		ctx,
		n.exchange,
		fmt.Sprintf("group.%d", groupID), // routing key
		false,                            // mandatory
		false,                            // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (n *AMQPNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		n.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	return n.conn.Close()
}
