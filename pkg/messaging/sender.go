package messaging

import (
	"context"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Topic queues are capped, nothing in this module drains them.
var topicQueueArgs = amqp.Table{
	"x-message-ttl": int32(24 * 60 * 60 * 1000),
	"x-max-length":  int32(100_000),
	"x-overflow":    "drop-head",
}

func DefineTopic(ch *amqp.Channel, prefix string, topic Topic) error {
	name := ExchangeName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		topicQueueArgs,
	); err != nil {
		return err
	}
	return ch.QueueBind(name, name, name, false, nil)
}

// Publication is the message SendChange puts on the wire.
func Publication[V any](data V) (amqp.Publishing, error) {
	body, err := jsoncompat.Marshal(data)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}, nil
}

func SendChange[V any](ctx context.Context, c *amqp.Connection, prefix string, topic Topic, data V) error {
	msg, err := Publication(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := ExchangeName(prefix, topic)
	return ch.PublishWithContext(ctx, name, name, false, false, msg)
}
