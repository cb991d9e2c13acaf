package messaging

import (
	"github.com/matst80/listing-filters/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic Topic) (<-chan amqp.Delivery, error) {
	name := ExchangeName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic hands every delivery to handle and acks it on success. A
// handler error stops the listener and closes the channel.
func ListenToTopic(ch *amqp.Channel, prefix string, topic Topic, log logger.Logger, handle func(amqp.Delivery) error) error {
	deliveries, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handle(d); err != nil {
				log.WithError(err).Error("error processing message", logger.Fields{"topic": string(topic)})
				_ = d.Nack(false, false)
				return
			}
			_ = d.Ack(false)
		}
	}(deliveries)
	return nil
}
