package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPEmitter publishes events to a durable RabbitMQ queue consumed by the
// analytics pipeline.
type AMQPEmitter struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPEmitter(url, queue string) (*AMQPEmitter, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPEmitter{conn: conn, ch: ch, queue: queue}, nil
}

func (e *AMQPEmitter) Close() error {
	if e.ch != nil {
		_ = e.ch.Close()
	}
	if e.conn != nil {
		return e.conn.Close()
	}
	return nil
}

func (e *AMQPEmitter) Emit(ctx context.Context, ev Event) error {
	if ev.InsertID == "" {
		ev.InsertID = uuid.NewString()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return e.ch.PublishWithContext(cctx,
		"",      // default exchange
		e.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    ev.Timestamp,
		},
	)
}
