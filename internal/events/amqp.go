package events

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/muhammadolammi/atsworker/internal/workflow"
)

// DefaultExchange is the topic exchange decisions are routed through. The
// routing key is the decision topic.
const DefaultExchange = "ats_events"

// AMQPPublisher publishes decisions to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
}

// NewAMQPPublisher declares the exchange and returns a publisher on it.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, d workflow.Decision) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Payload(d)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		d.Topic(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
