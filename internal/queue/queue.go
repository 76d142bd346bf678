package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"battlecards/internal/config"
	"battlecards/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Producer публикует задания на опрос источников.
type Producer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewProducer(url string) (*Producer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Producer{conn, ch}, nil
}

func declare(ch *amqp.Channel, queueName string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
}

func (p *Producer) Publish(ctx context.Context, queueName string, body []byte) error {
	if _, err := declare(p.ch, queueName); err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (p *Producer) Close() {
	p.ch.Close()
	p.conn.Close()
}

// Publisher: то, что умеет публиковать тело в очередь. Реализуется Producer.
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// SourceDispatcher отправляет источник в очередь вместо обработки на месте.
type SourceDispatcher struct {
	Publisher Publisher
	Queue     string
}

// Dispatch кодирует источник в JSON и публикует его.
func (d SourceDispatcher) Dispatch(ctx context.Context, src config.Source) error {
	body, err := EncodeSource(src)
	if err != nil {
		return err
	}
	return d.Publisher.Publish(ctx, d.Queue, body)
}

// EncodeSource и DecodeSource задают формат задания в очереди.
func EncodeSource(src config.Source) ([]byte, error) {
	return json.Marshal(src)
}

func DecodeSource(body []byte) (config.Source, error) {
	var src config.Source
	if err := json.Unmarshal(body, &src); err != nil {
		return config.Source{}, fmt.Errorf("decode source job: %w", err)
	}
	if src.URL == "" {
		return config.Source{}, fmt.Errorf("decode source job: empty url")
	}
	return src, nil
}

// Consumer раздаёт задания из очереди нескольким обработчикам.
type Consumer struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	workers int
}

func NewConsumer(url, queue string, workers int) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		ch:      ch,
		queue:   queue,
		workers: workers,
	}, nil
}

// Consume запускает workers горутин. Успешная обработка подтверждается,
// ошибка возвращает сообщение в очередь.
func (c *Consumer) Consume(handler func([]byte) error) error {
	q, err := declare(c.ch, c.queue)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	logger.Log.Infof("Consuming queue: %s (messages: %d)", q.Name, q.Messages)

	msgs, err := c.ch.Consume(
		q.Name,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for i := 0; i < c.workers; i++ {
		go func() {
			for msg := range msgs {
				if err := handler(msg.Body); err == nil {
					msg.Ack(false)
				} else {
					msg.Nack(false, false)
					logger.Log.Errorf("Task failed: %v", err)
				}
			}
		}()
	}
	return nil
}

func (c *Consumer) Close() {
	c.ch.Close()
	c.conn.Close()
}
