package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"optionsdesk/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer subscribes to the summaries fanout exchange and forwards snapshots
// into a BatchWriter.
type Consumer struct {
	cfg    config.RabbitMQConfig
	logger *logrus.Entry

	conn    *amqp.Connection
	channel *amqp.Channel
	wg      sync.WaitGroup
	batcher *BatchWriter
}

// NewConsumer prepares a consumer. The consumer owns batcher: Close drains it.
func NewConsumer(cfg config.RabbitMQConfig, batcher *BatchWriter, logger *logrus.Logger) (*Consumer, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if cfg.SummariesExchange == "" {
		return nil, errors.New("exchange name cannot be empty")
	}
	if batcher == nil {
		return nil, errors.New("batch writer is nil")
	}
	return &Consumer{
		cfg:     cfg,
		logger:  logger.WithField("component", "consumer"),
		batcher: batcher,
	}, nil
}

// Start establishes the AMQP connection and begins consuming.
func (c *Consumer) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.conn = conn
	c.batcher.Run(ctx)

	if err := c.startStream(ctx, c.cfg.SummariesExchange); err != nil {
		c.Close(ctx)
		return err
	}

	c.logger.Infof("rabbitmq consumer started: exchange=%s", c.cfg.SummariesExchange)
	return nil
}

// Close stops consumption, flushes pending batches, and releases resources.
func (c *Consumer) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.wg.Wait()
	return c.batcher.Stop(ctx)
}

func (c *Consumer) startStream(ctx context.Context, exchange string) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("bind queue %s to %s: %w", queue.Name, exchange, err)
	}
	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := ch.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("start consume: %w", err)
	}
	c.channel = ch
	c.wg.Add(1)
	go c.consumeLoop(ctx, deliveries)
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			if err := c.handleDelivery(&delivery); err != nil {
				c.logger.WithError(err).Warn("failed to process message")
				// bad payloads are dropped, anything else is requeued
				_ = delivery.Nack(false, !errors.Is(err, errBadPayload))
				continue
			}
			if err := delivery.Ack(false); err != nil {
				c.logger.WithError(err).Warn("failed to ack delivery")
			}
		}
	}
}

var errBadPayload = errors.New("bad snapshot payload")

func (c *Consumer) handleDelivery(delivery *amqp.Delivery) error {
	var payload SnapshotMessage
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	if payload.Snapshot == nil {
		return fmt.Errorf("%w: snapshot is nil", errBadPayload)
	}
	return c.batcher.AddSnapshot(payload.Snapshot)
}
