package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/in"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

type CacheListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.BookingUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll   CacheHitResourceType = "_all_"
	CacheHitResourceTypeSlots CacheHitResourceType = "slots"
)

const (
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

// errMalformedMessage — сообщение не будет обработано и при повторной доставке
var errMalformedMessage = errors.New("malformed message")

func NewCacheListener(useCase in.BookingUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CacheListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CacheListener) Start(ctx context.Context) error {
	err := l.channel.ExchangeDeclare(
		l.cfg.RabbitMQ.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.exchange.declare_failed: %w", err)
	}

	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.declare_failed: %w", err)
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.bind_failed: %w", err)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.consume_failed: %w", err)
	}

	go l.consume(ctx, msgs)

	l.logger.Info("cache.queue.started", out.LogFields{
		"queue": queue.Name,
		"bind":  l.cfg.RabbitMQ.Bind,
	})

	return nil
}

func (l *CacheListener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("cache.queue.closed", out.LogFields{})
				return
			}

			if err := l.processMessage(ctx, msg.RoutingKey, msg.Body); err != nil {
				l.logger.Error("cache.message.failed", out.LogFields{
					"routingKey": msg.RoutingKey,
					"error":      err.Error(),
				})
				msg.Nack(false, false)
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *CacheListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *CacheListener) processMessage(ctx context.Context, routingKey string, body []byte) error {
	cacheMessageRoutingKey, err := parseCacheMessageRoutingKey(routingKey)
	if err != nil {
		return err
	}

	if cacheMessageRoutingKey.CacheHitType != CacheHitTypeInvalidate {
		return nil
	}

	switch cacheMessageRoutingKey.ResourceType {
	case CacheHitResourceTypeSlots:
		return l.processSlotsMessage(ctx, cacheMessageRoutingKey, body)
	case CacheHitResourceTypeAll:
		return l.processAllMessage(ctx, cacheMessageRoutingKey)
	default:
		return nil
	}
}

// Пример routingKey:
// clinic.booking-svc.slots.invalidate
// clinic.booking-svc._all_.invalidate
func parseCacheMessageRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) != 4 {
		return CacheMessageRoutingKey{}, fmt.Errorf("%w: invalid routing key %q", errMalformedMessage, routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[3]),
	}, nil
}
