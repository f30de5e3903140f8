package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	BookingAdmittedEventType  = "booking.admitted"
	BookingAdmittedRoutingKey = "clinic.booking-svc.booking.admitted"
)

type BookingEvent struct {
	Type       string         `json:"type"`
	Booking    domain.Booking `json:"booking"`
	OccurredAt time.Time      `json:"occurredAt"`
}

type BookingPublisher struct {
	// amqp.Channel нельзя использовать из нескольких горутин одновременно
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.Config
	logger  out.LoggerPort
	now     func() time.Time
}

func NewBookingPublisher(cfg *config.Config, logger out.LoggerPort) (*BookingPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.publisher.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, booking events will not be published",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq.connect.failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq.channel.failed: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.RabbitMQ.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq.exchange.declare_failed: %w", err)
	}

	return &BookingPublisher{
		conn:    conn,
		channel: channel,
		cfg:     cfg,
		logger:  logger.WithModule("BookingPublisher"),
		now:     time.Now,
	}, nil
}

func (p *BookingPublisher) PublishBookingAdmitted(ctx context.Context, booking domain.Booking) error {
	msg, err := newBookingAdmittedMessage(booking, p.now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.cfg.RabbitMQ.Exchange,
		BookingAdmittedRoutingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.publish.failed: %w", err)
	}

	p.logger.Debug("booking.event.published", out.LogFields{
		"bookingId":  booking.ID,
		"routingKey": BookingAdmittedRoutingKey,
	})

	return nil
}

func (p *BookingPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

func newBookingAdmittedMessage(booking domain.Booking, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(BookingEvent{
		Type:       BookingAdmittedEventType,
		Booking:    booking,
		OccurredAt: now,
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("booking.event.marshal_failed: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    booking.ID.String(),
		Timestamp:    now,
		Type:         BookingAdmittedEventType,
		Body:         body,
	}, nil
}
