// Package service publishes booking events to RabbitMQ.  Publishing is
// best effort: errors are logged and returned so callers can ignore them
// without interrupting the request that produced the event.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/circus-schedule/internal/config"
	"github.com/iliyamo/circus-schedule/internal/model"
	q "github.com/iliyamo/circus-schedule/internal/queue"
)

// Publisher emits booking lifecycle events.
type Publisher interface {
	BookingCreated(ctx context.Context, b model.Booking) error
	BookingCancelled(ctx context.Context, b model.Booking) error
}

// NewPublisher returns an AMQP publisher when queueing is enabled and a
// no-op publisher otherwise.
func NewPublisher(cfg config.QueueConfig) Publisher {
	if !cfg.Enabled {
		return NopPublisher{}
	}
	return &AMQPPublisher{URL: cfg.URL, Now: time.Now}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, model.Booking) error   { return nil }
func (NopPublisher) BookingCancelled(context.Context, model.Booking) error { return nil }

// AMQPPublisher dials the broker for each event and publishes a
// persistent JSON message to the queue named after the event type.
type AMQPPublisher struct {
	URL string
	Now func() time.Time
}

func (p *AMQPPublisher) BookingCreated(ctx context.Context, b model.Booking) error {
	return p.publish(ctx, q.NewBookingEvent(q.BookingCreatedQueue, b, p.now()))
}

func (p *AMQPPublisher) BookingCancelled(ctx context.Context, b model.Booking) error {
	return p.publish(ctx, q.NewBookingEvent(q.BookingCancelledQueue, b, p.now()))
}

func (p *AMQPPublisher) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Message encodes ev as the AMQP publishing sent for it.
func Message(ev q.BookingEvent, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    at.UTC(),
		Type:         ev.Type,
		MessageId:    ev.BookingID,
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) publish(ctx context.Context, ev q.BookingEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(ev.Type, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	msg, err := Message(ev, p.now())
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}
	if err := ch.PublishWithContext(ctx, "", ev.Type, false, false, msg); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
