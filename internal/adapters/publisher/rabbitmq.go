package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.TrackingPublisher = (*RabbitPublisher)(nil)

const (
	ExchangeName = "freight.tracking"
	QueueName    = "tracking_updates"
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher fans tracking updates out on ExchangeName.
type RabbitPublisher struct {
	ch channel
}

// Dial connects to url and declares the tracking exchange and queue.
func Dial(url string) (*RabbitPublisher, *amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	p, err := NewRabbitPublisher(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return p, conn, nil
}

func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &RabbitPublisher{ch: ch}, nil
}

type trackingMessage struct {
	TrackingID     string  `json:"tracking_id"`
	VehicleID      string  `json:"vehicle_id"`
	VehicleType    string  `json:"vehicle_type"`
	ShipmentStatus string  `json:"shipment_status"`
	VehicleStatus  string  `json:"vehicle_status"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	FuelRemaining  float64 `json:"fuel_remaining"`
	Progress       float64 `json:"progress"`
	Timestamp      int64   `json:"timestamp"`
}

func newTrackingMessage(u domain.TrackingUpdate) trackingMessage {
	return trackingMessage{
		TrackingID:     u.TrackingID,
		VehicleID:      u.VehicleID,
		VehicleType:    string(u.VehicleType),
		ShipmentStatus: string(u.ShipmentStatus),
		VehicleStatus:  string(u.VehicleStatus),
		Latitude:       u.Position.Lat,
		Longitude:      u.Position.Lng,
		FuelRemaining:  u.FuelRemaining,
		Progress:       u.Progress,
		Timestamp:      u.At.Unix(),
	}
}

func (p *RabbitPublisher) PublishTracking(ctx context.Context, u domain.TrackingUpdate) error {
	body, err := json.Marshal(newTrackingMessage(u))
	if err != nil {
		return fmt.Errorf("marshal tracking update: %w", err)
	}

	if err := p.ch.PublishWithContext(ctx, ExchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}); err != nil {
		return fmt.Errorf("publish tracking %s: %w", u.TrackingID, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}
