package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"freight-planner-service/internal/domain"
)

type mockChannel struct {
	publishFunc func(ctx context.Context, exchange, key string, msg amqp.Publishing) error
	closed      bool
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	return m.publishFunc(ctx, exchange, key, msg)
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func sampleUpdate() domain.TrackingUpdate {
	return domain.TrackingUpdate{
		TrackingID:     "TRK-20260301-ABCDEF12",
		VehicleID:      "VEH-000001",
		VehicleType:    domain.Truck,
		ShipmentStatus: domain.ShipmentInTransit,
		VehicleStatus:  domain.VehicleInTransit,
		Position:       domain.Location{Lat: 41.5, Lng: -90.2},
		FuelRemaining:  640,
		Progress:       0.5,
		At:             time.Unix(1772366400, 0),
	}
}

func TestRabbitPublisher_PublishTracking(t *testing.T) {
	var got amqp.Publishing
	var gotExchange string
	ch := &mockChannel{publishFunc: func(_ context.Context, exchange, _ string, msg amqp.Publishing) error {
		gotExchange = exchange
		got = msg
		return nil
	}}
	p := &RabbitPublisher{ch: ch}

	if err := p.PublishTracking(context.Background(), sampleUpdate()); err != nil {
		t.Fatalf("PublishTracking: %v", err)
	}
	if gotExchange != ExchangeName {
		t.Fatalf("expected exchange %s, got %s", ExchangeName, gotExchange)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("expected json content type, got %s", got.ContentType)
	}

	var msg trackingMessage
	if err := json.Unmarshal(got.Body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.TrackingID != "TRK-20260301-ABCDEF12" || msg.VehicleType != "TRUCK" || msg.Latitude != 41.5 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp != 1772366400 {
		t.Fatalf("expected unix timestamp, got %d", msg.Timestamp)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Fatalf("expected channel to be closed, err=%v", err)
	}
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &RabbitPublisher{ch: &mockChannel{publishFunc: func(context.Context, string, string, amqp.Publishing) error {
		return boom
	}}}

	if err := p.PublishTracking(context.Background(), sampleUpdate()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(log.NewLogfmtLogger(&buf))

	if err := p.PublishTracking(context.Background(), sampleUpdate()); err != nil {
		t.Fatalf("PublishTracking: %v", err)
	}
	line := buf.String()
	for _, want := range []string{"component=tracking", "tracking_id=TRK-20260301-ABCDEF12", "progress=0.5"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

type recordingPublisher struct {
	n   int
	err error
}

func (r *recordingPublisher) PublishTracking(context.Context, domain.TrackingUpdate) error {
	r.n++
	return r.err
}

func TestMultiPublishesToAll(t *testing.T) {
	boom := errors.New("down")
	a := &recordingPublisher{err: boom}
	b := &recordingPublisher{}

	err := Multi{a, b}.PublishTracking(context.Background(), sampleUpdate())
	if !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
	if a.n != 1 || b.n != 1 {
		t.Fatalf("expected both publishers called, got %d and %d", a.n, b.n)
	}
}
