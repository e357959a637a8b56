package publisher

import (
	"context"

	"github.com/go-kit/kit/log"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.TrackingPublisher = (*LogPublisher)(nil)

// LogPublisher writes each update as a log line. Used when no broker is
// configured.
type LogPublisher struct {
	logger log.Logger
}

func NewLogPublisher(logger log.Logger) *LogPublisher {
	return &LogPublisher{logger: log.With(logger, "component", "tracking")}
}

func (p *LogPublisher) PublishTracking(_ context.Context, u domain.TrackingUpdate) error {
	return p.logger.Log(
		"tracking_id", u.TrackingID,
		"vehicle", u.VehicleID,
		"type", u.VehicleType,
		"status", u.ShipmentStatus,
		"lat", u.Position.Lat,
		"lng", u.Position.Lng,
		"fuel", u.FuelRemaining,
		"progress", u.Progress,
	)
}

// Multi publishes to every wrapped publisher and returns the first error.
type Multi []ports.TrackingPublisher

func (m Multi) PublishTracking(ctx context.Context, u domain.TrackingUpdate) error {
	var first error
	for _, p := range m {
		if err := p.PublishTracking(ctx, u); err != nil && first == nil {
			first = err
		}
	}
	return first
}
