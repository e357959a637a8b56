package ports

import (
	"context"

	"freight-planner-service/internal/domain"
)

// Contract for broadcasting position and status changes after a motion tick.
type TrackingPublisher interface {
	PublishTracking(ctx context.Context, u domain.TrackingUpdate) error
}
