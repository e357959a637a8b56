package services

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/pricing"
	"freight-planner-service/internal/routing"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) AnalyzeRoute(ctx context.Context, origin, destination LocationRef, weightKg float64) (av routing.TransportAvailability, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "analyze_route",
			"origin", origin.String(),
			"destination", destination.String(),
			"weight_kg", weightKg,
			"recommended", av.Recommended,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.AnalyzeRoute(ctx, origin, destination, weightKg)
}

func (s *loggingService) QuoteShipment(ctx context.Context, req ShipmentRequest) (q *Quote, err error) {
	defer func(begin time.Time) {
		kv := []any{
			"method", "quote",
			"origin", req.Origin.String(),
			"destination", req.Destination.String(),
			"weight_kg", req.WeightKg,
			"urgency", req.Urgency,
		}
		if q != nil {
			kv = append(kv, "tracking_id", q.Shipment.TrackingID, "vehicle", q.Vehicle.Type, "cost", q.EstimatedCost)
		}
		kv = append(kv, "took", time.Since(begin), "err", err)
		s.logger.Log(kv...)
	}(time.Now())
	return s.Service.QuoteShipment(ctx, req)
}

func (s *loggingService) ComparePricing(ctx context.Context, weightKg, distanceKm float64) (rows []pricing.Comparison, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "compare_pricing",
			"weight_kg", weightKg,
			"distance_km", distanceKm,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.ComparePricing(ctx, weightKg, distanceKm)
}

func (s *loggingService) AssignVehicle(ctx context.Context, trackingID, vehicleID string) (shp *domain.Shipment, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "assign_vehicle",
			"tracking_id", trackingID,
			"vehicle", vehicleID,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.AssignVehicle(ctx, trackingID, vehicleID)
}

func (s *loggingService) TransitionShipment(ctx context.Context, trackingID string, status domain.ShipmentStatus) (shp *domain.Shipment, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "transition_shipment",
			"tracking_id", trackingID,
			"status", status,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.TransitionShipment(ctx, trackingID, status)
}

func (s *loggingService) TransitionVehicle(ctx context.Context, vehicleID string, status domain.VehicleStatus) (v *domain.Vehicle, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "transition_vehicle",
			"vehicle", vehicleID,
			"status", status,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.TransitionVehicle(ctx, vehicleID, status)
}

func (s *loggingService) AdvanceVehicle(ctx context.Context, trackingID string, to domain.Location) (mv domain.Movement, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "advance_vehicle",
			"tracking_id", trackingID,
			"to", to.String(),
			"distance_km", mv.DistanceKm,
			"fuel_sufficient", mv.FuelSufficient,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.AdvanceVehicle(ctx, trackingID, to)
}
