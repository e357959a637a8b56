package services

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/routing"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	quotedCost     metrics.Histogram
	Service
}

// NewInstrumentingService returns an instance of an instrumenting Service.
// quotedCost observes the estimated cost of every successful quote.
func NewInstrumentingService(counter metrics.Counter, latency, quotedCost metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		quotedCost:     quotedCost,
		Service:        s,
	}
}

func (s *instrumentingService) observe(method string, begin time.Time) {
	s.requestCount.With("method", method).Add(1)
	s.requestLatency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (s *instrumentingService) AnalyzeRoute(ctx context.Context, origin, destination LocationRef, weightKg float64) (routing.TransportAvailability, error) {
	defer s.observe("analyze_route", time.Now())
	return s.Service.AnalyzeRoute(ctx, origin, destination, weightKg)
}

func (s *instrumentingService) QuoteShipment(ctx context.Context, req ShipmentRequest) (*Quote, error) {
	defer s.observe("quote", time.Now())

	q, err := s.Service.QuoteShipment(ctx, req)
	if err == nil {
		cost, _ := q.EstimatedCost.Float64()
		s.quotedCost.With("mode", string(q.Vehicle.Type)).Observe(cost)
	}
	return q, err
}

func (s *instrumentingService) AssignVehicle(ctx context.Context, trackingID, vehicleID string) (*domain.Shipment, error) {
	defer s.observe("assign_vehicle", time.Now())
	return s.Service.AssignVehicle(ctx, trackingID, vehicleID)
}

func (s *instrumentingService) TransitionShipment(ctx context.Context, trackingID string, status domain.ShipmentStatus) (*domain.Shipment, error) {
	defer s.observe("transition_shipment", time.Now())
	return s.Service.TransitionShipment(ctx, trackingID, status)
}

func (s *instrumentingService) AdvanceVehicle(ctx context.Context, trackingID string, to domain.Location) (domain.Movement, error) {
	defer s.observe("advance_vehicle", time.Now())
	return s.Service.AdvanceVehicle(ctx, trackingID, to)
}
