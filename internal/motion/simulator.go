package motion

import (
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/zoobzio/clockz"

	"freight-planner-service/internal/domain"
)

// Simulator advances vehicles using their type's motion model.
//
// By default a move that needs more fuel than the tank holds still happens:
// the tank is emptied and a warning is logged. WithStrictFuel turns that case
// into ErrInsufficientFuel and leaves the vehicle untouched.
type Simulator struct {
	logger     log.Logger
	clock      clockz.Clock
	strictFuel bool
}

type Option func(*Simulator)

func WithLogger(l log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithClock(c clockz.Clock) Option {
	return func(s *Simulator) { s.clock = c }
}

// WithStrictFuel rejects moves the vehicle cannot fuel.
func WithStrictFuel() Option {
	return func(s *Simulator) { s.strictFuel = true }
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{logger: log.NewNopLogger(), clock: clockz.RealClock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview computes the movement of v to destination without changing v.
func (s *Simulator) Preview(v *domain.Vehicle, to domain.Location) (domain.Movement, error) {
	m, err := ModelFor(v.Type)
	if err != nil {
		return domain.Movement{}, fmt.Errorf("preview move %s: %w", v.ID, err)
	}

	from := v.CurrentLocation
	distance := m.Distance(from, to)

	var minutes float64
	if speed := m.MaxSpeedKmh(v); speed > 0 {
		minutes = distance / speed * 60
	}
	fuel := m.FuelConsumption(v, distance)

	return domain.Movement{
		VehicleID:        v.ID,
		VehicleType:      v.Type,
		Path:             m.Path(from, to),
		DistanceKm:       distance,
		EstimatedMinutes: minutes,
		FuelUsed:         fuel,
		FuelSufficient:   v.Fuel >= fuel,
	}, nil
}

// Move relocates v to destination, burns fuel, accumulates truck mileage and
// records a tracking event on the vehicle.
func (s *Simulator) Move(v *domain.Vehicle, to domain.Location) (domain.Movement, error) {
	mv, err := s.Preview(v, to)
	if err != nil {
		return mv, err
	}

	if !mv.FuelSufficient {
		if s.strictFuel {
			return mv, fmt.Errorf(
				"move %s: %w: need %.2f, have %.2f",
				v.ID, domain.ErrInsufficientFuel, mv.FuelUsed, v.Fuel,
			)
		}
		level.Warn(s.logger).Log(
			"msg", "insufficient fuel, moving anyway",
			"vehicle", v.ID,
			"type", v.Type,
			"need", mv.FuelUsed,
			"have", v.Fuel,
		)
	}

	v.ConsumeFuel(mv.FuelUsed)
	v.CurrentLocation = to
	if v.Truck != nil {
		v.Truck.AddMileage(mv.DistanceKm)
		if v.Truck.NeedsTireService() {
			level.Info(s.logger).Log("msg", "tire service due", "vehicle", v.ID, "mileage_km", v.Truck.MileageKm)
		}
	}

	loc := to
	v.Record(domain.TrackingEvent{
		At:       s.clock.Now(),
		Status:   string(v.Status),
		Location: &loc,
		Note:     fmt.Sprintf("moved %.1f km", mv.DistanceKm),
	})

	return mv, nil
}
