// Package ids provides the identifier and clock source injected into the
// planner and the engine service.
package ids

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.IDGenerator = (*Generator)(nil)

var licensePrefix = map[domain.VehicleType]string{
	domain.Drone: "DRN",
	domain.Truck: "TRU",
	domain.Ship:  "SHP",
}

// Generator hands out sequential vehicle ids and licenses plus random
// shipment and tracking ids. Safe for concurrent use.
type Generator struct {
	clock clockz.Clock

	mu   sync.Mutex
	rand io.Reader

	vehicles atomic.Int64
	licenses map[domain.VehicleType]*atomic.Int64
}

type Option func(*Generator)

// WithClock replaces the real clock, typically with clockz.NewFakeClock().
func WithClock(c clockz.Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithRandom makes uuid generation read from r instead of crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) { g.rand = r }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		clock:    clockz.RealClock,
		licenses: make(map[domain.VehicleType]*atomic.Int64, len(licensePrefix)),
	}
	for vt := range licensePrefix {
		g.licenses[vt] = new(atomic.Int64)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Now() time.Time { return g.clock.Now() }

// NextVehicleID returns VEH-000001, VEH-000002, ... across all types.
func (g *Generator) NextVehicleID(domain.VehicleType) string {
	return fmt.Sprintf("VEH-%06d", g.vehicles.Add(1))
}

// NextLicense returns a per-type sequential plate such as TRU-000003.
func (g *Generator) NextLicense(t domain.VehicleType) string {
	prefix, ok := licensePrefix[t]
	if !ok {
		return fmt.Sprintf("UNK-%06d", g.vehicles.Load())
	}
	return fmt.Sprintf("%s-%06d", prefix, g.licenses[t].Add(1))
}

func (g *Generator) NextShipmentID() string {
	return g.uuid().String()
}

// NextTrackingID returns TRK-<yyyymmdd>-<8 hex chars, upper case>.
func (g *Generator) NextTrackingID() string {
	segment := strings.ToUpper(strings.Split(g.uuid().String(), "-")[0])
	return fmt.Sprintf("TRK-%s-%s", g.clock.Now().UTC().Format("20060102"), segment)
}

func (g *Generator) uuid() uuid.UUID {
	if g.rand == nil {
		return uuid.New()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return uuid.New()
	}
	return id
}
