package domain

import "fmt"

const (
	// Draft added per loaded container.
	DraftPerContainerM = 0.005
	// Clearance a port must keep under the keel.
	PortClearanceM = 2.0
)

// Ship-specific state carried by a Vehicle of type Ship.
type ShipProfile struct {
	ContainerCapacity int
	CurrentContainers int
	DraftDepthM       float64
}

// LoadContainers adds n containers and deepens the draft accordingly.
func (s *ShipProfile) LoadContainers(n int) error {
	if n <= 0 {
		return fmt.Errorf("load containers: count must be positive, got %d", n)
	}
	if s.CurrentContainers+n > s.ContainerCapacity {
		return fmt.Errorf(
			"load containers: %w: %d + %d exceeds %d",
			ErrInsufficientCapacity, s.CurrentContainers, n, s.ContainerCapacity,
		)
	}
	s.CurrentContainers += n
	s.DraftDepthM += float64(n) * DraftPerContainerM
	return nil
}

func (s *ShipProfile) UnloadContainers(n int) error {
	if n <= 0 {
		return fmt.Errorf("unload containers: count must be positive, got %d", n)
	}
	if n > s.CurrentContainers {
		return fmt.Errorf("unload containers: only %d on board, asked %d", s.CurrentContainers, n)
	}
	s.CurrentContainers -= n
	s.DraftDepthM -= float64(n) * DraftPerContainerM
	return nil
}

// LoadRatio is current containers as a fraction of capacity.
func (s *ShipProfile) LoadRatio() float64 {
	if s.ContainerCapacity <= 0 {
		return 0
	}
	return float64(s.CurrentContainers) / float64(s.ContainerCapacity)
}

// CanDockAt reports whether a port of the given depth leaves enough clearance.
func (s *ShipProfile) CanDockAt(portDepthM float64) bool {
	return portDepthM >= s.DraftDepthM+PortClearanceM
}
