package domain

import "fmt"

// Drone-specific state carried by a Vehicle of type Drone.
type DroneProfile struct {
	AltitudeM     float64
	MaxAltitudeM  float64
	BatteryHealth float64
}

// SetAltitude changes cruise altitude within [0, MaxAltitudeM].
func (d *DroneProfile) SetAltitude(m float64) error {
	if m < 0 || m > d.MaxAltitudeM {
		return fmt.Errorf("set altitude: %.1fm outside [0, %.1f]", m, d.MaxAltitudeM)
	}
	d.AltitudeM = m
	return nil
}

// AltitudeRatio is altitude as a fraction of the maximum.
func (d *DroneProfile) AltitudeRatio() float64 {
	if d.MaxAltitudeM <= 0 {
		return 0
	}
	return d.AltitudeM / d.MaxAltitudeM
}
