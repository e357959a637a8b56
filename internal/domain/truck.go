package domain

import "fmt"

// Mileage after which a truck is due for a tire change.
const TireServiceIntervalKm = 100_000

// Truck-specific state carried by a Vehicle of type Truck.
type TruckProfile struct {
	AxleCount       int
	TrailerAttached bool
	MileageKm       float64
	// Odometer reading at the last tire change.
	TireServicedAtKm float64
}

// Attach a trailer. Trailers lower top speed and raise fuel use.
func (t *TruckProfile) AttachTrailer() error {
	if t.TrailerAttached {
		return fmt.Errorf("attach trailer: trailer already attached")
	}
	t.TrailerAttached = true
	return nil
}

func (t *TruckProfile) DetachTrailer() error {
	if !t.TrailerAttached {
		return fmt.Errorf("detach trailer: no trailer attached")
	}
	t.TrailerAttached = false
	return nil
}

// AddMileage accumulates distance driven. Negative distances are ignored.
func (t *TruckProfile) AddMileage(km float64) {
	if km > 0 {
		t.MileageKm += km
	}
}

// NeedsTireService reports whether the truck has driven a full service
// interval since its last tire change.
func (t *TruckProfile) NeedsTireService() bool {
	return t.MileageKm-t.TireServicedAtKm >= TireServiceIntervalKm
}

// ServiceTires records a tire change at the current odometer reading.
func (t *TruckProfile) ServiceTires() {
	t.TireServicedAtKm = t.MileageKm
}
