package domain

import "testing"

func TestTruckTireService(t *testing.T) {
	v, err := NewVehicle(Truck, "VEH-000001", "TRU-000001", Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	truck := v.Truck

	if truck.AxleCount != TruckAxles {
		t.Fatalf("axles = %d, want %d", truck.AxleCount, TruckAxles)
	}

	truck.AddMileage(60_000)
	truck.AddMileage(-500)
	if truck.NeedsTireService() {
		t.Fatalf("tire service due too early at %.0f km", truck.MileageKm)
	}

	truck.AddMileage(40_000)
	if !truck.NeedsTireService() {
		t.Fatalf("tire service not due at %.0f km", truck.MileageKm)
	}

	truck.ServiceTires()
	if truck.NeedsTireService() {
		t.Fatalf("tire service still due right after service")
	}
}

func TestTruckTrailer(t *testing.T) {
	truck := &TruckProfile{AxleCount: 5}

	if err := truck.DetachTrailer(); err == nil {
		t.Fatalf("expected error detaching missing trailer")
	}
	if err := truck.AttachTrailer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := truck.AttachTrailer(); err == nil {
		t.Fatalf("expected error attaching second trailer")
	}
	if !truck.TrailerAttached {
		t.Fatalf("trailer should be attached")
	}
}

func TestShipContainersAndDocking(t *testing.T) {
	v, err := NewVehicle(Ship, "VEH-000002", "SHP-000001", Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ship := v.Ship

	if !ship.CanDockAt(10) {
		t.Fatalf("empty ship (draft %.2f) should dock at 10m", ship.DraftDepthM)
	}

	if err := ship.LoadContainers(1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 8 + 1000 * 0.005 = 13m draft, needs 15m.
	if ship.CanDockAt(14.9) {
		t.Fatalf("loaded ship (draft %.2f) should not dock at 14.9m", ship.DraftDepthM)
	}
	if !ship.CanDockAt(15) {
		t.Fatalf("loaded ship (draft %.2f) should dock at 15m", ship.DraftDepthM)
	}
	if got := ship.LoadRatio(); got != 0.5 {
		t.Fatalf("load ratio = %v, want 0.5", got)
	}

	if err := ship.LoadContainers(1001); err == nil {
		t.Fatalf("expected capacity error")
	}
	if err := ship.UnloadContainers(1001); err == nil {
		t.Fatalf("expected error unloading more than on board")
	}
	if err := ship.UnloadContainers(1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ship.CurrentContainers != 0 {
		t.Fatalf("containers = %d, want 0", ship.CurrentContainers)
	}
}

func TestDroneAltitude(t *testing.T) {
	d := &DroneProfile{MaxAltitudeM: 120}

	if err := d.SetAltitude(130); err == nil {
		t.Fatalf("expected error above max altitude")
	}
	if err := d.SetAltitude(-1); err == nil {
		t.Fatalf("expected error below ground")
	}
	if err := d.SetAltitude(60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.AltitudeRatio(); got != 0.5 {
		t.Fatalf("altitude ratio = %v, want 0.5", got)
	}
}
