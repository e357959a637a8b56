package api

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"

	"freight-planner-service/internal/api/handlers"
	"freight-planner-service/internal/services"
)

// Deps are the collaborators the router hands to its handlers. Only Svc is
// required.
type Deps struct {
	Svc     services.Service
	Tracker *services.Tracker
	DB      handlers.Pinger
	Metrics http.Handler
	Logger  log.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	health := &handlers.HealthHandler{DB: d.DB, Logger: logger}
	freight := &handlers.FreightHandler{Svc: d.Svc, Tracker: d.Tracker, Logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	r.HandleFunc("/locations", freight.Locations).Methods(http.MethodGet)
	r.HandleFunc("/routes/analyze", freight.AnalyzeRoute).Methods(http.MethodPost)
	r.HandleFunc("/quotes", freight.Quote).Methods(http.MethodPost)
	r.HandleFunc("/pricing/compare", freight.ComparePricing).Methods(http.MethodGet)
	r.HandleFunc("/shipments/{tracking_id}", freight.Shipment).Methods(http.MethodGet)
	r.HandleFunc("/shipments/{tracking_id}/status", freight.TransitionShipment).Methods(http.MethodPost)
	r.HandleFunc("/shipments/{tracking_id}/assign", freight.AssignVehicle).Methods(http.MethodPost)
	r.HandleFunc("/shipments/{tracking_id}/tick", freight.Tick).Methods(http.MethodPost)
	r.HandleFunc("/vehicles/{vehicle_id}", freight.Vehicle).Methods(http.MethodGet)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics).Methods(http.MethodGet)
	}

	r.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "method not allowed")
	r.NotFoundHandler = jsonError(http.StatusNotFound, "not found")

	return requestIDMiddleware(loggingMiddleware(logger)(r))
}

func jsonError(status int, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"` + msg + `"}` + "\n"))
	})
}
