package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"

	"freight-planner-service/internal/api/dto"
	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/services"
)

// FreightHandler exposes the engine over HTTP. Tracker may be nil, in which
// case the tick endpoint is not served.
type FreightHandler struct {
	Svc     services.Service
	Tracker *services.Tracker
	Logger  log.Logger
}

func toRef(r dto.LocationRef) services.LocationRef {
	return services.LocationRef{Code: r.Code, Lat: r.Lat, Lng: r.Lng}
}

func (h *FreightHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Svc.Locations(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, "list locations", err)
		return
	}

	res := dto.ListLocationsResponse{Locations: make([]dto.LocationResponse, 0, len(locs))}
	for _, l := range locs {
		res.Locations = append(res.Locations, dto.NewLocationResponse(l))
	}
	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

func (h *FreightHandler) AnalyzeRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}

	av, err := h.Svc.AnalyzeRoute(r.Context(), toRef(req.Origin), toRef(req.Destination), req.WeightKg)
	if err != nil {
		writeServiceError(w, r, h.Logger, "analyze route", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.AnalyzeRouteResponse{
		TransportAvailability: av,
		HasRecommendation:     av.HasRecommendation(),
	})
}

func (h *FreightHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}

	q, err := h.Svc.QuoteShipment(r.Context(), services.ShipmentRequest{
		CustomerID:     req.CustomerID,
		WeightKg:       req.WeightKg,
		Origin:         toRef(req.Origin),
		Destination:    toRef(req.Destination),
		Urgency:        domain.Urgency(req.Urgency),
		ShipmentType:   domain.ShipmentType(req.ShipmentType),
		InsuranceValue: req.InsuranceValue,
		Assign:         req.Assign,
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, "quote shipment", err)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusCreated, dto.QuoteResponse{
		Shipment:              dto.NewShipmentResponse(q.Shipment),
		Vehicle:               dto.NewVehicleResponse(q.Vehicle),
		Strategy:              q.Strategy.Name(),
		EstimatedCost:         q.EstimatedCost,
		EstimatedDeliveryDays: q.EstimatedDeliveryDays,
		DistanceKm:            q.DistanceKm,
		Availability:          q.Availability,
	})
}

func (h *FreightHandler) Shipment(w http.ResponseWriter, r *http.Request) {
	shp, err := h.Svc.Shipment(r.Context(), mux.Vars(r)["tracking_id"])
	if err != nil {
		writeServiceError(w, r, h.Logger, "get shipment", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewShipmentResponse(shp))
}

func (h *FreightHandler) TransitionShipment(w http.ResponseWriter, r *http.Request) {
	var req dto.StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}
	status, err := domain.ParseShipmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		writeServiceError(w, r, h.Logger, "transition shipment", err)
		return
	}

	shp, err := h.Svc.TransitionShipment(r.Context(), mux.Vars(r)["tracking_id"], status)
	if err != nil {
		writeServiceError(w, r, h.Logger, "transition shipment", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewShipmentResponse(shp))
}

func (h *FreightHandler) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}
	if req.VehicleID == "" {
		writeError(w, r, h.Logger, http.StatusBadRequest, "vehicle_id is required")
		return
	}

	shp, err := h.Svc.AssignVehicle(r.Context(), mux.Vars(r)["tracking_id"], req.VehicleID)
	if err != nil {
		writeServiceError(w, r, h.Logger, "assign vehicle", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewShipmentResponse(shp))
}

// Tick advances a shipment one step toward its destination.
func (h *FreightHandler) Tick(w http.ResponseWriter, r *http.Request) {
	if h.Tracker == nil {
		writeError(w, r, h.Logger, http.StatusNotImplemented, "tracking is not enabled")
		return
	}
	u, err := h.Tracker.Tick(r.Context(), mux.Vars(r)["tracking_id"])
	if err != nil {
		writeServiceError(w, r, h.Logger, "tick shipment", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, u)
}

func (h *FreightHandler) Vehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Vehicle(r.Context(), mux.Vars(r)["vehicle_id"])
	if err != nil {
		writeServiceError(w, r, h.Logger, "get vehicle", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewVehicleResponse(v))
}

func (h *FreightHandler) ComparePricing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "weight must be a number")
		return
	}
	distance, err := strconv.ParseFloat(q.Get("distance"), 64)
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "distance must be a number")
		return
	}

	rows, err := h.Svc.ComparePricing(r.Context(), weight, distance)
	if err != nil {
		writeServiceError(w, r, h.Logger, "compare pricing", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.ComparePricingResponse{
		WeightKg:   weight,
		DistanceKm: distance,
		Options:    rows,
	})
}
