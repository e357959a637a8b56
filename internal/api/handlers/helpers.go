package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
	"freight-planner-service/internal/pricing"
)

func writeJSON(w http.ResponseWriter, r *http.Request, logger log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		level.Error(logger).Log("msg", "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger log.Logger, status int, msg string) {
	writeJSON(w, r, logger, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object and rejects unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("body must contain only one JSON object")
	}
	return nil
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsRouteUnavailable(err), errors.Is(err, pricing.ErrNotEligible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrInsufficientCapacity),
		errors.Is(err, domain.ErrInsufficientFuel):
		return http.StatusConflict
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeServiceError reports err to the client. Internal failures are logged
// and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger log.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		level.Error(logger).Log("msg", op+" failed", "err", err)
		writeError(w, r, logger, status, "internal server error")
		return
	}

	msg := err.Error()
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Error()
	}
	writeError(w, r, logger, status, msg)
}
