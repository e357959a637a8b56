package handlers

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/log"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and, when a database is wired, its reachability.
type HealthHandler struct {
	DB     Pinger
	Logger log.Logger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	status := http.StatusOK

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			res["status"] = "degraded"
			res["database"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			res["database"] = "up"
		}
	}

	writeJSON(w, r, h.Logger, status, res)
}
