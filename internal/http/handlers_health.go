package httpx

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler reports 200 when every check passes and 503 otherwise.
type HealthHandler struct {
	Checks []HealthCheck
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	for _, c := range h.Checks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(h.Checks))
		}
		if err := c.Check(ctx); err != nil {
			resp.Checks[c.Name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, resp)
}
