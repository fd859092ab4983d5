// Package ops exposes the operational HTTP surface: health and Prometheus
// metrics. The pipeline itself has no business API; this listener exists so
// a scraper can collect batch counters.
package ops

import (
	"encoding/json"
	"net/http"

	"github.com/loremdai/tennishealth/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the operational endpoints.
type Handler struct{}

// NewHandler creates the operational handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register mounts the operational routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.HandleHealth)
	mux.HandleFunc("/metrics", h.HandleMetrics)
}

// HandleHealth handles GET /healthz requests with a JSON liveness reply.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// HandleMetrics serves the custom metrics registry in Prometheus format.
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
