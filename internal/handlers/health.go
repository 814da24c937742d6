package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/schema"
	"campaign-migration-platform/internal/services"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	logger   *logger.Logger
	registry schema.Registry
	sources  map[string]services.SourceClient
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(log *logger.Logger, registry schema.Registry, sources map[string]services.SourceClient) *HealthHandler {
	return &HealthHandler{
		logger:   log,
		registry: registry,
		sources:  sources,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Platforms map[string]string `json:"platforms"`
}

// HandleHealthCheck reports overall health: for each supported source
// platform, whether its schema definition loads.
func (h *HealthHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	platforms := make(map[string]string, len(h.sources))
	overallStatus := "healthy"

	for _, platform := range h.platformNames() {
		if _, err := h.registry.Get(platform); err != nil {
			platforms[platform] = "schema unavailable: " + err.Error()
			overallStatus = "unhealthy"
			continue
		}
		platforms[platform] = "ok"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Platforms: platforms,
	}

	w.Header().Set("Content-Type", "application/json")
	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(response)
}

// HandleLivenessProbe handles Kubernetes liveness probe
func (h *HealthHandler) HandleLivenessProbe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleReadinessProbe handles Kubernetes readiness probe. Ready once every
// supported platform's schema loads.
func (h *HealthHandler) HandleReadinessProbe(w http.ResponseWriter, r *http.Request) {
	for _, platform := range h.platformNames() {
		if _, err := h.registry.Get(platform); err != nil {
			h.logger.WithPlatform(platform).WithError(err).Warn("Readiness check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Service Unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func (h *HealthHandler) platformNames() []string {
	names := make([]string, 0, len(h.sources))
	for name := range h.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
