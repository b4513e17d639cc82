package handler

import (
	"net/http"
	"time"

	"github.com/erp/selling/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	version string
	started time.Time
	checks  map[string]Pinger
}

// NewHealthHandler creates a HealthHandler. checks are consulted by the readiness probe.
func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, started: time.Now(), checks: checks}
}

// RegisterRoutes registers the probes on the engine root, outside the API group
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Live)
	r.GET("/ready", h.Ready)
}

// Live answers as long as the process serves requests
func (h *HealthHandler) Live(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready pings every dependency and answers 503 when one is down
func (h *HealthHandler) Ready(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: results})
}
