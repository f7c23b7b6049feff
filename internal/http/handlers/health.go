package handlers

import (
	"net/http"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/coach"
	"github.com/fitcoach/fitcoach-be/internal/http/respond"
	"github.com/fitcoach/fitcoach-be/internal/logging"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	appName    = "AI Fitness Assistant API"
	appVersion = "1.0.0"
)

type systemMetrics struct {
	CPUUsagePercent    float64 `json:"cpu_usage_percent"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`
	DiskUsagePercent   float64 `json:"disk_usage_percent"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
}

// HealthHandler answers the probes an orchestrator uses for deployment.
type HealthHandler struct {
	startedAt   time.Time
	environment string
	generator   coach.Generator
}

// NewHealthHandler creates the health endpoint handler.
func NewHealthHandler(startedAt time.Time, environment string, generator coach.Generator) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, environment: environment, generator: generator}
}

// HandleRoot reports basic API information.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":     appName,
		"version":     appVersion,
		"status":      "running",
		"environment": h.environment,
		"timestamp":   time.Now().UTC(),
	})
}

// HandleHealth runs the full health check: generator readiness plus system
// metrics.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checksTotal := 2
	checksPassed := 1 // metrics collection degrades gracefully, it never fails the check

	status := "healthy"
	if h.generator.Ready() {
		checksPassed++
	} else {
		status = "degraded"
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"status":         status,
		"timestamp":      time.Now().UTC(),
		"version":        appVersion,
		"environment":    h.environment,
		"model_ready":    h.generator.Ready(),
		"system_metrics": h.collectMetrics(),
		"checks_passed":  checksPassed,
		"checks_total":   checksTotal,
	})
}

// HandleReady is the readiness probe.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]bool{
		"model_loaded":   h.generator.Ready(),
		"api_responsive": true,
	}
	ready := true
	for _, ok := range checks {
		ready = ready && ok
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(w, status, map[string]any{
		"ready":     ready,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// HandleLive is the liveness probe.
func (h *HealthHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"alive":          true,
		"timestamp":      time.Now().UTC(),
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	})
}

// collectMetrics gathers best-effort system metrics; failures leave fields at
// zero rather than failing the health check.
func (h *HealthHandler) collectMetrics() systemMetrics {
	metrics := systemMetrics{UptimeSeconds: time.Since(h.startedAt).Seconds()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.CPUUsagePercent = percents[0]
	} else if err != nil {
		logging.Warnf("health: cpu metrics unavailable: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.MemoryUsagePercent = vm.UsedPercent
	} else {
		logging.Warnf("health: memory metrics unavailable: %v", err)
	}
	if usage, err := disk.Usage("/"); err == nil {
		metrics.DiskUsagePercent = usage.UsedPercent
	} else {
		logging.Warnf("health: disk metrics unavailable: %v", err)
	}
	return metrics
}
