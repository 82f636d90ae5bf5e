// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sarisagroup/sarisa-web/internal/cache"
	"github.com/sarisagroup/sarisa-web/internal/scheduler"
	"github.com/sarisagroup/sarisa-web/internal/version"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 2 * time.Second

// backendPingPath is requested to check backend reachability.
const backendPingPath = "public/seo/site"

// BackendPinger checks backend reachability. *backend.Client satisfies it.
type BackendPinger interface {
	Ping(ctx context.Context, path string) error
}

// JobLister reports background jobs. *scheduler.Scheduler satisfies it.
type JobLister interface {
	List() []scheduler.JobInfo
}

type cachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	backend   BackendPinger
	cache     cache.Cacher
	cacheInfo cache.Info
	version   version.Info
	jobs      JobLister
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(backend BackendPinger, c cache.Cacher, cacheInfo cache.Info, info version.Info) *HealthHandler {
	return &HealthHandler{
		backend:   backend,
		cache:     c,
		cacheInfo: cacheInfo,
		version:   info,
		startTime: time.Now(),
	}
}

// SetJobs adds the background jobs to the health report.
func (h *HealthHandler) SetJobs(jobs JobLister) {
	h.jobs = jobs
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   version.Info     `json:"version"`
	Checks    map[string]Check `json:"checks"`

	Jobs []scheduler.JobInfo `json:"jobs,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
	Backend string       `json:"backend,omitempty"`
	Stats   *cache.Stats `json:"stats,omitempty"`
}

// Health handles GET /health. A failing backend degrades the status but
// still answers 200: pages keep rendering with fallback metadata.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"backend": h.checkBackend(r.Context()),
		"cache":   h.checkCache(r.Context()),
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status != "healthy" {
			status = "degraded"
		}
	}

	resp := HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
	if h.jobs != nil {
		resp.Jobs = h.jobs.List()
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) checkBackend(ctx context.Context) Check {
	if h.backend == nil {
		return Check{Status: "unhealthy", Message: "not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	if err := h.backend.Ping(ctx, backendPingPath); err != nil {
		return Check{Status: "unhealthy", Message: "backend unreachable", Latency: time.Since(start).String()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: "healthy", Message: "disabled"}
	}
	check := Check{Status: "healthy", Backend: h.cacheInfo.Backend}
	if h.cacheInfo.IsFallback {
		check.Message = "redis unavailable, using memory"
	}
	if p, ok := h.cache.(cachePinger); ok {
		ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			check.Status = "unhealthy"
			check.Message = "ping failed"
		}
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		check.Stats = &stats
	}
	return check
}
