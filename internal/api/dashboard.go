package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/monti/dashboard/internal/charts"
	"github.com/dennisdiepolder/monti/dashboard/internal/dashboard"
	"github.com/dennisdiepolder/monti/dashboard/internal/report"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// DashboardHandler serves the dashboard page, its charts and JSON/CSV views.
// Every request runs the full load and aggregate pipeline.
type DashboardHandler struct {
	renderer dashboard.Renderer
	logger   zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(renderer dashboard.Renderer, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		renderer: renderer,
		logger:   logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register mounts the dashboard routes on r
func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/", h.GetIndex)
	r.Get("/charts/{name}.svg", h.GetChart)
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Get("/summary.csv", h.GetSummaryCSV)
		r.Get("/activity", h.GetActivity)
		r.Get("/agents/{agent}", h.GetAgent)
	})
}

// render runs the pipeline and writes a JSON error on failure
func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request) (*types.Dashboard, bool) {
	d, err := h.renderer.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, false
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to render dashboard")
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return d, true
}

// GetSummary returns the whole dashboard as JSON
// GET /api/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	d, ok := h.render(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// GetSummaryCSV returns the summary table as a CSV download
// GET /api/summary.csv
func (h *DashboardHandler) GetSummaryCSV(w http.ResponseWriter, r *http.Request) {
	d, ok := h.render(w, r)
	if !ok {
		return
	}

	out, err := report.FormatCSVReport(d)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode summary CSV")
		writeError(w, http.StatusInternalServerError, "failed to encode CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agent_summary.csv"`)
	w.Write([]byte(out))
}

// ActivityResponse is the payload of GET /api/activity
type ActivityResponse struct {
	Heatmap types.Heatmap         `json:"heatmap"`
	Daily   []types.DailyActivity `json:"daily"`
}

// GetActivity returns the per-day logged-in hours
// GET /api/activity
func (h *DashboardHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	d, ok := h.render(w, r)
	if !ok {
		return
	}

	daily := d.Daily
	if daily == nil {
		daily = []types.DailyActivity{}
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Heatmap: d.Heatmap, Daily: daily})
}

// AgentResponse is the payload of GET /api/agents/{agent}
type AgentResponse struct {
	Summary types.AgentSummary    `json:"summary"`
	Daily   []types.DailyActivity `json:"daily"`
}

// GetAgent returns one agent's summary and daily activity
// GET /api/agents/{agent}
func (h *DashboardHandler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agent := chi.URLParam(r, "agent")
	// chi matches on RawPath when the path carries escapes Path cannot
	// round-trip; only then is the param still encoded
	if r.URL.RawPath != "" {
		if v, err := url.PathUnescape(agent); err == nil {
			agent = v
		}
	}
	if agent == "" {
		writeError(w, http.StatusBadRequest, "agent is required")
		return
	}

	d, ok := h.render(w, r)
	if !ok {
		return
	}

	summary, found := d.Summary(agent)
	if !found {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}

	daily := d.DailyFor(agent)
	if daily == nil {
		daily = []types.DailyActivity{}
	}
	writeJSON(w, http.StatusOK, AgentResponse{Summary: summary, Daily: daily})
}

// GetChart renders one chart as SVG
// GET /charts/{name}.svg
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, known := charts.Titles[name]; !known {
		writeError(w, http.StatusNotFound, "unknown chart")
		return
	}

	d, ok := h.render(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(name, d, &buf); err != nil {
		h.logger.Error().Err(err).Str("chart", name).Msg("failed to render chart")
		writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", charts.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
