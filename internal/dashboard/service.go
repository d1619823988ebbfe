// Package dashboard runs the load and aggregate pipeline for one render.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/dennisdiepolder/monti/dashboard/internal/aggregator"
	"github.com/dennisdiepolder/monti/dashboard/internal/alerts"
	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
	"github.com/dennisdiepolder/monti/dashboard/internal/metrics"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Renderer produces a fresh dashboard. HTTP handlers and the report CLI
// depend on this instead of the concrete Service.
type Renderer interface {
	Render(ctx context.Context) (*types.Dashboard, error)
}

// Service loads the configured source and aggregates it on every call.
// It holds no state between renders.
type Service struct {
	opts    loader.Options
	rules   alerts.Rules
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a new Service
func NewService(opts loader.Options, rules alerts.Rules, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		opts:    opts,
		rules:   rules,
		metrics: m,
		logger:  logger.With().Str("component", "dashboard").Logger(),
		now:     time.Now,
	}
}

// Render runs one full pipeline: load, aggregate, derive views, check alerts.
func (s *Service) Render(ctx context.Context) (*types.Dashboard, error) {
	renderID := uuid.New().String()
	logger := s.logger.With().Str("render_id", renderID).Logger()

	loadStart := time.Now()
	records, err := loader.Load(ctx, s.opts)
	if err != nil {
		kind := loader.Kind(err)
		s.metrics.RecordLoadError(kind)
		logger.Error().Err(err).
			Str("source", s.opts.SourcePath).
			Str("kind", kind).
			Msg("failed to load source")
		return nil, fmt.Errorf("load %s: %w", s.opts.SourcePath, err)
	}
	s.metrics.RecordLoad(time.Since(loadStart), len(records))

	aggStart := time.Now()
	d := aggregator.BuildDashboard(records)
	alerts.CheckSummaryAlerts(d.Summaries, s.rules)

	undefined := 0
	for _, sum := range d.Summaries {
		if !sum.ProductivityDefined {
			undefined++
			logger.Debug().Str("agent", sum.Agent).Msg("agent has no logged-in time")
		}
	}
	s.metrics.RecordAggregation(time.Since(aggStart), len(d.Summaries), undefined)

	counts := make(map[string]int)
	for severity, n := range alerts.Count(d.Summaries) {
		counts[string(severity)] = n
	}
	s.metrics.SetAlerts(counts)

	d.RenderID = renderID
	d.GeneratedAt = s.now()
	d.Source = s.opts.SourcePath

	logger.Debug().
		Int("records", len(records)).
		Int("agents", len(d.Summaries)).
		Int("dates", len(d.Heatmap.Dates)).
		Int("undefined_productivity", undefined).
		Dur("duration", time.Since(loadStart)).
		Msg("dashboard rendered")

	return &d, nil
}
