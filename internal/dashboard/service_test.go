package dashboard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dennisdiepolder/monti/dashboard/internal/alerts"
	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
	"github.com/dennisdiepolder/monti/dashboard/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `Agent,Start Time,End Time,Available Time,Handling Time,Wrap Up Time,Working Offline Time,On Break Time,Busy Time,Logged In Time,Offering Time
A,2025-07-01T08:00:00-05:00,2025-07-01T08:15:00-05:00,00:00:00,00:30:00,00:15:00,00:00:00,00:00:00,00:15:00,02:00:00,00:00:00
A,2025-07-01T08:15:00-05:00,2025-07-01T08:30:00-05:00,00:00:00,00:30:00,00:15:00,00:00:00,00:00:00,00:15:00,02:00:00,00:00:00
Z,2025-07-02T08:00:00-05:00,2025-07-02T08:15:00-05:00,00:00:00,00:00:00,00:00:00,00:15:00,00:00:00,00:00:00,00:00:00,00:00:00
`

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	path := writeSource(t, scenarioCSV)
	svc := NewService(loader.Options{SourcePath: path}, alerts.DefaultRules(), metrics.New(), zerolog.New(&buf))
	fixed := time.Date(2025, 7, 10, 11, 38, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	d, err := svc.Render(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, d.RenderID)
	assert.Equal(t, fixed, d.GeneratedAt)
	assert.Equal(t, path, d.Source)

	require.Len(t, d.Summaries, 2)
	a := d.Summaries[0]
	assert.Equal(t, "A", a.Agent)
	assert.Equal(t, 4*time.Hour, a.LoggedIn)
	assert.Equal(t, 2*time.Hour, a.ProductiveTime)
	assert.Equal(t, 50.0, a.ProductivityPct)
	assert.Empty(t, a.Alerts)

	z := d.Summaries[1]
	assert.Equal(t, "Z", z.Agent)
	assert.False(t, z.ProductivityDefined)
	require.Len(t, z.Alerts, 1)
	assert.Equal(t, "zero_logged_in", z.Alerts[0].Rule)
}

func TestRenderIsIdempotent(t *testing.T) {
	path := writeSource(t, scenarioCSV)
	svc := NewService(loader.Options{SourcePath: path}, alerts.DefaultRules(), metrics.New(), zerolog.Nop())

	first, err := svc.Render(context.Background())
	require.NoError(t, err)
	second, err := svc.Render(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.RenderID, second.RenderID)
	assert.Equal(t, first.Summaries, second.Summaries)
	assert.Equal(t, first.Heatmap, second.Heatmap)
	assert.Equal(t, first.Totals, second.Totals)
}

func TestRenderRereadsSource(t *testing.T) {
	path := writeSource(t, scenarioCSV)
	svc := NewService(loader.Options{SourcePath: path}, alerts.DefaultRules(), metrics.New(), zerolog.Nop())

	first, err := svc.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Summaries, 2)

	require.NoError(t, os.WriteFile(path, []byte(scenarioCSV+
		"B,2025-07-02T09:00:00-05:00,2025-07-02T09:15:00-05:00,00:00:00,00:10:00,00:00:00,00:00:00,00:00:00,00:00:00,00:15:00,00:00:00\n"), 0o600))

	second, err := svc.Render(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Summaries, 3)
}

func TestRenderLoadError(t *testing.T) {
	var buf bytes.Buffer
	path := writeSource(t, "Agent,Start Time\nA,2025-07-01T08:00:00-05:00\n")
	svc := NewService(loader.Options{SourcePath: path}, alerts.DefaultRules(), metrics.New(), zerolog.New(&buf))

	d, err := svc.Render(context.Background())
	assert.Nil(t, d)
	assert.ErrorIs(t, err, loader.ErrMissingColumn)
	assert.Contains(t, buf.String(), `"kind":"missing_column"`)
	assert.Contains(t, buf.String(), "failed to load source")
}
