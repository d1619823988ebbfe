package simulate_test

import (
	"bytes"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennisdiepolder/monti/dashboard/internal/aggregator"
	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
	"github.com/dennisdiepolder/monti/dashboard/internal/simulate"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

var start = civil.Date{Year: 2025, Month: 6, Day: 30}

func generate(seed int64, agents, days int) []types.IntervalRecord {
	roster := simulate.NewGenerator(seed).GenerateAgents(agents)
	return simulate.NewSimulator(roster, seed, zerolog.Nop()).Run(start, days)
}

func TestGenerateAgents(t *testing.T) {
	a := simulate.NewGenerator(42).GenerateAgents(40)
	b := simulate.NewGenerator(42).GenerateAgents(40)
	assert.Equal(t, a, b, "same seed should give the same roster")

	names := make(map[string]bool)
	for _, agent := range a {
		assert.False(t, names[agent.Name], "duplicate name %s", agent.Name)
		names[agent.Name] = true
		assert.NotEmpty(t, agent.Team)
		assert.GreaterOrEqual(t, agent.Attendance, 0.85)
	}
}

func TestRunProducesFullIntervals(t *testing.T) {
	records := generate(7, 5, 3)
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.Equal(t, simulate.IntervalLength, r.EndTime.Sub(r.StartTime))
		assert.Equal(t, simulate.IntervalLength, r.LoggedIn, "%s at %s", r.Agent, r.StartTime)

		statuses := r.Available + r.Handling + r.WrapUp + r.WorkingOffline + r.OnBreak + r.Busy
		assert.Equal(t, r.LoggedIn, statuses)
		assert.Zero(t, r.StartTime.Minute()%15)
	}

	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].StartTime.Before(records[i-1].StartTime), "records should be in time order")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	assert.Equal(t, generate(99, 4, 2), generate(99, 4, 2))
	assert.NotEqual(t, generate(99, 4, 2), generate(100, 4, 2))
}

func TestExportRoundTrip(t *testing.T) {
	records := generate(3, 6, 2)

	var buf bytes.Buffer
	require.NoError(t, simulate.WriteCSV(&buf, records))

	parsed, err := loader.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, parsed)
}

func TestGeneratedDataAggregates(t *testing.T) {
	records := generate(11, 8, 5)

	var loggedIn, productive time.Duration
	for _, r := range records {
		loggedIn += r.LoggedIn
		productive += r.Handling + r.WrapUp + r.Busy
	}

	summaries := aggregator.Aggregate(records)
	var sumLoggedIn, sumProductive time.Duration
	for _, s := range summaries {
		sumLoggedIn += s.LoggedIn
		sumProductive += s.ProductiveTime
		assert.True(t, s.ProductivityDefined)
		assert.GreaterOrEqual(t, s.ProductivityPct, 0.0)
		assert.LessOrEqual(t, s.ProductivityPct, 100.0)
	}
	assert.Equal(t, loggedIn, sumLoggedIn)
	assert.Equal(t, productive, sumProductive)

	assert.Equal(t, summaries, aggregator.Aggregate(records))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{15 * time.Minute, "00:15:00"},
		{90*time.Second + 500*time.Millisecond, "00:01:30"},
		{37*time.Hour + 15*time.Minute, "37:15:00"},
		{-5 * time.Second, "-00:00:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, simulate.FormatDuration(tt.in))

		parsed, err := loader.ParseDuration(tt.want)
		require.NoError(t, err)
		assert.Equal(t, tt.in.Truncate(time.Second), parsed)
	}
}
