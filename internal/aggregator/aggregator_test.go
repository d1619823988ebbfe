package aggregator_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dennisdiepolder/monti/dashboard/internal/aggregator"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 7, day, hour, minute, 0, 0, time.UTC)
}

func interval(agent string, start time.Time) types.IntervalRecord {
	return types.IntervalRecord{
		Agent:     agent,
		StartTime: start,
		EndTime:   start.Add(15 * time.Minute),
	}
}

func sampleRecords() []types.IntervalRecord {
	a1 := interval("A", at(1, 8, 0))
	a1.LoggedIn = 2 * time.Hour
	a1.Handling = 30 * time.Minute
	a1.WrapUp = 15 * time.Minute
	a1.Busy = 15 * time.Minute
	a1.Available = 45 * time.Minute
	a1.OnBreak = 10 * time.Minute
	a1.Offering = time.Minute

	a2 := a1
	a2.StartTime = at(2, 8, 0)
	a2.EndTime = at(2, 8, 15)

	b := interval("B", at(1, 9, 0))
	b.LoggedIn = 3 * time.Hour
	b.Handling = time.Hour
	b.WorkingOffline = 20 * time.Minute

	lower := interval("a", at(1, 10, 0))
	lower.LoggedIn = time.Hour
	lower.Busy = time.Hour

	return []types.IntervalRecord{a1, b, a2, lower}
}

func TestAggregateEndToEndScenario(t *testing.T) {
	summaries := aggregator.Aggregate(sampleRecords())

	var a types.AgentSummary
	for _, s := range summaries {
		if s.Agent == "A" {
			a = s
		}
	}
	require.Equal(t, "A", a.Agent)
	assert.Equal(t, 4*time.Hour, a.LoggedIn)
	assert.Equal(t, time.Hour, a.Handling)
	assert.Equal(t, 2*time.Hour, a.ProductiveTime)
	assert.Equal(t, 50.0, a.ProductivityPct)
	assert.True(t, a.ProductivityDefined)
}

func TestAggregateOneRowPerDistinctAgent(t *testing.T) {
	summaries := aggregator.Aggregate(sampleRecords())

	// "A" and "a" are different agents
	require.Len(t, summaries, 3)
	assert.Equal(t, "A", summaries[0].Agent)
	assert.Equal(t, "B", summaries[1].Agent)
	assert.Equal(t, "a", summaries[2].Agent)
}

func TestAggregateConservesTotals(t *testing.T) {
	records := sampleRecords()
	summaries := aggregator.Aggregate(records)

	var want, got types.IntervalRecord
	for _, r := range records {
		want.Available += r.Available
		want.Handling += r.Handling
		want.WrapUp += r.WrapUp
		want.WorkingOffline += r.WorkingOffline
		want.OnBreak += r.OnBreak
		want.Busy += r.Busy
		want.LoggedIn += r.LoggedIn
	}
	for _, s := range summaries {
		got.Available += s.Available
		got.Handling += s.Handling
		got.WrapUp += s.WrapUp
		got.WorkingOffline += s.WorkingOffline
		got.OnBreak += s.OnBreak
		got.Busy += s.Busy
		got.LoggedIn += s.LoggedIn

		assert.Equal(t, s.Handling+s.WrapUp+s.Busy, s.ProductiveTime, s.Agent)
	}
	assert.Equal(t, want, got)
}

func TestAggregateSumsHandlingTime(t *testing.T) {
	r1 := interval("A", at(1, 8, 0))
	r1.Handling = 45 * time.Minute
	r1.LoggedIn = time.Hour
	r2 := interval("A", at(1, 8, 15))
	r2.Handling = 45 * time.Minute
	r2.LoggedIn = time.Hour

	summaries := aggregator.Aggregate([]types.IntervalRecord{r1, r2})
	require.Len(t, summaries, 1)
	assert.Equal(t, 90*time.Minute, summaries[0].Handling)
}

func TestAggregateIsOrderIndependentAndIdempotent(t *testing.T) {
	records := sampleRecords()
	first := aggregator.Aggregate(records)

	reversed := make([]types.IntervalRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	assert.Equal(t, first, aggregator.Aggregate(records))
	assert.Equal(t, first, aggregator.Aggregate(reversed))
}

func TestAggregateZeroLoggedIn(t *testing.T) {
	r := interval("idle", at(1, 8, 0))
	r.Handling = 5 * time.Minute

	summaries := aggregator.Aggregate([]types.IntervalRecord{r})
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].ProductivityDefined)
	assert.Equal(t, 0.0, summaries[0].ProductivityPct)
	assert.Equal(t, 5*time.Minute, summaries[0].ProductiveTime)
}

func TestAggregateDoubleRounding(t *testing.T) {
	tests := []struct {
		name       string
		productive time.Duration
		loggedIn   time.Duration
		expected   float64
	}{
		// 1/3 is 33.33% with a single rounding; the ratio is rounded first
		{"OneThird", time.Hour, 3 * time.Hour, 33.0},
		{"TwoThirds", 2 * time.Hour, 3 * time.Hour, 67.0},
		{"Exact", 3 * time.Hour, 4 * time.Hour, 75.0},
		{"OverHundred", 5 * time.Hour, 4 * time.Hour, 125.0},
		{"Nothing", 0, time.Hour, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := interval("A", at(1, 8, 0))
			r.Busy = tt.productive
			r.LoggedIn = tt.loggedIn

			summaries := aggregator.Aggregate([]types.IntervalRecord{r})
			require.Len(t, summaries, 1)
			assert.InDelta(t, tt.expected, summaries[0].ProductivityPct, 1e-9)
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	summaries := aggregator.Aggregate(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestAggregateSkipsUnnamedRecords(t *testing.T) {
	unnamed := interval("", at(1, 11, 0))
	unnamed.LoggedIn = 4 * time.Hour
	unnamed.Busy = 4 * time.Hour
	records := append(sampleRecords(), unnamed)

	summaries := aggregator.Aggregate(records)
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.NotEmpty(t, s.Agent)
	}
	assert.Equal(t, aggregator.Aggregate(sampleRecords()), summaries)

	rows := aggregator.DailyActivity(records)
	assert.Equal(t, aggregator.DailyActivity(sampleRecords()), rows)

	hm := aggregator.Pivot(rows)
	assert.NotContains(t, hm.Agents, "")
}

func TestDailyActivity(t *testing.T) {
	rows := aggregator.DailyActivity(sampleRecords())

	require.Len(t, rows, 4)
	assert.Equal(t, types.DailyActivity{
		Agent:    "A",
		Date:     civil.Date{Year: 2025, Month: time.July, Day: 1},
		LoggedIn: 2 * time.Hour,
		Hours:    2,
	}, rows[0])
	assert.Equal(t, "A", rows[1].Agent)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.July, Day: 2}, rows[1].Date)
	assert.Equal(t, "B", rows[2].Agent)
	assert.Equal(t, 3.0, rows[2].Hours)
	assert.Equal(t, "a", rows[3].Agent)
}

func TestDailyActivityRoundsToWholeHoursHalfEven(t *testing.T) {
	r1 := interval("A", at(1, 8, 0))
	r1.LoggedIn = 2*time.Hour + 30*time.Minute
	r2 := interval("B", at(1, 8, 0))
	r2.LoggedIn = 3*time.Hour + 30*time.Minute

	rows := aggregator.DailyActivity([]types.IntervalRecord{r1, r2})
	require.Len(t, rows, 2)
	assert.Equal(t, 2.0, rows[0].Hours)
	assert.Equal(t, 4.0, rows[1].Hours)
}
