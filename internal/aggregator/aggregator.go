// Package aggregator rolls interval records up into per-agent summaries and
// derives every view the dashboard renders.
package aggregator

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// Aggregate groups records by exact agent name and sums their durations.
// Records without an agent name belong to no group and are skipped.
// Output is ordered by agent name; callers impose their own display order.
func Aggregate(records []types.IntervalRecord) []types.AgentSummary {
	byAgent := make(map[string]*types.AgentSummary)
	for _, rec := range records {
		if rec.Agent == "" {
			continue
		}
		s, ok := byAgent[rec.Agent]
		if !ok {
			s = &types.AgentSummary{Agent: rec.Agent}
			byAgent[rec.Agent] = s
		}
		s.Available += rec.Available
		s.Handling += rec.Handling
		s.WrapUp += rec.WrapUp
		s.WorkingOffline += rec.WorkingOffline
		s.OnBreak += rec.OnBreak
		s.Busy += rec.Busy
		s.LoggedIn += rec.LoggedIn
	}

	summaries := make([]types.AgentSummary, 0, len(byAgent))
	for _, s := range byAgent {
		s.ProductiveTime = s.Handling + s.WrapUp + s.Busy
		s.ProductivityPct, s.ProductivityDefined = productivityPct(s.ProductiveTime, s.LoggedIn)
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Agent < summaries[j].Agent
	})
	return summaries
}

// productivityPct rounds the ratio to two places before scaling by 100 and
// rounds again; existing reports were produced that way.
// Zero logged-in time yields (0, false).
func productivityPct(productive, loggedIn time.Duration) (float64, bool) {
	if loggedIn == 0 {
		return 0, false
	}
	ratio := float64(productive) / float64(loggedIn)
	return Round(Round(ratio, 2)*100, 2), true
}

type dayKey struct {
	agent string
	date  civil.Date
}

// DailyActivity sums logged-in time per (agent, calendar date of StartTime).
// Rows are ordered by agent, then date. Unnamed records are skipped.
func DailyActivity(records []types.IntervalRecord) []types.DailyActivity {
	byDay := make(map[dayKey]time.Duration)
	for _, rec := range records {
		if rec.Agent == "" {
			continue
		}
		byDay[dayKey{agent: rec.Agent, date: civil.DateOf(rec.StartTime)}] += rec.LoggedIn
	}

	rows := make([]types.DailyActivity, 0, len(byDay))
	for k, loggedIn := range byDay {
		rows = append(rows, types.DailyActivity{
			Agent:    k.agent,
			Date:     k.date,
			LoggedIn: loggedIn,
			Hours:    Round(loggedIn.Seconds()/3600, 0),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Agent != rows[j].Agent {
			return rows[i].Agent < rows[j].Agent
		}
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}
