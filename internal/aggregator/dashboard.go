package aggregator

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// BuildDashboard runs every aggregation the presentation layer needs.
// Render metadata (id, time, source) is left for the caller.
func BuildDashboard(records []types.IntervalRecord) types.Dashboard {
	summaries := Aggregate(records)
	SortByProductivity(summaries)

	daily := DailyActivity(records)

	return types.Dashboard{
		Summaries: summaries,
		Hours:     AgentHours(summaries),
		Daily:     daily,
		Heatmap:   Pivot(daily),
		Totals:    Sum(summaries, len(records)),
	}
}

// SortByProductivity orders summaries by productivity descending. Agents
// without logged-in time go last; ties fall back to agent name.
func SortByProductivity(summaries []types.AgentSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.ProductivityDefined != b.ProductivityDefined {
			return a.ProductivityDefined
		}
		if a.ProductivityPct != b.ProductivityPct {
			return a.ProductivityPct > b.ProductivityPct
		}
		return a.Agent < b.Agent
	})
}

// AgentHours derives the hour-scaled chart values, one per summary, in the
// same order.
func AgentHours(summaries []types.AgentSummary) []types.AgentHours {
	hours := make([]types.AgentHours, len(summaries))
	for i, s := range summaries {
		hours[i] = types.AgentHours{
			Agent:           s.Agent,
			LoggedInHours:   Hours(s.LoggedIn.Seconds(), 2),
			ProductiveHours: Hours(s.ProductiveTime.Seconds(), 2),
			BreakHours:      Hours(s.OnBreak.Seconds(), 2),
			OfflineHours:    Hours(s.WorkingOffline.Seconds(), 2),
		}
	}
	return hours
}

// Pivot turns daily rows into an agent x date grid, filling gaps with 0
func Pivot(daily []types.DailyActivity) types.Heatmap {
	agentSet := make(map[string]struct{})
	dateSet := make(map[civil.Date]struct{})
	for _, d := range daily {
		agentSet[d.Agent] = struct{}{}
		dateSet[d.Date] = struct{}{}
	}

	hm := types.Heatmap{
		Agents: make([]string, 0, len(agentSet)),
		Dates:  make([]civil.Date, 0, len(dateSet)),
	}
	for a := range agentSet {
		hm.Agents = append(hm.Agents, a)
	}
	for d := range dateSet {
		hm.Dates = append(hm.Dates, d)
	}
	sort.Strings(hm.Agents)
	sort.Slice(hm.Dates, func(i, j int) bool { return hm.Dates[i].Before(hm.Dates[j]) })

	agentIdx := make(map[string]int, len(hm.Agents))
	for i, a := range hm.Agents {
		agentIdx[a] = i
	}
	dateIdx := make(map[civil.Date]int, len(hm.Dates))
	for i, d := range hm.Dates {
		dateIdx[d] = i
	}

	hm.Hours = make([][]float64, len(hm.Agents))
	for i := range hm.Hours {
		hm.Hours[i] = make([]float64, len(hm.Dates))
	}
	for _, d := range daily {
		hm.Hours[agentIdx[d.Agent]][dateIdx[d.Date]] = d.Hours
		if d.Hours > hm.Max {
			hm.Max = d.Hours
		}
	}
	return hm
}

// Sum totals every summary column
func Sum(summaries []types.AgentSummary, records int) types.Totals {
	var t types.AgentSummary
	for _, s := range summaries {
		t.Available += s.Available
		t.Handling += s.Handling
		t.WrapUp += s.WrapUp
		t.WorkingOffline += s.WorkingOffline
		t.OnBreak += s.OnBreak
		t.Busy += s.Busy
		t.LoggedIn += s.LoggedIn
		t.ProductiveTime += s.ProductiveTime
	}
	return types.Totals{
		Records:        records,
		Agents:         len(summaries),
		Available:      t.Available.Seconds(),
		Handling:       t.Handling.Seconds(),
		WrapUp:         t.WrapUp.Seconds(),
		WorkingOffline: t.WorkingOffline.Seconds(),
		OnBreak:        t.OnBreak.Seconds(),
		Busy:           t.Busy.Seconds(),
		LoggedIn:       t.LoggedIn.Seconds(),
		ProductiveTime: t.ProductiveTime.Seconds(),
	}
}
