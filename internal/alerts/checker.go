package alerts

import (
	"fmt"
	"time"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// Rules holds the alert thresholds
type Rules struct {
	LowProductivityPct float64 // warn below this productivity %
	HighBreakPct       float64 // warn when break time exceeds this % of logged-in time
}

// DefaultRules returns the thresholds used when none are configured
func DefaultRules() Rules {
	return Rules{
		LowProductivityPct: 50,
		HighBreakPct:       15,
	}
}

// CheckSummaryAlerts evaluates alert rules for a slice of summaries,
// mutating each summary's Alerts field in place.
func CheckSummaryAlerts(summaries []types.AgentSummary, rules Rules) {
	for i := range summaries {
		s := &summaries[i]
		s.Alerts = nil

		if !s.ProductivityDefined {
			s.Alerts = append(s.Alerts, types.AgentAlert{
				Rule:     "zero_logged_in",
				Severity: types.SeverityCritical,
				Message:  "No logged-in time; productivity undefined",
			})
			continue
		}

		if s.ProductivityPct < rules.LowProductivityPct {
			s.Alerts = append(s.Alerts, types.AgentAlert{
				Rule:     "low_productivity",
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("Productivity %.2f%% below %.0f%%", s.ProductivityPct, rules.LowProductivityPct),
			})
		}

		breakPct := float64(s.OnBreak) / float64(s.LoggedIn) * 100
		if breakPct > rules.HighBreakPct {
			s.Alerts = append(s.Alerts, types.AgentAlert{
				Rule:     "long_breaks",
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("Break for %s of %s logged in", formatDuration(s.OnBreak), formatDuration(s.LoggedIn)),
			})
		}
	}
}

// Count returns the number of alerts per severity
func Count(summaries []types.AgentSummary) map[types.AlertSeverity]int {
	counts := make(map[types.AlertSeverity]int)
	for _, s := range summaries {
		for _, a := range s.Alerts {
			counts[a.Severity]++
		}
	}
	return counts
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if mins >= 60 {
		hours := mins / 60
		mins = mins % 60
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
	return fmt.Sprintf("%dm%ds", mins, secs)
}
