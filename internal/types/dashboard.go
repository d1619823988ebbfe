package types

import (
	"time"

	"cloud.google.com/go/civil"
)

// DailyActivity is an agent's logged-in time on one calendar date
type DailyActivity struct {
	Agent    string        `json:"agent"`
	Date     civil.Date    `json:"date"`
	LoggedIn time.Duration `json:"-"`
	Hours    float64       `json:"hours"` // logged-in hours, rounded to whole hours
}

// AgentHours holds the hour-scaled views charted per agent.
// All values are hours rounded to two decimals.
type AgentHours struct {
	Agent           string  `json:"agent"`
	LoggedInHours   float64 `json:"loggedInHours"`
	ProductiveHours float64 `json:"productiveHours"`
	BreakHours      float64 `json:"breakHours"`
	OfflineHours    float64 `json:"offlineHours"`
}

// Heatmap is the agent x date pivot of logged-in hours.
// Hours[i][j] belongs to Agents[i] on Dates[j]; absent pairs are 0.
type Heatmap struct {
	Agents []string     `json:"agents"`
	Dates  []civil.Date `json:"dates"`
	Hours  [][]float64  `json:"hours"`
	Max    float64      `json:"max"`
}

// Totals are column sums across all summaries
type Totals struct {
	Records        int     `json:"records"`
	Agents         int     `json:"agents"`
	Available      float64 `json:"available"`      // seconds
	Handling       float64 `json:"handling"`       // seconds
	WrapUp         float64 `json:"wrapUp"`         // seconds
	WorkingOffline float64 `json:"workingOffline"` // seconds
	OnBreak        float64 `json:"onBreak"`        // seconds
	Busy           float64 `json:"busy"`           // seconds
	LoggedIn       float64 `json:"loggedIn"`       // seconds
	ProductiveTime float64 `json:"productiveTime"` // seconds
}

// Dashboard is everything a single render needs.
// The presentation layer reads it as-is and performs no arithmetic.
type Dashboard struct {
	RenderID    string          `json:"renderId"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Source      string          `json:"source"`
	Summaries   []AgentSummary  `json:"summaries"` // productivity desc
	Hours       []AgentHours    `json:"hours"`     // same order as Summaries
	Daily       []DailyActivity `json:"daily"`
	Heatmap     Heatmap         `json:"heatmap"`
	Totals      Totals          `json:"totals"`
}

// Summary returns the summary for agent, if present
func (d *Dashboard) Summary(agent string) (AgentSummary, bool) {
	for _, s := range d.Summaries {
		if s.Agent == agent {
			return s, true
		}
	}
	return AgentSummary{}, false
}

// DailyFor returns the daily activity rows of one agent in date order
func (d *Dashboard) DailyFor(agent string) []DailyActivity {
	var out []DailyActivity
	for _, a := range d.Daily {
		if a.Agent == agent {
			out = append(out, a)
		}
	}
	return out
}
