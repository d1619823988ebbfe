package types

import (
	"encoding/json"
	"time"
)

// IntervalRecord is one reporting interval (15 minutes in the standard export)
// of a single agent's time split across status categories.
//
// StartTime and EndTime carry naive wall-clock time: the export's UTC offset
// is discarded and the values live in time.UTC only as a zone-less carrier.
type IntervalRecord struct {
	Agent          string
	StartTime      time.Time
	EndTime        time.Time
	Available      time.Duration
	Handling       time.Duration
	WrapUp         time.Duration
	WorkingOffline time.Duration
	OnBreak        time.Duration
	Busy           time.Duration
	LoggedIn       time.Duration
	Offering       time.Duration
}

// AgentSummary is the per-agent rollup of every interval in the source
type AgentSummary struct {
	Agent          string
	Available      time.Duration
	Handling       time.Duration
	WrapUp         time.Duration
	WorkingOffline time.Duration
	OnBreak        time.Duration
	Busy           time.Duration
	LoggedIn       time.Duration

	// ProductiveTime is Handling + WrapUp + Busy
	ProductiveTime time.Duration

	// ProductivityPct is 0 when ProductivityDefined is false (no logged-in time)
	ProductivityPct     float64
	ProductivityDefined bool

	Alerts []AgentAlert
}

// agentSummaryJSON is the wire shape of AgentSummary; durations are seconds
type agentSummaryJSON struct {
	Agent               string       `json:"agent"`
	Available           float64      `json:"available"`      // seconds
	Handling            float64      `json:"handling"`       // seconds
	WrapUp              float64      `json:"wrapUp"`         // seconds
	WorkingOffline      float64      `json:"workingOffline"` // seconds
	OnBreak             float64      `json:"onBreak"`        // seconds
	Busy                float64      `json:"busy"`           // seconds
	LoggedIn            float64      `json:"loggedIn"`       // seconds
	ProductiveTime      float64      `json:"productiveTime"` // seconds
	ProductivityPct     float64      `json:"productivityPct"`
	ProductivityDefined bool         `json:"productivityDefined"`
	Alerts              []AgentAlert `json:"alerts,omitempty"`
}

// MarshalJSON encodes durations as seconds
func (s AgentSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(agentSummaryJSON{
		Agent:               s.Agent,
		Available:           s.Available.Seconds(),
		Handling:            s.Handling.Seconds(),
		WrapUp:              s.WrapUp.Seconds(),
		WorkingOffline:      s.WorkingOffline.Seconds(),
		OnBreak:             s.OnBreak.Seconds(),
		Busy:                s.Busy.Seconds(),
		LoggedIn:            s.LoggedIn.Seconds(),
		ProductiveTime:      s.ProductiveTime.Seconds(),
		ProductivityPct:     s.ProductivityPct,
		ProductivityDefined: s.ProductivityDefined,
		Alerts:              s.Alerts,
	})
}

// AlertSeverity represents the severity of an agent alert
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// AgentAlert represents an alert condition raised for an agent summary
type AgentAlert struct {
	Rule     string        `json:"rule"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}
