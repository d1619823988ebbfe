// Package report formats a rendered dashboard for the terminal or for export.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// Format selects the report encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var validFormats = map[Format]bool{
	FormatText: true,
	FormatJSON: true,
	FormatCSV:  true,
}

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !validFormats[f] {
		return "", fmt.Errorf("format must be one of: text, json, csv (got: %s)", s)
	}
	return f, nil
}

// Columns is the header shared by the text and CSV reports
var Columns = []string{
	"Agent",
	"Logged In",
	"Available",
	"Handling",
	"Wrap Up",
	"Busy",
	"On Break",
	"Working Offline",
	"Productive",
	"Productivity %",
}

// Format renders d in the given format
func (f Format) Format(d *types.Dashboard) (string, error) {
	switch f {
	case FormatJSON:
		return FormatJSONReport(d)
	case FormatCSV:
		return FormatCSVReport(d)
	case FormatText:
		return FormatTextReport(d), nil
	}
	return "", fmt.Errorf("unknown format %q", f)
}

func row(s types.AgentSummary) []string {
	return []string{
		s.Agent,
		Clock(s.LoggedIn),
		Clock(s.Available),
		Clock(s.Handling),
		Clock(s.WrapUp),
		Clock(s.Busy),
		Clock(s.OnBreak),
		Clock(s.WorkingOffline),
		Clock(s.ProductiveTime),
		Percent(s),
	}
}

// Percent formats the productivity column; undefined shows as n/a
func Percent(s types.AgentSummary) string {
	if !s.ProductivityDefined {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", s.ProductivityPct)
}

// Clock formats d as H:MM:SS, the layout of the export
func Clock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	critStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

// FormatTextReport returns a terminal table of the summaries followed by alerts
func FormatTextReport(d *types.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Agent Productivity Report"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("source=%s records=%d agents=%d\n\n", d.Source, d.Totals.Records, d.Totals.Agents))

	if len(d.Summaries) == 0 {
		sb.WriteString("no interval records\n")
		return sb.String()
	}

	rows := make([][]string, len(d.Summaries))
	for i, s := range d.Summaries {
		rows[i] = row(s)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			switch {
			case r == table.HeaderRow:
				return headerStyle
			case c == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	sb.WriteString(t.Render())
	sb.WriteString("\n")

	var alerts []string
	for _, s := range d.Summaries {
		for _, a := range s.Alerts {
			style := warnStyle
			if a.Severity == types.SeverityCritical {
				style = critStyle
			}
			alerts = append(alerts, fmt.Sprintf("  %s %s: %s", style.Render("["+string(a.Severity)+"]"), s.Agent, a.Message))
		}
	}
	if len(alerts) > 0 {
		sb.WriteString("\nAlerts:\n")
		sb.WriteString(strings.Join(alerts, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSONReport returns the indented JSON summaries
func FormatJSONReport(d *types.Dashboard) (string, error) {
	summaries := d.Summaries
	if summaries == nil {
		summaries = []types.AgentSummary{}
	}
	b, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding summaries: %w", err)
	}
	return string(b) + "\n", nil
}

// FormatCSVReport returns the summaries as CSV with an alerts column
func FormatCSVReport(d *types.Dashboard) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := append(append([]string{}, Columns...), "Alerts")
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, s := range d.Summaries {
		rules := make([]string, len(s.Alerts))
		for i, a := range s.Alerts {
			rules[i] = a.Rule
		}
		if err := writer.Write(append(row(s), strings.Join(rules, "; "))); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
