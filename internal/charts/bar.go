package charts

import (
	"fmt"
	"io"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	barWidth   = 36
	barSpacing = 12
)

func renderProductivity(summaries []types.AgentSummary, w io.Writer) error {
	if len(summaries) == 0 {
		return renderEmpty(Titles[Productivity], w)
	}

	top := 100.0
	bars := make([]chart.Value, len(summaries))
	for i, s := range summaries {
		if s.ProductivityPct > top {
			top = s.ProductivityPct
		}
		bars[i] = chart.Value{
			Label: s.Agent,
			Value: s.ProductivityPct,
			Style: chart.Style{
				FillColor:   viridis(s.ProductivityPct, 0, 100),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:      Titles[Productivity],
		Width:      160 + len(summaries)*(barWidth+barSpacing),
		Height:     500,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  "Productivity (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeil(top)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return graph.Render(chart.SVG, w)
}
