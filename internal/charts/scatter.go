package charts

import (
	"io"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	minDot = 4.0
	maxDot = 20.0
)

// renderBreaks plots break hours against offline hours, one colored series
// per agent, dot size following logged-in hours.
func renderBreaks(hours []types.AgentHours, w io.Writer) error {
	if len(hours) == 0 {
		return renderEmpty(Titles[Breaks], w)
	}

	var maxX, maxY, maxSize float64
	for _, h := range hours {
		maxX = max(maxX, h.BreakHours)
		maxY = max(maxY, h.OfflineHours)
		maxSize = max(maxSize, h.LoggedInHours)
	}

	series := make([]chart.Series, len(hours))
	for i, h := range hours {
		dot := minDot
		if maxSize > 0 {
			dot = minDot + (maxDot-minDot)*h.LoggedInHours/maxSize
		}
		color := chart.GetDefaultColor(i)
		series[i] = chart.ContinuousSeries{
			Name: h.Agent,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: color,
				DotWidth:    dot,
				DotColor:    color.WithAlpha(200),
			},
			XValues: []float64{h.BreakHours},
			YValues: []float64{h.OfflineHours},
		}
	}

	graph := chart.Chart{
		Title:  Titles[Breaks],
		Width:  900,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Break Time (hrs)",
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeil(maxX * 1.1)},
		},
		YAxis: chart.YAxis{
			Name:  "Offline Time (hrs)",
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeil(maxY * 1.1)},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.SVG, w)
}
