// Package charts renders the four dashboard views as SVG. It only lays out
// values already computed by the aggregator.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart names, used in /charts/{name}.svg
const (
	Productivity = "productivity"
	Hours        = "hours"
	Breaks       = "breaks"
	Activity     = "activity"
)

// Names lists every chart in page order
var Names = []string{Productivity, Hours, Breaks, Activity}

// Titles maps chart names to their headings
var Titles = map[string]string{
	Productivity: "Agent Productivity (%)",
	Hours:        "Logged-in vs Productive Time",
	Breaks:       "Break & Offline Time Analysis",
	Activity:     "Daily Activity Patterns",
}

// ErrUnknownChart is returned for names not in Names
var ErrUnknownChart = errors.New("unknown chart")

// ContentType is the media type Render writes
const ContentType = "image/svg+xml"

var (
	colorLoggedIn   = drawing.ColorFromHex("636efa")
	colorProductive = drawing.ColorFromHex("ef553b")
	colorText       = drawing.ColorFromHex("2a3f5f")
	colorGrid       = drawing.ColorFromHex("dfe6ee")
)

// Render writes the named chart for d to w
func Render(name string, d *types.Dashboard, w io.Writer) error {
	var err error
	switch name {
	case Productivity:
		err = renderProductivity(d.Summaries, w)
	case Hours:
		err = renderHours(d.Hours, w)
	case Breaks:
		err = renderBreaks(d.Hours, w)
	case Activity:
		err = renderActivity(d.Heatmap, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", name, err)
	}
	return nil
}

// renderEmpty draws a titled placeholder when there is nothing to plot
func renderEmpty(title string, w io.Writer) error {
	c, err := newCanvas(600, 120)
	if err != nil {
		return err
	}
	c.text(title, 16, 28, 14, colorText)
	c.text("No data in source", 16, 70, 11, colorText)
	return c.save(w)
}
