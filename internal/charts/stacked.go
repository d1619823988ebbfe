package charts

import (
	"fmt"
	"io"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

const (
	rowHeight = 24
	barHeight = 16
	ticks     = 5
)

// renderHours draws horizontal bars per agent with productive hours stacked
// on top of logged-in hours.
func renderHours(hours []types.AgentHours, w io.Writer) error {
	if len(hours) == 0 {
		return renderEmpty(Titles[Hours], w)
	}

	const (
		width  = 900
		top    = 64
		bottom = 40
		right  = 24
		size   = 10.0
	)

	probe, err := newCanvas(1, 1)
	if err != nil {
		return err
	}
	left := 0
	var maxTotal float64
	for _, h := range hours {
		left = max(left, probe.textWidth(h.Agent, size))
		maxTotal = max(maxTotal, h.LoggedInHours+h.ProductiveHours)
	}
	left += 24

	height := top + len(hours)*rowHeight + bottom
	c, err := newCanvas(width, height)
	if err != nil {
		return err
	}

	plotW := width - left - right
	xMax := niceCeil(maxTotal)
	scale := func(v float64) int { return left + int(v/xMax*float64(plotW)) }

	c.text(Titles[Hours], 16, 24, 14, colorText)
	c.rect(width-260, 36, width-248, 48, colorLoggedIn, colorLoggedIn)
	c.text("Logged In Hours", width-242, 46, size, colorText)
	c.rect(width-140, 36, width-128, 48, colorProductive, colorProductive)
	c.text("Productive Hours", width-122, 46, size, colorText)

	plotBottom := top + len(hours)*rowHeight
	for i := 0; i <= ticks; i++ {
		v := xMax * float64(i) / ticks
		x := scale(v)
		c.line(x, top, x, plotBottom, colorGrid)
		c.text(fmt.Sprintf("%g", v), x-6, plotBottom+16, size, colorText)
	}
	c.text("Hours", left+plotW/2-14, plotBottom+32, size, colorText)

	for i, h := range hours {
		y := top + i*rowHeight + (rowHeight-barHeight)/2
		c.text(h.Agent, 12, y+barHeight-4, size, colorText)

		loggedEnd := scale(h.LoggedInHours)
		if h.LoggedInHours > 0 {
			c.rect(left, y, loggedEnd, y+barHeight, colorLoggedIn, colorLoggedIn)
		}
		if h.ProductiveHours > 0 {
			c.rect(loggedEnd, y, scale(h.LoggedInHours+h.ProductiveHours), y+barHeight, colorProductive, colorProductive)
		}
	}

	return c.save(w)
}
