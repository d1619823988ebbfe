package charts

import (
	"fmt"
	"io"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	cellWidth  = 72
	cellHeight = 24
)

// renderActivity draws the agent x date grid of logged-in hours
func renderActivity(hm types.Heatmap, w io.Writer) error {
	if len(hm.Agents) == 0 || len(hm.Dates) == 0 {
		return renderEmpty(Titles[Activity], w)
	}

	const (
		top    = 72
		bottom = 48
		size   = 10.0
	)

	probe, err := newCanvas(1, 1)
	if err != nil {
		return err
	}
	left := 0
	for _, a := range hm.Agents {
		left = max(left, probe.textWidth(a, size))
	}
	left += 24

	width := max(left+len(hm.Dates)*cellWidth+24, 360)
	height := top + len(hm.Agents)*cellHeight + bottom
	c, err := newCanvas(width, height)
	if err != nil {
		return err
	}

	hi := hm.Max
	if hi <= 0 {
		hi = 1
	}

	c.text(Titles[Activity], 16, 24, 14, colorText)
	for j, d := range hm.Dates {
		c.text(d.String(), left+j*cellWidth+4, top-8, size, colorText)
	}

	for i, agent := range hm.Agents {
		y := top + i*cellHeight
		c.text(agent, 12, y+cellHeight-8, size, colorText)
		for j, v := range hm.Hours[i] {
			x := left + j*cellWidth
			fill := viridis(v, 0, hi)
			c.rect(x, y, x+cellWidth, y+cellHeight, fill, drawing.ColorWhite)

			label := drawing.ColorWhite
			if v > hi*0.6 {
				label = colorText
			}
			c.text(fmt.Sprintf("%g", v), x+cellWidth/2-6, y+cellHeight-8, size, label)
		}
	}

	legendY := top + len(hm.Agents)*cellHeight + 20
	for k := 0; k <= 10; k++ {
		v := hi * float64(k) / 10
		x := left + k*16
		c.rect(x, legendY, x+16, legendY+10, viridis(v, 0, hi), viridis(v, 0, hi))
	}
	c.text(fmt.Sprintf("0 to %g hours", hi), left+11*16+8, legendY+10, size, colorText)

	return c.save(w)
}
