package charts

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// canvas wraps a go-chart SVG renderer for the views go-chart has no
// chart type for.
type canvas struct {
	r chart.Renderer
}

func newCanvas(width, height int) (*canvas, error) {
	r, err := chart.SVG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)

	c := &canvas{r: r}
	c.rect(0, 0, width, height, drawing.ColorWhite, drawing.ColorWhite)
	return c, nil
}

func (c *canvas) rect(x0, y0, x1, y1 int, fill, stroke drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.LineTo(x0, y0)
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) line(x0, y0, x1, y1 int, color drawing.Color) {
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

// text draws s with its baseline at y
func (c *canvas) text(s string, x, y int, size float64, color drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(color)
	c.r.Text(s, x, y)
}

func (c *canvas) textWidth(s string, size float64) int {
	c.r.SetFontSize(size)
	return c.r.MeasureText(s).Width()
}

func (c *canvas) save(w io.Writer) error {
	return c.r.Save(w)
}

// viridis colors v on [lo, hi], clamping values outside the range
func viridis(v, lo, hi float64) drawing.Color {
	return chart.Viridis(math.Max(lo, math.Min(v, hi)), lo, hi)
}

// niceCeil rounds v up to 1, 2, 2.5 or 5 times a power of ten
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
