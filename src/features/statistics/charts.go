package statistics

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// RenderPNG draws a chart as a PNG image. Line charts are plotted against their numeric
// labels, everything else as bars over nominal labels. Charts without data points render
// as empty axes.
func RenderPNG(w io.Writer, title string, chart *ChartData) error {
	if len(chart.Datasets) == 0 {
		return fmt.Errorf("chart %q has no data", title)
	}
	data := chart.Datasets[0]

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = data.Label
	p.Y.Min = 0

	// An empty selection still renders the titled axes.
	switch {
	case len(data.Data) == 0:
	case chart.Type == "line":
		xys := make(plotter.XYs, len(data.Data))
		for i, v := range data.Data {
			x, err := strconv.ParseFloat(chart.Labels[i], 64)
			if err != nil {
				x = float64(i)
			}
			xys[i].X = x
			xys[i].Y = v
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("failed to build line: %w", err)
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = firstColor(data.BorderColor, color.Black)
		l.FillColor = firstColor(data.BackgroundColor, nil)
		p.Add(l)
	default:
		bars, err := plotter.NewBarChart(plotter.Values(data.Data), vg.Points(20))
		if err != nil {
			return fmt.Errorf("failed to build bars: %w", err)
		}
		bars.Color = firstColor(data.BackgroundColor, color.Gray{Y: 128})
		bars.LineStyle.Color = firstColor(data.BorderColor, color.Black)
		p.Add(bars)
		p.NominalX(chart.Labels...)
	}

	c, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func firstColor(colors []string, fallback color.Color) color.Color {
	if len(colors) == 0 {
		return fallback
	}
	if c, ok := parseColor(colors[0]); ok {
		return c
	}
	return fallback
}

// parseColor understands the "#rrggbb" and "rgba(r, g, b, a)" forms used by the charts.
func parseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return nil, false
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	}
	if inner, ok := strings.CutPrefix(s, "rgba("); ok {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 4 {
			return nil, false
		}
		var rgb [3]uint8
		for i := range rgb {
			n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || n < 0 || n > 255 {
				return nil, false
			}
			rgb[i] = uint8(n)
		}
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || alpha < 0 || alpha > 1 {
			return nil, false
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha * 255)}, true
	}
	return nil, false
}
