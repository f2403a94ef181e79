package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"BitcoinTracker/internal/model"
)

// ErrNoSamples is returned when there is nothing to plot.
var ErrNoSamples = errors.New("chart: no samples to render")

// tabBlue is matplotlib's default series colour.
var tabBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Options controls the cosmetic parts of the chart.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions is a 10x5 inch chart titled for the live tracker.
func DefaultOptions() Options {
	return Options{
		Title:  "Bitcoin Real-Time Price Analytics",
		Width:  10 * vg.Inch,
		Height: 5 * vg.Inch,
	}
}

// Series returns the plotted points in file order: x is the Unix timestamp, y the price.
func Series(samples []model.PriceSample) plotter.XYs {
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = float64(s.Timestamp.Unix())
		pts[i].Y = s.PriceUSD
	}
	return pts
}

// Render draws samples as a single line with point markers and writes a PNG to path,
// replacing any previous image.
func Render(samples []model.PriceSample, path string, opts Options) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Price (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02 15:04"}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Vertical.Color = color.Gray{Y: 180}
	grid.Horizontal.Color = color.Gray{Y: 180}
	p.Add(grid)

	line, points, err := plotter.NewLinePoints(Series(samples))
	if err != nil {
		return fmt.Errorf("chart: build series: %w", err)
	}
	line.Color = tabBlue
	points.Color = tabBlue
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(3)
	p.Add(line, points)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("chart: create image dir: %w", err)
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}
