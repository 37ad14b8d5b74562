// Package chart renders the combined three-panel PNG: revenue by hour,
// revenue by category, and daily temperature vs revenue.
package chart

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/beanmetrics/beanmetrics/report"
)

// Panel geometry mirrors the 15×4 inch figure the report has always shipped.
const (
	figWidth  = 15 * vg.Inch
	figHeight = 4 * vg.Inch
)

var barWidth = vg.Points(12)

// Renderer writes the combined chart image. It implements report.Sink.
type Renderer struct {
	Path string
}

// New returns a Renderer that writes to path, overwriting any existing file.
func New(path string) Renderer {
	return Renderer{Path: path}
}

// Render draws all three panels into one PNG.
func (r Renderer) Render(rep *report.Report) error {
	hourly, err := hourlyPanel(rep)
	if err != nil {
		return fmt.Errorf("building hourly panel: %w", err)
	}
	category, err := categoryPanel(rep)
	if err != nil {
		return fmt.Errorf("building category panel: %w", err)
	}
	scatter, err := scatterPanel(rep)
	if err != nil {
		return fmt.Errorf("building scatter panel: %w", err)
	}

	img := vgimg.New(figWidth, figHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1, Cols: 3,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	plots := [][]*plot.Plot{{hourly, category, scatter}}
	canvases := plot.Align(plots, tiles, dc)
	for i, row := range plots {
		for j, p := range row {
			p.Draw(canvases[i][j])
		}
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", r.Path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", r.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", r.Path, err)
	}
	return nil
}

// hourlyPanel is a vertical bar chart of revenue per hour of day.
func hourlyPanel(rep *report.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Revenue by Hour"
	p.X.Label.Text = "Hour of Day"
	p.Y.Label.Text = "Revenue ($)"

	values := make(plotter.Values, len(rep.Stats.Hours))
	labels := make([]string, len(rep.Stats.Hours))
	for i, h := range rep.Stats.Hours {
		values[i] = h.Revenue
		labels[i] = strconv.Itoa(h.Hour)
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// categoryPanel is a horizontal bar chart of revenue per category,
// ascending so the largest category sits on top.
func categoryPanel(rep *report.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Revenue by Product"
	p.X.Label.Text = "Revenue ($)"

	cats := make([]report.CategoryRevenue, len(rep.Stats.Categories))
	copy(cats, rep.Stats.Categories)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Revenue < cats[j].Revenue })

	values := make(plotter.Values, len(cats))
	labels := make([]string, len(cats))
	for i, c := range cats {
		values[i] = c.Revenue
		labels[i] = c.Category
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	p.Add(bars)
	p.NominalY(labels...)
	return p, nil
}

// scatterPanel plots daily mean temperature against daily revenue for days
// that have a temperature observation.
func scatterPanel(rep *report.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Warm Days = More Sales?"
	p.X.Label.Text = "Temperature (F)"
	p.Y.Label.Text = "Daily Revenue ($)"

	var pts plotter.XYs
	for _, d := range rep.Daily {
		if d.Temperature == nil {
			continue
		}
		pts = append(pts, plotter.XY{X: *d.Temperature, Y: d.Revenue})
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	p.Add(scatter)
	return p, nil
}
