// Package report renders simulation output to image and video files. It only
// reads results; it never drives a board.
package report

import (
	"errors"
	"fmt"
	"io"

	"pca-sim/internal/epidemic"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooShort is returned when a series has fewer than two points to draw.
var ErrTooShort = errors.New("report: need at least two days to draw a chart")

var (
	colorSusceptible = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorInfected    = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	colorRecovered   = drawing.Color{R: 44, G: 160, B: 44, A: 255}
)

func categoryColor(c epidemic.Category) drawing.Color {
	switch c {
	case epidemic.Infected:
		return colorInfected
	case epidemic.Recovered:
		return colorRecovered
	}
	return colorSusceptible
}

func days(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func baseChart(title string, n int, yMax float64) chart.Chart {
	if yMax <= 0 {
		yMax = 1
	}
	return chart.Chart{
		Title:  title,
		Width:  960,
		Height: 480,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Days",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(n - 1)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Population",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
	}
}

// PopulationChart draws the daily counts as stacked areas: infected at the
// bottom, recovered above it and susceptible on top.
func PopulationChart(w io.Writer, res *epidemic.Result) error {
	n := len(res.Counts)
	if n < 2 {
		return ErrTooShort
	}
	infected := res.Infected()
	recovered := res.Recovered()
	susceptible := res.Susceptible()

	lower := make([]float64, n)
	middle := make([]float64, n)
	upper := make([]float64, n)
	for d := 0; d < n; d++ {
		lower[d] = infected[d]
		middle[d] = lower[d] + recovered[d]
		upper[d] = middle[d] + susceptible[d]
	}

	graph := baseChart("Population", n, float64(res.Counts[0].Total()))
	x := days(n)
	// Drawn back to front so each band covers the one above it.
	graph.Series = []chart.Series{
		areaSeries(epidemic.Susceptible, x, upper),
		areaSeries(epidemic.Recovered, x, middle),
		areaSeries(epidemic.Infected, x, lower),
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("report: population chart: %w", err)
	}
	return nil
}

func areaSeries(c epidemic.Category, x, y []float64) chart.ContinuousSeries {
	col := categoryColor(c)
	return chart.ContinuousSeries{
		Name:    c.String(),
		XValues: x,
		YValues: y,
		Style: chart.Style{
			StrokeColor: col,
			FillColor:   col.WithAlpha(200),
			StrokeWidth: 1,
		},
	}
}

// EnsembleChart draws every run as thin lines and the per-day mean of each
// category as a thick line.
func EnsembleChart(w io.Writer, ens *epidemic.Ensemble) error {
	if ens.Days < 2 || len(ens.Runs) == 0 {
		return ErrTooShort
	}
	total := float64(ens.Runs[0][0].Total())
	graph := baseChart(fmt.Sprintf("%d runs", len(ens.Runs)), ens.Days, total)
	x := days(ens.Days)
	for i := range ens.Runs {
		for _, c := range epidemic.Categories {
			graph.Series = append(graph.Series, chart.ContinuousSeries{
				XValues: x,
				YValues: ens.Series(i, c),
				Style: chart.Style{
					StrokeColor: categoryColor(c).WithAlpha(110),
					StrokeWidth: 0.5,
				},
			})
		}
	}
	summary := ens.Summary()
	for _, c := range epidemic.Categories {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    c.String() + " (mean)",
			XValues: x,
			YValues: summary[c].Mean,
			Style: chart.Style{
				StrokeColor: categoryColor(c),
				StrokeWidth: 3,
			},
		})
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("report: ensemble chart: %w", err)
	}
	return nil
}

// SeriesChart draws a single daily series, such as smoothed case counts.
func SeriesChart(w io.Writer, title string, y []float64) error {
	if len(y) < 2 {
		return ErrTooShort
	}
	peak := 0.0
	for _, v := range y {
		peak = max(peak, v)
	}
	graph := baseChart(title, len(y), peak*1.05)
	graph.YAxis.Name = "Cases"
	graph.Series = []chart.Series{chart.ContinuousSeries{
		Name:    title,
		XValues: days(len(y)),
		YValues: y,
		Style: chart.Style{
			StrokeColor: colorInfected,
			StrokeWidth: 2,
		},
	}}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("report: series chart: %w", err)
	}
	return nil
}
