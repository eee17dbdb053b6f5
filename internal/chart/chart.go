// Package chart renders analysis results as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/resultscope/internal/analysis"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("nothing to chart")

// percentRange is fresh per chart; rendering sets its domain.
func percentRange() *gochart.ContinuousRange {
	return &gochart.ContinuousRange{Min: 0, Max: 100}
}

func percentFormatter(v interface{}) string {
	if vf, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", vf)
	}
	return ""
}

func background() gochart.Style {
	return gochart.Style{
		Padding:     gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		FillColor:   drawing.ColorWhite,
		StrokeColor: drawing.ColorFromHex("efefef"),
		StrokeWidth: 1,
	}
}

// PassRates draws one bar per subject. Labels carry the predicted next-year
// rate when there is one.
func PassRates(a *analysis.Analysis) ([]byte, error) {
	if a == nil || len(a.Subjects) == 0 {
		return nil, ErrNoData
	}
	bars := make([]gochart.Value, 0, len(a.Subjects))
	for _, s := range a.Subjects {
		label := fmt.Sprintf("%s %.1f%%", s.Subject, s.PassRate)
		if s.PredictedNextYear != nil {
			label += fmt.Sprintf(" (next %.1f%%)", *s.PredictedNextYear)
		}
		bars = append(bars, gochart.Value{
			Value: s.PassRate,
			Label: label,
			Style: gochart.Style{FillColor: bandColor(s.PassRate), StrokeColor: bandColor(s.PassRate)},
		})
	}

	graph := gochart.BarChart{
		Title:      "Pass Rate by Subject",
		Background: background(),
		Height:     768,
		Width:      max(1024, 200*len(bars)+200),
		BarWidth:   60,
		Bars:       bars,
		YAxis: gochart.YAxis{
			Name:           "Pass %",
			Range:          percentRange(),
			ValueFormatter: percentFormatter,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(gochart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render pass rate chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// Trend draws the per-year pass rate of one subject as a line, with the
// predicted next year as a second dashed segment.
func Trend(s analysis.SubjectSummary) ([]byte, error) {
	if len(s.Years) == 0 {
		return nil, ErrNoData
	}
	xs := make([]float64, len(s.Years))
	ys := make([]float64, len(s.Years))
	for i, y := range s.Years {
		xs[i] = float64(y.Year)
		ys[i] = y.PassRate
	}
	first, last := xs[0], xs[len(xs)-1]

	series := []gochart.Series{
		&gochart.ContinuousSeries{
			Name:    s.Subject,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: drawing.ColorBlue,
				StrokeWidth: 2,
				DotColor:    drawing.ColorBlue,
				DotWidth:    4,
			},
		},
	}
	if s.PredictedNextYear != nil {
		last++
		series = append(series, &gochart.ContinuousSeries{
			Name:    "predicted",
			XValues: []float64{xs[len(xs)-1], last},
			YValues: []float64{ys[len(ys)-1], *s.PredictedNextYear},
			Style: gochart.Style{
				StrokeColor:     drawing.ColorRed,
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}

	graph := gochart.Chart{
		Title:      fmt.Sprintf("%s pass rate by year", s.Subject),
		Background: background(),
		Width:      1024,
		Height:     512,
		XAxis: gochart.XAxis{
			Name:  "Year",
			Range: &gochart.ContinuousRange{Min: first - 1, Max: last + 1},
			ValueFormatter: func(v interface{}) string {
				if vf, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name:           "Pass %",
			Range:          percentRange(),
			ValueFormatter: percentFormatter,
		},
		Series: series,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(gochart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func bandColor(rate float64) drawing.Color {
	switch analysis.Band(rate) {
	case "high":
		return drawing.ColorFromHex("2e7d32")
	case "medium":
		return drawing.ColorFromHex("f9a825")
	default:
		return drawing.ColorFromHex("c62828")
	}
}
