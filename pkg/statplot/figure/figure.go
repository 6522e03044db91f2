// Package figure assembles traces into a styled chart specification.
package figure

import (
	"math"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// Chart types.
const (
	PlotLine = "line"
	PlotBar  = "bar"
	PlotBox  = "box"
)

const proportionMeasure = "proportion"

// YearRange is an externally selected span of years.
type YearRange struct {
	Start int
	End   int
}

// StyleParams drive axis and legend styling.
type StyleParams struct {
	// PlotType is PlotLine, PlotBar or PlotBox.
	PlotType string
	// Measure is the plotted statistic; "proportion" switches to a percent axis.
	Measure string
	// StartYear is the first observed year, used as tick0 when Years is nil.
	StartYear int
	// YMax is the largest plotted value, used to pick the y tick step.
	YMax float64
	// Years overrides tick0 and clamps the x axis for non-bar charts.
	Years *YearRange
	// ShowLegend toggles the legend. Bar charts never show one.
	ShowLegend bool
	// YTitle is an optional y axis title.
	YTitle string
}

// Assemble concatenates main and confidence traces, main first, into a figure.
func Assemble(main, confidence []models.Trace) *models.Figure {
	data := make([]models.Trace, 0, len(main)+len(confidence))
	data = append(data, main...)
	data = append(data, confidence...)
	return &models.Figure{Data: data}
}

// Style applies axis, legend and trace-mode settings to fig.
func Style(fig *models.Figure, p StyleParams) {
	layout := &fig.Layout

	switch p.PlotType {
	case PlotLine:
		for i := range fig.Data {
			fig.Data[i].ConnectGaps = models.Bool(true)
		}
	case PlotBar:
		layout.BarMode = "stack"
	case PlotBox:
		layout.BoxMode = "group"
	}

	tick0 := p.StartYear
	if p.Years != nil {
		tick0 = p.Years.Start
	}
	layout.XAxis = models.Axis{
		TickMode:  "linear",
		Tick0:     float64(tick0),
		DTick:     1,
		ShowLine:  true,
		LineWidth: 1,
		LineColor: "black",
	}
	if p.Years != nil && p.PlotType != PlotBar {
		layout.XAxis.Range = []float64{float64(p.Years.Start - 1), float64(p.Years.End + 1)}
	}

	layout.YAxis = models.Axis{
		TickMode:  "linear",
		Tick0:     0,
		DTick:     YTickInterval(p.YMax),
		RangeMode: "tozero",
		ShowLine:  true,
		LineWidth: 1,
		LineColor: "black",
	}
	if p.Measure == proportionMeasure {
		layout.YAxis.DTick = 0.1
		layout.YAxis.TickFormat = ".0%"
		layout.YAxis.Range = []float64{0, 1}
	}
	if p.YTitle != "" {
		layout.YAxis.Title = &models.AxisTitle{Text: p.YTitle}
	}

	layout.HoverLabel = models.HoverLabel{Font: models.Font{Size: 16, Family: "Rockwell"}}

	layout.ShowLegend = models.Bool(p.ShowLegend && p.PlotType != PlotBar)
}

// YTickInterval picks the y tick spacing for the largest plotted value.
func YTickInterval(yMax float64) float64 {
	switch {
	case math.IsNaN(yMax) || yMax <= 2:
		return 0.1
	case yMax <= 20:
		return 1
	case yMax <= 50:
		return 5
	case yMax <= 200:
		return 10
	case yMax <= 500:
		return 50
	}
	return 100
}
