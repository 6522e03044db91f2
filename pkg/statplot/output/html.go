package output

import (
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// emptyValue marks a missing point for echarts.
const emptyValue = "-"

var htmlDashes = map[string]string{
	"solid":       "solid",
	"dot":         "dotted",
	"dash":        "dashed",
	"longdash":    "dashed",
	"dashdot":     "dashed",
	"longdashdot": "dashed",
}

type htmlChart interface {
	Render(w io.Writer) error
}

// WriteHTML renders fig as a standalone interactive page. Traces that start
// legend-only or hidden are deselected in the legend and can be toggled back.
func WriteHTML(w io.Writer, fig *models.Figure, title string) error {
	years := figureYears(fig.Data)
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}

	global := globalOptions(fig, title)

	var chart htmlChart
	switch chartKind(fig.Data) {
	case models.TraceBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(labels)
		for i := range fig.Data {
			t := &fig.Data[i]
			stack := t.OffsetGroup
			if stack == "" {
				stack = "total"
			}
			bar.AddSeries(t.Name, barData(t, years),
				charts.WithBarChartOpts(opts.BarChart{Stack: stack}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: markerColor(t)}),
			)
		}
		chart = bar
	case models.TraceBox:
		box := charts.NewBoxPlot()
		box.SetGlobalOptions(global...)
		box.SetXAxis(labels)
		for i := range fig.Data {
			t := &fig.Data[i]
			box.AddSeries(t.Name, boxData(t, years),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: markerColor(t)}),
			)
		}
		chart = box
	default:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(labels)
		for i := range fig.Data {
			t := &fig.Data[i]
			style := opts.LineStyle{Type: "solid"}
			if t.Line != nil {
				style.Color = cssColor(t.Line.Color)
				if dash, ok := htmlDashes[t.Line.Dash]; ok {
					style.Type = dash
				}
				if t.Line.Width != nil && *t.Line.Width == 0 {
					// band edges share the group's legend entry
					style.Color = cssColor(markerColor(t))
					style.Type = "dotted"
				}
			}
			line.AddSeries(t.Name, lineData(t, years),
				charts.WithLineStyleOpts(style),
				charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(true)}),
			)
		}
		chart = line
	}

	return chart.Render(w)
}

func globalOptions(fig *models.Figure, title string) []charts.GlobalOpts {
	selected := make(map[string]bool)
	for _, t := range fig.Data {
		// a group stays selected while any of its traces starts visible
		selected[t.Name] = selected[t.Name] || t.Visible == models.Visible
	}
	showLegend := fig.Layout.ShowLegend == nil || *fig.Layout.ShowLegend

	yAxis := opts.YAxis{Type: "value"}
	if t := fig.Layout.YAxis.Title; t != nil {
		yAxis.Name = t.Text
	}
	if r := fig.Layout.YAxis.Range; len(r) == 2 {
		yAxis.Min = r[0]
		yAxis.Max = r[1]
	}

	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:     opts.Bool(showLegend),
			Selected: selected,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
		}),
		charts.WithYAxisOpts(yAxis),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "600px",
		}),
	}
}

func chartKind(data []models.Trace) string {
	for _, t := range data {
		if t.Type == models.TraceBar || t.Type == models.TraceBox {
			return t.Type
		}
	}
	return models.TraceScatter
}

func markerColor(t *models.Trace) string {
	if t.Marker == nil {
		return ""
	}
	return cssColor(t.Marker.Color)
}

// aligned maps a trace's values onto the shared year axis.
func aligned(t *models.Trace, v models.Values, years []int) []float64 {
	out := make([]float64, len(years))
	for i := range out {
		out[i] = math.NaN()
	}
	for j, year := range t.X {
		if k := sort.SearchInts(years, year); k < len(years) && years[k] == year {
			out[k] = at(v, j)
		}
	}
	return out
}

func pointValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return emptyValue
	}
	return v
}

func lineData(t *models.Trace, years []int) []opts.LineData {
	values := aligned(t, t.Y, years)
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: pointValue(v)}
	}
	return items
}

func barData(t *models.Trace, years []int) []opts.BarData {
	values := aligned(t, t.Y, years)
	items := make([]opts.BarData, len(values))
	for i, v := range values {
		items[i] = opts.BarData{Value: pointValue(v)}
	}
	return items
}

func boxData(t *models.Trace, years []int) []opts.BoxPlotData {
	columns := [][]float64{
		aligned(t, t.LowerFence, years),
		aligned(t, t.Q1, years),
		aligned(t, t.Median, years),
		aligned(t, t.Q3, years),
		aligned(t, t.UpperFence, years),
	}
	items := make([]opts.BoxPlotData, len(years))
	for i := range years {
		five := make([]interface{}, len(columns))
		for c := range columns {
			five[c] = pointValue(columns[c][i])
		}
		items[i] = opts.BoxPlotData{Value: five}
	}
	return items
}
