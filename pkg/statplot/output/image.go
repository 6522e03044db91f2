package output

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// ErrUnsupportedFormat indicates an image format the renderer cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatJPG = "jpg"
)

// maxTicks bounds constant tick lists; beyond it the default ticker is used.
const maxTicks = 60

var dashPatterns = map[string][]vg.Length{
	"dot":         {vg.Points(1), vg.Points(3)},
	"dash":        {vg.Points(6), vg.Points(4)},
	"longdash":    {vg.Points(12), vg.Points(4)},
	"dashdot":     {vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)},
	"longdashdot": {vg.Points(12), vg.Points(3), vg.Points(1), vg.Points(3)},
}

// WriteImage renders the visible traces of fig as a static image.
// Legend-only and hidden traces are left out. Width and height are in pixels.
func WriteImage(w io.Writer, fig *models.Figure, format string, width, height int) error {
	format = strings.ToLower(format)
	switch format {
	case FormatPNG, FormatSVG, FormatPDF, FormatJPG:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	p, err := buildPlot(fig)
	if err != nil {
		return err
	}

	writer, err := p.WriterTo(PixelsToLength(width), PixelsToLength(height), format)
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func buildPlot(fig *models.Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)
	if t := fig.Layout.YAxis.Title; t != nil {
		p.Y.Label.Text = t.Text
	}

	years := figureYears(fig.Data)
	barChart := false
	for _, t := range fig.Data {
		if t.Type == models.TraceBar {
			barChart = true
			break
		}
	}

	var err error
	if barChart {
		err = addBars(p, fig.Data, years)
	} else {
		err = addSeries(p, fig.Data)
	}
	if err != nil {
		return nil, err
	}

	if !barChart {
		styleXAxis(p, fig.Layout.XAxis, years)
	}
	styleYAxis(p, fig.Layout.YAxis)
	if fig.Layout.ShowLegend != nil && !*fig.Layout.ShowLegend {
		p.Legend = plot.NewLegend()
	}

	return p, nil
}

// addSeries draws lines, confidence bands and boxes in trace order.
func addSeries(p *plot.Plot, data []models.Trace) error {
	var boxes []int
	for i := range data {
		t := &data[i]
		if t.Visible != models.Visible {
			continue
		}
		switch {
		case t.Type == models.TraceBox:
			boxes = append(boxes, i)
		case t.Fill == "tonexty" && i > 0:
			if err := addBand(p, &data[i-1], t); err != nil {
				return err
			}
		case t.Line != nil && t.Line.Width != nil && *t.Line.Width == 0:
			// band edge, drawn together with its fill
		default:
			if err := addLine(p, t); err != nil {
				return err
			}
		}
	}

	for k, i := range boxes {
		if err := addBox(p, &data[i], k, len(boxes)); err != nil {
			return err
		}
	}
	return nil
}

func points(x []int, y models.Values) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i, year := range x {
		if i >= len(y) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(year), Y: y[i]})
	}
	return pts
}

func addLine(p *plot.Plot, t *models.Trace) error {
	pts := points(t.X, t.Y)
	if len(pts) == 0 {
		return nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to create line for %q: %w", t.Name, err)
	}
	lineColor := color.Color(color.Black)
	if t.Line != nil {
		lineColor = colorOr(t.Line.Color, lineColor)
		line.Dashes = dashPatterns[t.Line.Dash]
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	p.Add(line)

	if strings.Contains(t.Mode, "markers") {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("failed to create markers for %q: %w", t.Name, err)
		}
		scatter.Color = lineColor
		scatter.Radius = vg.Points(2.5)
		p.Add(scatter)
	}

	if t.ShowLegend == nil || *t.ShowLegend {
		p.Legend.Add(t.Name, line)
	}
	return nil
}

// addBand fills the area between the upper and the lower bound of a group.
func addBand(p *plot.Plot, upper, lower *models.Trace) error {
	top := points(upper.X, upper.Y)
	bottom := points(lower.X, lower.Y)
	if len(top) == 0 || len(bottom) == 0 {
		return nil
	}

	ring := make(plotter.XYs, 0, len(top)+len(bottom))
	ring = append(ring, top...)
	for i := len(bottom) - 1; i >= 0; i-- {
		ring = append(ring, bottom[i])
	}

	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return fmt.Errorf("failed to create confidence band for %q: %w", lower.Name, err)
	}
	poly.Color = colorOr(lower.FillColor, color.NRGBA{R: 68, G: 68, B: 68, A: 38})
	poly.LineStyle.Width = 0
	p.Add(poly)
	return nil
}

// addBox draws box k of n next to each year: q1 to q3 as a rectangle,
// the median as a line and whiskers out to the fences.
func addBox(p *plot.Plot, t *models.Trace, k, n int) error {
	boxColor := color.Color(color.Black)
	if t.Marker != nil {
		boxColor = colorOr(t.Marker.Color, boxColor)
	}
	width := 0.8 / float64(n)
	shift := (float64(k) - float64(n-1)/2) * width

	legendAdded := false
	for i, year := range t.X {
		q1, med, q3 := at(t.Q1, i), at(t.Median, i), at(t.Q3, i)
		if math.IsNaN(q1) || math.IsNaN(q3) {
			continue
		}
		center := float64(year) + shift
		x0, x1 := center-width*0.4, center+width*0.4

		box, err := plotter.NewPolygon(plotter.XYs{{X: x0, Y: q1}, {X: x1, Y: q1}, {X: x1, Y: q3}, {X: x0, Y: q3}})
		if err != nil {
			return fmt.Errorf("failed to create box for %q: %w", t.Name, err)
		}
		box.Color = withAlpha(boxColor, 0x80)
		box.LineStyle.Color = boxColor
		box.LineStyle.Width = vg.Points(1)
		p.Add(box)

		segments := []plotter.XYs{}
		if !math.IsNaN(med) {
			segments = append(segments, plotter.XYs{{X: x0, Y: med}, {X: x1, Y: med}})
		}
		if lo := at(t.LowerFence, i); !math.IsNaN(lo) {
			segments = append(segments, plotter.XYs{{X: center, Y: lo}, {X: center, Y: q1}})
		}
		if hi := at(t.UpperFence, i); !math.IsNaN(hi) {
			segments = append(segments, plotter.XYs{{X: center, Y: q3}, {X: center, Y: hi}})
		}
		for _, seg := range segments {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("failed to create whisker for %q: %w", t.Name, err)
			}
			line.Color = boxColor
			line.Width = vg.Points(1)
			p.Add(line)
		}

		if !legendAdded {
			p.Legend.Add(t.Name, box)
			legendAdded = true
		}
	}
	return nil
}

// addBars stacks bars per offset group on a nominal year axis.
func addBars(p *plot.Plot, data []models.Trace, years []int) error {
	var offsets []string
	for _, t := range data {
		if t.Type == models.TraceBar && indexOf(offsets, t.OffsetGroup) < 0 {
			offsets = append(offsets, t.OffsetGroup)
		}
	}

	barWidth := vg.Points(40 / float64(len(offsets)))
	stacks := make(map[string]*plotter.BarChart)
	legend := make(map[string]bool)
	for i := range data {
		t := &data[i]
		if t.Type != models.TraceBar || t.Visible != models.Visible {
			continue
		}

		values := make(plotter.Values, len(years))
		for j, year := range t.X {
			if k := sort.SearchInts(years, year); k < len(years) && years[k] == year {
				if v := at(t.Y, j); !math.IsNaN(v) && !math.IsInf(v, 0) {
					values[k] = v
				}
			}
		}

		bar, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return fmt.Errorf("failed to create bars for %q: %w", t.Name, err)
		}
		barColor := color.Color(color.Gray{Y: 128})
		if t.Marker != nil {
			barColor = colorOr(t.Marker.Color, barColor)
		}
		bar.Color = barColor
		bar.LineStyle.Width = 0
		k := indexOf(offsets, t.OffsetGroup)
		bar.Offset = vg.Length(float64(k)-float64(len(offsets)-1)/2) * barWidth
		if below, ok := stacks[t.OffsetGroup]; ok {
			bar.StackOn(below)
		}
		stacks[t.OffsetGroup] = bar
		p.Add(bar)

		if !legend[t.Name] {
			p.Legend.Add(t.Name, bar)
			legend[t.Name] = true
		}
	}

	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	p.NominalX(labels...)
	return nil
}

func styleXAxis(p *plot.Plot, axis models.Axis, years []int) {
	if len(axis.Range) == 2 {
		p.X.Min, p.X.Max = axis.Range[0], axis.Range[1]
	}
	if len(years) == 0 || axis.DTick <= 0 {
		return
	}
	start := axis.Tick0
	for start > p.X.Min {
		start -= axis.DTick
	}
	p.X.Tick.Marker = constantTicks(start, p.X.Min, p.X.Max, axis.DTick, func(v float64) string {
		return strconv.Itoa(int(math.Round(v)))
	})
}

func styleYAxis(p *plot.Plot, axis models.Axis) {
	if len(axis.Range) == 2 {
		p.Y.Min, p.Y.Max = axis.Range[0], axis.Range[1]
	}
	if axis.RangeMode == "tozero" && p.Y.Min > 0 {
		p.Y.Min = 0
	}
	if axis.DTick <= 0 {
		return
	}
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if axis.TickFormat == ".0%" {
		format = func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		}
	}
	p.Y.Tick.Marker = constantTicks(axis.Tick0, p.Y.Min, p.Y.Max, axis.DTick, format)
}

// constantTicks lists ticks from start in steps of step that fall into [min, max].
// Too many ticks keep the default ticker.
func constantTicks(start, min, max, step float64, label func(float64) string) plot.Ticker {
	if math.IsInf(min, 0) || math.IsInf(max, 0) || (max-min)/step > maxTicks {
		return plot.DefaultTicks{}
	}
	var ticks []plot.Tick
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > max+step*1e-9 {
			break
		}
		if v < min-step*1e-9 {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label(v)})
	}
	return plot.ConstantTicks(ticks)
}

// figureYears returns the sorted distinct years of all traces.
func figureYears(data []models.Trace) []int {
	seen := make(map[int]bool)
	var years []int
	for _, t := range data {
		for _, y := range t.X {
			if !seen[y] {
				seen[y] = true
				years = append(years, y)
			}
		}
	}
	sort.Ints(years)
	return years
}

func at(v models.Values, i int) float64 {
	if i >= len(v) {
		return math.NaN()
	}
	return v[i]
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
