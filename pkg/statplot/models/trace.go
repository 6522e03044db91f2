package models

// Trace types understood by the rendering layer.
const (
	TraceScatter = "scatter"
	TraceBar     = "bar"
	TraceBox     = "box"
)

// Line describes the stroke of a scatter trace.
type Line struct {
	// Color is the stroke colour as "rgb(r, g, b)".
	Color string `json:"color,omitempty"`
	// Dash is the plotly dash name (solid, dot, dash, longdash, dashdot, longdashdot).
	Dash string `json:"dash,omitempty"`
	// Width is the stroke width; nil leaves the renderer default.
	Width *float64 `json:"width,omitempty"`
}

// MarkerLine is the outline of a marker.
type MarkerLine struct {
	Width float64 `json:"width"`
}

// Marker describes point or bar markers.
type Marker struct {
	Color string      `json:"color,omitempty"`
	Size  float64     `json:"size,omitempty"`
	Line  *MarkerLine `json:"line,omitempty"`
}

// Trace is one plottable series of a figure.
type Trace struct {
	// Type is one of TraceScatter, TraceBar, TraceBox.
	Type string `json:"type"`
	// Name is the legend label, the space-joined group key.
	Name string `json:"name"`
	// X holds the survey years.
	X []int `json:"x"`
	// Y holds the measure or confidence bound per year (not set for box traces).
	Y Values `json:"y,omitempty"`
	// Text holds one hover line per point.
	Text []string `json:"text,omitempty"`
	// Mode is the scatter mode (lines, lines+markers).
	Mode string `json:"mode,omitempty"`
	// Line is the scatter stroke.
	Line *Line `json:"line,omitempty"`
	// Marker is the marker style.
	Marker *Marker `json:"marker,omitempty"`
	// HoverTemplate is the plotly hover template.
	HoverTemplate string `json:"hovertemplate,omitempty"`
	// HoverInfo is "skip" for confidence bands.
	HoverInfo string `json:"hoverinfo,omitempty"`
	// TextPosition controls in-bar text placement.
	TextPosition string `json:"textposition,omitempty"`
	// LegendGroup ties traces that toggle together.
	LegendGroup string `json:"legendgroup,omitempty"`
	// OffsetGroup places bars of different outer groups side by side.
	OffsetGroup string `json:"offsetgroup,omitempty"`
	// ShowLegend is nil when the renderer default applies.
	ShowLegend *bool `json:"showlegend,omitempty"`
	// Fill is "tonexty" for the lower band of a confidence pair.
	Fill string `json:"fill,omitempty"`
	// FillColor is the band shading colour.
	FillColor string `json:"fillcolor,omitempty"`
	// ConnectGaps joins points across missing years.
	ConnectGaps *bool `json:"connectgaps,omitempty"`
	// Visible is the initial visibility.
	Visible Visibility `json:"visible"`

	// Box plot statistics.
	Q1         Values `json:"q1,omitempty"`
	Median     Values `json:"median,omitempty"`
	Q3         Values `json:"q3,omitempty"`
	LowerFence Values `json:"lowerfence,omitempty"`
	UpperFence Values `json:"upperfence,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}
