// Package models defines the figure, trace and metadata structures exchanged with renderers.
package models

// AxisTitle is the text shown next to an axis.
type AxisTitle struct {
	Text string `json:"text"`
}

// Axis holds tick and range settings for one axis.
type Axis struct {
	// TickMode is "linear" for evenly spaced ticks.
	TickMode string `json:"tickmode,omitempty"`
	// Tick0 is the position of the first tick.
	Tick0 float64 `json:"tick0"`
	// DTick is the spacing between ticks.
	DTick float64 `json:"dtick,omitempty"`
	// TickFormat is a d3 format string (".0%" for proportions).
	TickFormat string `json:"tickformat,omitempty"`
	// Range is the visible [min, max] when forced.
	Range []float64 `json:"range,omitempty"`
	// RangeMode is "tozero" when the axis must include zero.
	RangeMode string  `json:"rangemode,omitempty"`
	ShowLine  bool    `json:"showline,omitempty"`
	LineWidth float64 `json:"linewidth,omitempty"`
	LineColor string  `json:"linecolor,omitempty"`
	// Title is the optional axis title.
	Title *AxisTitle `json:"title,omitempty"`
}

// Font is a hover label font.
type Font struct {
	Size   int    `json:"size,omitempty"`
	Family string `json:"family,omitempty"`
}

// HoverLabel styles tooltips.
type HoverLabel struct {
	Font Font `json:"font"`
}

// Layout is the figure-wide styling.
type Layout struct {
	// ShowLegend toggles the legend for the whole figure.
	ShowLegend *bool `json:"showlegend,omitempty"`
	// BarMode is "stack" for bar charts.
	BarMode string `json:"barmode,omitempty"`
	// BoxMode is "group" for box plots.
	BoxMode    string     `json:"boxmode,omitempty"`
	XAxis      Axis       `json:"xaxis"`
	YAxis      Axis       `json:"yaxis"`
	HoverLabel HoverLabel `json:"hoverlabel"`
}

// Figure is a self-contained chart specification: traces in drawing order plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}
