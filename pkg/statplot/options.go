// Package statplot renders statistics datasets into chart specifications.
package statplot

import (
	"fmt"
	"strings"

	"github.com/ukaji3/statplot-go/pkg/statplot/figure"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
	"github.com/ukaji3/statplot-go/pkg/statplot/visibility"
)

// Measure is the plotted statistic.
type Measure string

const (
	// MeasureMean plots the mean column.
	MeasureMean Measure = "mean"
	// MeasureMedian plots the median column.
	MeasureMedian Measure = "median"
	// MeasureProportion plots the share of each value, formatted as percent.
	MeasureProportion Measure = "proportion"
)

// PlotType selects the chart kind.
type PlotType string

const (
	// PlotLine draws one line per group with optional confidence bands.
	PlotLine PlotType = figure.PlotLine
	// PlotBar draws stacked bars keyed by the innermost grouping value.
	PlotBar PlotType = figure.PlotBar
	// PlotBox draws precomputed box plots.
	PlotBox PlotType = figure.PlotBox
)

// ParseMeasure validates a measure name. An empty name is accepted and
// resolved later by ResolveMeasure.
func ParseMeasure(s string) (Measure, error) {
	m := Measure(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "", MeasureMean, MeasureMedian, MeasureProportion:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (must be mean, median, or proportion)", ErrUnknownMeasure, s)
}

// ParsePlotType validates a chart type. An empty name means PlotLine.
func ParsePlotType(s string) (PlotType, error) {
	p := PlotType(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PlotLine, nil
	case PlotLine, PlotBar, PlotBox:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (must be line, bar, or box)", ErrUnknownPlotType, s)
}

// ResolveMeasure returns m, or MeasureMean when m is unset.
func ResolveMeasure(m Measure) Measure {
	if m == "" {
		return MeasureMean
	}
	return m
}

// Request describes one render.
type Request struct {
	// Variable is the plotted variable. Required for categorical variables.
	Variable string
	// VariableType defaults to numerical.
	VariableType models.VariableType
	// VariableMetadata labels the values of a categorical variable.
	VariableMetadata *models.VariableMetadata
	// Grouping lists the grouping columns, outermost first.
	Grouping []string
	// GroupMetadata labels the values of the grouping columns.
	GroupMetadata []models.VariableMetadata
	// Measure is the plotted statistic. Categorical variables always plot proportions.
	Measure Measure
	// PlotType defaults to PlotLine.
	PlotType PlotType
	// ShowConfidence specifies whether to add confidence bands to line charts.
	// If nil, defaults to true.
	ShowConfidence *bool
	// ShowLegend specifies whether to show the legend. Bar charts never show one.
	// If nil, defaults to true.
	ShowLegend *bool
	// Language is a language tag; anything but English renders German labels.
	Language string
	// Years optionally pins the first tick and clamps the x axis.
	Years *figure.YearRange
	// Overrides carry visibility states from a previous render.
	Overrides visibility.Overrides
	// YTitle is an optional y axis title.
	YTitle string
}

// ShouldShowConfidence returns whether to add confidence bands.
func (r Request) ShouldShowConfidence() bool {
	if r.ShowConfidence != nil {
		return *r.ShowConfidence
	}
	return true
}

// ShouldShowLegend returns whether to show the legend.
func (r Request) ShouldShowLegend() bool {
	if r.ShowLegend != nil {
		return *r.ShowLegend
	}
	return true
}

// IsCategorical reports whether the request plots a categorical variable.
func (r Request) IsCategorical() bool {
	return r.VariableType == models.VariableCategorical
}
