// Package traces converts grouped statistics into chart traces.
package traces

import (
	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/localize"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
	"github.com/ukaji3/statplot-go/pkg/statplot/palette"
	"github.com/ukaji3/statplot-go/pkg/statplot/visibility"
)

// Box plot columns.
const (
	ColumnLowerQuartile = "lower_quartile"
	ColumnBoxMedian     = "boxplot_median"
	ColumnUpperQuartile = "upper_quartile"
	ColumnLowerWhisker  = "lower_whisker"
	ColumnUpperWhisker  = "upper_whisker"
)

const (
	bandLineColor = "#444"
	bandFillColor = "rgba(68, 68, 68, 0.15)"
)

// Builder turns groups into traces. Colour and dash cyclers restart on every call,
// so the n-th group always receives the n-th colour. A Builder is not safe for
// concurrent use.
type Builder struct {
	translations *localize.Translations
	language     localize.Language
	colors       *palette.Cycler[palette.Color]
	dashes       *palette.Cycler[palette.Dash]
	maxVisible   int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTranslations sets the UI strings used for hover texts.
func WithTranslations(t *localize.Translations) BuilderOption {
	return func(b *Builder) {
		if t != nil {
			b.translations = t
		}
	}
}

// WithLanguage sets the language of hover texts.
func WithLanguage(lang localize.Language) BuilderOption {
	return func(b *Builder) {
		b.language = lang
	}
}

// WithColors replaces the colour palette. An empty list keeps the default.
func WithColors(colors []palette.Color) BuilderOption {
	return func(b *Builder) {
		if len(colors) > 0 {
			b.colors = palette.NewCycler(colors)
		}
	}
}

// WithDashes replaces the line dash sequence. An empty list keeps the default.
func WithDashes(dashes []palette.Dash) BuilderOption {
	return func(b *Builder) {
		if len(dashes) > 0 {
			b.dashes = palette.NewCycler(dashes)
		}
	}
}

// WithMaxVisible changes how many groups start visible in line and box charts.
func WithMaxVisible(n int) BuilderOption {
	return func(b *Builder) {
		b.maxVisible = n
	}
}

// NewBuilder creates a builder with the default palette and English labels.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		translations: localize.DefaultTranslations(),
		language:     localize.English,
		colors:       palette.Colors(),
		dashes:       palette.Dashes(),
		maxVisible:   visibility.DefaultMaxVisible,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Lines builds one lines+markers trace per group.
func (b *Builder) Lines(groups []dataset.Group, measure string, overrides visibility.Overrides) ([]models.Trace, error) {
	b.colors.Reset()
	b.dashes.Reset()
	policy := visibility.NewPolicy(overrides, visibility.WithMaxVisible(b.maxVisible))
	template := hoverTemplate(measure, b.translations, b.language)

	result := make([]models.Trace, 0, len(groups))
	for _, g := range groups {
		s, err := extract(g.Data, measure, dataset.ColumnN, dataset.LowerConfidence(measure), dataset.UpperConfidence(measure))
		if err != nil {
			return nil, err
		}
		key := g.Name()

		result = append(result, models.Trace{
			Type:          models.TraceScatter,
			Name:          key,
			X:             s.years,
			Y:             s.values[0],
			Text:          FormatTooltips(s.values[1], s.values[2], s.values[3], measure, b.translations, b.language),
			Mode:          "lines+markers",
			Line:          &models.Line{Color: b.colors.Next().String(), Dash: string(b.dashes.Next())},
			Marker:        &models.Marker{Size: 5, Line: &models.MarkerLine{Width: 2}},
			HoverTemplate: template,
			LegendGroup:   key,
			Visible:       policy.Next(key),
		})
	}

	return result, nil
}

// Confidence builds an upper and a lower band trace per group. The lower trace
// fills to the upper one. Both share the group's legend group so they toggle
// with the main trace. The pairs draw visibility from their own policy.
func (b *Builder) Confidence(groups []dataset.Group, measure string, overrides visibility.Overrides) ([]models.Trace, error) {
	policy := visibility.NewPolicy(overrides, visibility.WithMaxVisible(b.maxVisible))

	result := make([]models.Trace, 0, 2*len(groups))
	for _, g := range groups {
		s, err := extract(g.Data, dataset.UpperConfidence(measure), dataset.LowerConfidence(measure))
		if err != nil {
			return nil, err
		}
		key := g.Name()
		visible := policy.Next(key)

		upper := bandTrace(key, s.years, s.values[0], visible)
		lower := bandTrace(key, s.years, s.values[1], visible)
		lower.Fill = "tonexty"
		lower.FillColor = bandFillColor

		result = append(result, upper, lower)
	}

	return result, nil
}

func bandTrace(key string, years []int, values models.Values, visible models.Visibility) models.Trace {
	return models.Trace{
		Type:        models.TraceScatter,
		Name:        key,
		X:           years,
		Y:           values,
		Mode:        "lines",
		Marker:      &models.Marker{Color: bandLineColor},
		Line:        &models.Line{Width: models.Float(0)},
		ShowLegend:  models.Bool(false),
		HoverInfo:   "skip",
		LegendGroup: key,
		Visible:     visible,
	}
}

// Bars builds one bar trace per group. Colour and legend entry are keyed by the
// innermost grouping value, so every bar of that value shares one colour and
// one legend entry across the outer groups. Outer groups get their own offset group.
//
// Bars do not follow the first-four rule of Lines and Boxes: every bar starts
// visible unless overridden (WithMaxVisible(0)), since the bar legend is
// suppressed and a hidden bar could not be revealed.
func (b *Builder) Bars(groups []dataset.Group, measure string, overrides visibility.Overrides) ([]models.Trace, error) {
	b.colors.Reset()
	assigned := make(map[string]string)
	policy := visibility.NewPolicy(overrides, visibility.WithMaxVisible(0))
	template := hoverTemplate(measure, b.translations, b.language)

	result := make([]models.Trace, 0, len(groups))
	for _, g := range groups {
		s, err := extract(g.Data, measure, dataset.ColumnN, dataset.LowerConfidence(measure), dataset.UpperConfidence(measure))
		if err != nil {
			return nil, err
		}
		legendKey := g.Last()

		color, seen := assigned[legendKey]
		if !seen {
			color = b.colors.Next().String()
			assigned[legendKey] = color
		}

		hover := template
		if outer := g.Outer(); outer != "" {
			hover = g.Name() + "<br>" + template
		}

		result = append(result, models.Trace{
			Type:          models.TraceBar,
			Name:          legendKey,
			X:             s.years,
			Y:             s.values[0],
			Text:          FormatTooltips(s.values[1], s.values[2], s.values[3], measure, b.translations, b.language),
			HoverTemplate: hover,
			TextPosition:  "none",
			Marker:        &models.Marker{Color: color},
			LegendGroup:   legendKey,
			OffsetGroup:   g.Outer(),
			ShowLegend:    models.Bool(!seen),
			Visible:       policy.Next(legendKey),
		})
	}

	return result, nil
}

// Boxes builds one box trace per group from precomputed quartiles and whiskers.
func (b *Builder) Boxes(groups []dataset.Group, overrides visibility.Overrides) ([]models.Trace, error) {
	b.colors.Reset()
	policy := visibility.NewPolicy(overrides, visibility.WithMaxVisible(b.maxVisible))

	result := make([]models.Trace, 0, len(groups))
	for _, g := range groups {
		s, err := extract(g.Data, ColumnLowerQuartile, ColumnBoxMedian, ColumnUpperQuartile, ColumnLowerWhisker, ColumnUpperWhisker)
		if err != nil {
			return nil, err
		}
		key := g.Name()

		result = append(result, models.Trace{
			Type:        models.TraceBox,
			Name:        key,
			X:           s.years,
			Q1:          s.values[0],
			Median:      s.values[1],
			Q3:          s.values[2],
			LowerFence:  s.values[3],
			UpperFence:  s.values[4],
			Marker:      &models.Marker{Color: b.colors.Next().String()},
			LegendGroup: key,
			Visible:     policy.Next(key),
		})
	}

	return result, nil
}

// series holds the years of a group and the aligned values of the requested columns.
type series struct {
	years  []int
	values []models.Values
}

// extract reads the year column and the given columns, dropping rows without a year.
func extract(d *dataset.Dataset, columns ...string) (series, error) {
	if err := d.Require(append([]string{dataset.ColumnYear}, columns...)...); err != nil {
		return series{}, err
	}

	years, hasYear, err := d.Ints(dataset.ColumnYear)
	if err != nil {
		return series{}, err
	}
	raw := make([][]float64, len(columns))
	for i, name := range columns {
		if raw[i], err = d.Floats(name); err != nil {
			return series{}, err
		}
	}

	s := series{values: make([]models.Values, len(columns))}
	for i := range s.values {
		s.values[i] = make(models.Values, 0, d.Len())
	}
	s.years = make([]int, 0, d.Len())
	for r, year := range years {
		if !hasYear[r] {
			continue
		}
		s.years = append(s.years, year)
		for i := range columns {
			s.values[i] = append(s.values[i], raw[i][r])
		}
	}

	return s, nil
}
