package statplot

import (
	"go.uber.org/zap"

	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/figure"
	"github.com/ukaji3/statplot-go/pkg/statplot/localize"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
	"github.com/ukaji3/statplot-go/pkg/statplot/palette"
	"github.com/ukaji3/statplot-go/pkg/statplot/traces"
	"github.com/ukaji3/statplot-go/pkg/statplot/visibility"
)

// Renderer turns datasets into styled figures. It holds only read-only state
// and is safe for concurrent use.
type Renderer struct {
	logger       *zap.Logger
	translations *localize.Translations
	maxVisible   int
	colors       []palette.Color
	dashes       []palette.Dash
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTranslations replaces the built-in UI strings.
func WithTranslations(t *localize.Translations) RendererOption {
	return func(r *Renderer) {
		if t != nil {
			r.translations = t
		}
	}
}

// WithMaxVisible changes how many groups start visible in line and box charts.
func WithMaxVisible(n int) RendererOption {
	return func(r *Renderer) {
		r.maxVisible = n
	}
}

// WithPalette replaces the trace colours and line dashes. Nil keeps the default.
func WithPalette(colors []palette.Color, dashes []palette.Dash) RendererOption {
	return func(r *Renderer) {
		r.colors = append([]palette.Color(nil), colors...)
		r.dashes = append([]palette.Dash(nil), dashes...)
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		logger:       zap.NewNop(),
		translations: localize.DefaultTranslations(),
		maxVisible:   visibility.DefaultMaxVisible,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render localizes ds, groups it and builds a styled figure for req.
// ds itself is never modified.
func (r *Renderer) Render(ds *dataset.Dataset, req Request) (*models.Figure, error) {
	lang := localize.ResolveLanguage(req.Language)

	measure, err := ParseMeasure(string(req.Measure))
	if err != nil {
		return nil, NewRenderError(StageTraces, err)
	}
	plotType, err := ParsePlotType(string(req.PlotType))
	if err != nil {
		return nil, NewRenderError(StageTraces, err)
	}
	if measure == "" {
		r.logger.Debug("measure not set, using mean")
	}
	measure = ResolveMeasure(measure)

	metadata := make([]models.VariableMetadata, 0, len(req.GroupMetadata)+1)
	grouping := append([]string(nil), req.Grouping...)
	if req.IsCategorical() {
		if req.Variable == "" {
			return nil, NewRenderError(StageTraces, ErrMissingVariable)
		}
		if req.VariableMetadata != nil {
			metadata = append(metadata, *req.VariableMetadata)
		}
		// Bars key colour and legend by the last column, so the variable goes last.
		grouping = append(grouping, req.Variable)
		measure = MeasureProportion
	}
	metadata = append(metadata, req.GroupMetadata...)

	localized, err := localize.Localize(ds, metadata, lang)
	if err != nil {
		return nil, NewRenderError(StageLocalize, err)
	}

	groups, err := localized.GroupBy(grouping)
	if err != nil {
		return nil, NewRenderError(StageTraces, err)
	}
	r.logger.Debug("grouped dataset",
		zap.Strings("grouping", grouping),
		zap.Int("rows", localized.Len()),
		zap.Int("groups", len(groups)),
	)

	builder := traces.NewBuilder(
		traces.WithTranslations(r.translations),
		traces.WithLanguage(lang),
		traces.WithMaxVisible(r.maxVisible),
		traces.WithColors(r.colors),
		traces.WithDashes(r.dashes),
	)

	var main, bands []models.Trace
	yColumn := string(measure)
	switch plotType {
	case PlotLine:
		main, err = builder.Lines(groups, yColumn, req.Overrides)
		if err == nil && req.ShouldShowConfidence() {
			bands, err = builder.Confidence(groups, yColumn, req.Overrides)
		}
	case PlotBar:
		main, err = builder.Bars(groups, yColumn, req.Overrides)
	case PlotBox:
		yColumn = traces.ColumnUpperWhisker
		main, err = builder.Boxes(groups, req.Overrides)
	}
	if err != nil {
		return nil, NewRenderError(StageTraces, err)
	}

	fig := figure.Assemble(main, bands)

	params := figure.StyleParams{
		PlotType:   string(plotType),
		Measure:    string(measure),
		Years:      req.Years,
		ShowLegend: req.ShouldShowLegend(),
		YTitle:     req.YTitle,
	}
	if plotType == PlotBox {
		// Box plots always use a numeric axis.
		params.Measure = string(MeasureMean)
	}
	if localized.Len() > 0 {
		startYear, ok, err := localized.Min(dataset.ColumnYear)
		if err != nil {
			return nil, NewRenderError(StageFigure, err)
		}
		if ok {
			params.StartYear = int(startYear)
		}
		yMax, _, err := localized.Max(yColumn)
		if err != nil {
			return nil, NewRenderError(StageFigure, err)
		}
		params.YMax = yMax
	}
	figure.Style(fig, params)

	r.logger.Debug("rendered figure",
		zap.String("plot_type", string(plotType)),
		zap.String("measure", string(measure)),
		zap.Int("traces", len(fig.Data)),
	)

	return fig, nil
}
