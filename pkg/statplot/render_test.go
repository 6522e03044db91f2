package statplot

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/figure"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
	"github.com/ukaji3/statplot-go/pkg/statplot/palette"
	"github.com/ukaji3/statplot-go/pkg/statplot/visibility"
)

func mustDataset(t *testing.T, header []string, rows ...[]string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(header, rows)
	require.NoError(t, err)
	return ds
}

var numericHeader = []string{"year", "sampreg", "mean", "mean_lower_confidence", "mean_upper_confidence", "n"}

func TestRenderSingleGroup(t *testing.T) {
	ds := mustDataset(t, numericHeader,
		[]string{"2000", "A", "5.0", "4.0", "6.0", "10"},
		[]string{"2001", "A", "6.0", "5.0", "7.0", "12"},
	)

	fig, err := NewRenderer().Render(ds, Request{Grouping: []string{"sampreg"}, Measure: MeasureMean, Language: "en"})
	require.NoError(t, err)
	require.Len(t, fig.Data, 3)

	main := fig.Data[0]
	assert.Equal(t, "A", main.Name)
	assert.Equal(t, []int{2000, 2001}, main.X)
	assert.Equal(t, models.Values{5, 6}, main.Y)
	assert.Equal(t, models.Visible, main.Visible)

	assert.Equal(t, models.Values{6, 7}, fig.Data[1].Y)
	assert.Equal(t, models.Values{4, 5}, fig.Data[2].Y)
	assert.Equal(t, "tonexty", fig.Data[2].Fill)

	assert.Equal(t, 2000.0, fig.Layout.XAxis.Tick0)
	assert.Equal(t, 1.0, fig.Layout.YAxis.DTick)
	assert.True(t, *fig.Layout.ShowLegend)

	noBands, err := NewRenderer().Render(ds, Request{
		Grouping:       []string{"sampreg"},
		ShowConfidence: models.Bool(false),
	})
	require.NoError(t, err)
	assert.Len(t, noBands.Data, 1)
}

func TestRenderVisibilityAcrossGroups(t *testing.T) {
	var rows [][]string
	for _, region := range []string{"A", "B", "C", "D", "E", "F"} {
		rows = append(rows, []string{"2000", region, "1", "0.5", "1.5", "3"})
	}
	ds := mustDataset(t, numericHeader, rows...)

	fig, err := NewRenderer().Render(ds, Request{
		Grouping:  []string{"sampreg"},
		Overrides: visibility.Overrides{"A": models.Hidden, "F": models.Visible},
	})
	require.NoError(t, err)
	require.Len(t, fig.Data, 18)

	expected := []models.Visibility{
		models.Hidden, models.Visible, models.Visible, models.Visible, models.LegendOnly, models.Visible,
	}
	for i, want := range expected {
		assert.Equal(t, want, fig.Data[i].Visible, "main trace %d", i)
		assert.Equal(t, want, fig.Data[6+2*i].Visible, "upper band %d", i)
		assert.Equal(t, want, fig.Data[7+2*i].Visible, "lower band %d", i)
	}
}

func TestRenderCategoricalBars(t *testing.T) {
	header := []string{"year", "chronill", "proportion", "proportion_lower_confidence", "proportion_upper_confidence", "n"}
	ds := mustDataset(t, header,
		[]string{"2001", "2", "0.6", "0.55", "0.65", "60"},
		[]string{"2001", "1", "0.4", "0.35", "0.45", "40"},
		[]string{"2000", "2", "0.7", "0.65", "0.75", "70"},
		[]string{"2000", "1", "0.3", "0.25", "0.35", "30"},
	)
	meta := &models.VariableMetadata{
		Variable:      "chronill",
		Values:        []int{-1, 1, 2},
		ValueLabels:   []string{"Missing", "Yes", "No"},
		ValueLabelsDE: []string{"Fehlend", "Ja", "Nein"},
	}

	fig, err := NewRenderer().Render(ds, Request{
		Variable:         "chronill",
		VariableType:     models.VariableCategorical,
		VariableMetadata: meta,
		Measure:          MeasureMean,
		PlotType:         PlotBar,
		Language:         "de",
	})
	require.NoError(t, err)
	require.Len(t, fig.Data, 2)

	assert.Equal(t, "Ja", fig.Data[0].Name)
	assert.Equal(t, "Nein", fig.Data[1].Name)
	assert.Equal(t, []int{2000, 2001}, fig.Data[0].X)
	assert.Equal(t, models.Values{0.3, 0.4}, fig.Data[0].Y)
	assert.Contains(t, fig.Data[0].Text[0], "%")

	assert.Equal(t, "stack", fig.Layout.BarMode)
	assert.False(t, *fig.Layout.ShowLegend)
	assert.Equal(t, ".0%", fig.Layout.YAxis.TickFormat)
	assert.Equal(t, []float64{0, 1}, fig.Layout.YAxis.Range)

	// the input dataset keeps its raw codes
	codes, err := ds.Strings("chronill")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "2", "1"}, codes)
}

func TestRenderCategoricalWithoutVariable(t *testing.T) {
	ds := mustDataset(t, numericHeader)
	_, err := NewRenderer().Render(ds, Request{VariableType: models.VariableCategorical})
	assert.ErrorIs(t, err, ErrMissingVariable)
}

func TestRenderBoxes(t *testing.T) {
	header := []string{"year", "lower_quartile", "boxplot_median", "upper_quartile", "lower_whisker", "upper_whisker"}
	ds := mustDataset(t, header,
		[]string{"2000", "5", "10", "15", "1", "30"},
		[]string{"2001", "6", "11", "16", "2", "31"},
	)

	fig, err := NewRenderer().Render(ds, Request{PlotType: PlotBox, YTitle: "Years"})
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	assert.Equal(t, models.TraceBox, fig.Data[0].Type)
	assert.Equal(t, " ", fig.Data[0].Name)
	assert.Equal(t, "group", fig.Layout.BoxMode)
	assert.Equal(t, 5.0, fig.Layout.YAxis.DTick)
	assert.Equal(t, "Years", fig.Layout.YAxis.Title.Text)
}

func TestRenderEmptyDataset(t *testing.T) {
	ds := mustDataset(t, numericHeader)
	fig, err := NewRenderer().Render(ds, Request{Grouping: []string{"sampreg"}})
	require.NoError(t, err)
	assert.Empty(t, fig.Data)
}

func TestRenderHeaderOnlyCSV(t *testing.T) {
	ds, err := dataset.ReadCSV(strings.NewReader(strings.Join(numericHeader, ",") + "\n"))
	require.NoError(t, err)

	fig, err := NewRenderer().Render(ds, Request{PlotType: PlotLine, Grouping: []string{"sampreg"}})
	require.NoError(t, err)
	assert.Empty(t, fig.Data)
}

func TestRenderWithPalette(t *testing.T) {
	ds := mustDataset(t, numericHeader,
		[]string{"2000", "A", "5.0", "4.0", "6.0", "10"},
		[]string{"2000", "B", "3.0", "2.0", "4.0", "8"},
	)
	r := NewRenderer(WithPalette([]palette.Color{{R: 9, G: 9, B: 9}}, []palette.Dash{palette.DashDash}))
	fig, err := r.Render(ds, Request{Grouping: []string{"sampreg"}, ShowConfidence: models.Bool(false)})
	require.NoError(t, err)
	require.Len(t, fig.Data, 2)
	for _, trace := range fig.Data {
		assert.Equal(t, "rgb(9, 9, 9)", trace.Line.Color)
		assert.Equal(t, string(palette.DashDash), trace.Line.Dash)
	}
}

func TestRenderYearRange(t *testing.T) {
	ds := mustDataset(t, numericHeader,
		[]string{"2000", "A", "5.0", "4.0", "6.0", "10"},
	)
	fig, err := NewRenderer().Render(ds, Request{Years: &figure.YearRange{Start: 1995, End: 2005}})
	require.NoError(t, err)
	assert.Equal(t, 1995.0, fig.Layout.XAxis.Tick0)
	assert.Equal(t, []float64{1994, 2006}, fig.Layout.XAxis.Range)
}

func TestRenderErrors(t *testing.T) {
	ds := mustDataset(t, numericHeader,
		[]string{"2000", "A", "5.0", "4.0", "6.0", "10"},
	)

	tests := []struct {
		name   string
		req    Request
		target error
		stage  string
	}{
		{"unknown measure", Request{Measure: "mode"}, ErrUnknownMeasure, StageTraces},
		{"unknown plot type", Request{PlotType: "pie"}, ErrUnknownPlotType, StageTraces},
		{"missing grouping column", Request{Grouping: []string{"regtyp"}}, dataset.ErrMissingColumn, StageTraces},
		{"missing metadata column", Request{
			GroupMetadata: []models.VariableMetadata{{Variable: "regtyp", Values: []int{1}, ValueLabels: []string{"a"}, ValueLabelsDE: []string{"a"}}},
		}, dataset.ErrMissingColumn, StageLocalize},
		{"missing measure column", Request{Measure: MeasureMedian}, dataset.ErrMissingColumn, StageTraces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer().Render(ds, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var renderErr *RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, tt.stage, renderErr.Stage)
		})
	}
}

func TestParseMeasure(t *testing.T) {
	m, err := ParseMeasure(" Median ")
	require.NoError(t, err)
	assert.Equal(t, MeasureMedian, m)

	m, err = ParseMeasure("")
	require.NoError(t, err)
	assert.Equal(t, MeasureMean, ResolveMeasure(m))

	_, err = ParseMeasure("sum")
	assert.ErrorIs(t, err, ErrUnknownMeasure)
}

func TestParsePlotType(t *testing.T) {
	p, err := ParsePlotType("")
	require.NoError(t, err)
	assert.Equal(t, PlotLine, p)

	p, err = ParsePlotType("BOX")
	require.NoError(t, err)
	assert.Equal(t, PlotBox, p)

	_, err = ParsePlotType("pie")
	assert.ErrorIs(t, err, ErrUnknownPlotType)
}

func TestNormalizeGrouping(t *testing.T) {
	tests := []struct {
		first, second string
		grouping      []string
		secondOut     string
	}{
		{"sampreg", "regtyp", []string{"regtyp", "sampreg"}, "regtyp"},
		{"sampreg", "sampreg", []string{"sampreg"}, ""},
		{"", "regtyp", []string{"regtyp"}, "regtyp"},
		{"", "", []string{}, ""},
	}
	for _, tt := range tests {
		grouping, second := NormalizeGrouping(tt.first, tt.second)
		assert.Equal(t, tt.grouping, grouping)
		assert.Equal(t, tt.secondOut, second)
	}
}

func TestSecondGroupOptions(t *testing.T) {
	sampreg, regtyp := "sampreg", "regtyp"
	options := []models.Option{
		{Label: "No Grouping"},
		{Label: "Region", Value: &sampreg},
		{Label: "Type", Value: &regtyp},
	}

	got := SecondGroupOptions(options, "sampreg")
	require.Len(t, got, 2)
	assert.Equal(t, "No Grouping", got[0].Label)
	assert.Equal(t, "Type", got[1].Label)

	assert.Len(t, SecondGroupOptions(options, ""), 3)
}
