package figure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

func TestYTickInterval(t *testing.T) {
	tests := []struct {
		max      float64
		expected float64
	}{
		{0, 0.1},
		{2, 0.1},
		{2.5, 1},
		{20, 1},
		{21, 5},
		{50, 5},
		{51, 10},
		{200, 10},
		{201, 50},
		{500, 50},
		{501, 100},
		{math.NaN(), 0.1},
	}
	for _, tt := range tests {
		if got := YTickInterval(tt.max); got != tt.expected {
			t.Errorf("YTickInterval(%v) = %v, expected %v", tt.max, got, tt.expected)
		}
	}
}

func TestAssembleOrder(t *testing.T) {
	main := []models.Trace{{Name: "A"}, {Name: "B"}}
	bands := []models.Trace{{Name: "A", Fill: ""}, {Name: "A", Fill: "tonexty"}}
	fig := Assemble(main, bands)
	require.Len(t, fig.Data, 4)
	assert.Equal(t, "A", fig.Data[0].Name)
	assert.Equal(t, "B", fig.Data[1].Name)
	assert.Equal(t, "tonexty", fig.Data[3].Fill)

	empty := Assemble(nil, nil)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}

func TestStyleLineMean(t *testing.T) {
	fig := Assemble([]models.Trace{{Name: "A"}}, []models.Trace{{Name: "A"}})
	Style(fig, StyleParams{PlotType: PlotLine, Measure: "mean", StartYear: 1984, YMax: 37, ShowLegend: true})

	for _, trace := range fig.Data {
		require.NotNil(t, trace.ConnectGaps)
		assert.True(t, *trace.ConnectGaps)
	}
	assert.Equal(t, "linear", fig.Layout.XAxis.TickMode)
	assert.Equal(t, 1984.0, fig.Layout.XAxis.Tick0)
	assert.Equal(t, 1.0, fig.Layout.XAxis.DTick)
	assert.Nil(t, fig.Layout.XAxis.Range)
	assert.Equal(t, 5.0, fig.Layout.YAxis.DTick)
	assert.Equal(t, "tozero", fig.Layout.YAxis.RangeMode)
	assert.Nil(t, fig.Layout.YAxis.Range)
	assert.Empty(t, fig.Layout.BarMode)
	assert.True(t, *fig.Layout.ShowLegend)
	assert.Equal(t, 16, fig.Layout.HoverLabel.Font.Size)
}

func TestStyleProportion(t *testing.T) {
	fig := Assemble(nil, nil)
	Style(fig, StyleParams{PlotType: PlotLine, Measure: "proportion", StartYear: 2000, YMax: 0.7})
	assert.Equal(t, 0.1, fig.Layout.YAxis.DTick)
	assert.Equal(t, ".0%", fig.Layout.YAxis.TickFormat)
	assert.Equal(t, []float64{0, 1}, fig.Layout.YAxis.Range)
	assert.False(t, *fig.Layout.ShowLegend)
}

func TestStyleYearRange(t *testing.T) {
	fig := Assemble(nil, nil)
	Style(fig, StyleParams{PlotType: PlotLine, Measure: "mean", StartYear: 1990, Years: &YearRange{Start: 2000, End: 2010}})
	assert.Equal(t, 2000.0, fig.Layout.XAxis.Tick0)
	assert.Equal(t, []float64{1999, 2011}, fig.Layout.XAxis.Range)

	bar := Assemble(nil, nil)
	Style(bar, StyleParams{PlotType: PlotBar, Measure: "proportion", Years: &YearRange{Start: 2000, End: 2010}})
	assert.Equal(t, 2000.0, bar.Layout.XAxis.Tick0)
	assert.Nil(t, bar.Layout.XAxis.Range)
}

func TestStyleBarSuppressesLegend(t *testing.T) {
	fig := Assemble([]models.Trace{{Name: "Yes", Type: models.TraceBar}}, nil)
	Style(fig, StyleParams{PlotType: PlotBar, Measure: "proportion", ShowLegend: true})
	assert.Equal(t, "stack", fig.Layout.BarMode)
	assert.False(t, *fig.Layout.ShowLegend)
	assert.Nil(t, fig.Data[0].ConnectGaps)
}

func TestStyleBox(t *testing.T) {
	fig := Assemble(nil, nil)
	Style(fig, StyleParams{PlotType: PlotBox, Measure: "mean", YMax: 120, ShowLegend: true, YTitle: "Years in job"})
	assert.Equal(t, "group", fig.Layout.BoxMode)
	assert.Equal(t, 10.0, fig.Layout.YAxis.DTick)
	require.NotNil(t, fig.Layout.YAxis.Title)
	assert.Equal(t, "Years in job", fig.Layout.YAxis.Title.Text)
	assert.True(t, *fig.Layout.ShowLegend)
}
