package traces

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/statplot-go/pkg/statplot/localize"
)

// MeasureProportion is the only measure rendered as a percentage.
const MeasureProportion = "proportion"

const missingValue = "n/a"

// FormatValue renders a measure value: proportions as "12.34%", everything else as "12.34".
func FormatValue(v float64, measure string) string {
	if math.IsNaN(v) {
		return missingValue
	}
	if measure == MeasureProportion {
		return fmt.Sprintf("%.2f%%", v*100)
	}
	return fmt.Sprintf("%.2f", v)
}

// formatCount renders a sample size.
func formatCount(n float64) string {
	if math.IsNaN(n) {
		return missingValue
	}
	if n == math.Trunc(n) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatTooltips builds one hover text per point with sample size and confidence bounds.
func FormatTooltips(n, lower, upper []float64, measure string, t *localize.Translations, lang localize.Language) []string {
	lowerLabel := t.Get(lang, localize.KeyLowerConfidence)
	upperLabel := t.Get(lang, localize.KeyUpperConfidence)

	texts := make([]string, len(n))
	for i := range n {
		texts[i] = fmt.Sprintf("N: %s<br>%s: %s<br>%s: %s",
			formatCount(n[i]),
			lowerLabel, FormatValue(lower[i], measure),
			upperLabel, FormatValue(upper[i], measure),
		)
	}
	return texts
}

// hoverTemplate builds the plotly hover template for a measure.
func hoverTemplate(measure string, t *localize.Translations, lang localize.Language) string {
	valueFormat := "%{y:.2f}"
	if measure == MeasureProportion {
		valueFormat = "%{y:.2%}"
	}

	var b strings.Builder
	b.WriteString(t.Get(lang, localize.KeyYear))
	b.WriteString(": %{x}<br>")
	b.WriteString(t.Get(lang, measure))
	b.WriteString(": ")
	b.WriteString(valueFormat)
	b.WriteString("<br>%{text}")
	return b.String()
}
