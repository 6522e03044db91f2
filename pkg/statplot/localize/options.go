package localize

import (
	"sort"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// GroupingOptions lists the selectable grouping variables. The first entry
// is the localized "no grouping" choice with a nil value. Variables are
// ordered by name; exclude removes one variable, typically the one already
// chosen in another selector.
func GroupingOptions(groups map[string]models.VariableMetadata, t *Translations, lang Language, exclude string) []models.Option {
	options := []models.Option{{Label: t.Get(lang, KeyNoGrouping)}}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		meta := groups[name]
		variable := meta.Variable
		if variable == "" {
			variable = name
		}
		if variable == exclude {
			continue
		}
		label := meta.Label
		if lang == German && meta.LabelDE != "" {
			label = meta.LabelDE
		}
		if label == "" {
			label = variable
		}
		options = append(options, models.Option{Label: label, Value: &variable})
	}

	return options
}
