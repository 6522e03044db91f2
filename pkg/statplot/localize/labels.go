package localize

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// Localize returns a copy of data where every column described in metadata
// carries labels in the requested language and an ordered category list
// following ascending value codes. Negative codes are left out of both.
//
// A cell is recoded when it matches a code, an English label or a German label;
// other cells pass through unchanged. The rows are then sorted by year and by
// each described column in metadata order. The input is not modified.
func Localize(data *dataset.Dataset, metadata []models.VariableMetadata, lang Language) (*dataset.Dataset, error) {
	for _, meta := range metadata {
		if !data.Has(meta.Variable) {
			return nil, fmt.Errorf("metadata for %q: %w", meta.Variable, dataset.ErrMissingColumn)
		}
		if len(meta.ValueLabels) != len(meta.Values) || len(meta.ValueLabelsDE) != len(meta.Values) {
			return nil, fmt.Errorf("metadata for %q: values and labels differ in length", meta.Variable)
		}
	}

	out := data.Clone()
	keys := []dataset.SortKey{{Column: dataset.ColumnYear, Numeric: true}}
	if !out.Has(dataset.ColumnYear) {
		keys = nil
	}

	for _, meta := range metadata {
		mapping, order := labelMapping(meta, lang)
		if err := out.Replace(meta.Variable, mapping); err != nil {
			return nil, err
		}
		if err := out.SetCategories(meta.Variable, order); err != nil {
			return nil, err
		}
		keys = append(keys, dataset.SortKey{Column: meta.Variable})
	}

	if err := out.SortBy(keys...); err != nil {
		return nil, err
	}

	return out, nil
}

// labelMapping builds the recoding table and the target label order for one variable.
func labelMapping(meta models.VariableMetadata, lang Language) (map[string]string, []string) {
	idx := make([]int, 0, len(meta.Values))
	for i, v := range meta.Values {
		if v < 0 {
			continue
		}
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return meta.Values[idx[a]] < meta.Values[idx[b]]
	})

	mapping := make(map[string]string, len(idx)*3)
	order := make([]string, 0, len(idx))
	seen := make(map[string]bool, len(idx))
	targets := make([]string, len(meta.Values))
	for _, i := range idx {
		target := meta.ValueLabelsDE[i]
		if lang == English {
			target = meta.ValueLabels[i]
		}
		targets[i] = target
		mapping[meta.ValueLabels[i]] = target
		mapping[meta.ValueLabelsDE[i]] = target
		if !seen[target] {
			seen[target] = true
			order = append(order, target)
		}
	}
	// Raw codes go last so a label spelled like another value's code never shadows it.
	for _, i := range idx {
		mapping[strconv.Itoa(meta.Values[i])] = targets[i]
	}

	return mapping, order
}
