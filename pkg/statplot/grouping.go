package statplot

import (
	"sort"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// NormalizeGrouping turns two selections into a sorted grouping list.
// Equal selections collapse to one; the returned second selection is empty then.
func NormalizeGrouping(first, second string) (grouping []string, secondOut string) {
	if first == second {
		second = ""
	}
	grouping = make([]string, 0, 2)
	if first != "" {
		grouping = append(grouping, first)
	}
	if second != "" {
		grouping = append(grouping, second)
	}
	sort.Strings(grouping)
	return grouping, second
}

// SecondGroupOptions returns the options offered for the second selection:
// every option except the one chosen first. The no-grouping entry always stays.
func SecondGroupOptions(options []models.Option, first string) []models.Option {
	result := make([]models.Option, 0, len(options))
	for _, opt := range options {
		if opt.Value != nil && *opt.Value == first {
			continue
		}
		result = append(result, opt)
	}
	return result
}
