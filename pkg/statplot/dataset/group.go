package dataset

import (
	"sort"
	"strings"
)

// ImplicitGroupKey names the single group of an ungrouped dataset.
// A blank rather than empty name keeps legend grouping working in plotly.
const ImplicitGroupKey = " "

// Group is the subset of rows sharing one key tuple.
type Group struct {
	// Key holds one value per grouping column, in grouping order.
	Key []string
	// Data holds the rows of the group in dataset order.
	Data *Dataset
}

// Name returns the key joined with spaces, or ImplicitGroupKey for an ungrouped dataset.
func (g Group) Name() string {
	if len(g.Key) == 0 {
		return ImplicitGroupKey
	}
	return strings.Join(g.Key, " ")
}

// Last returns the value of the innermost grouping column.
func (g Group) Last() string {
	if len(g.Key) == 0 {
		return ImplicitGroupKey
	}
	return g.Key[len(g.Key)-1]
}

// Outer returns the key without its innermost value, joined with spaces.
func (g Group) Outer() string {
	if len(g.Key) <= 1 {
		return ""
	}
	return strings.Join(g.Key[:len(g.Key)-1], " ")
}

// GroupBy splits the dataset by the given columns.
//
// Groups are ordered ascending by key tuple, comparing column by column:
// categorical columns by category order, numeric values numerically and
// everything else lexicographically. Rows with a missing key value are
// left out. Without columns the whole dataset forms one group, unless it is empty.
func (d *Dataset) GroupBy(names []string) ([]Group, error) {
	if err := d.Require(names...); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		if d.nrow == 0 {
			return nil, nil
		}
		return []Group{{Data: d}}, nil
	}

	columns := make([]*Column, len(names))
	for i, name := range names {
		columns[i], _ = d.Column(name)
	}

	buckets := make(map[string][]int)
	keys := make(map[string][]string)
	var order []string

rows:
	for r := 0; r < d.nrow; r++ {
		key := make([]string, len(columns))
		for i, c := range columns {
			if isMissing(c.values[r]) {
				continue rows
			}
			key[i] = c.values[r]
		}
		id := strings.Join(key, "\x00")
		if _, ok := buckets[id]; !ok {
			order = append(order, id)
			keys[id] = key
		}
		buckets[id] = append(buckets[id], r)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		for k, c := range columns {
			if cmp := compareCells(c, a[k], b[k]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	groups := make([]Group, 0, len(order))
	for _, id := range order {
		groups = append(groups, Group{Key: keys[id], Data: d.Take(buckets[id])})
	}

	return groups, nil
}
