package dataset

import (
	"math"
	"sort"
	"strings"
)

// SortKey selects a column to sort by.
type SortKey struct {
	Column string
	// Numeric compares parsed numbers, missing values last.
	Numeric bool
}

// SortBy stably reorders the rows by the given keys, ascending.
// Non-numeric keys honour the category order of categorical columns.
func (d *Dataset) SortBy(keys ...SortKey) error {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Column
	}
	if err := d.Require(names...); err != nil {
		return err
	}

	columns := make([]*Column, len(keys))
	for i, k := range keys {
		columns[i], _ = d.Column(k.Column)
	}

	perm := make([]int, d.nrow)
	for i := range perm {
		perm[i] = i
	}

	sort.SliceStable(perm, func(i, j int) bool {
		a, b := perm[i], perm[j]
		for k, key := range keys {
			c := columns[k]
			var cmp int
			if key.Numeric {
				cmp = compareFloats(c.Float(a), c.Float(b))
			} else {
				cmp = compareCells(c, c.values[a], c.values[b])
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	for _, c := range d.columns {
		values := make([]string, d.nrow)
		for i, r := range perm {
			values[i] = c.values[r]
		}
		c.values = values
	}

	return nil
}

// compareCells orders two cells of a column.
func compareCells(c *Column, a, b string) int {
	if c.categories != nil {
		ra, rb := c.Rank(a), c.Rank(b)
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}
	fa, okA := parseNumber(a)
	fb, okB := parseNumber(b)
	if okA && okB {
		return compareFloats(fa, fb)
	}
	return strings.Compare(a, b)
}

// compareFloats orders numbers ascending with NaN last.
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
