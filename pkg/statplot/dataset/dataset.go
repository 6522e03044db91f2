// Package dataset provides the in-memory statistics table consumed by the trace builder.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingColumn indicates a referenced column is not part of the dataset.
var ErrMissingColumn = errors.New("missing column")

// MissingColumnError lists the columns that were required but absent.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column(s): %s", strings.Join(e.Columns, ", "))
}

// Is reports whether target is ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Well-known column names.
const (
	ColumnYear = "year"
	ColumnN    = "n"
)

// LowerConfidence returns the lower confidence column of a measure.
func LowerConfidence(measure string) string {
	return measure + "_lower_confidence"
}

// UpperConfidence returns the upper confidence column of a measure.
func UpperConfidence(measure string) string {
	return measure + "_upper_confidence"
}

// Column is a named column of textual cells. Numeric access parses on demand.
type Column struct {
	name       string
	values     []string
	categories []string
	rank       map[string]int
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// Categories returns the category order, or nil when the column is not categorical.
func (c *Column) Categories() []string {
	return c.categories
}

// Float returns the numeric value of row i, NaN when missing or not numeric.
func (c *Column) Float(i int) float64 {
	if v, ok := parseNumber(c.values[i]); ok {
		return v
	}
	return math.NaN()
}

// Rank returns the position of value in the category order.
// Values outside the order rank after every category.
func (c *Column) Rank(value string) int {
	if r, ok := c.rank[value]; ok {
		return r
	}
	return len(c.categories)
}

// Dataset is a table of equally long columns.
type Dataset struct {
	columns []*Column
	index   map[string]int
	nrow    int
}

// New builds a dataset from a header and row records.
// Short rows are padded with empty cells, long rows are rejected.
func New(header []string, rows [][]string) (*Dataset, error) {
	d := &Dataset{index: make(map[string]int, len(header)), nrow: len(rows)}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := d.index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		d.index[name] = i
		d.columns = append(d.columns, &Column{name: name, values: make([]string, len(rows))})
	}

	for r, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", r+1, len(row), len(header))
		}
		for c, cell := range row {
			d.columns[c].values[r] = cell
		}
	}

	return d, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.nrow
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// Has reports whether the column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Require returns a *MissingColumnError naming every absent column.
func (d *Dataset) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !d.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}
	return nil
}

// Column returns the named column.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &MissingColumnError{Columns: []string{name}}
	}
	return d.columns[i], nil
}

// Strings returns a copy of the raw cells of a column.
func (d *Dataset) Strings(name string) ([]string, error) {
	c, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), c.values...), nil
}

// Floats returns the numeric cells of a column, NaN where missing.
func (d *Dataset) Floats(name string) ([]float64, error) {
	c, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.nrow)
	for i := range out {
		out[i] = c.Float(i)
	}
	return out, nil
}

// Ints returns the integer cells of a column, truncating fractions.
// Missing cells are reported through ok=false at their index.
func (d *Dataset) Ints(name string) (values []int, ok []bool, err error) {
	floats, err := d.Floats(name)
	if err != nil {
		return nil, nil, err
	}
	values = make([]int, len(floats))
	ok = make([]bool, len(floats))
	for i, f := range floats {
		if math.IsNaN(f) {
			continue
		}
		values[i] = int(f)
		ok[i] = true
	}
	return values, ok, nil
}

// Min returns the smallest numeric value of a column, ignoring missing cells.
func (d *Dataset) Min(name string) (float64, bool, error) {
	return d.reduce(name, func(a, b float64) bool { return a < b })
}

// Max returns the largest numeric value of a column, ignoring missing cells.
func (d *Dataset) Max(name string) (float64, bool, error) {
	return d.reduce(name, func(a, b float64) bool { return a > b })
}

func (d *Dataset) reduce(name string, better func(a, b float64) bool) (float64, bool, error) {
	values, err := d.Floats(name)
	if err != nil {
		return 0, false, err
	}
	found := false
	var best float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !found || better(v, best) {
			best = v
			found = true
		}
	}
	return best, found, nil
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	rows := make([]int, d.nrow)
	for i := range rows {
		rows[i] = i
	}
	return d.Take(rows)
}

// Take returns a new dataset holding the given rows in the given order.
// Column categories are preserved.
func (d *Dataset) Take(rows []int) *Dataset {
	out := &Dataset{index: make(map[string]int, len(d.columns)), nrow: len(rows)}
	for i, c := range d.columns {
		nc := &Column{
			name:       c.name,
			values:     make([]string, len(rows)),
			categories: c.categories,
			rank:       c.rank,
		}
		for j, r := range rows {
			nc.values[j] = c.values[r]
		}
		out.columns = append(out.columns, nc)
		out.index[c.name] = i
	}
	return out
}

// Replace rewrites every cell of a column found in mapping. Other cells are kept.
func (d *Dataset) Replace(name string, mapping map[string]string) error {
	c, err := d.Column(name)
	if err != nil {
		return err
	}
	for i, v := range c.values {
		if nv, ok := mapping[v]; ok {
			c.values[i] = nv
		}
	}
	return nil
}

// SetCategories marks a column as ordered categorical.
func (d *Dataset) SetCategories(name string, categories []string) error {
	c, err := d.Column(name)
	if err != nil {
		return err
	}
	c.categories = append([]string(nil), categories...)
	c.rank = make(map[string]int, len(categories))
	for i, cat := range c.categories {
		if _, dup := c.rank[cat]; !dup {
			c.rank[cat] = i
		}
	}
	return nil
}

// Records returns the header followed by every row.
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, d.nrow+1)
	records = append(records, d.Names())
	for r := 0; r < d.nrow; r++ {
		row := make([]string, len(d.columns))
		for c, col := range d.columns {
			row[c] = col.values[r]
		}
		records = append(records, row)
	}
	return records
}

// isMissing reports whether a cell holds no value.
func isMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "NaN" || s == "NA"
}

// parseNumber attempts to parse a cell as a number.
// Integers are tried first so that large codes keep their exact value.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
