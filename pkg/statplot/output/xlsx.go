package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

const maxSheetName = 31

// WriteXLSX writes one sheet per trace: the year column, the plotted values
// and, when present, the tooltip text.
func WriteXLSX(w io.Writer, fig *models.Figure) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	if len(fig.Data) == 0 {
		if err := f.SetSheetName(first, "Figure"); err != nil {
			return err
		}
		_, err := f.WriteTo(w)
		return err
	}

	for i := range fig.Data {
		trace := &fig.Data[i]
		name := sheetName(i, trace.Name)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		header, columns := traceColumns(trace)
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		for r, year := range trace.X {
			row := make([]interface{}, 0, len(header))
			row = append(row, year)
			for _, col := range columns {
				row = append(row, cellFloat(col, r))
			}
			if len(trace.Text) > 0 {
				row = append(row, cellText(trace.Text, r))
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func traceColumns(t *models.Trace) ([]interface{}, []models.Values) {
	header := []interface{}{"year"}
	var columns []models.Values
	if t.Type == models.TraceBox {
		header = append(header, "q1", "median", "q3", "lowerfence", "upperfence")
		columns = []models.Values{t.Q1, t.Median, t.Q3, t.LowerFence, t.UpperFence}
	} else {
		header = append(header, "y")
		columns = []models.Values{t.Y}
	}
	if len(t.Text) > 0 {
		header = append(header, "text")
	}
	return header, columns
}

// cellFloat returns nil for missing values so the cell stays empty.
func cellFloat(v models.Values, i int) interface{} {
	if i >= len(v) || math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
		return nil
	}
	return v[i]
}

func cellText(text []string, i int) interface{} {
	if i >= len(text) {
		return nil
	}
	return strings.ReplaceAll(text[i], "<br>", "\n")
}

// sheetName builds a unique sheet name within Excel's 31 character limit.
func sheetName(index int, name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']', '\'':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "trace"
	}
	full := fmt.Sprintf("%02d %s", index+1, name)
	if runes := []rune(full); len(runes) > maxSheetName {
		full = string(runes[:maxSheetName])
	}
	return full
}
