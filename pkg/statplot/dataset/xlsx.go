package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXOptions selects the table to read from a workbook.
type XLSXOptions struct {
	// Sheet is the sheet name. Empty selects the first sheet.
	Sheet string
	// Range restricts reading to a cell range such as "A1:F20" or "'Data'!$A$1:$F$20".
	// Empty reads the bounding box of all non-empty cells.
	Range string
}

// cellArea holds 0-based inclusive bounds within the row grid.
type cellArea struct {
	minRow, maxRow, minCol, maxCol int
}

// ReadXLSX reads a dataset from an Excel workbook. The first row of the
// selected area is the header.
func ReadXLSX(path string, opts XLSXOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readWorkbook(f, opts)
}

// ReadXLSXFrom reads a dataset from an Excel workbook stream.
func ReadXLSXFrom(r io.Reader, opts XLSXOptions) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readWorkbook(f, opts)
}

func readWorkbook(f *excelize.File, opts XLSXOptions) (*Dataset, error) {
	sheetName := opts.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var area cellArea
	if opts.Range != "" {
		area, err = parseRangeToArea(opts.Range)
		if err != nil {
			return nil, err
		}
	} else {
		var ok bool
		area, ok = findDataBounds(rows)
		if !ok {
			return nil, fmt.Errorf("sheet %q has no data", sheetName)
		}
	}

	grid := cropRows(rows, area)
	if len(grid) == 0 {
		return nil, fmt.Errorf("sheet %q: range has no header row", sheetName)
	}

	// Drop rows without any value below the header
	var body [][]string
	for _, row := range grid[1:] {
		hasData := false
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				hasData = true
				break
			}
		}
		if hasData {
			body = append(body, row)
		}
	}

	return New(grid[0], body)
}

// WriteXLSX writes the dataset into a single-sheet workbook.
func WriteXLSX(w io.Writer, d *Dataset, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return err
		}
	}

	for i, record := range d.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(record))
		for j, value := range record {
			row[j] = cellValue(value, i == 0)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// cellValue stores numeric body cells as numbers so spreadsheets can compute with them.
func cellValue(s string, header bool) interface{} {
	if header {
		return s
	}
	if v, ok := parseNumber(s); ok {
		return v
	}
	return s
}

// cropRows cuts the area out of a ragged row grid, padding short rows.
func cropRows(rows [][]string, area cellArea) [][]string {
	var out [][]string
	width := area.maxCol - area.minCol + 1
	for r := area.minRow; r <= area.maxRow && r < len(rows); r++ {
		row := make([]string, width)
		for c := area.minCol; c <= area.maxCol; c++ {
			if c < len(rows[r]) {
				row[c-area.minCol] = strings.TrimSpace(rows[r][c])
			}
		}
		out = append(out, row)
	}
	return out
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (cellArea, bool) {
	area := cellArea{minRow: -1, maxRow: -1, minCol: -1, maxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if area.minRow < 0 || rowIdx < area.minRow {
				area.minRow = rowIdx
			}
			if area.maxRow < 0 || rowIdx > area.maxRow {
				area.maxRow = rowIdx
			}
			if area.minCol < 0 || colIdx < area.minCol {
				area.minCol = colIdx
			}
			if area.maxCol < 0 || colIdx > area.maxCol {
				area.maxCol = colIdx
			}
		}
	}

	return area, area.minRow >= 0
}

// parseRangeToArea parses a range like $A$1:$D$10, optionally prefixed by a sheet name.
func parseRangeToArea(ref string) (cellArea, error) {
	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return cellArea{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return cellArea{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return cellArea{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if endRow < startRow || endCol < startCol {
		return cellArea{}, fmt.Errorf("invalid range %q: end before start", ref)
	}

	return cellArea{
		minRow: startRow - 1,
		maxRow: endRow - 1,
		minCol: startCol - 1,
		maxCol: endCol - 1,
	}, nil
}
