package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// csvLoadOptions keep every cell as text; numeric parsing happens per column on demand.
var csvLoadOptions = []dataframe.LoadOption{
	dataframe.HasHeader(true),
	dataframe.DetectTypes(false),
	dataframe.DefaultType(series.String),
}

// ReadCSV reads a dataset from CSV with a header row. A header without data
// rows yields an empty dataset.
func ReadCSV(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw), csvLoadOptions...)
	if df.Err != nil {
		if header, ok := headerOnly(raw); ok {
			return New(header, nil)
		}
		return nil, fmt.Errorf("failed to read csv: %w", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read csv: no header")
	}

	return New(records[0], records[1:])
}

// headerOnly reports the header of a CSV that has no data rows.
func headerOnly(raw []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// ReadCSVFile reads a dataset from a CSV file.
func ReadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteCSV writes the dataset as CSV with a header row.
func WriteCSV(w io.Writer, d *Dataset) error {
	if d.Len() == 0 {
		cw := csv.NewWriter(w)
		if err := cw.Write(d.Names()); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		cw.Flush()
		return cw.Error()
	}

	df := dataframe.LoadRecords(d.Records(), csvLoadOptions...)
	if df.Err != nil {
		return fmt.Errorf("failed to prepare csv: %w", df.Err)
	}
	return df.WriteCSV(w)
}
