package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/store"
)

var (
	downloadDir    string
	downloadFormat string
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Export the dataset behind a chart as CSV",
		Long: `download copies the dataset of a variable and grouping from the statistics
store. The file is named {variable}_year_{groups}.csv.`,
		Args: cobra.NoArgs,
		RunE: runDownload,
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "Target directory (default: stdout)")
	cmd.Flags().StringVar(&downloadFormat, "format", "csv", "Output format: csv, xlsx")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	sel, err := resolveSelection()
	if err != nil {
		return err
	}
	if sel.Variable == "" {
		return fmt.Errorf("no variable given")
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	ds, err := s.LoadDataset(sel.Type, sel.Variable, sel.Grouping)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	name := store.DatasetFileName(sel.Variable, sel.Grouping)
	var buf bytes.Buffer
	switch downloadFormat {
	case "csv":
		err = dataset.WriteCSV(&buf, ds)
	case "xlsx":
		name = name[:len(name)-len(filepath.Ext(name))] + ".xlsx"
		err = dataset.WriteXLSX(&buf, ds, sel.Variable)
	default:
		return fmt.Errorf("invalid format: %s (must be csv or xlsx)", downloadFormat)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if downloadDir == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return err
	}
	target := filepath.Join(downloadDir, name)
	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("downloaded", zap.String("file", target), zap.Int("rows", ds.Len()))
	return nil
}
