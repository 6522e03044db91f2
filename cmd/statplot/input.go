package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/statplot-go/pkg/statplot"
	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
	"github.com/ukaji3/statplot-go/pkg/statplot/store"
	"github.com/ukaji3/statplot-go/pkg/statplot/visibility"
)

// selection flags shared by every subcommand.
var (
	query        string
	variableName string
	variableType string
	language     string
	groups       []string
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&query, "query", "", `Dashboard query, e.g. "?variable=pglabnet&type=numerical&language=de"`)
	cmd.Flags().StringVar(&variableName, "variable", "", "Variable name")
	cmd.Flags().StringVar(&variableType, "variable-type", string(models.VariableNumerical), "Variable type: numerical, categorical")
	cmd.Flags().StringVar(&language, "lang", "en", "Label language: en, de")
	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "Grouping variable (at most two)")
}

// selection is a resolved variable choice.
type selection struct {
	Variable string
	Type     models.VariableType
	Language string
	Grouping []string
}

func resolveSelection() (selection, error) {
	sel := selection{Variable: variableName, Language: language}

	if query != "" {
		q, err := store.ParseQuery(query)
		if err != nil {
			return sel, err
		}
		sel.Variable, sel.Type, sel.Language = q.Variable, q.Type, q.Language
	} else if variableType != "" {
		t, err := store.ParseVariableType(variableType)
		if err != nil {
			return sel, err
		}
		sel.Type = t
	}

	if len(groups) > 2 {
		return sel, fmt.Errorf("at most two grouping variables allowed, got %d", len(groups))
	}
	var first, second string
	if len(groups) > 0 {
		first = groups[0]
	}
	if len(groups) > 1 {
		second = groups[1]
	}
	sel.Grouping, _ = statplot.NormalizeGrouping(first, second)
	return sel, nil
}

func openStore() (*store.Store, error) {
	s, err := cfg.Store()
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", zap.String("base", s.Base()))
	return s, nil
}

// readInputFile loads a CSV or XLSX dataset.
func readInputFile(path, sheet, cellRange string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return dataset.ReadXLSX(path, dataset.XLSXOptions{Sheet: sheet, Range: cellRange})
	default:
		return dataset.ReadCSVFile(path)
	}
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readGroupMetadata loads a group_metadata.json style file.
func readGroupMetadata(path string) (map[string]models.VariableMetadata, error) {
	var meta map[string]models.VariableMetadata
	if err := readJSONFile(path, &meta); err != nil {
		return nil, err
	}
	for name, m := range meta {
		if m.Variable == "" {
			m.Variable = name
			meta[name] = m
		}
	}
	return meta, nil
}

// readOverrides accepts either a name-to-visibility map or a previously rendered figure.
func readOverrides(path string) (visibility.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, ok := probe["data"]; ok {
		var fig models.Figure
		if err := json.Unmarshal(data, &fig); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return visibility.FromFigure(&fig), nil
	}
	return visibility.ParseOverrides(data)
}
