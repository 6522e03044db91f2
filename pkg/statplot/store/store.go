// Package store reads datasets and metadata from the statistics directory tree:
//
//	{base}/group_metadata.json
//	{base}/{type}/{variable}/meta.json
//	{base}/{type}/{variable}/{variable}_year[_{group}...].csv
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// File names inside the store.
const (
	GroupMetadataFile    = "group_metadata.json"
	VariableMetadataFile = "meta.json"
)

// ErrBadPath indicates a variable directory outside the store.
var ErrBadPath = errors.New("bad variable base path")

// ErrUnknownVariableType indicates a type other than numerical or categorical.
var ErrUnknownVariableType = errors.New("unknown variable type")

// ErrUnknownGroup indicates a grouping column without metadata.
var ErrUnknownGroup = errors.New("unknown grouping variable")

// Store is a read-only view of a statistics directory.
type Store struct {
	base string
}

// New opens the store rooted at base, which must be an existing directory.
func New(base string) (*Store, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("statistics base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("statistics base path %q is not a directory", abs)
	}
	return &Store{base: filepath.Clean(abs)}, nil
}

// Base returns the absolute store root.
func (s *Store) Base() string {
	return s.base
}

// ParseVariableType validates a variable type name.
func ParseVariableType(s string) (models.VariableType, error) {
	switch t := models.VariableType(strings.TrimSpace(s)); t {
	case models.VariableNumerical, models.VariableCategorical:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariableType, s)
}

// VariablePath returns the directory of a variable. The directory must sit
// exactly two levels below the store root, so names like "../x" or "a/b" fail.
func (s *Store) VariablePath(t models.VariableType, variable string) (string, error) {
	if _, err := ParseVariableType(string(t)); err != nil {
		return "", err
	}
	path := filepath.Join(s.base, string(t), variable)
	if variable == "" || filepath.Dir(filepath.Dir(path)) != s.base {
		return "", fmt.Errorf("%w: %q", ErrBadPath, variable)
	}
	return path, nil
}

// DatasetFileName returns the CSV name of a variable under a grouping.
func DatasetFileName(variable string, grouping []string) string {
	parts := append([]string{variable, dataset.ColumnYear}, grouping...)
	return strings.Join(parts, "_") + ".csv"
}

// DatasetPath returns the CSV path of a variable under a grouping.
func (s *Store) DatasetPath(t models.VariableType, variable string, grouping []string) (string, error) {
	dir, err := s.VariablePath(t, variable)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DatasetFileName(variable, grouping)), nil
}

// LoadDataset reads the CSV of a variable under a grouping.
func (s *Store) LoadDataset(t models.VariableType, variable string, grouping []string) (*dataset.Dataset, error) {
	path, err := s.DatasetPath(t, variable, grouping)
	if err != nil {
		return nil, err
	}
	return dataset.ReadCSVFile(path)
}

// VariableMetadata reads meta.json of a variable.
func (s *Store) VariableMetadata(t models.VariableType, variable string) (*models.VariableMetadata, error) {
	dir, err := s.VariablePath(t, variable)
	if err != nil {
		return nil, err
	}
	var meta models.VariableMetadata
	if err := readJSON(filepath.Join(dir, VariableMetadataFile), &meta); err != nil {
		return nil, err
	}
	if meta.Variable == "" {
		meta.Variable = variable
	}
	return &meta, nil
}

// GroupMetadata reads the metadata of every grouping variable, keyed by name.
func (s *Store) GroupMetadata() (map[string]models.VariableMetadata, error) {
	var groups map[string]models.VariableMetadata
	if err := readJSON(filepath.Join(s.base, GroupMetadataFile), &groups); err != nil {
		return nil, err
	}
	for name, meta := range groups {
		if meta.Variable == "" {
			meta.Variable = name
			groups[name] = meta
		}
	}
	return groups, nil
}

// GroupMetadataFor narrows the grouping variables to those a variable lists in
// its "groups" field. Without such a list every grouping variable applies.
func (s *Store) GroupMetadataFor(t models.VariableType, variable string) (map[string]models.VariableMetadata, error) {
	all, err := s.GroupMetadata()
	if err != nil {
		return nil, err
	}
	meta, err := s.VariableMetadata(t, variable)
	if err != nil {
		return nil, err
	}
	if len(meta.Groups) == 0 {
		return all, nil
	}
	filtered := make(map[string]models.VariableMetadata, len(meta.Groups))
	for _, name := range meta.Groups {
		if m, ok := all[name]; ok {
			filtered[name] = m
		}
	}
	return filtered, nil
}

// Lookup returns the metadata of each grouping column in order.
func Lookup(groups map[string]models.VariableMetadata, grouping []string) ([]models.VariableMetadata, error) {
	result := make([]models.VariableMetadata, 0, len(grouping))
	for _, name := range grouping {
		meta, ok := groups[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
		}
		result = append(result, meta)
	}
	return result, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
