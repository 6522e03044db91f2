// Package output serializes and renders figures.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// ToJSON serializes a figure.
func ToJSON(fig *models.Figure, pretty bool) ([]byte, error) {
	return marshal(fig, pretty)
}

// TraceToJSON serializes a single trace.
func TraceToJSON(trace *models.Trace, pretty bool) ([]byte, error) {
	return marshal(trace, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteTraceFiles writes one JSON file per trace into dir and returns the file names.
// Files are numbered in drawing order since band traces share the name of their group.
func WriteTraceFiles(dir string, fig *models.Figure, pretty bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fig.Data))
	for i := range fig.Data {
		data, err := TraceToJSON(&fig.Data[i], pretty)
		if err != nil {
			return nil, err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%02d_%s.json", i+1, FileSafe(fig.Data[i].Name)))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return nil, err
		}
		names = append(names, filename)
	}

	return names, nil
}

// FileSafe replaces every character that is not a letter or digit with an underscore.
// Blank names become "trace".
func FileSafe(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "trace"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// OptionsToJSON serializes a selection list.
func OptionsToJSON(options []models.Option, pretty bool) ([]byte, error) {
	return marshal(options, pretty)
}
