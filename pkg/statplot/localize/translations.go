package localize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Translation keys used by the trace builder and option lists.
const (
	KeyLowerConfidence = "lower_confidence"
	KeyUpperConfidence = "upper_confidence"
	KeyYear            = "year"
	KeyMean            = "mean"
	KeyMedian          = "median"
	KeyProportion      = "proportion"
	KeyNoGrouping      = "no_grouping"
)

// Translations holds UI strings per language. It is read-only after loading.
type Translations struct {
	labels map[Language]map[string]string
}

var defaultLabels = map[Language]map[string]string{
	English: {
		KeyLowerConfidence: "Lower confidence",
		KeyUpperConfidence: "Upper confidence",
		KeyYear:            "Year",
		KeyMean:            "Mean",
		KeyMedian:          "Median",
		KeyProportion:      "Proportion",
		KeyNoGrouping:      "No Grouping",
	},
	German: {
		KeyLowerConfidence: "Untere Konfidenz Grenze",
		KeyUpperConfidence: "Obere Konfidenz Grenze",
		KeyYear:            "Jahr",
		KeyMean:            "Mittelwert",
		KeyMedian:          "Median",
		KeyProportion:      "Anteil",
		KeyNoGrouping:      "Keine Gruppierung",
	},
}

// DefaultTranslations returns the built-in English and German strings.
func DefaultTranslations() *Translations {
	t := &Translations{labels: make(map[Language]map[string]string, len(defaultLabels))}
	for lang, labels := range defaultLabels {
		t.labels[lang] = make(map[string]string, len(labels))
		for k, v := range labels {
			t.labels[lang][k] = v
		}
	}
	return t
}

// ParseTranslations reads a YAML document keyed by language code, then label key.
// Entries override the built-in strings; unknown languages are ignored.
func ParseTranslations(data []byte) (*Translations, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid translations: %w", err)
	}

	t := DefaultTranslations()
	for code, labels := range doc {
		lang := Language(code)
		if lang != English && lang != German {
			continue
		}
		for k, v := range labels {
			t.labels[lang][k] = v
		}
	}
	return t, nil
}

// LoadTranslations reads translations from a YAML file.
func LoadTranslations(path string) (*Translations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseTranslations(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Get returns the string for key, falling back to English and then to the key itself.
func (t *Translations) Get(lang Language, key string) string {
	if v, ok := t.labels[lang][key]; ok {
		return v
	}
	if v, ok := t.labels[English][key]; ok {
		return v
	}
	return key
}
