package localize

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

var chronillMeta = models.VariableMetadata{
	Variable:      "chronill",
	Values:        []int{-2, 2, 1},
	ValueLabels:   []string{"Does not apply", "No", "Yes"},
	ValueLabelsDE: []string{"Trifft nicht zu", "Nein", "Ja"},
}

var ageMeta = models.VariableMetadata{
	Variable:      "age_gr",
	Values:        []int{1, 2, 3, 4},
	ValueLabels:   []string{"18-29 y.", "30-45 y.", "46-65 y.", "66 and older"},
	ValueLabelsDE: []string{"18-29 J.", "30-45 J.", "46-65 J.", "66 und älter"},
}

func twoColumnDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New(
		[]string{"year", "chronill", "age_gr", "proportion"},
		[][]string{
			{"2001", "No", "66 and older", "0.4"},
			{"2001", "Yes", "18-29 y.", "0.1"},
			{"2000", "No", "30-45 y.", "0.5"},
			{"2000", "Yes", "46-65 y.", "0.2"},
			{"2000", "Does not apply", "18-29 y.", "0.0"},
			{"2000", "Unknown", "18-29 y.", "0.0"},
		},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

func valueSet(t *testing.T, d *dataset.Dataset, column string) map[string]bool {
	t.Helper()
	values, err := d.Strings(column)
	if err != nil {
		t.Fatalf("Strings(%q) failed: %v", column, err)
	}
	set := make(map[string]bool)
	for _, v := range values {
		set[v] = true
	}
	return set
}

func TestLocalizeOneColumnGerman(t *testing.T) {
	d := twoColumnDataset(t)
	result, err := Localize(d, []models.VariableMetadata{chronillMeta}, German)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}
	got := valueSet(t, result, "chronill")
	expected := map[string]bool{"Ja": true, "Nein": true, "Does not apply": true, "Unknown": true}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if result.Len() != d.Len() {
		t.Errorf("Expected %d rows, got %d", d.Len(), result.Len())
	}

	c, _ := result.Column("chronill")
	if !reflect.DeepEqual(c.Categories(), []string{"Ja", "Nein"}) {
		t.Errorf("Expected category order [Ja Nein], got %v", c.Categories())
	}

	// Input untouched
	original := valueSet(t, d, "chronill")
	if !original["Yes"] || original["Ja"] {
		t.Error("Expected input dataset to stay unchanged")
	}
}

func TestLocalizeSeveralColumns(t *testing.T) {
	d := twoColumnDataset(t)
	result, err := Localize(d, []models.VariableMetadata{chronillMeta, ageMeta}, German)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}
	got := valueSet(t, result, "age_gr")
	expected := map[string]bool{"18-29 J.": true, "30-45 J.": true, "46-65 J.": true, "66 und älter": true}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLocalizeEnglishKeepsLabels(t *testing.T) {
	d := twoColumnDataset(t)
	result, err := Localize(d, []models.VariableMetadata{chronillMeta, ageMeta}, English)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}
	got := valueSet(t, result, "age_gr")
	expected := map[string]bool{"18-29 y.": true, "30-45 y.": true, "46-65 y.": true, "66 and older": true}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLocalizeSortsByYearThenCategories(t *testing.T) {
	d := twoColumnDataset(t)
	result, err := Localize(d, []models.VariableMetadata{chronillMeta, ageMeta}, English)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}
	years, _ := result.Strings("year")
	chronill, _ := result.Strings("chronill")
	age, _ := result.Strings("age_gr")

	expectedYears := []string{"2000", "2000", "2000", "2000", "2001", "2001"}
	expectedChronill := []string{"Yes", "No", "Does not apply", "Unknown", "Yes", "No"}
	expectedAge := []string{"46-65 y.", "30-45 y.", "18-29 y.", "18-29 y.", "18-29 y.", "66 and older"}
	if !reflect.DeepEqual(years, expectedYears) {
		t.Errorf("years: expected %v, got %v", expectedYears, years)
	}
	if !reflect.DeepEqual(chronill, expectedChronill) {
		t.Errorf("chronill: expected %v, got %v", expectedChronill, chronill)
	}
	if !reflect.DeepEqual(age, expectedAge) {
		t.Errorf("age_gr: expected %v, got %v", expectedAge, age)
	}
}

func TestLocalizeIdempotent(t *testing.T) {
	d := twoColumnDataset(t)
	meta := []models.VariableMetadata{chronillMeta, ageMeta}
	once, err := Localize(d, meta, German)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Localize(once, meta, German)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once.Records(), twice.Records()) {
		t.Errorf("Expected idempotent localization:\n%v\n%v", once.Records(), twice.Records())
	}
}

func TestLocalizeRoundTrip(t *testing.T) {
	d := twoColumnDataset(t)
	meta := []models.VariableMetadata{chronillMeta, ageMeta}
	english, err := Localize(d, meta, English)
	if err != nil {
		t.Fatal(err)
	}
	german, err := Localize(english, meta, German)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Localize(german, meta, English)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(english.Records(), back.Records()) {
		t.Errorf("Expected en -> de -> en round trip:\n%v\n%v", english.Records(), back.Records())
	}
}

func TestLocalizeCodes(t *testing.T) {
	d, _ := dataset.New([]string{"year", "chronill"}, [][]string{{"2000", "2"}, {"2000", "1"}, {"2000", "-2"}})
	result, err := Localize(d, []models.VariableMetadata{chronillMeta}, English)
	if err != nil {
		t.Fatal(err)
	}
	values, _ := result.Strings("chronill")
	expected := []string{"Yes", "No", "-2"}
	if !reflect.DeepEqual(values, expected) {
		t.Errorf("Expected %v, got %v", expected, values)
	}
}

func TestLocalizeCodesWinOverLookalikeLabels(t *testing.T) {
	rank := models.VariableMetadata{
		Variable:      "rank",
		Values:        []int{1, 2},
		ValueLabels:   []string{"2", "1"},
		ValueLabelsDE: []string{"2", "1"},
	}
	d, _ := dataset.New([]string{"year", "rank"}, [][]string{{"2000", "1"}, {"2000", "2"}})
	result, err := Localize(d, []models.VariableMetadata{rank}, English)
	if err != nil {
		t.Fatal(err)
	}
	values, _ := result.Strings("rank")
	expected := []string{"2", "1"}
	if !reflect.DeepEqual(values, expected) {
		t.Errorf("Expected %v, got %v", expected, values)
	}
	if got := valueSet(t, result, "rank"); len(got) != 2 {
		t.Errorf("Expected 2 distinct categories, got %v", got)
	}
}

func TestLocalizeMissingColumn(t *testing.T) {
	d, _ := dataset.New([]string{"year"}, nil)
	_, err := Localize(d, []models.VariableMetadata{chronillMeta}, German)
	if !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestLocalizeRejectsRaggedMetadata(t *testing.T) {
	d := twoColumnDataset(t)
	bad := chronillMeta
	bad.ValueLabelsDE = []string{"Ja"}
	if _, err := Localize(d, []models.VariableMetadata{bad}, German); err == nil {
		t.Error("Expected error for ragged metadata")
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"en", English},
		{"en-GB", English},
		{"EN", English},
		{"de", German},
		{"fr", German},
		{"", German},
		{"???", German},
	}

	for _, tt := range tests {
		if got := ResolveLanguage(tt.input); got != tt.expected {
			t.Errorf("ResolveLanguage(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestTranslations(t *testing.T) {
	tr := DefaultTranslations()
	if got := tr.Get(German, KeyLowerConfidence); got != "Untere Konfidenz Grenze" {
		t.Errorf("Unexpected German label %q", got)
	}
	if got := tr.Get(German, "unknown_key"); got != "unknown_key" {
		t.Errorf("Expected key fallback, got %q", got)
	}

	path := filepath.Join(t.TempDir(), "ui.yaml")
	yamlDoc := "en:\n  lower_confidence: Lower bound\nfr:\n  year: Année\n"
	if err := os.WriteFile(path, []byte(yamlDoc), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadTranslations(path)
	if err != nil {
		t.Fatalf("LoadTranslations failed: %v", err)
	}
	if got := loaded.Get(English, KeyLowerConfidence); got != "Lower bound" {
		t.Errorf("Expected override, got %q", got)
	}
	if got := loaded.Get(English, KeyUpperConfidence); got != "Upper confidence" {
		t.Errorf("Expected default to survive, got %q", got)
	}
	if DefaultTranslations().Get(English, KeyLowerConfidence) != "Lower confidence" {
		t.Error("Expected defaults to stay untouched by overrides")
	}
}

func TestParseTranslationsInvalid(t *testing.T) {
	if _, err := ParseTranslations([]byte("en: [1, 2")); err == nil {
		t.Error("Expected error for invalid yaml")
	}
}

var groupMetadata = map[string]models.VariableMetadata{
	"some-grouping-variable": {
		Variable: "some-grouping-variable",
		Label:    "SOMETHING",
		LabelDE:  "ETWAS",
	},
	"some-other-grouping-variable": {
		Variable: "some-other-grouping-variable",
		Label:    "SOMETHING ELSE",
		LabelDE:  "ETWAS ANDERES",
	},
}

func optionLabels(options []models.Option) []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return labels
}

func TestGroupingOptionsDefault(t *testing.T) {
	options := GroupingOptions(groupMetadata, DefaultTranslations(), English, "")
	expected := []string{"No Grouping", "SOMETHING", "SOMETHING ELSE"}
	if !reflect.DeepEqual(optionLabels(options), expected) {
		t.Errorf("Expected %v, got %v", expected, optionLabels(options))
	}
	if options[0].Value != nil {
		t.Error("Expected nil value for no-grouping option")
	}
	if *options[1].Value != "some-grouping-variable" {
		t.Errorf("Unexpected value %q", *options[1].Value)
	}
}

func TestGroupingOptionsGerman(t *testing.T) {
	options := GroupingOptions(groupMetadata, DefaultTranslations(), German, "")
	expected := []string{"Keine Gruppierung", "ETWAS", "ETWAS ANDERES"}
	if !reflect.DeepEqual(optionLabels(options), expected) {
		t.Errorf("Expected %v, got %v", expected, optionLabels(options))
	}
}

func TestGroupingOptionsExclude(t *testing.T) {
	options := GroupingOptions(groupMetadata, DefaultTranslations(), English, "some-grouping-variable")
	expected := []string{"No Grouping", "SOMETHING ELSE"}
	if !reflect.DeepEqual(optionLabels(options), expected) {
		t.Errorf("Expected %v, got %v", expected, optionLabels(options))
	}
}
