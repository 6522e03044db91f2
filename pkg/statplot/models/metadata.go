package models

// VariableMetadata describes the value labels of one categorical variable.
// Values, ValueLabels and ValueLabelsDE are parallel slices.
type VariableMetadata struct {
	// Variable is the column name.
	Variable string `json:"variable"`
	// Label is the English display name of the variable.
	Label string `json:"label,omitempty"`
	// LabelDE is the German display name of the variable.
	LabelDE string `json:"label_de,omitempty"`
	// Values are the raw codes. Negative codes are missing-value sentinels.
	Values []int `json:"values"`
	// ValueLabels are the English labels.
	ValueLabels []string `json:"value_labels"`
	// ValueLabelsDE are the German labels.
	ValueLabelsDE []string `json:"value_labels_de"`
	// Groups lists the grouping variables available for this variable.
	Groups []string `json:"groups,omitempty"`
}

// Option is one entry of a selection list.
type Option struct {
	Label string `json:"label"`
	// Value is nil for the "no selection" entry.
	Value *string `json:"value"`
}

// VariableType distinguishes numerical from categorical variables.
type VariableType string

const (
	// VariableNumerical variables carry mean/median statistics per year.
	VariableNumerical VariableType = "numerical"
	// VariableCategorical variables carry the proportion of each value per year.
	VariableCategorical VariableType = "categorical"
)
