package models

import (
	"encoding/json"
	"fmt"
)

// Visibility is the initial display state of a trace.
type Visibility int

const (
	// Visible draws the trace.
	Visible Visibility = iota
	// Hidden removes the trace from both plot and legend.
	Hidden
	// LegendOnly keeps the legend entry but hides the trace until it is clicked.
	LegendOnly
)

const legendOnlyValue = "legendonly"

// String returns the plotly spelling of the state.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "false"
	case LegendOnly:
		return legendOnlyValue
	default:
		return "true"
	}
}

// MarshalJSON encodes Visible/Hidden as booleans and LegendOnly as "legendonly".
func (v Visibility) MarshalJSON() ([]byte, error) {
	switch v {
	case Hidden:
		return []byte("false"), nil
	case LegendOnly:
		return json.Marshal(legendOnlyValue)
	default:
		return []byte("true"), nil
	}
}

// UnmarshalJSON accepts true, false and "legendonly".
func (v *Visibility) UnmarshalJSON(data []byte) error {
	parsed, err := ParseVisibility(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVisibility decodes a raw JSON visibility value.
func ParseVisibility(data []byte) (Visibility, error) {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			return Visible, nil
		}
		return Hidden, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case legendOnlyValue:
			return LegendOnly, nil
		case "true":
			return Visible, nil
		case "false":
			return Hidden, nil
		}
	}
	return Visible, fmt.Errorf("invalid visibility value: %s", string(data))
}
