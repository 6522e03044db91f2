package statplot

import (
	"errors"
	"fmt"
)

// ErrUnknownMeasure indicates a measure other than mean, median or proportion.
var ErrUnknownMeasure = errors.New("unknown measure")

// ErrUnknownPlotType indicates a chart type other than line, bar or box.
var ErrUnknownPlotType = errors.New("unknown plot type")

// ErrMissingVariable indicates a categorical request without a variable name.
var ErrMissingVariable = errors.New("categorical request needs a variable name")

// Render stages.
const (
	StageLocalize = "localize"
	StageTraces   = "traces"
	StageFigure   = "figure"
)

// RenderError represents an error during one render stage.
type RenderError struct {
	Stage string // "localize", "traces", "figure"
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error (%s): %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(stage string, err error) *RenderError {
	return &RenderError{
		Stage: stage,
		Err:   err,
	}
}
