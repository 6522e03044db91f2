// Package visibility decides the initial display state of traces.
package visibility

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// DefaultMaxVisible is the number of groups drawn before the rest start collapsed.
const DefaultMaxVisible = 4

// Overrides maps a rendered group key to a state chosen by the user.
type Overrides map[string]models.Visibility

// Policy assigns visibility to a stream of group keys.
// The first MaxVisible keys are visible, later keys are legend-only,
// and an override for a key always wins.
type Policy struct {
	overrides  Overrides
	maxVisible int
	seen       int
}

// Option configures a Policy.
type Option func(*Policy)

// WithMaxVisible changes how many keys start visible. Zero or less means no limit.
func WithMaxVisible(n int) Option {
	return func(p *Policy) {
		p.maxVisible = n
	}
}

// NewPolicy creates a policy. The overrides map is read, never written.
func NewPolicy(overrides Overrides, opts ...Option) *Policy {
	p := &Policy{
		overrides:  overrides,
		maxVisible: DefaultMaxVisible,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next returns the state for the next key in encounter order.
func (p *Policy) Next(groupKey string) models.Visibility {
	p.seen++
	if v, ok := p.overrides[groupKey]; ok {
		return v
	}
	if p.maxVisible <= 0 || p.seen <= p.maxVisible {
		return models.Visible
	}
	return models.LegendOnly
}

// ParseOverrides decodes a JSON object of key to true/false/"legendonly".
// Entries with unrecognised values are skipped.
func ParseOverrides(data []byte) (Overrides, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid visibility overrides: %w", err)
	}
	overrides := make(Overrides, len(raw))
	for key, value := range raw {
		v, err := models.ParseVisibility(value)
		if err != nil {
			continue
		}
		overrides[key] = v
	}
	return overrides, nil
}

// FromFigure collects the visibility of every named trace in a previously
// rendered figure. When several traces share a name the last one wins.
func FromFigure(fig *models.Figure) Overrides {
	overrides := make(Overrides)
	if fig == nil {
		return overrides
	}
	for _, trace := range fig.Data {
		if trace.Name == "" {
			continue
		}
		overrides[trace.Name] = trace.Visible
	}
	return overrides
}
