package store

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ukaji3/statplot-go/pkg/statplot/models"
)

// ErrBadQuery indicates a query string without variable or type.
var ErrBadQuery = errors.New("incorrect query parameters")

// Query selects a variable the way dashboard links do:
// "?variable=pglabnet&type=numerical&language=de".
type Query struct {
	Variable string
	Type     models.VariableType
	// Language defaults to "en".
	Language string
}

// ParseQuery parses a dashboard query string. The leading "?" is optional.
func ParseQuery(raw string) (Query, error) {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return Query{}, ErrBadQuery
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrBadQuery, err)
	}
	if !values.Has("variable") || !values.Has("type") {
		return Query{}, ErrBadQuery
	}

	t, err := ParseVariableType(values.Get("type"))
	if err != nil {
		return Query{}, err
	}
	q := Query{
		Variable: values.Get("variable"),
		Type:     t,
		Language: values.Get("language"),
	}
	if q.Language == "" {
		q.Language = "en"
	}
	return q, nil
}
