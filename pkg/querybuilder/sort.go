package querybuilder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/greenhouse-labs/catalog/internal/constants"
)

// Sort orders results by a single field.
type Sort struct {
	Field Field
	Desc  bool
}

func (s Sort) String() string {
	if s.Desc {
		return constants.SortDescPrefix + s.Field.Name
	}
	return s.Field.Name
}

// ResolveSort parses raw, falling back to the configured default. A field
// outside the sort allow-list is rejected.
func ResolveSort(raw string, cfg Config) (Sort, error) {
	expr := raw
	if expr == "" {
		expr = cfg.DefaultSort
	}

	name, desc := strings.CutPrefix(expr, constants.SortDescPrefix)
	if name == "" {
		return Sort{}, &ValidationError{Param: constants.QueryParamSort, Value: raw, Message: "sort field is empty"}
	}

	if !slices.Contains(cfg.SortFields, name) {
		return Sort{}, notSortable(raw, name)
	}
	field, ok := cfg.Schema.Lookup(name)
	if !ok {
		return Sort{}, notSortable(raw, name)
	}

	return Sort{Field: field, Desc: desc}, nil
}

func notSortable(raw, name string) *ValidationError {
	return &ValidationError{
		Param:   constants.QueryParamSort,
		Value:   raw,
		Message: fmt.Sprintf("field %q is not sortable", name),
	}
}
