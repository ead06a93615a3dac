package querybuilder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/greenhouse-labs/catalog/internal/constants"
)

// FieldKind decides how raw filter values are parsed.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "date"
	default:
		return "unknown"
	}
}

// Field maps an API field name to its storage column.
type Field struct {
	Name   string
	Column string
	Kind   FieldKind
}

// Schema is the statically known set of fields of one entity.
type Schema struct {
	fields map[string]Field
}

func NewSchema(fields ...Field) Schema {
	s := Schema{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		s.fields[f.Name] = f
	}
	return s
}

func (s Schema) Lookup(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Config is the per-endpoint query configuration. It is a plain value and is
// never mutated by the builder.
type Config struct {
	Schema       Schema
	DefaultLimit int
	MaxLimit     int
	// DefaultSort uses the same syntax as the sort parameter, e.g. "-createdAt".
	DefaultSort  string
	SortFields   []string
	FilterFields []string
	SearchFields []string
	// DateField receives the startDate/endDate range. Empty disables it.
	DateField    string
}

// Validate checks that every allow-listed name is a known field of the
// schema. It is meant to run once at startup.
func (c Config) Validate() error {
	check := func(list string, names []string, kinds ...FieldKind) error {
		for _, name := range names {
			f, ok := c.Schema.Lookup(name)
			if !ok {
				return fmt.Errorf("querybuilder: %s field %q is not in the schema", list, name)
			}
			if len(kinds) > 0 && !slices.Contains(kinds, f.Kind) {
				return fmt.Errorf("querybuilder: %s field %q has kind %s", list, name, f.Kind)
			}
		}
		return nil
	}

	if err := check("sort", c.SortFields); err != nil {
		return err
	}
	if err := check("filter", c.FilterFields); err != nil {
		return err
	}
	if err := check("search", c.SearchFields, KindString); err != nil {
		return err
	}
	if c.DateField != "" {
		if err := check("date", []string{c.DateField}, KindTime); err != nil {
			return err
		}
	}

	if c.DefaultSort != "" {
		name := strings.TrimPrefix(c.DefaultSort, constants.SortDescPrefix)
		if !slices.Contains(c.SortFields, name) {
			return fmt.Errorf("querybuilder: default sort %q is not an allowed sort field", c.DefaultSort)
		}
	}

	if c.DefaultLimit < 0 || c.MaxLimit < 0 {
		return fmt.Errorf("querybuilder: limits must not be negative")
	}
	return nil
}

// limits returns the effective default and maximum page sizes.
func (c Config) limits() (defaultLimit, maxLimit int) {
	defaultLimit, maxLimit = c.DefaultLimit, c.MaxLimit
	if maxLimit <= 0 {
		maxLimit = constants.MaxLimit
	}
	if defaultLimit <= 0 {
		defaultLimit = constants.DefaultLimit
	}
	return min(defaultLimit, maxLimit), maxLimit
}

// WithLimits returns a copy of c using the given page size bounds.
func (c Config) WithLimits(defaultLimit, maxLimit int) Config {
	c.DefaultLimit = defaultLimit
	c.MaxLimit = maxLimit
	return c
}
