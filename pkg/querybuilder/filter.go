package querybuilder

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/greenhouse-labs/catalog/internal/constants"
)

// Operator is the comparison a Condition applies.
type Operator string

const (
	OpEq       Operator = "eq"
	OpGt       Operator = "gt"
	OpGte      Operator = "gte"
	OpLt       Operator = "lt"
	OpLte      Operator = "lte"
	OpContains Operator = "contains"
)

var suffixOperators = []struct {
	suffix string
	op     Operator
}{
	{constants.FilterSuffixGte, OpGte},
	{constants.FilterSuffixGt, OpGt},
	{constants.FilterSuffixLte, OpLte},
	{constants.FilterSuffixLt, OpLt},
	{constants.FilterSuffixContains, OpContains},
}

// Condition compares one field with a typed value. Value holds a string,
// int64, float64, bool or time.Time matching Field.Kind. For OpContains it is
// the raw substring.
type Condition struct {
	Field Field
	Op    Operator
	Value any
}

// Search matches records where any of Fields contains Term, ignoring case.
type Search struct {
	Term   string
	Fields []Field
}

// Filter is the conjunction of Conditions and, when set, Search.
type Filter struct {
	Conditions []Condition
	Search     *Search
}

func (f Filter) IsEmpty() bool {
	return len(f.Conditions) == 0 && f.Search == nil
}

// BuildFilter derives the filter of a request. Keys that are neither reserved
// nor allowed filter fields are ignored.
func BuildFilter(params Params, cfg Config) (Filter, error) {
	var filter Filter

	keys := make([]string, 0, len(params))
	for key := range params {
		if !isReserved(key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		raw := params.Get(key)
		if raw == "" {
			continue
		}

		field, op, ok := cfg.filterTarget(key)
		if !ok {
			continue
		}

		cond, err := newCondition(key, field, op, raw)
		if err != nil {
			return Filter{}, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	if search := buildSearch(params.Get(constants.QueryParamSearch), cfg); search != nil {
		filter.Search = search
	}

	dateConds, err := buildDateRange(params, cfg)
	if err != nil {
		return Filter{}, err
	}
	filter.Conditions = append(filter.Conditions, dateConds...)

	return filter, nil
}

// filterTarget resolves a query key to an allowed field and operator. An exact
// field name wins over suffix parsing.
func (c Config) filterTarget(key string) (Field, Operator, bool) {
	if f, ok := c.allowedFilter(key); ok {
		return f, OpEq, true
	}

	for _, so := range suffixOperators {
		base, found := strings.CutSuffix(key, so.suffix)
		if !found || base == "" {
			continue
		}
		if f, ok := c.allowedFilter(base); ok {
			return f, so.op, true
		}
	}
	return Field{}, "", false
}

func (c Config) allowedFilter(name string) (Field, bool) {
	if !slices.Contains(c.FilterFields, name) {
		return Field{}, false
	}
	return c.Schema.Lookup(name)
}

func newCondition(key string, field Field, op Operator, raw string) (Condition, error) {
	if op == OpContains {
		if field.Kind != KindString {
			return Condition{}, &ValidationError{
				Param:   key,
				Value:   raw,
				Message: fmt.Sprintf("substring match is only supported on text fields, %q is a %s field", field.Name, field.Kind),
			}
		}
		return Condition{Field: field, Op: op, Value: raw}, nil
	}

	value, err := parseValue(field, raw)
	if err != nil {
		return Condition{}, &ValidationError{Param: key, Value: raw, Message: err.Error()}
	}
	return Condition{Field: field, Op: op, Value: value}, nil
}

func buildSearch(term string, cfg Config) *Search {
	if term == "" || len(cfg.SearchFields) == 0 {
		return nil
	}

	fields := make([]Field, 0, len(cfg.SearchFields))
	for _, name := range cfg.SearchFields {
		if f, ok := cfg.Schema.Lookup(name); ok {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &Search{Term: term, Fields: fields}
}

// buildDateRange turns startDate/endDate into an inclusive range on the
// configured date field. A plain endDate covers that whole day.
func buildDateRange(params Params, cfg Config) ([]Condition, error) {
	if cfg.DateField == "" {
		return nil, nil
	}
	field, ok := cfg.Schema.Lookup(cfg.DateField)
	if !ok {
		return nil, nil
	}

	var conds []Condition

	startRaw := params.Get(constants.QueryParamStartDate)
	endRaw := params.Get(constants.QueryParamEndDate)

	if startRaw != "" {
		start, _, err := parseTime(startRaw)
		if err != nil {
			return nil, &ValidationError{Param: constants.QueryParamStartDate, Value: startRaw, Message: err.Error()}
		}
		conds = append(conds, Condition{Field: field, Op: OpGte, Value: start})
	}

	if endRaw != "" {
		end, dateOnly, err := parseTime(endRaw)
		if err != nil {
			return nil, &ValidationError{Param: constants.QueryParamEndDate, Value: endRaw, Message: err.Error()}
		}
		if dateOnly {
			end = endOfDay(end)
		}
		conds = append(conds, Condition{Field: field, Op: OpLte, Value: end})
	}

	if len(conds) == 2 && conds[0].Value.(time.Time).After(conds[1].Value.(time.Time)) {
		return nil, &ValidationError{
			Param:   constants.QueryParamStartDate,
			Value:   startRaw,
			Message: "startDate must not be after endDate",
		}
	}

	return conds, nil
}
