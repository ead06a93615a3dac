package querybuilder

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Accessor returns the value of the named field of record. Numbers may be any
// Go integer or float type.
type Accessor[T any] func(record T, field string) (any, bool)

// MemoryCollection serves a fixed slice of records. It backs tests and small
// read-only lists.
type MemoryCollection[T any] struct {
	records []T
	access  Accessor[T]
}

func NewMemoryCollection[T any](records []T, access Accessor[T]) *MemoryCollection[T] {
	return &MemoryCollection[T]{records: records, access: access}
}

func (m *MemoryCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var n int64
	for _, r := range m.records {
		if m.Matches(r, filter) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryCollection[T]) Find(ctx context.Context, filter Filter, sort Sort, window Window) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]T, 0, len(m.records))
	for _, r := range m.records {
		if m.Matches(r, filter) {
			matched = append(matched, r)
		}
	}

	slices.SortStableFunc(matched, func(a, b T) int {
		av, _ := m.access(a, sort.Field.Name)
		bv, _ := m.access(b, sort.Field.Name)
		c := compareValues(av, bv)
		if sort.Desc {
			return -c
		}
		return c
	})

	if window.Skip >= len(matched) {
		return []T{}, nil
	}
	end := len(matched)
	if window.Limit > 0 {
		end = min(end, window.Skip+window.Limit)
	}
	return matched[window.Skip:end], nil
}

// Matches reports whether record satisfies every condition and the search.
func (m *MemoryCollection[T]) Matches(record T, filter Filter) bool {
	for _, cond := range filter.Conditions {
		v, ok := m.access(record, cond.Field.Name)
		if !ok || !matchCondition(v, cond) {
			return false
		}
	}

	if filter.Search != nil {
		term := strings.ToLower(filter.Search.Term)
		for _, f := range filter.Search.Fields {
			if v, ok := m.access(record, f.Name); ok {
				if s, isString := v.(string); isString && strings.Contains(strings.ToLower(s), term) {
					return true
				}
			}
		}
		return false
	}
	return true
}

func matchCondition(v any, cond Condition) bool {
	if cond.Op == OpContains {
		s, ok := v.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(cond.Value.(string)))
	}

	c, ok := compare(v, cond.Value)
	if !ok {
		return false
	}

	switch cond.Op {
	case OpEq:
		return c == 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	}
	return false
}

// compareValues orders values of unknown or mismatched types before
// comparable ones so sorting stays total.
func compareValues(a, b any) int {
	if c, ok := compare(a, b); ok {
		return c
	}
	_, aOK := normalize(a)
	_, bOK := normalize(b)
	switch {
	case aOK == bOK:
		return 0
	case !aOK:
		return -1
	default:
		return 1
	}
}

func compare(a, b any) (int, bool) {
	av, aOK := normalize(a)
	bv, bOK := normalize(b)
	if !aOK || !bOK {
		return 0, false
	}

	switch x := av.(type) {
	case string:
		y, ok := bv.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case float64:
		y, ok := bv.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case bool:
		y, ok := bv.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case time.Time:
		y, ok := bv.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	}
	return 0, false
}

// normalize maps numbers to float64 and dereferences pointers.
func normalize(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case string, bool, float64, time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *string:
		if x == nil {
			return nil, false
		}
		return *x, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	}
	return nil, false
}
