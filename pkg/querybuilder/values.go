package querybuilder

import (
	"fmt"
	"strconv"
	"time"
)

const dateOnlyLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	dateOnlyLayout,
}

// parseValue converts a raw filter value according to the field kind.
func parseValue(field Field, raw string) (any, error) {
	switch field.Kind {
	case KindString:
		return raw, nil
	case KindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number")
		}
		return v, nil
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		return v, nil
	case KindTime:
		t, _, err := parseTime(raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported field kind")
	}
}

// parseTime accepts RFC 3339 timestamps and plain dates. All results are in
// UTC; dateOnly reports whether raw carried no time of day.
func parseTime(raw string) (t time.Time, dateOnly bool, err error) {
	for _, layout := range timeLayouts {
		if t, err = time.Parse(layout, raw); err == nil {
			return t.UTC(), layout == dateOnlyLayout, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("expected a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

// endOfDay returns the last representable instant of t's day.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
