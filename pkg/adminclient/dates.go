package adminclient

import (
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// coerceDates returns a copy of doc with every time.Time, at any depth,
// replaced by its YYYY-MM-DD form.
func coerceDates(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = coerceValue(v)
	}
	return out
}

func coerceValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(dateLayout)
	case Document:
		return coerceDates(t)
	case map[string]any:
		return map[string]any(coerceDates(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = coerceValue(e)
		}
		return out
	default:
		return v
	}
}

// FormatDate renders epoch milliseconds (number or numeric string), RFC3339
// strings and time values as "YYYY-MM-DD HH:MM" in loc. Unrecognised input
// yields "".
func FormatDate(v any, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t, ok := parseTime(v)
	if !ok {
		return ""
	}
	return t.In(loc).Format(dateTimeLayout)
}

func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case int64:
		return time.UnixMilli(t), true
	case int:
		return time.UnixMilli(int64(t)), true
	case float64:
		return time.UnixMilli(int64(t)), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, true
		}
		if ts, err := time.Parse(dateLayout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
