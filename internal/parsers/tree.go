package parsers

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"exportlens/internal/models"
)

// lookup walks nested objects by key. Any non-object on the way ends the walk.
func lookup(v any, keys ...string) (any, bool) {
	cur := v
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func listAt(v any, keys ...string) []any {
	found, ok := lookup(v, keys...)
	if !ok {
		return nil
	}
	list, _ := found.([]any)
	return list
}

func stringAt(v any, fallback string, keys ...string) string {
	found, ok := lookup(v, keys...)
	if !ok || found == nil {
		return fallback
	}
	s, ok := found.(string)
	if !ok {
		return fallback
	}
	return s
}

// unixAt reads a Unix-seconds timestamp that may be a number or a numeric string.
func unixAt(v any, keys ...string) time.Time {
	found, ok := lookup(v, keys...)
	if !ok || found == nil {
		return models.Epoch
	}
	sec, err := cast.ToInt64E(found)
	if err != nil {
		f, ferr := cast.ToFloat64E(found)
		if ferr != nil {
			return models.Epoch
		}
		sec = int64(f)
	}
	return time.Unix(sec, 0).UTC()
}

var timeLayouts = []string{
	time.RFC3339Nano,
	models.TimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
}

// parseTime accepts the timestamp formats found across export schema versions.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Epoch, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return models.Epoch, false
}
