package tool

import (
	"fmt"
	"strconv"
	"strings"
)

// StringArg extracts a string argument. Non-string scalars are formatted,
// since models frequently emit numbers for code-like fields.
func StringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64, int, int64, bool:
		return fmt.Sprintf("%v", s), true
	default:
		return "", false
	}
}

// IntArg extracts an integer argument. JSON numbers decode as float64, and
// models sometimes quote integers; both are accepted.
func IntArg(args map[string]any, key string) (int, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// MapArg extracts a nested mapping argument.
func MapArg(args map[string]any, key string) (map[string]any, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}
