package extraction

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/lss-foundry/internal/entities/lss"
)

// UnwrapScalar resolves a tagged source field. A wrapped field yields its
// inner value as stored, even when that value is empty or zero. A bare field
// yields its value when truthy and def otherwise. An absent field yields def.
func UnwrapScalar(f lss.Field, def any) any {
	switch f.Kind {
	case lss.FieldWrapped:
		return f.Interface()
	case lss.FieldBare:
		if v := f.Interface(); Truthy(v) {
			return v
		}
		return def
	default:
		return def
	}
}

// CoerceInteger converts a loosely typed value to an int and never fails.
// Numbers truncate toward zero. Text keeps only its digits and minus signs
// before parsing, so "12 ft" is 12. Anything unparseable is 0.
func CoerceInteger(v any) int {
	n, _ := parseInteger(v)
	return n
}

// parseInteger is CoerceInteger that also reports whether v held a number.
func parseInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float32:
		return truncate(float64(t))
	case float64:
		return truncate(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return truncate(f)
		}
		return parseText(t.String())
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		return parseText(t)
	default:
		return 0, false
	}
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

func parseText(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// Truthy reports whether v is a non-empty, non-zero value.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// Text renders a scalar source value as display text. Nil is empty.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
