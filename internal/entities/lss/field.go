package lss

import "github.com/tidwall/gjson"

// FieldKind tags how a source member is represented.
type FieldKind int

const (
	// FieldAbsent covers missing members, null, arrays, and mappings with no
	// "value" key.
	FieldAbsent FieldKind = iota
	// FieldWrapped is a mapping carrying a "value" key.
	FieldWrapped
	// FieldBare is a scalar stored directly.
	FieldBare
)

func (k FieldKind) String() string {
	switch k {
	case FieldWrapped:
		return "wrapped"
	case FieldBare:
		return "bare"
	default:
		return "absent"
	}
}

// Field is a source member resolved to {Wrapped, Bare, Absent}.
type Field struct {
	Kind  FieldKind
	Value gjson.Result
}

const wrapperKey = "value"

// FieldOf classifies a raw member.
func FieldOf(r gjson.Result) Field {
	switch {
	case !r.Exists(), r.Type == gjson.Null:
		return Field{Kind: FieldAbsent}
	case r.IsObject():
		inner := Member(r, wrapperKey)
		if !inner.Exists() {
			return Field{Kind: FieldAbsent}
		}
		return Field{Kind: FieldWrapped, Value: inner}
	case r.IsArray():
		return Field{Kind: FieldAbsent}
	default:
		return Field{Kind: FieldBare, Value: r}
	}
}

// Interface returns the field's payload as a plain Go value (nil, bool,
// float64, string, map or slice).
func (f Field) Interface() any {
	if f.Kind == FieldAbsent {
		return nil
	}
	return f.Value.Value()
}
