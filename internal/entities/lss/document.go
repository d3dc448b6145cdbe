// Package lss provides a permissive, read-only view of a Long Story Short
// character export.
//
// Exports come in two shapes: the character record itself, or an envelope
// whose "data" member is the record encoded as a JSON string. Any member of
// the record may be missing, carry a bare scalar, or carry a {"value": x}
// wrapper; Field resolves all three into one tagged value.
package lss

import (
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

const envelopeKey = "data"

// Document is a parsed source character record.
type Document struct {
	record gjson.Result

	// Degraded is set when an envelope's inner string could not be decoded
	// and an empty record was substituted.
	Degraded bool
}

// Parse decodes a source export. Invalid JSON at the outer layer is an
// invalid argument; an envelope with an undecodable inner record degrades to
// an empty record.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Decode(errors.LayerOuter, "source is not valid JSON", nil)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.Decode(errors.LayerOuter, "source must be a JSON object", nil)
	}

	inner := Member(root, envelopeKey)
	if inner.Type != gjson.String {
		return &Document{record: root}, nil
	}

	encoded := inner.String()
	if !gjson.Valid(encoded) {
		return Empty(true), nil
	}

	record := gjson.Parse(encoded)
	if !record.IsObject() {
		return Empty(true), nil
	}

	return &Document{record: record}, nil
}

// Empty returns a record with no members.
func Empty(degraded bool) *Document {
	return &Document{record: gjson.Parse("{}"), Degraded: degraded}
}

// Lookup returns the raw member at the given key path.
func (d *Document) Lookup(keys ...string) gjson.Result {
	if d == nil || len(keys) == 0 {
		return gjson.Result{}
	}

	r := d.record
	for _, key := range keys {
		if r = Member(r, key); !r.Exists() {
			break
		}
	}
	return r
}

// Member returns the value stored under key in obj. When a key repeats, the
// last occurrence wins, as with encoding/json.
func Member(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	if !obj.IsObject() {
		return found
	}

	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
		}
		return true
	})
	return found
}

// Field returns the member at the given key path as a tagged field.
func (d *Document) Field(keys ...string) Field {
	return FieldOf(d.Lookup(keys...))
}

// Raw returns the decoded record as JSON text.
func (d *Document) Raw() string {
	if d == nil {
		return "{}"
	}
	return d.record.Raw
}
