// Package wire renders domain entities into the keyed documents sent to the
// tax service, removing every empty value at any nesting depth.
package wire

import (
	"github.com/rezonia/avalara-go/internal/codec"
)

// Object is a rendered document keyed by service field name
type Object map[string]interface{}

// Field pairs a service field name with an already encoded value
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Render builds a pruned Object from typed fields. Extension entries are
// added afterwards and never replace a typed field of the same name.
func Render(fields []Field, extra map[string]interface{}) Object {
	out := make(Object, len(fields)+len(extra))
	typed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		typed[f.Key] = struct{}{}
		out[f.Key] = f.Value
	}
	for k, v := range extra {
		if _, ok := typed[k]; ok {
			continue
		}
		out[k] = v
	}
	return Prune(out).(Object)
}

// Prune removes empty values from objects and sequences, bottom-up, so a
// container left empty by pruning its children is removed as well.
func Prune(v interface{}) interface{} {
	switch x := v.(type) {
	case Object:
		out := make(Object, len(x))
		for k, val := range x {
			if p := Prune(val); !IsEmpty(p) {
				out[k] = p
			}
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, val := range x {
			if p := Prune(val); !IsEmpty(p) {
				out[k] = p
			}
		}
		return out
	case []Object:
		out := make([]Object, 0, len(x))
		for _, entry := range x {
			if p := Prune(entry).(Object); len(p) > 0 {
				out = append(out, p)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(x))
		for _, entry := range x {
			if p := Prune(entry); !IsEmpty(p) {
				out = append(out, p)
			}
		}
		return out
	default:
		return v
	}
}

// IsEmpty reports whether v would be dropped from a rendered document
func IsEmpty(v interface{}) bool {
	switch x := v.(type) {
	case Object:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	case []Object:
		return len(x) == 0
	case []interface{}:
		return len(x) == 0
	case []string:
		return len(x) == 0
	default:
		return codec.Empty(v)
	}
}
