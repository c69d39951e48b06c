package model

import (
	"strings"
	"time"

	"github.com/rezonia/avalara-go/internal/codec"
	"github.com/rezonia/avalara-go/internal/wire"
)

// Extra carries caller-supplied service fields that have no typed
// counterpart. Keys are used verbatim as wire names.
type Extra map[string]interface{}

// encode trims text, drops empty entries and encodes the rest for the wire
func (e Extra) encode() (map[string]interface{}, error) {
	if len(e) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(e))
	for k, v := range e {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		if wire.IsEmpty(v) {
			continue
		}
		encoded, err := codec.Value(v)
		if err != nil {
			return nil, err
		}
		out[k] = encoded
	}
	return out, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func today(now func() time.Time) time.Time {
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
