package booking

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Package booking defines the booking record and the rules for merging
// caller-supplied fields into it.
// KISS: a booking is a flat JSON object; only id/name/email are known keys.

// Known field names.
const (
	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
)

// Booking is a single reservation record. Unknown keys are kept verbatim.
type Booking map[string]any

// ID returns the stored identifier, or "" if the record has none.
func (b Booking) ID() string {
	id, _ := b[FieldID].(string)
	return id
}

// Name returns the customer name, or "" if absent or not a string.
func (b Booking) Name() string {
	s, _ := b[FieldName].(string)
	return s
}

// Email returns the customer email, or "" if absent or not a string.
func (b Booking) Email() string {
	s, _ := b[FieldEmail].(string)
	return s
}

// Clone returns a shallow copy of b.
func (b Booking) Clone() Booking {
	out := make(Booking, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// New builds a record from caller fields under the given id.
// A caller-supplied "id" key is discarded.
func New(id string, fields map[string]any) Booking {
	out := make(Booking, len(fields)+1)
	for k, v := range fields {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	out[FieldID] = id
	return out
}

// Merge returns a copy of b with fields applied on top: new keys are added,
// existing keys overwritten. The "id" key in fields is ignored.
func (b Booking) Merge(fields map[string]any) Booking {
	out := b.Clone()
	for k, v := range fields {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

// knownOrder is the key order used when encoding; remaining keys follow
// sorted.
var knownOrder = []string{FieldID, FieldName, FieldEmail}

// MarshalJSON writes id, name and email first, then the other keys in sorted
// order, so stored documents and responses read the same way.
func (b Booking) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(b))
	for _, k := range knownOrder {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(b))
	for k := range b {
		if k != FieldID && k != FieldName && k != FieldEmail {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(b[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
