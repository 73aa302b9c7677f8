package scopelog

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

// Field is one key/value pair attached to an event.
type Field struct {
	Key   string `json:"key" msgpack:"key"`
	Value any    `json:"value" msgpack:"value"`
}

// Metadata is an ordered list of fields. Keys may repeat; the later value
// wins in Get and Map.
type Metadata []Field

func (m Metadata) clone() Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(Metadata, len(m))
	copy(out, m)
	return out
}

// detach copies slice and map values one level deep so a caller changing
// its own slice or map later cannot reach an event already built.
func detach(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	case []any:
		return append([]any(nil), v...)
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return val
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return val
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	}
	return val
}

// with returns a new Metadata holding m followed by fields. m is not modified.
func (m Metadata) with(fields ...Field) Metadata {
	if len(fields) == 0 {
		return m.clone()
	}
	out := make(Metadata, 0, len(m)+len(fields))
	out = append(out, m...)
	return append(out, fields...)
}

// Get returns the last value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return nil, false
}

// Map flattens m into a map.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, len(m))
	for _, f := range m {
		out[f.Key] = f.Value
	}
	return out
}

// keyvals returns m as alternating keys and values.
func (m Metadata) keyvals() []any {
	kv := make([]any, 0, len(m)*2)
	for _, f := range m {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}

// String renders m as a single-line JSON object in field order.
func (m Metadata) String() string {
	if len(m) == 0 {
		return emptyString
	}
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	zl.Log().Fields(m.keyvals()).Send()
	return strings.TrimSpace(buf.String())
}

// MarshalZerologObject lets nested Metadata render as a JSON object.
func (m Metadata) MarshalZerologObject(e *zerolog.Event) {
	for _, f := range m {
		if err, ok := f.Value.(error); ok {
			e.AnErr(f.Key, err)
			continue
		}
		e.Interface(f.Key, f.Value)
	}
}
