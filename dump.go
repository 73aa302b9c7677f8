package scopelog

import (
	"fmt"
	"reflect"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// Maximum number of slice or array elements dumped
const maxDumpElements = 10

// Dump logs the contents of v as debug messages, one line per value.
// Structs show their exported fields, maps and slices their elements.
// Cycles and deep nesting are cut off.
func (l *logger) Dump(v any) {
	svc := l.service()
	if !svc.acquire() {
		return
	}
	defer svc.release()

	d := &dumper{l: l, loc: callerLocation(), visited: make(map[uintptr]bool)}
	if v == nil {
		d.line("Dump: <nil>")
		return
	}
	d.value(v, emptyString, 0)
}

type dumper struct {
	l       *logger
	loc     Location
	visited map[uintptr]bool
}

func (d *dumper) line(msg string) {
	d.l.emit(TypeDebug, d.loc, nil, msg)
}

func (d *dumper) linef(format string, args ...any) {
	d.line(fmt.Sprintf(format, args...))
}

func (d *dumper) value(v any, prefix string, depth int) {
	if depth > maxDumpDepth {
		d.linef("%s: <max depth reached>", prefix)
		return
	}
	if v == nil {
		d.linef("%s: <nil>", prefix)
		return
	}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
		if val.IsNil() {
			d.linef("%s: <nil>", prefix)
			return
		}
		if val.Kind() == reflect.Pointer {
			ptr := val.Pointer()
			if d.visited[ptr] {
				d.linef("%s: <circular reference>", prefix)
				return
			}
			d.visited[ptr] = true
		}
		val = val.Elem()
	}

	typ := val.Type()
	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			d.linef("Struct: %s", typ.Name())
		} else {
			d.linef("%s: %s {", prefix, typ.Name())
		}
		for i := 0; i < val.NumField(); i++ {
			field := val.Field(i)
			if !field.CanInterface() {
				continue
			}
			name := typ.Field(i).Name
			if prefix != emptyString {
				name = prefix + "." + name
			}
			d.value(field.Interface(), name, depth+1)
		}
		if prefix != emptyString {
			d.linef("%s: }", prefix)
		}

	case reflect.Map:
		d.linef("%s: map[%s]%s (len: %d) {", prefix, typ.Key(), typ.Elem(), val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%s[%v]", prefix, iter.Key().Interface())
			d.value(iter.Value().Interface(), key, depth+1)
		}
		d.linef("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		d.linef("%s: %s (len: %d) {", prefix, typ, val.Len())
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elem := val.Index(i)
			if !elem.CanInterface() {
				continue
			}
			d.value(elem.Interface(), fmt.Sprintf("%s[%d]", prefix, i), depth+1)
		}
		if val.Len() > maxDumpElements {
			d.linef("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements)
		}
		d.linef("%s: }", prefix)

	default:
		if val.CanInterface() {
			d.linef("%s: %v", prefix, val.Interface())
		} else {
			d.linef("%s: %v", prefix, v)
		}
	}
}
