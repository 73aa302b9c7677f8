package scopelog

import (
	"fmt"
	"time"
)

// LogContext provides a fluent interface for building a context logger with pre-populated fields.
// Fields added through LogContext will be included in all subsequent log messages.
type LogContext interface {
	Str(key, val string) LogContext
	Strs(key string, vals []string) LogContext
	Int(key string, val int) LogContext
	Int64(key string, val int64) LogContext
	Uint64(key string, val uint64) LogContext
	Float64(key string, val float64) LogContext
	Bool(key string, val bool) LogContext
	Time(key string, val time.Time) LogContext
	Dur(key string, val time.Duration) LogContext
	Err(err error) LogContext
	Interface(key string, val any) LogContext
	// Logger creates and returns the new context logger
	Logger() Logger
}

// LogEvent provides a fluent interface for structured logging with typed fields.
type LogEvent interface {
	Str(key, val string) LogEvent
	Strs(key string, vals []string) LogEvent
	Stringer(key string, val fmt.Stringer) LogEvent
	Int(key string, val int) LogEvent
	Int64(key string, val int64) LogEvent
	Uint64(key string, val uint64) LogEvent
	Float64(key string, val float64) LogEvent
	Bool(key string, val bool) LogEvent
	Time(key string, val time.Time) LogEvent
	Dur(key string, val time.Duration) LogEvent
	Err(err error) LogEvent
	AnErr(key string, err error) LogEvent
	Interface(key string, val any) LogEvent
	// Fields adds alternating key/value pairs. Non-string keys are formatted
	// with fmt.Sprint.
	Fields(keyvals ...any) LogEvent
	Dict(key string, dict func(LogEvent)) LogEvent
	// At overrides the source location recorded for the event.
	At(loc Location) LogEvent
	Msg(msg string)
	Msgf(format string, v ...any)
	Send()
}

// logEvent collects fields until it is sent. A logEvent without a logger is
// a no-op unless it is collecting a nested dictionary.
type logEvent struct {
	l          *logger
	typ        Type
	loc        Location
	fields     Metadata
	collecting bool
	sent       bool
}

// newLogEvent creates an untracked event. With a nil logger it discards
// everything.
func newLogEvent(l *logger) LogEvent {
	return &logEvent{l: l}
}

// newTrackedLogEvent creates an event that releases its service operation
// when sent. The caller must already hold the operation.
func newTrackedLogEvent(l *logger, t Type, loc Location) LogEvent {
	return &logEvent{l: l, typ: t, loc: loc}
}

func (e *logEvent) off() bool {
	return (e.l == nil && !e.collecting) || e.sent
}

func (e *logEvent) add(fields ...Field) LogEvent {
	if !e.off() {
		e.fields = append(e.fields, fields...)
	}
	return e
}

func (e *logEvent) Str(key, val string) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Strs(key string, vals []string) LogEvent {
	return e.add(Field{key, append([]string(nil), vals...)})
}

func (e *logEvent) Stringer(key string, val fmt.Stringer) LogEvent {
	if val == nil {
		return e.add(Field{key, nil})
	}
	return e.add(Field{key, val.String()})
}

func (e *logEvent) Int(key string, val int) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Int64(key string, val int64) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Uint64(key string, val uint64) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Float64(key string, val float64) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Bool(key string, val bool) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Time(key string, val time.Time) LogEvent { return e.add(Field{key, val}) }

func (e *logEvent) Dur(key string, val time.Duration) LogEvent { return e.add(Field{key, val}) }

// Err records err under "error" together with its cause chain.
func (e *logEvent) Err(err error) LogEvent {
	return e.AnErr("error", err)
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	if err == nil {
		return e
	}
	return e.add(errorFields(key, err)...)
}

func (e *logEvent) Interface(key string, val any) LogEvent { return e.add(Field{key, detach(val)}) }

func (e *logEvent) Fields(keyvals ...any) LogEvent {
	if e.off() {
		return e
	}
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		var val any = "(MISSING)"
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}
		if err, isErr := val.(error); isErr {
			e.AnErr(key, err)
			continue
		}
		e.fields = append(e.fields, Field{key, detach(val)})
	}
	return e
}

// Dict for nested objects
func (e *logEvent) Dict(key string, dict func(LogEvent)) LogEvent {
	if e.off() {
		return e
	}
	sub := &logEvent{collecting: true}
	dict(sub)
	return e.add(Field{key, sub.fields})
}

func (e *logEvent) At(loc Location) LogEvent {
	if !e.off() {
		e.loc = loc
	}
	return e
}

func (e *logEvent) Msg(msg string) {
	if e.l == nil || e.sent {
		return
	}
	e.sent = true
	defer e.l.svc.release()
	e.l.emit(e.typ, e.loc, e.fields, msg)
}

func (e *logEvent) Msgf(format string, v ...any) {
	if e.l == nil || e.sent {
		return
	}
	e.Msg(fmt.Sprintf(format, v...))
}

func (e *logEvent) Send() {
	e.Msg(emptyString)
}

// logContext accumulates fields for a child logger.
type logContext struct {
	base   *logger
	fields Metadata
}

func (c *logContext) add(f Field) LogContext {
	c.fields = append(c.fields, f)
	return c
}

func (c *logContext) Str(key, val string) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Strs(key string, vals []string) LogContext {
	return c.add(Field{key, append([]string(nil), vals...)})
}

func (c *logContext) Int(key string, val int) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Int64(key string, val int64) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Uint64(key string, val uint64) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Float64(key string, val float64) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Bool(key string, val bool) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Time(key string, val time.Time) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Dur(key string, val time.Duration) LogContext { return c.add(Field{key, val}) }

func (c *logContext) Err(err error) LogContext {
	if err == nil {
		return c
	}
	c.fields = append(c.fields, errorFields("error", err)...)
	return c
}

func (c *logContext) Interface(key string, val any) LogContext { return c.add(Field{key, detach(val)}) }

// Logger returns a logger sharing the base logger's service, category and
// scope, with the collected fields appended to its metadata.
func (c *logContext) Logger() Logger {
	return &logger{
		svc:      c.base.svc,
		category: c.base.category,
		meta:     c.base.meta.with(c.fields...),
		scope:    c.base.scope,
	}
}

// noopLogContext is a no-op implementation of LogContext
type noopLogContext struct{}

func (n *noopLogContext) Str(string, string) LogContext        { return n }
func (n *noopLogContext) Strs(string, []string) LogContext     { return n }
func (n *noopLogContext) Int(string, int) LogContext           { return n }
func (n *noopLogContext) Int64(string, int64) LogContext       { return n }
func (n *noopLogContext) Uint64(string, uint64) LogContext     { return n }
func (n *noopLogContext) Float64(string, float64) LogContext   { return n }
func (n *noopLogContext) Bool(string, bool) LogContext         { return n }
func (n *noopLogContext) Time(string, time.Time) LogContext    { return n }
func (n *noopLogContext) Dur(string, time.Duration) LogContext { return n }
func (n *noopLogContext) Err(error) LogContext                 { return n }
func (n *noopLogContext) Interface(string, any) LogContext     { return n }
func (n *noopLogContext) Logger() Logger                       { return &logger{} }
