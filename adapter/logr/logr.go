// Package logr provides a logr.LogSink that writes to a scopelog.Logger.
package logr

import (
	"github.com/go-logr/logr"

	"github.com/Station-Manager/scopelog"
)

type logSink struct {
	l       scopelog.Logger
	values  []any
	nameSep string
	name    string
}

// NewLogger returns a logr.Logger backed by l. Names added with WithName are
// joined with nameSep and recorded under "logger".
func NewLogger(l scopelog.Logger, nameSep string) logr.Logger {
	return logr.New(&logSink{l: l, nameSep: nameSep})
}

func (*logSink) Init(logr.RuntimeInfo) {}

// Enabled leaves filtering to the scopelog pipeline.
func (s *logSink) Enabled(level int) bool {
	return s.l != nil
}

// Info implements logr.LogSink.Info. V(0) maps to info, V(1) to debug and
// anything more verbose to trace.
func (s *logSink) Info(level int, msg string, keysAndValues ...any) {
	if s.l == nil {
		return
	}
	s.log(s.l.Entry(convertVerbosity(level)), msg, keysAndValues)
}

// Error implements logr.LogSink.Error.
func (s *logSink) Error(err error, msg string, keysAndValues ...any) {
	if s.l == nil {
		return
	}
	s.log(s.l.ErrorWith().Err(err), msg, keysAndValues)
}

func (s *logSink) log(ev scopelog.LogEvent, msg string, keysAndValues []any) {
	if s.name != "" {
		ev = ev.Str("logger", s.name)
	}
	ev.Fields(s.values...).Fields(keysAndValues...).Msg(msg)
}

// WithName implements logr.LogSink.WithName.
func (s *logSink) WithName(name string) logr.LogSink {
	s2 := *s
	if s.name == "" {
		s2.name = name
	} else {
		s2.name = s.name + s.nameSep + name
	}
	return &s2
}

// WithValues implements logr.LogSink.WithValues.
func (s *logSink) WithValues(keysAndValues ...any) logr.LogSink {
	s2 := *s
	if len(keysAndValues) > 0 {
		s2.values = make([]any, len(s.values), len(s.values)+len(keysAndValues))
		copy(s2.values, s.values)
		s2.values = append(s2.values, keysAndValues...)
	}
	return &s2
}

func convertVerbosity(v int) scopelog.Type {
	switch {
	case v <= 0:
		return scopelog.TypeInfo
	case v == 1:
		return scopelog.TypeDebug
	default:
		return scopelog.TypeTrace
	}
}
