// Package zap provides a zapcore.Core that writes to a scopelog.Logger.
// To use globally:
//
//	zap.ReplaceGlobals(zap.New(ezap.NewCore(svc)))
package zap

import (
	"runtime"

	"go.uber.org/zap/zapcore"

	"github.com/Station-Manager/scopelog"
)

type core struct {
	l      scopelog.Logger
	fields []zapcore.Field
}

var _ zapcore.Core = (*core)(nil)

// NewCore returns a core backed by l. Every level is enabled; filtering is
// left to the scopelog pipeline.
func NewCore(l scopelog.Logger) zapcore.Core {
	return &core{l: l}
}

func (c *core) Enabled(zapcore.Level) bool {
	return c.l != nil
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	c2 := *c
	if len(fields) > 0 {
		c2.fields = make([]zapcore.Field, len(c.fields), len(c.fields)+len(fields))
		copy(c2.fields, c.fields)
		c2.fields = append(c2.fields, fields...)
	}
	return &c2
}

func (c *core) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c *core) Write(e zapcore.Entry, fs []zapcore.Field) error {
	if c.l == nil {
		return nil
	}
	ev := c.l.Entry(convertLevel(e.Level))
	if e.Caller.Defined {
		loc := scopelog.Location{File: e.Caller.File, Line: e.Caller.Line}
		if fn := runtime.FuncForPC(e.Caller.PC); fn != nil {
			loc.Function = fn.Name()
		}
		ev = ev.At(loc)
	}
	if e.LoggerName != "" {
		ev = ev.Str("logger", e.LoggerName)
	}
	if e.Stack != "" {
		ev = ev.Str("stack", e.Stack)
	}
	ev.Fields(keyvals(c.fields, fs)...).Msg(e.Message)
	return nil
}

func (c *core) Sync() error { return nil }

// keyvals flattens zap fields through a map encoder, keeping field order.
func keyvals(groups ...[]zapcore.Field) []any {
	enc := zapcore.NewMapObjectEncoder()
	var order []string
	for _, fs := range groups {
		for _, f := range fs {
			if f.Type == zapcore.SkipType {
				continue
			}
			if _, seen := enc.Fields[f.Key]; !seen {
				order = append(order, f.Key)
			}
			f.AddTo(enc)
		}
	}
	kv := make([]any, 0, 2*len(order))
	for _, k := range order {
		v, ok := enc.Fields[k]
		if !ok {
			continue
		}
		kv = append(kv, k, v)
	}
	return kv
}

func convertLevel(level zapcore.Level) scopelog.Type {
	switch level {
	case zapcore.DebugLevel:
		return scopelog.TypeDebug
	case zapcore.InfoLevel:
		return scopelog.TypeInfo
	case zapcore.WarnLevel:
		return scopelog.TypeWarning
	case zapcore.ErrorLevel:
		return scopelog.TypeError
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return scopelog.TypeFault
	default:
		return scopelog.TypeTrace
	}
}
