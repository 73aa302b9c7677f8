// Package logrus provides a logrus hook that forwards entries to a
// scopelog.Logger.
//
// To route a logrus logger exclusively through scopelog:
//
//	log.AddHook(elogrus.NewHook(svc))
//	log.SetOutput(io.Discard)
package logrus

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Station-Manager/scopelog"
)

// Hook is a logrus.Hook writing every entry to a scopelog.Logger.
type Hook struct {
	l      scopelog.Logger
	levels []logrus.Level
}

var _ logrus.Hook = (*Hook)(nil)

// NewHook returns a hook for the given levels, or for all levels when none
// are given.
func NewHook(l scopelog.Logger, levels ...logrus.Level) *Hook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &Hook{l: l, levels: levels}
}

func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire converts e into a scopelog event. Data keys are emitted in sorted
// order.
func (h *Hook) Fire(e *logrus.Entry) error {
	if h.l == nil {
		return nil
	}
	ev := h.l.Entry(convertLevel(e.Level))
	if e.Caller != nil {
		ev = ev.At(scopelog.Location{File: e.Caller.File, Function: e.Caller.Function, Line: e.Caller.Line})
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev = ev.Fields(k, e.Data[k])
	}
	ev.Msg(e.Message)
	return nil
}

func convertLevel(level logrus.Level) scopelog.Type {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return scopelog.TypeFault
	case logrus.ErrorLevel:
		return scopelog.TypeError
	case logrus.WarnLevel:
		return scopelog.TypeWarning
	case logrus.InfoLevel:
		return scopelog.TypeInfo
	case logrus.DebugLevel:
		return scopelog.TypeDebug
	default:
		return scopelog.TypeTrace
	}
}
