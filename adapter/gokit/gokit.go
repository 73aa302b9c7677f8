// Package gokit provides a go-kit logger that writes to a scopelog.Logger.
package gokit

import (
	"fmt"
	"strings"

	"github.com/go-kit/kit/log"

	"github.com/Station-Manager/scopelog"
)

type logger struct {
	l scopelog.Logger
}

// NewLogger returns a go-kit logger backed by l.
func NewLogger(l scopelog.Logger) log.Logger {
	return &logger{l: l}
}

// Log writes one structured message. The "msg" or "message" key becomes the
// message text and a "level" key, as written by go-kit's level package,
// selects the event type. Other pairs become metadata.
func (l *logger) Log(keyvals ...any) error {
	if l.l == nil {
		return nil
	}
	var msg string
	typ := scopelog.TypeLog
	rest := make([]any, 0, len(keyvals))
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		var value any = log.ErrMissingValue
		if i+1 < len(keyvals) {
			value = keyvals[i+1]
		}
		switch key {
		case "msg", "message":
			msg = fmt.Sprint(value)
		case "level":
			typ = convertLevel(fmt.Sprint(value))
		default:
			rest = append(rest, key, value)
		}
	}
	l.l.Entry(typ).Fields(rest...).Msg(msg)
	return nil
}

func convertLevel(level string) scopelog.Type {
	switch strings.ToLower(level) {
	case "debug":
		return scopelog.TypeDebug
	case "info":
		return scopelog.TypeInfo
	case "warn", "warning":
		return scopelog.TypeWarning
	case "error":
		return scopelog.TypeError
	default:
		return scopelog.TypeLog
	}
}
