//go:build !windows && !plan9

package scopelog

import (
	"log/syslog"

	"github.com/Station-Manager/errors"
)

// SyslogSink forwards events to the system logger. Message types map to
// syslog priorities; scope and interval events are written as notices.
type SyslogSink struct {
	sinkState
	w         *syslog.Writer
	formatter *TextFormatter
}

// NewSyslogSink dials the system logger. An empty network connects to the
// local syslog daemon.
func NewSyslogSink(network, address, tag string) (*SyslogSink, error) {
	const op errors.Op = "scopelog.NewSyslogSink"
	if tag == emptyString {
		tag = defaultSyslogTag
	}
	w, err := syslog.Dial(network, address, syslog.LOG_USER|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgSyslogDial)
	}

	// syslog stamps its own time
	f := NewTextFormatter(StylePlain)
	f.Options = OptionCategory | OptionPadding | OptionType | OptionLocation | OptionMetadata
	return &SyslogSink{sinkState: sinkState{name: "syslog"}, w: w, formatter: f}, nil
}

func (s *SyslogSink) Log(e *Event) {
	if e.Type == TypeIntervalBegin {
		return
	}
	line := s.formatter.Format(e)

	var err error
	switch e.Type {
	case TypeTrace, TypeDebug:
		err = s.w.Debug(line)
	case TypeLog, TypeInfo:
		err = s.w.Info(line)
	case TypeWarning:
		err = s.w.Warning(line)
	case TypeError:
		err = s.w.Err(line)
	case TypeAssert:
		err = s.w.Alert(line)
	case TypeFault:
		err = s.w.Crit(line)
	default:
		err = s.w.Notice(line)
	}
	if err != nil {
		s.fail(e, err)
	}
}

func (s *SyslogSink) Close() error {
	return s.w.Close()
}
