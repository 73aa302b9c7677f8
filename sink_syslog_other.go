//go:build windows || plan9

package scopelog

import "github.com/Station-Manager/errors"

// SyslogSink is unavailable on this platform.
type SyslogSink struct {
	sinkState
}

func NewSyslogSink(network, address, tag string) (*SyslogSink, error) {
	const op errors.Op = "scopelog.NewSyslogSink"
	return nil, errors.New(op).Msg(errMsgSyslogUnavail)
}

func (s *SyslogSink) Log(*Event) {}

func (s *SyslogSink) Close() error { return nil }
