package scopelog

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Diagnosable is implemented by sinks that report their own failures.
// Service.Initialize hands every such sink the service's diagnostics logger.
type Diagnosable interface {
	SetDiagnostics(l zerolog.Logger)
}

// sinkState is embedded by sinks to report write failures without returning
// them into the pipeline.
type sinkState struct {
	name     string
	diag     atomic.Pointer[zerolog.Logger]
	failures atomic.Int64
	dropped  atomic.Int64
}

func (s *sinkState) SetDiagnostics(l zerolog.Logger) {
	l = l.With().Str("sink", s.name).Logger()
	s.diag.Store(&l)
}

// Failures returns the number of events the sink failed to write.
func (s *sinkState) Failures() int64 {
	return s.failures.Load()
}

// Dropped returns the number of events the sink discarded by policy.
func (s *sinkState) Dropped() int64 {
	return s.dropped.Load()
}

func (s *sinkState) fail(e *Event, err error) {
	s.failures.Inc()
	if l := s.diag.Load(); l != nil {
		l.Error().Err(err).Str("type", e.Type.String()).Str("category", e.Category).Msg(errMsgSinkWrite)
	}
}

func (s *sinkState) failed(err error) {
	s.failures.Inc()
	if l := s.diag.Load(); l != nil {
		l.Error().Err(err).Msg(errMsgSinkWrite)
	}
}

func (s *sinkState) drop(n int) {
	s.dropped.Add(int64(n))
	if l := s.diag.Load(); l != nil {
		l.Warn().Int("count", n).Msg(errMsgSinkDropped)
	}
}
