package scopelog

import (
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// JSONSink writes events as zerolog JSON lines, or through a
// zerolog.ConsoleWriter when built with console output.
type JSONSink struct {
	sinkState
	logger zerolog.Logger
	closer io.Closer
}

// JSONOptions configures a JSONSink.
type JSONOptions struct {
	Console bool
	NoColor bool
}

// NewJSONSink returns a sink writing to w, or to os.Stdout when w is nil.
// When w is an io.Closer it is closed with the sink.
func NewJSONSink(w io.Writer, opts JSONOptions) *JSONSink {
	if w == nil {
		w = os.Stdout
	}
	s := &JSONSink{sinkState: sinkState{name: "json"}}
	if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
		s.closer = c
	}
	var out io.Writer = reportingWriter{w: w, state: &s.sinkState}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, NoColor: opts.NoColor, TimeFormat: timeLayout}
	}
	s.logger = zerolog.New(zerolog.SyncWriter(out))
	return s
}

func (s *JSONSink) Log(e *Event) {
	ev := s.logger.WithLevel(zerologLevel(e.Type))
	if ev == nil {
		return
	}
	ev = ev.Time(zerolog.TimestampFieldName, e.Time).
		Str("category", e.Category).
		Str("type", e.Type.String()).
		Int("depth", e.Level).
		Str(zerolog.CallerFieldName, e.Location.FileName()+":"+strconv.Itoa(e.Location.Line))
	if e.Location.Function != emptyString {
		ev = ev.Str("function", shortFunction(e.Location.Function))
	}
	if e.Scope != nil {
		ev = ev.Str("scope", e.Scope.Name).Str("scope_id", e.Scope.ID.String())
		if e.Type == TypeScopeLeave {
			ev = ev.Dur("duration", e.Scope.Duration)
		}
	}
	if e.Interval != nil {
		ev = ev.Str("interval", e.Interval.Name)
		if e.Type == TypeIntervalEnd {
			st := e.Interval.Stats
			ev = ev.Dur("duration", e.Interval.Duration).
				Int("count", st.Count).
				Dur("total", st.Total).
				Dur("min", st.Min).
				Dur("max", st.Max).
				Dur("average", st.Average)
		}
	}
	if len(e.Metadata) > 0 {
		ev = ev.Fields(e.Metadata.keyvals())
	}
	if e.Type.IsMessage() {
		ev.Msg(e.Message)
		return
	}
	ev.Send()
}

func (s *JSONSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func zerologLevel(t Type) zerolog.Level {
	switch t {
	case TypeTrace:
		return zerolog.TraceLevel
	case TypeDebug:
		return zerolog.DebugLevel
	case TypeWarning:
		return zerolog.WarnLevel
	case TypeError, TypeAssert:
		return zerolog.ErrorLevel
	case TypeFault:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// reportingWriter records write failures that zerolog would otherwise only
// hand to its global error handler.
type reportingWriter struct {
	w     io.Writer
	state *sinkState
}

func (r reportingWriter) Write(p []byte) (int, error) {
	n, err := r.w.Write(p)
	if err != nil {
		r.state.failed(err)
	}
	return n, err
}
