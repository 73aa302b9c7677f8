package scopelog

import (
	"io"
	"os"
	"sync"
)

// StdSink writes formatted lines to a stream, stdout by default. Interval
// begin events are skipped; the end event carries the statistics.
type StdSink struct {
	sinkState
	mu        sync.Mutex
	w         io.Writer
	formatter *TextFormatter
}

// NewStdSink returns a sink writing to w, or to os.Stdout when w is nil.
func NewStdSink(w io.Writer, f *TextFormatter) *StdSink {
	if w == nil {
		w = os.Stdout
	}
	if f == nil {
		f = NewTextFormatter(StylePlain)
	}
	return &StdSink{sinkState: sinkState{name: "std"}, w: w, formatter: f}
}

func (s *StdSink) Log(e *Event) {
	if e.Type == TypeIntervalBegin {
		return
	}
	line := s.formatter.Format(e) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line); err != nil {
		s.fail(e, err)
	}
}
