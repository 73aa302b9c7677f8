package scopelog

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/gofrs/flock"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures rotation for a FileSink.
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Lock guards every write with an advisory lock on "<path>.lock" so
	// several processes can share one log file.
	Lock bool
}

// FileSink appends formatted lines to a rolling log file. Interval begin
// events are skipped.
type FileSink struct {
	sinkState
	mu        sync.Mutex
	writer    *lumberjack.Logger
	lock      *flock.Flock
	formatter *TextFormatter
}

// NewFileSink creates the directory of path if needed and returns a sink
// rotating the file with lumberjack.
func NewFileSink(path string, opts FileOptions, f *TextFormatter) (*FileSink, error) {
	const op errors.Op = "scopelog.NewFileSink"
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgLogDir)
	}
	if f == nil {
		f = NewTextFormatter(StylePlain)
	}

	s := &FileSink{
		sinkState: sinkState{name: "file"},
		writer: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		},
		formatter: f,
	}
	if opts.Lock {
		s.lock = flock.New(path + ".lock")
	}
	return s, nil
}

func (s *FileSink) Log(e *Event) {
	const op errors.Op = "scopelog.FileSink.Log"
	if e.Type == TypeIntervalBegin {
		return
	}
	line := s.formatter.Format(e) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			s.fail(e, errors.New(op).Err(err).Msg(errMsgLockFile))
			return
		}
		defer func() {
			if err := s.lock.Unlock(); err != nil {
				s.fail(e, err)
			}
		}()
	}
	if _, err := io.WriteString(s.writer, line); err != nil {
		s.fail(e, err)
	}
}

// Path returns the active log file.
func (s *FileSink) Path() string {
	return s.writer.Filename
}

// Writer exposes the rotating writer.
func (s *FileSink) Writer() *lumberjack.Logger {
	return s.writer
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.writer.Close()
	if s.lock != nil {
		if uerr := s.lock.Close(); uerr != nil && err == nil {
			err = uerr
		}
	}
	return err
}
