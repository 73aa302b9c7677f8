package scopelog

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Station-Manager/errors"
)

// buildOutput assembles the configured pipeline:
// severity filter, optional category filter, then a fork over every sink.
func (s *Service) buildOutput(cfg *Config) (Output, error) {
	const op errors.Op = "scopelog.Service.buildOutput"

	sinks, err := s.initializeSinks(cfg)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	stages := make([]Output, 0, 3)
	if cfg.MinType != emptyString {
		if t, ok := ParseType(cfg.MinType); ok && t > TypeLog {
			stages = append(stages, MinType(t))
		}
	}
	if len(cfg.Categories) > 0 {
		stages = append(stages, ByCategory(cfg.Categories...))
	}
	stages = append(stages, Fork(sinks...))
	return Pipe(stages...), nil
}

func newFormatter(cfg *Config) (*TextFormatter, error) {
	style, _ := ParseStyle(cfg.Style)
	f := NewTextFormatter(style)

	opts, err := ParseOptions(cfg.Options)
	if err != nil {
		return nil, err
	}
	iopts, err := ParseIntervalOptions(cfg.IntervalOptions)
	if err != nil {
		return nil, err
	}
	f.Options = opts
	f.IntervalOptions = iopts
	return f, nil
}

func (s *Service) initializeSinks(cfg *Config) (sinks []Output, err error) {
	formatter, err := newFormatter(cfg)
	if err != nil {
		return nil, err
	}
	plain := *formatter
	plain.Style = StylePlain

	// If every sink is disabled, enable the console
	if !cfg.Console.Enabled && !cfg.File.Enabled && !cfg.JSON.Enabled &&
		!cfg.NATS.Enabled && !cfg.Syslog.Enabled && !cfg.Buffer.Enabled {
		cfg.Console.Enabled = true
	}

	defer func() {
		if err != nil {
			_ = closeOutputs(sinks)
			sinks = nil
		}
	}()

	if cfg.Console.Enabled {
		var w io.Writer = os.Stdout
		if cfg.Console.Stderr {
			w = os.Stderr
		}
		sinks = append(sinks, NewStdSink(w, formatter))
	}

	if cfg.File.Enabled {
		var fs *FileSink
		if fs, err = NewFileSink(s.logFilePath(cfg), FileOptions{
			MaxSizeMB:  cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAgeDays: cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
			Lock:       cfg.File.Lock,
		}, &plain); err != nil {
			return sinks, err
		}
		sinks = append(sinks, fs)
	}

	if cfg.JSON.Enabled {
		var w io.Writer
		if w, err = s.openJSONFile(cfg.JSON.RelPath); err != nil {
			return sinks, err
		}
		sinks = append(sinks, NewJSONSink(w, JSONOptions{Console: cfg.JSON.Console, NoColor: cfg.JSON.NoColor}))
	}

	if cfg.NATS.Enabled {
		var ns *NATSSink
		if ns, err = NewNATSSink(cfg.NATS.URL, NATSOptions{
			Subject:       cfg.NATS.Subject,
			Format:        cfg.NATS.Format,
			BufferSize:    cfg.NATS.BufferSize,
			Name:          cfg.NATS.Name,
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: time.Duration(cfg.NATS.ReconnectWait) * time.Millisecond,
			Formatter:     &plain,
		}); err != nil {
			return sinks, err
		}
		sinks = append(sinks, ns)
	}

	if cfg.Syslog.Enabled {
		var ss *SyslogSink
		if ss, err = NewSyslogSink(cfg.Syslog.Network, cfg.Syslog.Address, cfg.Syslog.Tag); err != nil {
			return sinks, err
		}
		sinks = append(sinks, ss)
	}

	if cfg.Buffer.Enabled {
		s.buffer = NewBufferSink(cfg.Buffer.Size)
		sinks = append(sinks, s.buffer)
	}

	return sinks, nil
}

func (s *Service) logFilePath(cfg *Config) string {
	name := cfg.File.FileName
	if name == emptyString {
		name = defaultLogFileName
	}
	return filepath.Join(s.WorkingDir, cfg.File.RelLogFileDir, name)
}

// openJSONFile opens relPath under the working directory for appending. An
// empty path selects stdout.
func (s *Service) openJSONFile(relPath string) (io.Writer, error) {
	const op errors.Op = "scopelog.Service.openJSONFile"
	if relPath == emptyString {
		return os.Stdout, nil
	}
	path := filepath.Join(s.WorkingDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgLogDir)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgJSONFile)
	}
	return f, nil
}
