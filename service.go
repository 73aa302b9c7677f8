package scopelog

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Service is the top-level logger. It owns the scope registry, the interval
// statistics and the output pipeline every event is dispatched through.
//
// Exported fields may be set before Initialize. A nil Registry or Intervals
// gets a private instance; injecting the same instance into several services
// makes them share nesting or statistics.
type Service struct {
	WorkingDir string `di.inject:"WorkingDir"`
	Config     *Config
	// Output replaces the pipeline built from Config.
	Output     Output
	Registry   *ScopeRegistry
	Intervals  *IntervalStore
	DiagWriter io.Writer

	base          atomic.Pointer[logger]
	output        Output
	buffer        *BufferSink
	diag          atomic.Pointer[zerolog.Logger]
	categories    sync.Map
	isInitialized atomic.Bool
	initOnce      sync.Once
	initErr       error
	mu            sync.RWMutex
	wg            sync.WaitGroup
	activeOps     atomic.Int32
}

// New returns an initialized service dispatching to output with the default
// configuration.
func New(output Output) *Service {
	s := &Service{Output: output}
	if err := s.Initialize(); err != nil {
		return &Service{}
	}
	return s
}

// Initialize validates the configuration and builds the pipeline. It is safe
// to call more than once; later calls return the first result.
func (s *Service) Initialize() error {
	const op errors.Op = "scopelog.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}
	s.initOnce.Do(func() {
		s.initErr = s.initialize()
	})
	return s.initErr
}

func (s *Service) initialize() error {
	const op errors.Op = "scopelog.Service.initialize"

	cfg := s.Config
	if cfg == nil {
		if s.Output == nil {
			return errors.New(op).Msg(errMsgNilConfig)
		}
		cfg = DefaultConfig()
		s.Config = cfg
	}
	if err := validateConfig(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	level, err := parseLevel(cfg.DiagnosticsLevel)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	dw := s.DiagWriter
	if dw == nil {
		dw = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	diag := zerolog.New(dw).Level(level).With().Timestamp().Str("component", ServiceName).Logger()
	s.diag.Store(&diag)

	if s.Registry == nil {
		s.Registry = NewScopeRegistry()
	}
	if s.Intervals == nil {
		s.Intervals = NewIntervalStore()
	}

	out := s.Output
	if out == nil {
		if out, err = s.buildOutput(cfg); err != nil {
			return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
		}
	}
	attachDiagnostics(out, diag)

	s.output = out
	s.base.Store(&logger{svc: s, category: cfg.Category})
	s.isInitialized.Store(true)
	return nil
}

// attachDiagnostics walks the pipeline and hands l to every sink that
// reports its own failures.
func attachDiagnostics(o Output, l zerolog.Logger) {
	switch v := o.(type) {
	case *Pipeline:
		for _, st := range v.stages {
			attachDiagnostics(st, l)
		}
	case *ForkOutput:
		for _, out := range v.outputs {
			attachDiagnostics(out, l)
		}
	case Diagnosable:
		v.SetDiagnostics(l)
	}
}

// Close stops accepting events, waits for in-flight events up to the
// configured shutdown timeout and closes the pipeline's sinks.
// It's safe to call Close multiple times.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	if !s.isInitialized.Load() {
		s.mu.Unlock()
		return nil
	}
	s.isInitialized.Store(false)
	s.mu.Unlock()

	timeout := time.Duration(defaultShutdownTimeoutMS) * time.Millisecond
	warn := true
	if s.Config != nil {
		if s.Config.ShutdownTimeoutMS > 0 {
			timeout = time.Duration(s.Config.ShutdownTimeoutMS) * time.Millisecond
		}
		warn = s.Config.ShutdownTimeoutWarning
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		if warn {
			if l := s.diag.Load(); l != nil {
				l.Warn().Int32("active_ops", s.activeOps.Load()).Dur("timeout", timeout).Msg(errMsgShutdownTimeout)
			}
		}
	}

	if c, ok := s.output.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// acquire registers an in-flight operation. It fails once Close has started.
func (s *Service) acquire() bool {
	if s == nil || !s.isInitialized.Load() {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isInitialized.Load() {
		return false
	}
	s.activeOps.Inc()
	s.wg.Add(1)
	return true
}

func (s *Service) release() {
	s.activeOps.Dec()
	s.wg.Done()
}

func (s *Service) dispatch(e *Event) {
	if s.output != nil {
		s.output.Log(e)
	}
}

func (s *Service) registry() *ScopeRegistry {
	if s == nil {
		return nil
	}
	return s.Registry
}

func (s *Service) intervals() *IntervalStore {
	if s == nil {
		return nil
	}
	return s.Intervals
}

func (s *Service) root() *logger {
	if s == nil {
		return nil
	}
	return s.base.Load()
}

// Category returns a logger emitting under name. Loggers are cached per name.
func (s *Service) Category(name string) Logger {
	root := s.root()
	if root == nil {
		return &logger{}
	}
	if v, ok := s.categories.Load(name); ok {
		return v.(*logger)
	}
	v, _ := s.categories.LoadOrStore(name, &logger{svc: s, category: name, meta: root.meta})
	return v.(*logger)
}

// ScopeDepth returns the deepest active scope level.
func (s *Service) ScopeDepth() int {
	if reg := s.registry(); reg != nil {
		return reg.Depth()
	}
	return 0
}

// IntervalStats returns a copy of all accumulated interval statistics.
func (s *Service) IntervalStats() map[string]IntervalStats {
	if store := s.intervals(); store != nil {
		return store.All()
	}
	return map[string]IntervalStats{}
}

// Recent returns the events held by the configured buffer sink, oldest first.
func (s *Service) Recent() []*Event {
	if s == nil || s.buffer == nil {
		return nil
	}
	return s.buffer.Events()
}

func (s *Service) Log(msg string)     { s.root().message(TypeLog, callerLocation(), nil, msg) }
func (s *Service) Trace(msg string)   { s.root().message(TypeTrace, callerLocation(), nil, msg) }
func (s *Service) Debug(msg string)   { s.root().message(TypeDebug, callerLocation(), nil, msg) }
func (s *Service) Info(msg string)    { s.root().message(TypeInfo, callerLocation(), nil, msg) }
func (s *Service) Warning(msg string) { s.root().message(TypeWarning, callerLocation(), nil, msg) }
func (s *Service) Error(msg string)   { s.root().message(TypeError, callerLocation(), nil, msg) }
func (s *Service) Fault(msg string)   { s.root().message(TypeFault, callerLocation(), nil, msg) }

func (s *Service) Assert(cond bool, msg string) { s.root().Assert(cond, msg) }

func (s *Service) LogWith() LogEvent     { return s.root().entry(TypeLog) }
func (s *Service) TraceWith() LogEvent   { return s.root().entry(TypeTrace) }
func (s *Service) DebugWith() LogEvent   { return s.root().entry(TypeDebug) }
func (s *Service) InfoWith() LogEvent    { return s.root().entry(TypeInfo) }
func (s *Service) WarningWith() LogEvent { return s.root().entry(TypeWarning) }
func (s *Service) ErrorWith() LogEvent   { return s.root().entry(TypeError) }
func (s *Service) FaultWith() LogEvent   { return s.root().entry(TypeFault) }

func (s *Service) Entry(t Type) LogEvent { return s.root().Entry(t) }

func (s *Service) With() LogContext { return s.root().With() }

func (s *Service) Scope(name string) *Scope { return s.root().Scope(name) }

func (s *Service) ScopeFunc(name string, fn func(*Scope)) { s.root().ScopeFunc(name, fn) }

func (s *Service) Interval(name string) *Interval { return s.root().Interval(name) }

func (s *Service) IntervalFunc(name string, fn func()) { s.root().IntervalFunc(name, fn) }

func (s *Service) Dump(v any) { s.root().Dump(v) }
