package scopelog

// logger is the emitting core shared by the Service, categories, context
// loggers and scopes. A zero logger, or one whose service is closed, drops
// everything.
type logger struct {
	svc      *Service
	category string
	meta     Metadata
	scope    *Scope
}

func (l *logger) service() *Service {
	if l == nil {
		return nil
	}
	return l.svc
}

// position returns the level and ancestor bitmap for an ordinary message.
// Messages nest one level below the innermost entered scope; outside any
// entered scope they are not nested.
func (l *logger) position() (int, []bool) {
	if l == nil {
		return 0, nil
	}
	reg := l.svc.registry()
	if reg == nil {
		return 0, nil
	}
	for sc := l.scope; sc != nil; sc = sc.parent {
		if level := sc.Level(); level > 0 {
			return level + 1, reg.Stack(level)
		}
	}
	return 0, nil
}

// message emits one ordinary message.
func (l *logger) message(t Type, loc Location, md Metadata, msg string) {
	svc := l.service()
	if !svc.acquire() {
		return
	}
	defer svc.release()
	l.emit(t, loc, md, msg)
}

// emit builds and dispatches a message. The caller holds an acquired
// operation on the service.
func (l *logger) emit(t Type, loc Location, md Metadata, msg string) {
	if t == TypeTrace {
		fn := shortFunction(loc.Function)
		if msg == emptyString {
			msg = fn
		}
		md = append(Metadata{{Key: "func", Value: fn}, {Key: "goroutine", Value: goroutineID()}}, md...)
	}
	meta := l.meta
	if len(md) > 0 {
		meta = l.meta.with(md...)
	}
	level, stack := l.position()
	l.svc.dispatch(newEvent(l.category, t, loc, level, stack, meta, msg))
}

func (l *logger) Log(msg string)     { l.message(TypeLog, callerLocation(), nil, msg) }
func (l *logger) Trace(msg string)   { l.message(TypeTrace, callerLocation(), nil, msg) }
func (l *logger) Debug(msg string)   { l.message(TypeDebug, callerLocation(), nil, msg) }
func (l *logger) Info(msg string)    { l.message(TypeInfo, callerLocation(), nil, msg) }
func (l *logger) Warning(msg string) { l.message(TypeWarning, callerLocation(), nil, msg) }
func (l *logger) Error(msg string)   { l.message(TypeError, callerLocation(), nil, msg) }
func (l *logger) Fault(msg string)   { l.message(TypeFault, callerLocation(), nil, msg) }

func (l *logger) Assert(cond bool, msg string) {
	if cond {
		return
	}
	l.message(TypeAssert, callerLocation(), nil, msg)
}

func (l *logger) LogWith() LogEvent     { return l.entry(TypeLog) }
func (l *logger) TraceWith() LogEvent   { return l.entry(TypeTrace) }
func (l *logger) DebugWith() LogEvent   { return l.entry(TypeDebug) }
func (l *logger) InfoWith() LogEvent    { return l.entry(TypeInfo) }
func (l *logger) WarningWith() LogEvent { return l.entry(TypeWarning) }
func (l *logger) ErrorWith() LogEvent   { return l.entry(TypeError) }
func (l *logger) FaultWith() LogEvent   { return l.entry(TypeFault) }

// Entry starts a structured event of type t. Scope and interval types are
// not messages and yield a no-op event.
func (l *logger) Entry(t Type) LogEvent {
	if !t.IsMessage() {
		return newLogEvent(nil)
	}
	return l.entry(t)
}

// entry uses reference counting to keep the service open until the event is
// sent, preventing races with Close().
func (l *logger) entry(t Type) LogEvent {
	svc := l.service()
	if !svc.acquire() {
		return newLogEvent(nil)
	}
	return newTrackedLogEvent(l, t, callerLocation())
}

func (l *logger) With() LogContext {
	svc := l.service()
	if svc == nil || !svc.isInitialized.Load() {
		return &noopLogContext{}
	}
	return &logContext{base: l}
}

// Scope creates a detached scope nested under l. It joins the scope tree on
// Enter.
func (l *logger) Scope(name string) *Scope {
	return newScope(l, name)
}

// ScopeFunc runs fn inside a new entered scope.
func (l *logger) ScopeFunc(name string, fn func(*Scope)) {
	sc := newScope(l, name)
	sc.Enter()
	defer sc.Leave()
	fn(sc)
}

// Interval returns the interval identified by name and the calling line.
// Intervals created on the same line share statistics.
func (l *logger) Interval(name string) *Interval {
	return newInterval(l, name, callerLocation())
}

// IntervalFunc measures one run of fn.
func (l *logger) IntervalFunc(name string, fn func()) {
	iv := newInterval(l, name, callerLocation())
	iv.Begin()
	defer iv.End()
	fn()
}
