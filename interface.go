package scopelog

// Logger is implemented by the Service, by category and context loggers and
// by scopes. Messages logged through an entered scope are nested under it.
type Logger interface {
	Log(msg string)
	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	Fault(msg string)
	// Assert logs msg only when cond is false.
	Assert(cond bool, msg string)

	// Structured variants. Nothing is emitted until Msg, Msgf or Send.
	LogWith() LogEvent
	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarningWith() LogEvent
	ErrorWith() LogEvent
	FaultWith() LogEvent
	Entry(t Type) LogEvent

	// With for context logger creation
	// Creates a new logger with pre-populated fields that will be included in all subsequent logs
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext

	Scope(name string) *Scope
	ScopeFunc(name string, fn func(*Scope))
	Interval(name string) *Interval
	IntervalFunc(name string, fn func())

	Dump(v any)
}
