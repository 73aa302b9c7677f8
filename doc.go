// Package scopelog is a structured logger that nests events inside named
// scopes and times recurring operations with intervals.
//
// Key features
//   - Scopes: Enter and Leave bracket a block; messages logged through an
//     entered scope are rendered one level below it with a tree column
//   - Intervals: Begin and End measure an operation; every interval created
//     on the same source line accumulates count, total, min, max and average
//   - Output pipeline: Pipe chains filter stages in front of sinks and Fork
//     fans one event out to several sinks concurrently
//   - Sinks for the console, rolling files (lumberjack), JSON (zerolog),
//     NATS broadcast, syslog and an in-memory ring buffer
//   - Error history enrichment: for any Err/AnErr the event carries the
//     full error chain, the root cause, a joined history and the operations
//     chain when Station-Manager DetailedError is used
//   - Graceful shutdown that waits for in-flight events (bounded timeout)
//
// Typical usage
//
//	svc := &scopelog.Service{WorkingDir: dir, Config: scopelog.DefaultConfig()}
//	if err := svc.Initialize(); err != nil { panic(err) }
//	defer svc.Close()
//
//	sc := svc.Scope("load")
//	sc.Enter()
//	sc.InfoWith().Str("file", name).Msg("reading")
//	iv := sc.Interval("parse")
//	iv.Begin()
//	parse()
//	iv.End()
//	sc.Leave()
//
// Bridges for logr, zap, logrus and go-kit live under adapter/.
package scopelog
