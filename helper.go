package scopelog

import (
	stderrs "errors"
	"runtime"
	"strconv"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// parseLevel parses a string log level into a zerolog.Level.
// An empty string yields zerolog.WarnLevel.
func parseLevel(level string) (zerolog.Level, error) {
	if level == emptyString {
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, emptyString)
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}

// errorFields returns the fields recorded for err under key.
func errorFields(key string, err error) []Field {
	fields := []Field{{Key: key, Value: err}}
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) == 0 {
		return fields
	}
	fields = append(fields,
		Field{Key: key + "_chain", Value: chain},
		Field{Key: key + "_root", Value: root},
		Field{Key: key + "_history", Value: joinChain(chain)},
		Field{Key: key + "_ops", Value: ops},
	)
	if rootOp != emptyString {
		fields = append(fields, Field{Key: key + "_root_op", Value: rootOp})
	}
	return fields
}

// packagePrefix is the function name prefix of this package, e.g.
// "github.com/Station-Manager/scopelog.".
var packagePrefix = func() string {
	pc, _, _, _ := runtime.Caller(0)
	name := runtime.FuncForPC(pc).Name()
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	return name[:slash+1+dot+1]
}()

// bridgePrefixes are logging front ends whose frames sit between a caller and
// this package when one of the bridges is in use.
var bridgePrefixes = []string{
	"github.com/go-logr/logr.",
	"go.uber.org/zap.",
	"go.uber.org/zap/zapcore.",
	"github.com/sirupsen/logrus.",
	"github.com/go-kit/kit/log.",
}

// adapterPrefix covers the bridge packages under adapter/.
var adapterPrefix = strings.TrimSuffix(packagePrefix, ".") + "/adapter/"

func skipFrame(f runtime.Frame) bool {
	if strings.HasPrefix(f.Function, packagePrefix) || strings.HasPrefix(f.Function, adapterPrefix) {
		return !strings.HasSuffix(f.File, "_test.go")
	}
	for _, p := range bridgePrefixes {
		if strings.HasPrefix(f.Function, p) {
			return true
		}
	}
	return false
}

// callerLocation returns the first frame outside this package and the
// supported logging front ends.
func callerLocation() Location {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !skipFrame(f) {
			return Location{File: f.File, Function: f.Function, Line: f.Line}
		}
		if !more {
			return Location{File: f.File, Function: f.Function, Line: f.Line}
		}
	}
}

// shortFunction strips the package path from a fully qualified function name.
func shortFunction(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// goroutineID parses the current goroutine id from its stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
