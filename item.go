package scopelog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the kind of an event.
type Type int

const (
	TypeLog Type = iota
	TypeTrace
	TypeDebug
	TypeInfo
	TypeWarning
	TypeError
	TypeAssert
	TypeFault
	TypeIntervalBegin
	TypeIntervalEnd
	TypeScopeEnter
	TypeScopeLeave
)

var typeTitles = [...]string{
	TypeLog:           "LOG",
	TypeTrace:         "TRACE",
	TypeDebug:         "DEBUG",
	TypeInfo:          "INFO",
	TypeWarning:       "WARNING",
	TypeError:         "ERROR",
	TypeAssert:        "ASSERT",
	TypeFault:         "FAULT",
	TypeIntervalBegin: "INTERVAL",
	TypeIntervalEnd:   "INTERVAL",
	TypeScopeEnter:    "SCOPE",
	TypeScopeLeave:    "SCOPE",
}

var typeIcons = [...]string{
	TypeLog:           "💬",
	TypeTrace:         "#️⃣",
	TypeDebug:         "▶️",
	TypeInfo:          "✅",
	TypeWarning:       "⚠️",
	TypeError:         "⚠️",
	TypeAssert:        "🅰️",
	TypeFault:         "🆘",
	TypeIntervalBegin: "🕒",
	TypeIntervalEnd:   "🕒",
	TypeScopeEnter:    "⬇️",
	TypeScopeLeave:    "⬆️",
}

// String returns the title used in rendered output.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeTitles) {
		return "UNKNOWN"
	}
	return typeTitles[t]
}

// Icon returns the emoji shown by the emoji style.
func (t Type) Icon() string {
	if t < 0 || int(t) >= len(typeIcons) {
		return emptyString
	}
	return typeIcons[t]
}

// IsMessage reports whether t is one of the ordinary message kinds.
func (t Type) IsMessage() bool {
	return t >= TypeLog && t <= TypeFault
}

// IsScope reports whether t is a scope transition.
func (t Type) IsScope() bool {
	return t == TypeScopeEnter || t == TypeScopeLeave
}

// IsInterval reports whether t is an interval transition.
func (t Type) IsInterval() bool {
	return t == TypeIntervalBegin || t == TypeIntervalEnd
}

// ParseType parses a message type title such as "info" or "WARNING".
// Only ordinary message kinds are accepted.
func ParseType(s string) (Type, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t := TypeLog; t <= TypeFault; t++ {
		if typeTitles[t] == s {
			return t, true
		}
	}
	return TypeLog, false
}

// Location is the source position an event was emitted from.
type Location struct {
	File     string `json:"file" msgpack:"file"`
	Function string `json:"function" msgpack:"function"`
	Line     int    `json:"line" msgpack:"line"`
}

// FileName returns the base name of File.
func (l Location) FileName() string {
	if l.File == emptyString {
		return emptyString
	}
	return filepath.Base(l.File)
}

// ScopeInfo describes the scope of a scope enter/leave event.
type ScopeInfo struct {
	ID       uuid.UUID     `json:"id" msgpack:"id"`
	Name     string        `json:"name" msgpack:"name"`
	Duration time.Duration `json:"duration" msgpack:"duration"`
}

// IntervalInfo describes the interval of an interval begin/end event.
type IntervalInfo struct {
	Name     string        `json:"name" msgpack:"name"`
	Duration time.Duration `json:"duration" msgpack:"duration"`
	Stats    IntervalStats `json:"stats" msgpack:"stats"`
}

// Event is an immutable snapshot of one log item. Level is the event's own
// nesting level (0 outside any scope) and Stack[i] reports whether a scope was
// active at level i+1 when the event was built.
//
// Outputs receive *Event and must treat it as read-only.
type Event struct {
	Time     time.Time     `json:"time" msgpack:"time"`
	Category string        `json:"category" msgpack:"category"`
	Type     Type          `json:"type" msgpack:"type"`
	Location Location      `json:"location" msgpack:"location"`
	Level    int           `json:"level" msgpack:"level"`
	Stack    []bool        `json:"stack,omitempty" msgpack:"stack,omitempty"`
	Metadata Metadata      `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
	Message  string        `json:"message" msgpack:"message"`
	Scope    *ScopeInfo    `json:"scope,omitempty" msgpack:"scope,omitempty"`
	Interval *IntervalInfo `json:"interval,omitempty" msgpack:"interval,omitempty"`
}

// newEvent builds an event from a position in the scope tree. The stack and
// metadata are copied so later changes to either never reach the event.
func newEvent(category string, typ Type, loc Location, level int, stack []bool, md Metadata, msg string) *Event {
	var st []bool
	if len(stack) > 0 {
		st = make([]bool, len(stack))
		copy(st, stack)
	}
	return &Event{
		Time:     time.Now(),
		Category: category,
		Type:     typ,
		Location: loc,
		Level:    level,
		Stack:    st,
		Metadata: md.clone(),
		Message:  msg,
	}
}

// Occupied reports whether a scope was active at level when e was built.
func (e *Event) Occupied(level int) bool {
	if level < 1 || level > len(e.Stack) {
		return false
	}
	return e.Stack[level-1]
}
