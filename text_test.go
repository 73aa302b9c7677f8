package scopelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

func fixedEvent(t Type, level int, stack ...bool) *Event {
	return &Event{
		Time:     fixedTime,
		Category: "APP",
		Type:     t,
		Location: Location{File: "/src/app/main.go", Function: "main.run", Line: 42},
		Level:    level,
		Stack:    stack,
		Message:  "hello",
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
		want  string
	}{
		{"root message", fixedEvent(TypeInfo, 0), ""},
		{"first level enter", fixedEvent(TypeScopeEnter, 1, true), "┌"},
		{"message in scope", fixedEvent(TypeInfo, 2, true), "│ ├"},
		{"leave at level two", fixedEvent(TypeScopeLeave, 2, true, true), "│ └"},
		{"gap below", fixedEvent(TypeDebug, 4, true, false, true), "│   │ ├"},
		{"interval begin", fixedEvent(TypeIntervalBegin, 3, false, true), "  │ ┌"},
		{"short stack", fixedEvent(TypeInfo, 3), "    ├"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Padding(tt.event))
		})
	}
	assert.Empty(t, Padding(nil))
}

func TestTextFormatter_Plain(t *testing.T) {
	f := NewTextFormatter(StylePlain)

	t.Run("message", func(t *testing.T) {
		e := fixedEvent(TypeInfo, 2, true)
		e.Metadata = Metadata{{Key: "k", Value: "v"}, {Key: "n", Value: 1}}
		assert.Equal(t, `• 03:04:05.006 [APP] │ ├ [INFO] <main.go:42> {"k":"v","n":1} hello`, f.Format(e))
	})

	t.Run("scope leave", func(t *testing.T) {
		e := fixedEvent(TypeScopeLeave, 1, true)
		e.Scope = &ScopeInfo{Name: "load", Duration: 1500 * time.Millisecond}
		assert.Equal(t, `• 03:04:05.006 [APP] └ [SCOPE:load] <main.go:42> {"duration":"1.5s"}`, f.Format(e))
	})

	t.Run("scope enter", func(t *testing.T) {
		e := fixedEvent(TypeScopeEnter, 1, true)
		e.Scope = &ScopeInfo{Name: "load"}
		assert.Equal(t, `• 03:04:05.006 [APP] ┌ [SCOPE:load] <main.go:42>`, f.Format(e))
	})

	t.Run("interval end", func(t *testing.T) {
		e := fixedEvent(TypeIntervalEnd, 0)
		e.Interval = &IntervalInfo{
			Name:     "parse",
			Duration: 250 * time.Millisecond,
			Stats:    IntervalStats{Count: 2, Total: 400 * time.Millisecond, Average: 200 * time.Millisecond},
		}
		assert.Equal(t, `• 03:04:05.006 [APP] [INTERVAL:parse] <main.go:42> {"duration":"250ms","average":"200ms"}`, f.Format(e))

		all := *f
		all.IntervalOptions = IntervalCount | IntervalTotal
		assert.Equal(t, `• 03:04:05.006 [APP] [INTERVAL:parse] <main.go:42> {"count":2,"total":"400ms"}`, all.Format(e))
	})

	t.Run("options", func(t *testing.T) {
		e := fixedEvent(TypeWarning, 1, true)
		compact := &TextFormatter{Options: OptionsCompact, Sign: "•"}
		assert.Equal(t, "• 03:04:05.006 hello", compact.Format(e))

		level := &TextFormatter{Options: OptionLevel | OptionType}
		assert.Equal(t, "[01] [WARNING] hello", level.Format(e))
	})
}

func TestTextFormatter_Styles(t *testing.T) {
	e := fixedEvent(TypeInfo, 0)

	emoji := NewTextFormatter(StyleEmoji)
	assert.Contains(t, emoji.Format(e), "✅ [INFO]")

	colored := NewTextFormatter(StyleColored)
	out := colored.Format(e)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, " INFO ")
	assert.Contains(t, out, "hello")

	var nilFormatter *TextFormatter
	assert.Contains(t, nilFormatter.Format(e), "[INFO]")
}

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, OptionsRegular, o)

	o, err = ParseOptions([]string{"time", " Level "})
	require.NoError(t, err)
	assert.Equal(t, OptionTime|OptionLevel, o)

	_, err = ParseOptions([]string{"bogus"})
	assert.Error(t, err)

	iopts, err := ParseIntervalOptions([]string{"min", "max"})
	require.NoError(t, err)
	assert.Equal(t, IntervalMin|IntervalMax, iopts)

	iopts, err = ParseIntervalOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, IntervalCompact, iopts)

	_, err = ParseIntervalOptions([]string{"median"})
	assert.Error(t, err)
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{"": StylePlain, "plain": StylePlain, "EMOJI": StyleEmoji, "colored": StyleColored, "color": StyleColored} {
		got, ok := ParseStyle(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseStyle("neon")
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "250µs", FormatDuration(250*time.Microsecond))
	assert.Equal(t, "1ms", FormatDuration(1234*time.Microsecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
}

func TestType(t *testing.T) {
	assert.Equal(t, "WARNING", TypeWarning.String())
	assert.Equal(t, "UNKNOWN", Type(99).String())
	assert.True(t, TypeFault.IsMessage())
	assert.False(t, TypeScopeEnter.IsMessage())
	assert.True(t, TypeScopeLeave.IsScope())
	assert.True(t, TypeIntervalBegin.IsInterval())

	typ, ok := ParseType("info")
	assert.True(t, ok)
	assert.Equal(t, TypeInfo, typ)
	_, ok = ParseType("scope")
	assert.False(t, ok)
}
