package scopelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/fatih/color"
)

// Style selects how a TextFormatter decorates its output.
type Style int

const (
	StylePlain Style = iota
	StyleEmoji
	StyleColored
)

// ParseStyle parses "plain", "emoji" or "colored". An empty string is plain.
func ParseStyle(s string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case emptyString, "plain":
		return StylePlain, true
	case "emoji":
		return StyleEmoji, true
	case "colored", "color":
		return StyleColored, true
	}
	return StylePlain, false
}

// Options selects the parts of a rendered line.
type Options uint

const (
	OptionSign Options = 1 << iota
	OptionTime
	OptionLevel
	OptionCategory
	OptionPadding
	OptionType
	OptionLocation
	OptionMetadata

	OptionsCompact = OptionSign | OptionTime
	OptionsRegular = OptionSign | OptionTime | OptionCategory | OptionPadding | OptionType | OptionLocation | OptionMetadata
	OptionsAll     = OptionsRegular | OptionLevel
)

var optionNames = map[string]Options{
	"sign":     OptionSign,
	"time":     OptionTime,
	"level":    OptionLevel,
	"category": OptionCategory,
	"padding":  OptionPadding,
	"type":     OptionType,
	"location": OptionLocation,
	"metadata": OptionMetadata,
	"compact":  OptionsCompact,
	"regular":  OptionsRegular,
	"all":      OptionsAll,
}

// ParseOptions combines option names. An empty list yields OptionsRegular.
func ParseOptions(names []string) (Options, error) {
	const op errors.Op = "scopelog.ParseOptions"
	if len(names) == 0 {
		return OptionsRegular, nil
	}
	var o Options
	for _, n := range names {
		v, ok := optionNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, errors.New(op).Errorf("unknown option %q", n)
		}
		o |= v
	}
	return o, nil
}

// IntervalOptions selects the statistics shown for interval events.
type IntervalOptions uint

const (
	IntervalDuration IntervalOptions = 1 << iota
	IntervalCount
	IntervalTotal
	IntervalMin
	IntervalMax
	IntervalAverage

	IntervalCompact = IntervalDuration | IntervalAverage
	IntervalRegular = IntervalDuration | IntervalAverage | IntervalCount | IntervalTotal
	IntervalAll     = IntervalRegular | IntervalMin | IntervalMax
)

var intervalOptionNames = map[string]IntervalOptions{
	"duration": IntervalDuration,
	"count":    IntervalCount,
	"total":    IntervalTotal,
	"min":      IntervalMin,
	"max":      IntervalMax,
	"average":  IntervalAverage,
	"compact":  IntervalCompact,
	"regular":  IntervalRegular,
	"all":      IntervalAll,
}

// ParseIntervalOptions combines interval option names. An empty list yields
// IntervalCompact.
func ParseIntervalOptions(names []string) (IntervalOptions, error) {
	const op errors.Op = "scopelog.ParseIntervalOptions"
	if len(names) == 0 {
		return IntervalCompact, nil
	}
	var o IntervalOptions
	for _, n := range names {
		v, ok := intervalOptionNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, errors.New(op).Errorf("unknown interval option %q", n)
		}
		o |= v
	}
	return o, nil
}

const (
	glyphBar   = "│ "
	glyphBlank = "  "
	glyphOpen  = "┌"
	glyphClose = "└"
	glyphItem  = "├"

	timeLayout = "15:04:05.000"
)

// Padding draws the scope tree column for e. Levels below e.Level show a bar
// when a scope was active there and blank space otherwise; e.Level itself
// shows the leaf glyph for the event kind.
func Padding(e *Event) string {
	if e == nil || e.Level <= 0 {
		return emptyString
	}
	var b strings.Builder
	for level := 1; level < e.Level; level++ {
		if e.Occupied(level) {
			b.WriteString(glyphBar)
		} else {
			b.WriteString(glyphBlank)
		}
	}
	b.WriteString(leafGlyph(e.Type))
	return b.String()
}

func leafGlyph(t Type) string {
	switch t {
	case TypeScopeEnter, TypeIntervalBegin:
		return glyphOpen
	case TypeScopeLeave, TypeIntervalEnd:
		return glyphClose
	default:
		return glyphItem
	}
}

type tag struct {
	text  *color.Color
	label *color.Color
}

func newTag(text []color.Attribute, label ...color.Attribute) tag {
	t := tag{text: color.New(text...), label: color.New(label...)}
	t.text.EnableColor()
	t.label.EnableColor()
	return t
}

var (
	dim  = enabled(color.New(color.Faint))
	blue = enabled(color.New(color.FgBlue))

	tags = map[Type]tag{
		TypeLog:           newTag([]color.Attribute{color.FgWhite}, color.BgWhite, color.FgBlack),
		TypeTrace:         newTag([]color.Attribute{color.FgCyan}, color.BgCyan, color.FgBlack),
		TypeDebug:         newTag([]color.Attribute{color.FgCyan}, color.BgCyan, color.FgBlack),
		TypeInfo:          newTag([]color.Attribute{color.FgGreen}, color.BgGreen, color.FgWhite),
		TypeWarning:       newTag([]color.Attribute{color.FgYellow}, color.BgYellow, color.FgBlack),
		TypeError:         newTag([]color.Attribute{color.FgYellow}, color.BgYellow, color.FgBlack),
		TypeAssert:        newTag([]color.Attribute{color.FgRed}, color.BgRed, color.FgWhite),
		TypeFault:         newTag([]color.Attribute{color.FgRed}, color.BgRed, color.FgWhite, color.BlinkSlow),
		TypeIntervalBegin: newTag([]color.Attribute{color.FgGreen}, color.BgGreen, color.FgBlack),
		TypeIntervalEnd:   newTag([]color.Attribute{color.FgGreen}, color.BgGreen, color.FgBlack),
		TypeScopeEnter:    newTag([]color.Attribute{color.FgMagenta}, color.BgMagenta, color.FgBlack),
		TypeScopeLeave:    newTag([]color.Attribute{color.FgMagenta}, color.BgMagenta, color.FgBlack),
	}
)

func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// TextFormatter renders events as single text lines.
type TextFormatter struct {
	Style           Style
	Options         Options
	IntervalOptions IntervalOptions
	Sign            string
}

// NewTextFormatter returns a formatter with the regular option set.
func NewTextFormatter(style Style) *TextFormatter {
	return &TextFormatter{
		Style:           style,
		Options:         OptionsRegular,
		IntervalOptions: IntervalCompact,
		Sign:            "•",
	}
}

// Format renders e without a trailing newline.
func (f *TextFormatter) Format(e *Event) string {
	if f == nil {
		f = NewTextFormatter(StylePlain)
	}

	sign := f.Sign
	ts := e.Time.Format(timeLayout)
	level := fmt.Sprintf("[%02d]", e.Level)
	category := "[" + e.Category + "]"
	padding := Padding(e)
	typ := "[" + typeLabel(e) + "]"
	location := fmt.Sprintf("<%s:%d>", e.Location.FileName(), e.Location.Line)
	metadata := e.Metadata.String()
	data := f.data(e).String()
	message := e.Message
	if !e.Type.IsMessage() {
		message = emptyString
	}

	switch f.Style {
	case StyleEmoji:
		typ = e.Type.Icon() + " " + typ
	case StyleColored:
		t := tags[e.Type]
		sign = dim.Sprint(sign)
		ts = dim.Sprint(ts)
		level = dim.Sprint(level)
		category = blue.Sprint(category)
		typ = t.label.Sprint(" " + typeLabel(e) + " ")
		location = dim.Sprint(t.text.Sprint(location))
		if metadata != emptyString {
			metadata = dim.Sprint(metadata)
		}
		if data != emptyString {
			data = dim.Sprint(data)
		}
		if message != emptyString {
			message = t.text.Sprint(message)
		}
	}

	parts := make([]string, 0, 10)
	add := func(o Options, s string) {
		if f.Options&o != 0 && s != emptyString {
			parts = append(parts, s)
		}
	}
	add(OptionSign, sign)
	add(OptionTime, ts)
	add(OptionLevel, level)
	add(OptionCategory, category)
	add(OptionPadding, padding)
	add(OptionType, typ)
	add(OptionLocation, location)
	add(OptionMetadata, metadata)
	if data != emptyString {
		parts = append(parts, data)
	}
	if message != emptyString {
		parts = append(parts, message)
	}
	return strings.Join(parts, " ")
}

func typeLabel(e *Event) string {
	switch {
	case e.Scope != nil:
		return e.Type.String() + ":" + e.Scope.Name
	case e.Interval != nil:
		return e.Type.String() + ":" + e.Interval.Name
	}
	return e.Type.String()
}

// data returns the scope or interval figures shown after the metadata.
func (f *TextFormatter) data(e *Event) Metadata {
	switch {
	case e.Scope != nil:
		if e.Type == TypeScopeLeave {
			return Metadata{{Key: "duration", Value: FormatDuration(e.Scope.Duration)}}
		}
	case e.Interval != nil && e.Type == TypeIntervalEnd:
		return f.intervalData(e.Interval)
	}
	return nil
}

func (f *TextFormatter) intervalData(in *IntervalInfo) Metadata {
	opts := f.IntervalOptions
	if opts == 0 {
		opts = IntervalCompact
	}
	var md Metadata
	if opts&IntervalDuration != 0 {
		md = append(md, Field{"duration", FormatDuration(in.Duration)})
	}
	if opts&IntervalCount != 0 {
		md = append(md, Field{"count", in.Stats.Count})
	}
	if opts&IntervalTotal != 0 {
		md = append(md, Field{"total", FormatDuration(in.Stats.Total)})
	}
	if opts&IntervalMin != 0 {
		md = append(md, Field{"min", FormatDuration(in.Stats.Min)})
	}
	if opts&IntervalMax != 0 {
		md = append(md, Field{"max", FormatDuration(in.Stats.Max)})
	}
	if opts&IntervalAverage != 0 {
		md = append(md, Field{"average", FormatDuration(in.Stats.Average)})
	}
	return md
}

// FormatDuration renders d rounded to milliseconds, or to microseconds when
// shorter than a millisecond.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
