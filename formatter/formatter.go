// Package formatter renders log records into the fixed, human-readable line
// layout: padded logger name, timestamp, padded level, call-site and message.
package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/lixenwraith/loclog/sanitizer"
)

// Layout constants
const (
	TimestampFormat = "2006-01-02 15:04:05"
	ModuleSentinel  = "<module>" // Function field for calls made during package initialization
	Indent          = "    "     // Prefix of every continuation line

	nameWidth  = 12
	levelWidth = 8
)

// ANSI escapes used by the colored variant
const (
	ColorBlue    = "\x1b[34m"
	ColorGreen   = "\x1b[32m"
	ColorYellow  = "\x1b[33m"
	ColorRed     = "\x1b[31m"
	ColorNeutral = "\x1b[39m"
	ColorReset   = "\x1b[0m"
)

// CallSite is the resolved source location of a logging call
type CallSite struct {
	File     string // Base name of the source file
	Line     int
	Function string // "name()" or ModuleSentinel
	OK       bool   // False when no location could be resolved
}

// String renders the call-site as "(file:line):function", or "" when unresolved
func (c CallSite) String() string {
	if !c.OK {
		return ""
	}
	return "(" + c.File + ":" + strconv.Itoa(c.Line) + "):" + c.Function
}

// Record is a single log entry, built per call and consumed immediately
type Record struct {
	Name     string
	Time     time.Time
	Level    int64
	CallSite CallSite
	Args     []any  // Message parts, joined by single spaces
	Detail   string // Attached failure detail, rendered as continuation lines
}

// Formatter renders records. Once configured it is safe for concurrent use.
type Formatter struct {
	sanitizer *sanitizer.Sanitizer
	color     bool
	location  *time.Location
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New().Policy(sanitizer.PolicyTxt)
	}
	return &Formatter{
		sanitizer: san,
		location:  time.Local,
	}
}

// Color sets whether the line prefix is wrapped in the level's ANSI color
func (f *Formatter) Color(enable bool) *Formatter {
	f.color = enable
	return f
}

// Location sets the time zone used for timestamps (local time by default)
func (f *Formatter) Location(loc *time.Location) *Formatter {
	if loc != nil {
		f.location = loc
	}
	return f
}

// Format renders a record into one logical line without a trailing newline.
// Continuation lines (multi-line messages, attached detail) are indented.
// Format never panics; a failure yields a diagnostic placeholder line instead.
func (f *Formatter) Format(rec Record) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			out = f.placeholder(rec, r)
		}
	}()

	buf := make([]byte, 0, 128)
	buf = f.appendPrefix(buf, rec)
	buf = append(buf, " - "...)

	buf = f.appendSafe(buf, f.FormatArgs(rec.Args...))
	if detail := strings.TrimRight(rec.Detail, "\n"); detail != "" {
		buf = append(buf, '\n', ' ', ' ', ' ', ' ')
		buf = f.appendSafe(buf, detail)
	}

	return buf
}

// FormatArgs joins message parts with single spaces
func (f *Formatter) FormatArgs(args ...any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeValue(&sb, arg)
	}
	return sb.String()
}

// LevelToString converts integer level values to string
func LevelToString(level int64) string {
	switch level {
	case -4:
		return "DEBUG"
	case 0:
		return "INFO"
	case 4:
		return "WARNING"
	case 8:
		return "ERROR"
	case 12:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// LevelColor returns the ANSI escape for a level
func LevelColor(level int64) string {
	switch level {
	case -4:
		return ColorBlue
	case 0:
		return ColorGreen
	case 4:
		return ColorYellow
	case 8, 12:
		return ColorRed
	default:
		return ColorNeutral
	}
}

// appendPrefix writes "name timestamp LEVEL (file:line):func", colored if enabled
func (f *Formatter) appendPrefix(buf []byte, rec Record) []byte {
	if f.color {
		buf = append(buf, LevelColor(rec.Level)...)
	}

	buf = appendPadded(buf, rec.Name, nameWidth)
	buf = append(buf, ' ')
	buf = rec.Time.In(f.location).AppendFormat(buf, TimestampFormat)
	buf = append(buf, ' ')
	buf = appendPadded(buf, LevelToString(rec.Level), levelWidth)
	buf = append(buf, ' ')
	buf = append(buf, rec.CallSite.String()...)

	if f.color {
		buf = append(buf, ColorReset...)
	}
	return buf
}

// appendSafe sanitizes text line by line and joins the lines with an indented break
func (f *Formatter) appendSafe(buf []byte, text string) []byte {
	for i, line := range f.sanitizer.Lines(text) {
		if i > 0 {
			buf = append(buf, '\n')
			buf = append(buf, Indent...)
		}
		buf = append(buf, line...)
	}
	return buf
}

// placeholder renders the diagnostic line used when formatting a record fails
func (f *Formatter) placeholder(rec Record, cause any) []byte {
	dumper := &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                5,
		DisableMethods:          true, // Methods may be what failed
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	var dump bytes.Buffer
	dumper.Fdump(&dump, rec.Args)
	if rec.Detail != "" {
		dumper.Fdump(&dump, rec.Detail)
	}

	buf := make([]byte, 0, 256)
	buf = appendPadded(buf, rec.Name, nameWidth)
	buf = append(buf, ' ')
	buf = rec.Time.In(f.location).AppendFormat(buf, TimestampFormat)
	buf = append(buf, ' ')
	buf = appendPadded(buf, LevelToString(rec.Level), levelWidth)
	buf = append(buf, " loclog: formatting failed: "...)
	buf = append(buf, sanitizer.Decode([]byte(fmt.Sprint(cause)))...)
	buf = append(buf, "; record: "...)
	for i, line := range strings.Split(strings.TrimSpace(dump.String()), "\n") {
		if i > 0 {
			buf = append(buf, '\n')
			buf = append(buf, Indent...)
		}
		buf = append(buf, sanitizer.Decode([]byte(line))...)
	}
	return buf
}

// appendPadded appends s left-aligned in a field of width runes, never truncating
func appendPadded(buf []byte, s string, width int) []byte {
	buf = append(buf, s...)
	for n := utf8.RuneCountInString(s); n < width; n++ {
		buf = append(buf, ' ')
	}
	return buf
}

// writeValue converts a message part to its text form
func writeValue(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case string:
		sb.WriteString(val)
	case []byte:
		// Invalid UTF-8 is escaped with the rest of the line
		sb.WriteString(string(val))
	case int:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case uint:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		sb.WriteString(strconv.FormatUint(val, 10))
	case float32:
		sb.WriteString(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case float64:
		sb.WriteString(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case nil:
		sb.WriteString("<nil>")
	case time.Time:
		sb.WriteString(val.Format(TimestampFormat))
	case error:
		sb.WriteString(val.Error())
	case fmt.Stringer:
		sb.WriteString(val.String())
	default:
		fmt.Fprintf(sb, "%+v", val)
	}
}
