// FILE: lixenwraith/loclog/record.go
package loclog

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/loclog/formatter"
)

// log handles the core logging logic. depth counts extra frames between the
// public method and the application call.
func (l *Logger) log(depth int, level int64, detail string, args []any) {
	c := l.core
	if !c.enabled(level) {
		return
	}

	record := formatter.Record{
		Name:     c.name,
		Time:     c.now(),
		Level:    level,
		CallSite: resolveCaller(callerSkip + l.callerSkip + depth),
		Args:     args,
		Detail:   detail,
	}
	c.state.TotalLogs.Add(1)
	if !c.emit(record) {
		c.state.DroppedLogs.Add(1)
	}
}

// emit formats the record once per rendering variant and writes it to every
// sink. It reports whether every sink accepted the line.
func (c *core) emit(record formatter.Record) bool {
	var plain []byte
	ok := true

	if c.file != nil {
		plain = c.plain.Format(record)
		if err := c.file.WriteLine(plain); err != nil {
			ok = false
			c.reportFailure(err)
		}
	}

	if c.console != nil {
		var line []byte
		if c.console.Colored() {
			line = c.colored.Format(record)
		} else {
			if plain == nil {
				plain = c.plain.Format(record)
			}
			line = plain
		}
		if err := c.console.WriteLine(line); err != nil {
			ok = false
			c.internalLog("console write failed for logger '%s': %v\n", c.name, err)
		}
	}
	return ok
}

// reportFailure logs a sink failure through the logger itself at error level.
// A failure raised while already reporting goes to stderr instead. Report
// records are not counted in Logged or Dropped.
func (c *core) reportFailure(err error) {
	if err == nil || c.state.Closed.Load() {
		return
	}
	if !c.state.Reporting.CompareAndSwap(false, true) {
		c.internalLog("logger '%s': %v\n", c.name, err)
		return
	}
	defer c.state.Reporting.Store(false)

	if !c.enabled(LevelError) {
		return
	}

	_ = c.emit(formatter.Record{
		Name:  c.name,
		Time:  c.now(),
		Level: LevelError,
		Args:  []any{err},
	})
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (c *core) internalLog(format string, args ...any) {
	if !c.getConfig().InternalErrorsToStderr {
		return
	}

	if !strings.HasPrefix(format, "loclog: ") {
		format = "loclog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
