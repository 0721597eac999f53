// FILE: lixenwraith/loclog/logger.go
package loclog

import (
	"time"

	"github.com/lixenwraith/loclog/formatter"
)

// Logger writes call-site annotated lines to a daily rotating file and,
// optionally, the console. All methods are safe for concurrent use.
type Logger struct {
	core       *core
	callerSkip int
}

// newLogger builds a logger and its sinks from a validated configuration.
// In lenient mode a file that cannot be opened is reported once on stderr and
// the logger continues without file output; otherwise the error is returned.
func newLogger(cfg *Config, lenient bool, opts *registryOptions) (*Logger, error) {
	c := &core{
		name:    cfg.Name,
		started: opts.now(),
		now:     opts.now,
		plain:   formatter.New(),
		colored: formatter.New().Color(true),
	}
	c.level.Store(cfg.Level)
	c.config.Store(cfg.Clone())

	if cfg.EnableConsole {
		console, err := NewConsoleSink(cfg.ConsoleTarget, cfg.Color)
		if err != nil {
			return nil, err
		}
		c.console = console
	}

	if cfg.EnableFile {
		sinkOpts := append([]SinkOption{
			WithClock(opts.now),
			WithErrorHandler(c.reportFailure),
		}, opts.sinkOpts...)

		file, err := NewRotatingSink(cfg.File, sinkOpts...)
		if err != nil {
			if !lenient {
				return nil, err
			}
			c.state.FileUnavailable.Store(true)
			c.internalLog("logger '%s' cannot write to '%s', file output disabled: %v\n", cfg.Name, cfg.File, err)
		} else {
			c.file = file
		}
	}

	return &Logger{core: c}, nil
}

// Name returns the logger's name
func (l *Logger) Name() string {
	return l.core.name
}

// Level returns the current minimum level
func (l *Logger) Level() int64 {
	return l.core.level.Load()
}

// SetLevel changes the minimum level; it takes effect for the next call
func (l *Logger) SetLevel(level int64) {
	l.core.level.Store(level)
	cfg := l.core.getConfig().Clone()
	cfg.Level = level
	l.core.config.Store(cfg)
}

// Enabled reports whether a record at level would be written
func (l *Logger) Enabled(level int64) bool {
	return l.core.enabled(level)
}

// Config returns a copy of the configuration the logger was built from
func (l *Logger) Config() *Config {
	return l.core.getConfig().Clone()
}

// WithCallerSkip returns a view of the logger that attributes records n frames
// further up the stack. Views share sinks, level and counters with the original.
// Wrappers that log on behalf of their caller use WithCallerSkip(1).
func (l *Logger) WithCallerSkip(n int) *Logger {
	skip := l.callerSkip + n
	if skip < 0 {
		skip = 0
	}
	return &Logger{core: l.core, callerSkip: skip}
}

// Close flushes and closes the logger's sinks. Later calls are no-ops, and so is
// logging after Close.
func (l *Logger) Close() error {
	c := l.core
	if !c.state.Closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.release != nil {
		c.release(c)
	}

	var finalErr error
	if c.file != nil {
		finalErr = combineErrors(finalErr, c.file.Close())
	}
	if c.console != nil {
		finalErr = combineErrors(finalErr, c.console.Close())
	}
	return finalErr
}

// Stats returns a snapshot of the logger's counters
func (l *Logger) Stats() Stats {
	c := l.core
	st := Stats{
		Name:    c.name,
		Level:   c.level.Load(),
		Logged:  c.state.TotalLogs.Load(),
		Dropped: c.state.DroppedLogs.Load(),
		Uptime:  c.now().Sub(c.started),
	}
	if c.file != nil {
		fs := c.file.Stats()
		st.File = &fs
	}
	return st
}

// getConfig returns the current configuration (thread-safe)
func (c *core) getConfig() *Config {
	return c.config.Load().(*Config)
}

func (c *core) enabled(level int64) bool {
	return !c.state.Closed.Load() && level >= c.level.Load()
}

// uptime helper used by heartbeat records
func (c *core) uptime() time.Duration {
	return c.now().Sub(c.started).Round(time.Second)
}
