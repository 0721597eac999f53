// FILE: lixenwraith/loclog/type.go
package loclog

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/loclog/formatter"
)

// sink is a line destination owned by exactly one logger
type sink interface {
	WriteLine(line []byte) error
	Close() error
}

var (
	_ sink = (*RotatingSink)(nil)
	_ sink = (*ConsoleSink)(nil)
)

// core is the state shared by a Logger and every view created with WithCallerSkip
type core struct {
	name    string
	level   atomic.Int64
	config  atomic.Value // stores *Config
	started time.Time
	now     func() time.Time

	plain   *formatter.Formatter
	colored *formatter.Formatter

	file    *RotatingSink // nil when file output is disabled or unavailable
	console *ConsoleSink  // nil when console output is disabled

	state State

	release func(*core) // unregisters from the owning registry on Close
}

// Stats is a snapshot of a logger's counters
type Stats struct {
	Name    string
	Level   int64
	Logged  uint64     // Records that passed the threshold
	Dropped uint64     // Records that could not be written to some sink
	Uptime  time.Duration
	File    *SinkStats // nil when the logger has no file sink
}
