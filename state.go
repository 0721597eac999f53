// FILE: lixenwraith/loclog/state.go
package loclog

import (
	"sync/atomic"
)

// State encapsulates the runtime flags and counters of a logger
type State struct {
	Closed          atomic.Bool
	Reporting       atomic.Bool // Set while the logger reports one of its own failures
	FileUnavailable atomic.Bool // File output was requested but could not be opened

	TotalLogs   atomic.Uint64 // Records accepted by the threshold
	DroppedLogs atomic.Uint64 // Records lost by at least one sink
}
