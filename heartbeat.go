// FILE: lixenwraith/loclog/heartbeat.go
package loclog

import (
	"fmt"
	"runtime"
)

// Heartbeat writes one info record summarizing the logger's counters:
// records logged and dropped, uptime, and the file sink's lines, rotations and
// next rollover. It is written synchronously at the caller's location.
func (l *Logger) Heartbeat() {
	if !l.Enabled(LevelInfo) {
		return
	}
	l.log(0, LevelInfo, "", heartbeatArgs(l.Stats(), l.core))
}

// heartbeatArgs renders counters as space-separated key=value message parts
func heartbeatArgs(st Stats, c *core) []any {
	args := []any{
		"heartbeat",
		fmt.Sprintf("logged=%d", st.Logged),
		fmt.Sprintf("dropped=%d", st.Dropped),
		fmt.Sprintf("uptime=%s", c.uptime()),
		fmt.Sprintf("goroutines=%d", runtime.NumGoroutine()),
	}
	if st.File != nil {
		args = append(args,
			fmt.Sprintf("lines=%d", st.File.LinesWritten),
			fmt.Sprintf("rotations=%d", st.File.Rotations),
			fmt.Sprintf("rotation_failures=%d", st.File.RotationFailures),
			"next_rollover="+st.File.NextRollover.Format("2006-01-02 15:04:05"),
		)
	} else if c.state.FileUnavailable.Load() {
		args = append(args, "file=unavailable")
	}
	return args
}
