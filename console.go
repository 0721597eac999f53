// FILE: lixenwraith/loclog/console.go
package loclog

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ConsoleSink writes lines to stdout or stderr.
// Color capability is decided once, when the sink is created.
type ConsoleSink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewConsoleSink creates a sink for target ("stdout" or "stderr") with a color
// mode of ColorAuto, ColorAlways or ColorNever.
func NewConsoleSink(target, colorMode string) (*ConsoleSink, error) {
	var w *os.File
	switch target {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		return nil, fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", target)
	}

	var color bool
	switch colorMode {
	case "", ColorAuto:
		color = probeColor(w)
	case ColorAlways:
		color = true
	case ColorNever:
		color = false
	default:
		return nil, fmtErrorf("invalid color mode: '%s' (use auto, always or never)", colorMode)
	}

	return newConsoleSinkWriter(w, color), nil
}

// newConsoleSinkWriter wraps an arbitrary writer
func newConsoleSinkWriter(w io.Writer, color bool) *ConsoleSink {
	return &ConsoleSink{w: w, color: color}
}

// probeColor reports whether w is an interactive terminal
func probeColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Colored reports whether lines for this sink should carry ANSI colors
func (c *ConsoleSink) Colored() bool {
	return c.color
}

// WriteLine writes line and a newline in a single write
func (c *ConsoleSink) WriteLine(line []byte) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.Write(buf); err != nil {
		return fmtErrorf("failed to write to console: %w", err)
	}
	return nil
}

// Close is a no-op; the standard streams are owned by the process
func (c *ConsoleSink) Close() error {
	return nil
}
