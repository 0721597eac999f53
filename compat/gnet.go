// FILE: lixenwraith/loclog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/loclog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps loclog.Logger to implement the gnet logging.Logger interface.
// Records are attributed to the code calling the adapter.
type GnetAdapter struct {
	logger       *loclog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *loclog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.LogfDepth(1, loclog.LevelDebug, format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.LogfDepth(1, loclog.LevelInfo, format, args...)
}

// Warnf logs at warning level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.LogfDepth(1, loclog.LevelWarning, format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.LogfDepth(1, loclog.LevelError, format, args...)
}

// Fatalf logs at critical level and triggers the fatal handler.
// Writes are synchronous, so the record is on disk before the handler runs.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.LogDepth(1, loclog.LevelCritical, msg)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
