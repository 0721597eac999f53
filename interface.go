// FILE: lixenwraith/loclog/interface.go
package loclog

import (
	"fmt"
)

// Debug logs a message at debug level.
func (l *Logger) Debug(args ...any) {
	l.log(0, LevelDebug, "", args)
}

// Info logs a message at info level.
func (l *Logger) Info(args ...any) {
	l.log(0, LevelInfo, "", args)
}

// Warning logs a message at warning level.
func (l *Logger) Warning(args ...any) {
	l.log(0, LevelWarning, "", args)
}

// Error logs a message at error level.
func (l *Logger) Error(args ...any) {
	l.log(0, LevelError, "", args)
}

// Critical logs a message at critical level.
func (l *Logger) Critical(args ...any) {
	l.log(0, LevelCritical, "", args)
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	if l.Enabled(LevelDebug) {
		l.log(0, LevelDebug, "", []any{fmt.Sprintf(format, args...)})
	}
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	if l.Enabled(LevelInfo) {
		l.log(0, LevelInfo, "", []any{fmt.Sprintf(format, args...)})
	}
}

// Warningf logs a formatted message at warning level.
func (l *Logger) Warningf(format string, args ...any) {
	if l.Enabled(LevelWarning) {
		l.log(0, LevelWarning, "", []any{fmt.Sprintf(format, args...)})
	}
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	if l.Enabled(LevelError) {
		l.log(0, LevelError, "", []any{fmt.Sprintf(format, args...)})
	}
}

// Criticalf logs a formatted message at critical level.
func (l *Logger) Criticalf(format string, args ...any) {
	if l.Enabled(LevelCritical) {
		l.log(0, LevelCritical, "", []any{fmt.Sprintf(format, args...)})
	}
}

// Log logs a message at an arbitrary level.
func (l *Logger) Log(level int64, args ...any) {
	l.log(0, level, "", args)
}

// Logf logs a formatted message at an arbitrary level.
func (l *Logger) Logf(level int64, format string, args ...any) {
	if l.Enabled(level) {
		l.log(0, level, "", []any{fmt.Sprintf(format, args...)})
	}
}

// LogDepth logs at level, attributing the record depth frames above its caller.
// LogDepth(0, ...) is equivalent to Log.
func (l *Logger) LogDepth(depth int, level int64, args ...any) {
	l.log(depth, level, "", args)
}

// LogfDepth is the formatted form of LogDepth.
func (l *Logger) LogfDepth(depth int, level int64, format string, args ...any) {
	if l.Enabled(level) {
		l.log(depth, level, "", []any{fmt.Sprintf(format, args...)})
	}
}

// Exception logs at error level with the failure attached below the message:
// the error's detailed form followed by the stack of the calling goroutine.
// Without args the error text is the message.
func (l *Logger) Exception(err error, args ...any) {
	if !l.Enabled(LevelError) {
		return
	}
	if len(args) == 0 {
		args = []any{err}
	}
	detail := exceptionDetail(err, captureStack(stackSkip+l.callerSkip))
	l.log(0, LevelError, detail, args)
}
