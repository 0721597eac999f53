// FILE: lixenwraith/loclog/constant.go
package loclog

// Log level constants
const (
	LevelDebug    int64 = -4
	LevelInfo     int64 = 0
	LevelWarning  int64 = 4
	LevelError    int64 = 8
	LevelCritical int64 = 12
)

// Call-site resolution
const (
	// Frames between runtime.Callers and the application call:
	// runtime.Callers -> resolveCaller -> Logger.log -> public logging method
	callerSkip = 4
	// Frames between runtime.Callers and the application call for attached stacks:
	// runtime.Callers -> captureStack -> Logger.Exception
	stackSkip = 3
	// Upper bound on frames rendered in an attached stack
	maxStackFrames = 32
)

// Rotated file naming: <base>.<YYYYMMDD>.<HHMMSS>.log
const (
	archiveTimeFormat = "20060102.150405"
	archiveExtension  = ".log"
)

// Console color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
