// FILE: lixenwraith/loclog/logger_test.go
package loclog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/lixenwraith/loclog/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestLogger creates a file logger in a temp directory
func createTestLogger(t testing.TB, opts ...RegistryOption) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	reg := NewRegistry(opts...)
	t.Cleanup(func() { _ = reg.Close() })
	return reg.GetLogger("test", path), path
}

// readLines returns the physical lines of a log file
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// nextLine returns the line number following the caller's line
func nextLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line + 1
}

type countingStringer struct{ calls *atomic.Int32 }

func (c countingStringer) String() string {
	c.calls.Add(1)
	return "counted"
}

func TestLoggerSeverities(t *testing.T) {
	logger, path := createTestLogger(t)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warning("warning")
	logger.Error("error")
	logger.Critical("critical")

	lines := readLines(t, path)
	require.Len(t, lines, 5)

	labels := []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
	for i, label := range labels {
		assert.True(t, strings.HasPrefix(lines[i], fmt.Sprintf("%-12s ", "test")), lines[i])
		assert.Contains(t, lines[i], fmt.Sprintf(" %-8s (logger_test.go:", label))
		assert.True(t, strings.HasSuffix(lines[i], ":TestLoggerSeverities() - "+strings.ToLower(label)), lines[i])
	}
}

func TestLoggerCallSite(t *testing.T) {
	logger, path := createTestLogger(t)

	line := nextLine()
	logger.Info("located")
	fLine := nextLine()
	logger.Infof("formatted %d", 1)
	depthLine := nextLine()
	logger.LogDepth(0, LevelInfo, "depth zero")

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], fmt.Sprintf("(logger_test.go:%d):TestLoggerCallSite() - located", line))
	assert.Contains(t, lines[1], fmt.Sprintf("(logger_test.go:%d):TestLoggerCallSite() - formatted 1", fLine))
	assert.Contains(t, lines[2], fmt.Sprintf("(logger_test.go:%d):TestLoggerCallSite() - depth zero", depthLine))
}

// logThroughHelper logs on behalf of its caller
func logThroughHelper(l *Logger, msg string) {
	l.WithCallerSkip(1).Warning(msg)
}

func logDepthHelper(l *Logger, msg string) {
	l.LogDepth(1, LevelWarning, msg)
}

type service struct{ logger *Logger }

func (s *service) handle() {
	s.logger.Info("call handle()")
}

func TestLoggerCallerAttribution(t *testing.T) {
	logger, path := createTestLogger(t)

	skipLine := nextLine()
	logThroughHelper(logger, "via skip")
	depthLine := nextLine()
	logDepthHelper(logger, "via depth")
	(&service{logger: logger}).handle()
	func() {
		logger.Info("in closure")
	}()

	lines := readLines(t, path)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], fmt.Sprintf("(logger_test.go:%d):TestLoggerCallerAttribution() - via skip", skipLine))
	assert.Contains(t, lines[1], fmt.Sprintf("(logger_test.go:%d):TestLoggerCallerAttribution() - via depth", depthLine))
	assert.Contains(t, lines[2], ":handle() - call handle()")
	assert.Contains(t, lines[3], ":TestLoggerCallerAttribution.func1() - in closure")

	// The view shares level and sinks with the original
	view := logger.WithCallerSkip(1)
	logger.SetLevel(LevelError)
	assert.Equal(t, LevelError, view.Level())
	assert.False(t, view.Enabled(LevelInfo))
}

func TestLoggerThreshold(t *testing.T) {
	logger, path := createTestLogger(t)
	logger.SetLevel(LevelWarning)

	var calls atomic.Int32
	probe := countingStringer{calls: &calls}

	logger.Debug("hidden", probe)
	logger.Info("hidden", probe)
	logger.Debugf("hidden %v", probe)
	logger.Infof("hidden %v", probe)
	logger.Log(LevelInfo+1, "hidden custom level", probe)
	logger.Warning("shown")
	logger.Log(LevelWarning+2, "custom level")
	logger.Errorf("error %d", 2)

	// Suppressed records are discarded before any formatting
	assert.Equal(t, int32(0), calls.Load())

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " WARNING  ")
	assert.Contains(t, lines[1], " LEVEL(6) ")
	assert.True(t, strings.HasSuffix(lines[2], " - error 2"))

	assert.Equal(t, uint64(3), logger.Stats().Logged)

	// Lowering the threshold takes effect on the next call
	logger.SetLevel(LevelDebug)
	logger.Debug("now visible")
	assert.Len(t, readLines(t, path), 4)
	assert.Equal(t, LevelDebug, logger.Config().Level)
}

func failingOperation(l *Logger) {
	err := fmt.Errorf("division failed: %w", errors.New("division by zero"))
	l.Exception(err, "in exception")
}

func TestLoggerException(t *testing.T) {
	logger, path := createTestLogger(t)

	failingOperation(logger)
	logger.Exception(errors.New("bare"))

	lines := readLines(t, path)
	require.Greater(t, len(lines), 4)

	assert.Contains(t, lines[0], " ERROR    (logger_test.go:")
	assert.True(t, strings.HasSuffix(lines[0], ":failingOperation() - in exception"), lines[0])
	assert.Equal(t, "    division failed: division by zero", lines[1])
	assert.Equal(t, "    Stack (most recent call first):", lines[2])
	assert.Contains(t, lines[3], "logger_test.go:")
	assert.True(t, strings.HasSuffix(lines[3], " failingOperation()"), lines[3])

	// Every continuation line is indented; the second record starts a new line
	var second int
	for i, line := range lines[1:] {
		if !strings.HasPrefix(line, formatter.Indent) {
			second = i + 1
			break
		}
	}
	require.NotZero(t, second)
	assert.True(t, strings.HasSuffix(lines[second], ":TestLoggerException() - bare"), lines[second])
	assert.Equal(t, "    bare", lines[second+1])
}

func TestLoggerExceptionBelowThreshold(t *testing.T) {
	logger, path := createTestLogger(t)
	logger.SetLevel(LevelCritical)

	failingOperation(logger)
	assert.Empty(t, readLines(t, path))
}

func TestLoggerMessageSafety(t *testing.T) {
	logger, path := createTestLogger(t)

	logger.Info("multi\nline")
	logger.Info([]byte{0xff, 'x'}, "tail\x1b[0m")

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], " - multi"))
	assert.Equal(t, "    line", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ` - "\xffx tail\x1b[0m"`), lines[2])
}

func TestLoggerEscapedMessagesAreDistinct(t *testing.T) {
	logger, path := createTestLogger(t)

	messages := []string{string([]byte{0xff}), `\xff`, "\x1b", "<1b>", `"\x1b"`}
	for _, msg := range messages {
		logger.Info(msg)
	}

	lines := readLines(t, path)
	require.Len(t, lines, len(messages))

	rendered := make(map[string]bool)
	for _, line := range lines {
		idx := strings.Index(line, ":TestLoggerEscapedMessagesAreDistinct() - ")
		require.GreaterOrEqual(t, idx, 0, line)
		rendered[line[idx:]] = true
	}
	assert.Len(t, rendered, len(messages))
	assert.True(t, strings.HasSuffix(lines[0], ` - "\xff"`), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ` - \xff`), lines[1])
}

func TestLoggerConsole(t *testing.T) {
	t.Run("colored console, plain file", func(t *testing.T) {
		logger, path := createTestLogger(t)
		var buf bytes.Buffer
		logger.core.console = newConsoleSinkWriter(&buf, true)

		logger.Warning("careful")

		console := buf.String()
		assert.True(t, strings.HasPrefix(console, formatter.ColorYellow+"test "), console)
		assert.Contains(t, console, formatter.ColorReset+" - careful\n")

		lines := readLines(t, path)
		require.Len(t, lines, 1)
		assert.NotContains(t, lines[0], "\x1b")
		assert.Equal(t, strings.ReplaceAll(strings.ReplaceAll(strings.TrimSuffix(console, "\n"),
			formatter.ColorYellow, ""), formatter.ColorReset, ""), lines[0])
	})

	t.Run("console only", func(t *testing.T) {
		reg := NewRegistry()
		defer reg.Close()
		logger := reg.GetLogger("console", "")
		var buf bytes.Buffer
		logger.core.console = newConsoleSinkWriter(&buf, false)

		logger.Info("to console")
		assert.Contains(t, buf.String(), ":TestLoggerConsole.func2() - to console\n")
		assert.Nil(t, logger.Stats().File)
	})
}

func TestLoggerReportsRotationFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svc.log")
	require.NoError(t, os.WriteFile(path+".20240609.100000.log", []byte("kept\n"), 0644))

	clock := newFakeClock(localTime(9, 10, 0, 0))
	reg := NewRegistry(WithTimeSource(clock.Now))
	defer reg.Close()

	cfg := DefaultConfig()
	cfg.Name = "svc"
	cfg.File = path
	cfg.InternalErrorsToStderr = false
	logger, err := reg.Apply(cfg)
	require.NoError(t, err)

	logger.Info("before midnight")
	clock.Set(localTime(10, 0, 0, 1))
	logger.Info("after midnight")

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], " - before midnight"))
	assert.True(t, strings.HasSuffix(lines[1], " - after midnight"))
	assert.True(t, strings.HasPrefix(lines[2], fmt.Sprintf("%-12s %s %-8s  - loclog: ", "svc", "2024-06-10 00:00:01", "ERROR")), lines[2])
	assert.Contains(t, lines[2], "already exists")

	st := logger.Stats()
	require.NotNil(t, st.File)
	assert.Equal(t, uint64(1), st.File.RotationFailures)
	assert.False(t, logger.core.state.Reporting.Load())
}

func TestLoggerFailureReportRespectsThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svc.log")
	require.NoError(t, os.WriteFile(path+".20240609.100000.log", nil, 0644))

	clock := newFakeClock(localTime(9, 10, 0, 0))
	reg := NewRegistry(WithTimeSource(clock.Now))
	defer reg.Close()

	logger, err := NewBuilder().Name("svc").File(path).Level(LevelCritical).InternalErrorsToStderr(false).Build(reg)
	require.NoError(t, err)

	logger.Critical("one")
	clock.Set(localTime(10, 0, 0, 1))
	logger.Critical("two")

	assert.Len(t, readLines(t, path), 2)
}

func TestLoggerUnwritableDestination(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	// A directory cannot be opened as a log file
	dir := t.TempDir()
	var logger *Logger
	require.NotPanics(t, func() {
		logger = reg.GetLogger("broken", dir)
	})
	require.NotNil(t, logger)
	assert.True(t, logger.core.state.FileUnavailable.Load())
	assert.Nil(t, logger.Stats().File)

	require.NotPanics(t, func() {
		logger.Info("goes nowhere")
		logger.Exception(errors.New("still fine"))
	})
	assert.Equal(t, uint64(2), logger.Stats().Logged)
}

func TestLoggerClose(t *testing.T) {
	logger, path := createTestLogger(t)

	logger.Info("before close")
	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())

	require.NotPanics(t, func() {
		logger.Info("after close")
	})
	assert.Len(t, readLines(t, path), 1)
	assert.False(t, logger.Enabled(LevelCritical))
}

func TestLoggerHeartbeat(t *testing.T) {
	logger, path := createTestLogger(t)

	logger.Info("one")
	logger.Heartbeat()

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ":TestLoggerHeartbeat() - heartbeat logged=1 dropped=0 ")
	assert.Contains(t, lines[1], " lines=1 rotations=0 rotation_failures=0 next_rollover=")

	logger.SetLevel(LevelWarning)
	logger.Heartbeat()
	assert.Len(t, readLines(t, path), 2)
}

func TestLoggerDroppedCountsCallerRecordsOnly(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	path := filepath.Join(t.TempDir(), "dropped.log")
	logger, err := NewBuilder().Name("dropped").File(path).InternalErrorsToStderr(false).Build(reg)
	require.NoError(t, err)

	// Every file write now fails, including the failure report itself
	require.NoError(t, logger.core.file.Close())

	logger.Info("lost")
	logger.Warning("lost too")

	st := logger.Stats()
	assert.Equal(t, uint64(2), st.Logged)
	assert.Equal(t, uint64(2), st.Dropped)
	assert.False(t, logger.core.state.Reporting.Load())
	assert.Empty(t, readLines(t, path))
}
