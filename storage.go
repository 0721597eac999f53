// FILE: lixenwraith/loclog/storage.go
package loclog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrSinkClosed is returned by writes to a sink after Close
var ErrSinkClosed = errors.New("loclog: sink is closed")

// SinkOption configures a RotatingSink
type SinkOption func(*RotatingSink)

// WithClock replaces the wall clock used for rotation decisions
func WithClock(now func() time.Time) SinkOption {
	return func(s *RotatingSink) {
		if now != nil {
			s.now = now
		}
	}
}

// WithErrorHandler sets the callback receiving rotation failures.
// The callback runs after the sink's lock is released and may log.
func WithErrorHandler(fn func(error)) SinkOption {
	return func(s *RotatingSink) {
		s.onError = fn
	}
}

// SinkStats is a snapshot of a RotatingSink's counters and schedule
type SinkStats struct {
	Path             string
	LinesWritten     uint64
	Rotations        uint64
	RotationFailures uint64
	WindowStart      time.Time
	NextRollover     time.Time
}

// RotatingSink appends lines to a file and renames it aside at local midnight.
// The live file is always at the configured path; archives are named
// <path>.<YYYYMMDD>.<HHMMSS>.log after the start of the window they cover.
type RotatingSink struct {
	mu   sync.Mutex
	path string
	file *os.File

	windowStart  time.Time
	nextRollover time.Time

	now     func() time.Time
	onError func(error)
	closed  bool

	linesWritten     uint64
	rotations        uint64
	rotationFailures uint64
}

// NewRotatingSink opens path for appending, creating parent directories as needed.
// An existing file keeps its content and its modification time starts the
// current rotation window, so a file left over from an earlier day rotates
// on the first write.
func NewRotatingSink(path string, opts ...SinkOption) (*RotatingSink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmtErrorf("log file path cannot be empty")
	}

	s := &RotatingSink{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory for '%s': %w", path, err)
	}

	now := s.now()
	start := now
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		start = info.ModTime().In(now.Location())
	}

	f, err := s.open(false)
	if err != nil {
		return nil, err
	}
	s.file = f
	s.windowStart = start
	s.nextRollover = nextMidnight(start)

	return s, nil
}

// Path returns the live file path
func (s *RotatingSink) Path() string {
	return s.path
}

// WriteLine appends line followed by a newline in a single write, rotating first
// when the current window has ended. A rotation failure does not lose the line:
// it is reported through the error handler and the line goes to the live file.
func (s *RotatingSink) WriteLine(line []byte) error {
	rotErr, err := s.writeLine(line)
	if rotErr != nil && s.onError != nil {
		s.onError(rotErr)
	}
	return err
}

func (s *RotatingSink) writeLine(line []byte) (rotErr error, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSinkClosed
	}

	if now := s.now(); !now.Before(s.nextRollover) {
		rotErr = s.rotate(now)
	}

	// Recover from an earlier failed reopen
	if s.file == nil {
		f, openErr := s.open(false)
		if openErr != nil {
			return rotErr, openErr
		}
		s.file = f
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err = s.file.Write(buf); err != nil {
		return rotErr, fmtErrorf("failed to write to log file '%s': %w", s.path, err)
	}
	s.linesWritten++

	return rotErr, nil
}

// rotate archives the live file and opens a fresh one. Caller holds mu.
// The schedule always advances, so a failing rotation is attempted once per window.
func (s *RotatingSink) rotate(now time.Time) error {
	archive := s.archivePath(s.windowStart)
	s.windowStart = lastMidnight(now)
	s.nextRollover = nextMidnight(now)

	var rotErr error
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			rotErr = fmtErrorf("failed to close log file '%s' before rotation: %w", s.path, err)
		}
		s.file = nil
	}

	// os.Rename replaces an existing target; an archive must never be overwritten
	var renameErr error
	if _, err := os.Lstat(archive); err == nil {
		renameErr = fmtErrorf("failed to rotate log file '%s': archive '%s' already exists", s.path, archive)
	} else if err := os.Rename(s.path, archive); err != nil && !os.IsNotExist(err) {
		renameErr = fmtErrorf("failed to rotate log file '%s' to '%s': %w", s.path, archive, err)
	}

	if renameErr != nil {
		s.rotationFailures++
		rotErr = combineErrors(rotErr, renameErr)
		f, err := s.open(false)
		if err != nil {
			return combineErrors(rotErr, err)
		}
		s.file = f
		return rotErr
	}

	f, err := s.open(true)
	if err != nil {
		s.rotationFailures++
		return combineErrors(rotErr, err)
	}
	s.file = f
	s.rotations++

	return rotErr
}

// open opens the live file for appending, truncating it when fresh is set
func (s *RotatingSink) open(fresh bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if fresh {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(s.path, flags, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open log file '%s': %w", s.path, err)
	}
	return f, nil
}

// archivePath builds the rotated file name for a window starting at start
func (s *RotatingSink) archivePath(start time.Time) string {
	return s.path + "." + start.Format(archiveTimeFormat) + archiveExtension
}

// Close syncs and closes the live file. Further writes return ErrSinkClosed.
func (s *RotatingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.file == nil {
		return nil
	}

	var finalErr error
	if err := s.file.Sync(); err != nil {
		finalErr = fmtErrorf("failed to sync log file '%s': %w", s.path, err)
	}
	if err := s.file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", s.path, err))
	}
	s.file = nil

	return finalErr
}

// Stats returns a snapshot of the sink's counters
func (s *RotatingSink) Stats() SinkStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SinkStats{
		Path:             s.path,
		LinesWritten:     s.linesWritten,
		Rotations:        s.rotations,
		RotationFailures: s.rotationFailures,
		WindowStart:      s.windowStart,
		NextRollover:     s.nextRollover,
	}
}

// lastMidnight returns the local midnight at or before t
func lastMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// nextMidnight returns the first local midnight strictly after t
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
