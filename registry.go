// FILE: lixenwraith/loclog/registry.go
package loclog

import (
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// RegistryOption configures a Registry
type RegistryOption func(*registryOptions)

type registryOptions struct {
	now      func() time.Time
	sinkOpts []SinkOption
}

// WithTimeSource sets the clock used for record timestamps and rotation
func WithTimeSource(now func() time.Time) RegistryOption {
	return func(o *registryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSinkOptions adds options applied to every file sink the registry creates
func WithSinkOptions(opts ...SinkOption) RegistryOption {
	return func(o *registryOptions) {
		o.sinkOpts = append(o.sinkOpts, opts...)
	}
}

// Registry maps logger names to loggers. Asking for a name twice returns the
// same logger with the same sinks; a name never gets a second file handle.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	opts    registryOptions
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		loggers: make(map[string]*Logger),
		opts:    registryOptions{now: time.Now},
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// GetLogger returns the logger registered under name, creating it with a daily
// rotating file at destination when absent. An empty destination creates a
// logger without file output.
//
// Every call sets the logger's threshold: level when given, LevelDebug
// otherwise. The destination of a later call for the same name is ignored.
//
// GetLogger never fails. If destination cannot be opened the problem is
// reported once on stderr and the returned logger discards file output.
func (r *Registry) GetLogger(name, destination string, level ...int64) *Logger {
	threshold := LevelDebug
	if len(level) > 0 {
		threshold = level[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[name]; ok {
		l.SetLevel(threshold)
		return l
	}

	cfg := DefaultConfig()
	cfg.Name = name
	cfg.File = destination
	cfg.EnableFile = destination != ""
	cfg.Level = threshold

	// Without console output, lenient construction has no failure path
	l, _ := newLogger(cfg, true, &r.opts)
	r.register(l)
	return l
}

// GetLoggerInDir is GetLogger with the file named after the logger inside dir
func (r *Registry) GetLoggerInDir(name, dir string, level ...int64) *Logger {
	return r.GetLogger(name, filepath.Join(dir, name), level...)
}

// Apply returns the logger named by cfg.Name, creating it from cfg when absent.
// For an existing logger only the level is updated. Unlike GetLogger, a sink
// that cannot be opened is returned as an error and nothing is registered.
func (r *Registry) Apply(cfg *Config) (*Logger, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[cfg.Name]; ok {
		l.SetLevel(cfg.Level)
		return l, nil
	}

	l, err := newLogger(cfg, false, &r.opts)
	if err != nil {
		return nil, err
	}
	r.register(l)
	return l, nil
}

// Lookup returns the logger registered under name, if any
func (r *Registry) Lookup(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[name]
	return l, ok
}

// Names returns the registered logger names in sorted order
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every registered logger and empties the registry
func (r *Registry) Close() error {
	r.mu.Lock()
	loggers := r.loggers
	r.loggers = make(map[string]*Logger)
	r.mu.Unlock()

	var finalErr error
	for _, l := range loggers {
		finalErr = combineErrors(finalErr, l.Close())
	}
	return finalErr
}

// register adds l under its name. Caller holds mu.
func (r *Registry) register(l *Logger) {
	l.core.release = r.release
	r.loggers[l.Name()] = l
}

// release removes a closed logger, unless the name was reused meanwhile
func (r *Registry) release(c *core) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[c.name]; ok && l.core == c {
		delete(r.loggers, c.name)
	}
}
