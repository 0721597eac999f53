// FILE: lixenwraith/loclog/builder.go
package loclog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Config returns a copy of the configuration built so far, or the first error.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg.Clone(), nil
}

// Build registers the configured logger in r, or returns the logger already
// registered under the same name.
func (b *Builder) Build(r *Registry) (*Logger, error) {
	if r == nil {
		return nil, fmtErrorf("registry cannot be nil")
	}
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	return r.Apply(cfg)
}

// Name sets the logger name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// File sets the live log file path and enables file output.
func (b *Builder) File(path string) *Builder {
	b.cfg.File = path
	b.cfg.EnableFile = true
	return b
}

// Level sets the log level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// EnableFile toggles file output.
func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// EnableConsole toggles mirroring to the console.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget selects "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// Color sets the console color mode: ColorAuto, ColorAlways or ColorNever.
func (b *Builder) Color(mode string) *Builder {
	b.cfg.Color = mode
	return b
}

// InternalErrorsToStderr toggles diagnostics about the logger itself on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Override applies "key=value" strings, as accepted by Config.ApplyOverride.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.cfg.ApplyOverride(overrides...); err != nil {
		b.err = err
	}
	return b
}

// Example usage:
// reg := loclog.NewRegistry()
// logger, err := loclog.NewBuilder().
//
//	Name("api").
//	File("/var/log/app/api.log").
//	LevelString("info").
//	EnableConsole(true).
//	Build(reg)
//
// if err == nil {
//
//	 defer reg.Close()
//	 logger.Info("Logger initialized successfully")
//
// }
