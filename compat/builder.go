// FILE: lixenwraith/loclog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/loclog"
)

// Builder creates logger adapters for gnet and fasthttp.
// It uses an existing *loclog.Logger or obtains one from a registry and a *loclog.Config.
type Builder struct {
	logger   *loclog.Logger
	logCfg   *loclog.Config
	registry *loclog.Registry
	err      error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *loclog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("loclog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a logger obtained from the registry.
// Used only if no logger is provided via WithLogger.
func (b *Builder) WithConfig(cfg *loclog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// WithRegistry sets the registry new loggers are registered in.
// Without it the builder creates a private registry.
func (b *Builder) WithRegistry(r *loclog.Registry) *Builder {
	b.registry = r
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*loclog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = loclog.DefaultConfig()
	}
	if b.registry == nil {
		b.registry = loclog.NewRegistry()
	}

	l, err := b.registry.Apply(cfg)
	if err != nil {
		return nil, err
	}

	// Cache the logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *loclog.Logger instance,
// creating it if it has not been provided or created yet
func (b *Builder) GetLogger() (*loclog.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	reg := loclog.NewRegistry()
//	defer reg.Close()
//	appLogger := reg.GetLogger("server", "/var/log/app/server.log", loclog.LevelInfo)
//
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, err := builder.BuildGnet()
//	if err != nil { /* handle error */ }
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, err := builder.BuildFastHTTP()
//	if err != nil { /* handle error */ }
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
