package providers

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/inspect"
	"github.com/km-arc/go-inject/framework/logging"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound types:
//   - *config.Config
//
// When Config is nil the configuration is loaded from EnvFiles on first
// resolution.
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(inj *container.Injector) {
	if p.Config != nil {
		container.BindObject(inj.Bindings(), p.Config)
		return
	}
	envFiles := p.EnvFiles
	container.BindSingletonFactory(inj.Bindings(), func(container.Resolver) *config.Config {
		return config.Load(envFiles...)
	})
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound types:
//   - *zap.Logger
//
// When Logger is nil the logger is built from the bound *config.Config,
// falling back to config.Defaults().
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(inj *container.Injector) {
	if p.Logger != nil {
		container.BindObject(inj.Bindings(), p.Logger)
		return
	}
	container.BindSingletonFactory(inj.Bindings(), func(r container.Resolver) *zap.Logger {
		l, err := logging.New(configFrom(r).Log)
		if err != nil {
			return zap.NewNop()
		}
		return l
	})
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider binds the binding inspector server. It is deferred:
// nothing is built until *inspect.Server is first resolved.
//
// Bound types:
//   - *inspect.Server
//
// Configuration read from *config.Config:
//   - inspect.addr (default ":8070")
type InspectServiceProvider struct {
	container.BaseProvider
}

func (p *InspectServiceProvider) Register(inj *container.Injector) {
	container.BindSingletonFactory(inj.Bindings(), func(r container.Resolver) *inspect.Server {
		logger, ok := container.Resolve[*zap.Logger](r)
		if !ok {
			logger = zap.NewNop()
		}
		return inspect.NewServer(configFrom(r).Inspect.Addr, inj, logger.Named("inspect"))
	})
}

func (p *InspectServiceProvider) Provides() []reflect.Type {
	return []reflect.Type{container.TypeOf[*inspect.Server]()}
}

func (p *InspectServiceProvider) IsDeferred() bool { return true }

func configFrom(r container.Resolver) *config.Config {
	if cfg, ok := container.Resolve[*config.Config](r); ok {
		return cfg
	}
	return config.Defaults()
}
