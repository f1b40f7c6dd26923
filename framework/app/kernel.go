package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/inspect"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/providers"
)

// Version of the application kernel.
const Version = "0.1.0"

// Application is the top-level application injector.
// It embeds the Injector and ProviderRegistry so user code can call
// app.Resolve(), app.Bindings(), app.Register() directly.
type Application struct {
	*container.Injector
	Providers *container.ProviderRegistry

	config *config.Config
	logger *zap.Logger
}

// New loads configuration from envFiles and the environment, then builds
// the application.
func New(envFiles ...string) (*Application, error) {
	return NewWithConfig(config.Load(envFiles...))
}

// NewFromFile is like New but starts from a YAML configuration file.
func NewFromFile(path string, envFiles ...string) (*Application, error) {
	cfg, err := config.LoadFile(path, envFiles...)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig builds the logger and injector described by cfg and
// registers the framework providers.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	policy, err := container.ParseRebindPolicy(cfg.Container.RebindPolicy)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	inj := container.New(
		container.WithLogger(logger.Named("container")),
		container.WithRebindPolicy(policy),
	)
	app := &Application{
		Injector:  inj,
		Providers: container.NewProviderRegistry(inj),
		config:    cfg,
		logger:    logger,
	}

	// Framework core providers
	app.Register(&providers.ConfigServiceProvider{Config: cfg})
	app.Register(&providers.LoggingServiceProvider{Logger: logger})
	app.Register(&providers.InspectServiceProvider{})

	logger.Debug("application created",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Stringer("injector", inj.ID()),
		zap.Stringer("rebind", policy),
	)
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Run boots the application (if needed). When the inspector is enabled it
// serves it until ctx is cancelled; otherwise it returns immediately.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	a.logger.Info("application booted",
		zap.String("app", a.config.App.Name),
		zap.String("env", a.config.App.Env),
		zap.Int("bindings", a.Bindings().Len()),
	)

	if !a.config.Inspect.Enabled {
		return nil
	}
	srv, err := container.TryResolve[*inspect.Server](a)
	if err != nil {
		return fmt.Errorf("app: inspector: %w", err)
	}
	return srv.Run(ctx)
}

// Close flushes buffered log entries.
func (a *Application) Close() {
	_ = a.logger.Sync()
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
