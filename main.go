package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/container"
)

// ── Demo types ───────────────────────────────────────────────────────────────

// Logger is the abstraction the demo binds and rebinds.
type Logger interface {
	Log(msg string)
}

// ConsoleLogger writes to stdout.
type ConsoleLogger struct{}

func (ConsoleLogger) Log(msg string) { fmt.Println("[console]", msg) }

// FileLogger is DefaultConstructible: the injector can build it unbound.
type FileLogger struct {
	Path string
}

func (l *FileLogger) Init() { l.Path = "app.log" }

func (l *FileLogger) Log(msg string) { fmt.Printf("[file %s] %s\n", l.Path, msg) }

// Greeter is Injectable: it pulls its Logger from the resolver.
type Greeter struct {
	logger Logger
}

func (g *Greeter) InitWith(container.Resolver) error { return nil }

func (g *Greeter) InjectDependencies(r container.Resolver) {
	g.logger = container.MustResolve[Logger](r)
}

func (g *Greeter) Greet(name string) { g.logger.Log("hello, " + name) }

// ── Demo provider ────────────────────────────────────────────────────────────

type loggerProvider struct {
	container.BaseProvider
}

func (p *loggerProvider) Register(inj *container.Injector) {
	container.BindObject[Logger](inj.Bindings(), ConsoleLogger{})
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer application.Close()

	application.Register(&loggerProvider{})
	application.Boot()

	// Object binding: every resolve returns the same console logger.
	logger := container.MustResolve[Logger](application)
	logger.Log("bound to an object")

	// Injectable construction: Greeter is unbound and built on demand.
	container.MustResolve[*Greeter](application).Greet("injector")

	// Rebind to a factory: each resolve yields a fresh FileLogger.
	container.BindFactory(application.Bindings(), func(r container.Resolver) Logger {
		return container.MustResolve[*FileLogger](r)
	})
	first := container.MustResolve[Logger](application)
	second := container.MustResolve[Logger](application)
	first.Log(fmt.Sprintf("distinct instances: %t", first != second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := application.Run(ctx); err != nil {
		application.Logger().Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}
