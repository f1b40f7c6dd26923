// Package container provides a small dependency-injection container.
//
// # Overview
//
// A [Bindings] registry maps type identifiers (reflect.Type, usually
// obtained with [TypeOf]) to [Binding]s. An [Injector] owns a registry and
// resolves requested types against it, falling back to default construction
// when a type has no binding.
//
// Because Go has no runtime constructor reflection, default construction is
// opt-in through two capability interfaces implemented on pointer types:
// [DefaultConstructible] (Init) and [Injectable] (InitWith +
// InjectDependencies).
//
// # Bindings
//
//	inj := container.New()
//	b := inj.Bindings()
//
//	// Pre-built object: same instance every time
//	b.Bind(consoleLogger, container.TypeOf[Logger]())
//
//	// Factory: called on every resolution
//	b.BindFactory(container.TypeOf[Logger](), func(r container.Resolver) any {
//	    return &FileLogger{}
//	})
//
//	// Singleton: built lazily once, via Init or InitWith
//	b.BindSingleton(container.TypeOf[*Cache]())
//
//	// Type redirect: resolving Logger resolves *FileLogger
//	b.BindType(container.TypeOf[*FileLogger](), container.TypeOf[Logger]())
//
// Binding a type again replaces its previous binding. See [RebindPolicy] to
// get a warning or a panic instead.
//
// # Resolving
//
//	// Untyped
//	raw, ok := inj.Get(container.TypeOf[Logger]())
//
//	// Generic (preferred: no type assertion required)
//	logger, ok := container.Resolve[Logger](inj)
//
//	// With the reason for a failure
//	logger, err := container.TryResolve[Logger](inj)
//
// Resolution order for a type T:
//
//  1. T's binding, if it produces a value assignable to T
//  2. T is Injectable: new(T).InitWith(inj), then InjectDependencies(inj)
//  3. T is only DefaultConstructible: new(T).Init()
//  4. nothing: ok is false
//
// [Injector.Lookup], [Injector.LookupObject] and [Injector.LookupInjectable]
// give direct access to the individual paths.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(inj *container.Injector) {
//	    container.BindSingleton[*Mailer](inj.Bindings())
//	}
//
//	registry := container.NewProviderRegistry(inj)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Concurrency
//
// Registration and resolution are synchronous and safe for concurrent use.
// Concurrent first resolutions of a singleton share one construction. Cycles
// are not detected: a binding that resolves itself recurses forever, or
// blocks forever for singletons.
package container
