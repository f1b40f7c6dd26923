package container

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bindings.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type LoggingProvider struct{ container.BaseProvider }
//
//	func (p *LoggingProvider) Register(inj *container.Injector) {
//	    container.BindSingletonFactory(inj.Bindings(), func(r container.Resolver) Logger {
//	        return NewConsoleLogger()
//	    })
//	}
type ServiceProvider interface {
	// Register binds types into the injector.
	// Do NOT resolve other bindings here: use Boot() for that.
	Register(inj *Injector)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(inj *Injector)

	// Provides returns the types this provider binds.
	// Used for deferred (lazy) provider loading.
	Provides() []reflect.Type

	// IsDeferred returns true if this provider should be loaded lazily,
	// only when one of its Provides() types is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Injector)         {}
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	inj *Injector

	mu           sync.Mutex
	active       []ServiceProvider
	deferred     map[reflect.Type]ServiceProvider
	interceptors map[reflect.Type]*deferredBinding
	loads        map[ServiceProvider]*sync.Once
	registered   map[ServiceProvider]bool
	booted       bool
}

// NewProviderRegistry creates a registry bound to inj.
func NewProviderRegistry(inj *Injector) *ProviderRegistry {
	return &ProviderRegistry{
		inj:          inj,
		deferred:     make(map[reflect.Type]ServiceProvider),
		interceptors: make(map[reflect.Type]*deferredBinding),
		loads:        make(map[ServiceProvider]*sync.Once),
		registered:   make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
// Registering the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.loads[provider] = &sync.Once{}
		for _, t := range provider.Provides() {
			r.deferred[t] = provider
		}
		r.mu.Unlock()
		r.interceptDeferred(provider)
		return
	}

	r.active = append(r.active, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.inj)
	r.inj.logger.Debug("provider registered", zap.String("provider", reflect.TypeOf(provider).String()))

	// If already booted, boot this provider immediately
	if booted {
		provider.Boot(r.inj)
	}
}

// interceptDeferred binds a placeholder for each deferred type. The first
// resolution loads the provider and then resolves through the binding the
// provider registered.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	bindings := r.inj.Bindings()
	for _, t := range provider.Provides() {
		interceptor := &deferredBinding{
			target:   t,
			bindings: bindings,
			load:     func() { r.load(provider) },
		}

		r.mu.Lock()
		r.interceptors[t] = interceptor
		r.mu.Unlock()
		bindings.Set(t, interceptor)
	}
}

// load registers (and, after Boot, boots) a deferred provider exactly once.
// Placeholders stay bound while the provider registers, so concurrent
// resolutions wait here instead of finding the type unbound.
func (r *ProviderRegistry) load(provider ServiceProvider) {
	r.mu.Lock()
	once := r.loads[provider]
	r.mu.Unlock()
	if once == nil {
		return
	}

	once.Do(func() {
		r.mu.Lock()
		r.active = append(r.active, provider)
		booted := r.booted
		r.mu.Unlock()

		provider.Register(r.inj)
		r.inj.logger.Debug("deferred provider loaded", zap.String("provider", reflect.TypeOf(provider).String()))

		// Types the provider claimed but never bound.
		bindings := r.inj.Bindings()
		r.mu.Lock()
		for _, t := range provider.Provides() {
			if current, ok := bindings.Binding(t); ok && current == Binding(r.interceptors[t]) {
				bindings.Unbind(t)
			}
			delete(r.interceptors, t)
			delete(r.deferred, t)
		}
		r.mu.Unlock()

		if booted {
			provider.Boot(r.inj)
		}
	})
}

// deferredBinding stands in for a type until its deferred provider loads.
// Replacing it is not a rebind.
type deferredBinding struct {
	target   reflect.Type
	bindings *Bindings
	load     func()
}

func (b *deferredBinding) Produce(r Resolver) (any, error) {
	b.load()
	binding, ok := b.bindings.Binding(b.target)
	if !ok || binding == Binding(b) {
		return nil, fmt.Errorf("%w: [%s] was not bound by its provider", ErrNotBound, TypeName(b.target))
	}
	return binding.Produce(r)
}

func (b *deferredBinding) Kind() Kind { return FactoryKind }

// Boot calls Boot() on every provider registered so far. Deferred providers
// loaded later are booted as they load.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.active...)
	r.mu.Unlock()

	for _, provider := range providers {
		provider.Boot(r.inj)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the providers whose Register has run: eager ones in
// registration order, then deferred ones in load order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.active...)
}

// Deferred returns the types still waiting on a deferred provider.
func (r *ProviderRegistry) Deferred() []reflect.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reflect.Type, 0, len(r.deferred))
	for t := range r.deferred {
		out = append(out, t)
	}
	return out
}
