package container

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Bindings is the registry mapping type identifiers to [Binding]s.
//
// It never holds a reference to the resolver that uses it: every lookup gets
// the resolver as a parameter. Methods are safe for concurrent use; a
// binding's Produce runs outside the registry lock, so factories may bind or
// resolve recursively.
type Bindings struct {
	mu sync.RWMutex

	// type → binding
	bindings map[reflect.Type]Binding

	logger *zap.Logger
	policy RebindPolicy
}

// NewBindings creates an empty registry.
func NewBindings(opts ...Option) *Bindings {
	return newBindings(newOptions(opts))
}

func newBindings(o options) *Bindings {
	return &Bindings{
		bindings: make(map[reflect.Type]Binding),
		logger:   o.logger,
		policy:   o.policy,
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a pre-built object for the type to. Every resolution of to
// returns the same object.
//
//	b.Bind(consoleLogger, container.TypeOf[Logger]())
func (b *Bindings) Bind(object any, to reflect.Type) {
	b.Set(to, NewObjectBinding(object))
}

// BindFactory registers f for the type to. f runs on every resolution.
//
//	b.BindFactory(container.TypeOf[Logger](), func(r container.Resolver) any {
//	    return &FileLogger{Path: "/var/log/app.log"}
//	})
func (b *Bindings) BindFactory(to reflect.Type, f Factory) {
	b.Set(to, NewFactoryBinding(f))
}

// BindSingleton registers t in singleton scope: the first resolution builds
// a t with [Construct] and every later one returns that instance. Types that
// are neither DefaultConstructible nor Injectable never resolve through it.
func (b *Bindings) BindSingleton(t reflect.Type) {
	b.Set(t, NewSingletonBinding(t))
}

// BindSingletonFactory registers t in singleton scope, built by f on first
// resolution.
func (b *Bindings) BindSingletonFactory(t reflect.Type, f Factory) {
	b.Set(t, NewSingletonFactoryBinding(t, f))
}

// BindType makes resolution of to resolve bound instead: bound's own binding
// when there is one, otherwise bound's default construction.
//
//	b.BindType(container.TypeOf[*FileLogger](), container.TypeOf[Logger]())
//
// Binding a type to itself panics.
func (b *Bindings) BindType(bound, to reflect.Type) {
	if bound == to {
		panic(fmt.Sprintf("container: [%s] is bound to itself", TypeName(to)))
	}
	b.Set(to, NewTypeBinding(bound))
}

// Set registers an arbitrary binding for t, replacing any previous one
// according to the rebind policy.
func (b *Bindings) Set(t reflect.Type, binding Binding) {
	if t == nil {
		panic("container: cannot bind a nil type")
	}
	if binding == nil {
		panic(fmt.Sprintf("container: nil binding for [%s]", TypeName(t)))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, exists := b.bindings[t]; exists && !isDeferred(prev) {
		switch b.policy {
		case RebindStrict:
			panic(fmt.Errorf("%w: %s", ErrAlreadyBound, TypeName(t)))
		case RebindWarn:
			b.logger.Warn("binding replaced",
				zap.String("type", TypeName(t)),
				zap.Stringer("previous", prev.Kind()),
				zap.Stringer("next", binding.Kind()),
			)
		}
	}

	b.bindings[t] = binding
	b.logger.Debug("bound", zap.String("type", TypeName(t)), zap.Stringer("kind", binding.Kind()))
}

func isDeferred(binding Binding) bool {
	_, ok := binding.(*deferredBinding)
	return ok
}

// Unbind removes the binding for t, if any.
func (b *Bindings) Unbind(t reflect.Type) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.bindings, t)
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Find produces an instance from t's binding using r. It returns
// [ErrNotBound] when t has no binding; default construction is left to the
// resolver.
func (b *Bindings) Find(t reflect.Type, r Resolver) (any, error) {
	binding, ok := b.Binding(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBound, TypeName(t))
	}
	return binding.Produce(r)
}

// Binding returns the binding registered for t.
func (b *Bindings) Binding(t reflect.Type) (Binding, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	binding, ok := b.bindings[t]
	return binding, ok
}

// Has reports whether t has a binding.
func (b *Bindings) Has(t reflect.Type) bool {
	_, ok := b.Binding(t)
	return ok
}

// Len returns the number of bound types.
func (b *Bindings) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.bindings)
}

// Entry is one row of [Bindings.Entries].
type Entry struct {
	Type    reflect.Type
	Binding Binding
}

// Entries returns a snapshot of all bindings sorted by type name.
func (b *Bindings) Entries() []Entry {
	b.mu.RLock()
	out := make([]Entry, 0, len(b.bindings))
	for t, binding := range b.bindings {
		out = append(out, Entry{Type: t, Binding: binding})
	}
	b.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(TypeName(a.Type), TypeName(b.Type))
	})
	return out
}
