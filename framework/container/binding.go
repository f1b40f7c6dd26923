package container

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a value on demand. It receives the resolver performing the
// lookup so it can resolve its own dependencies. Returning nil means
// "no instance".
type Factory func(r Resolver) any

// Binding is a rule for producing an instance of a bound type.
//
// The resolver is passed on every call; bindings never keep a reference to
// it.
type Binding interface {
	Produce(r Resolver) (any, error)
	Kind() Kind
}

// Kind identifies the four built-in binding variants.
type Kind int

const (
	// ObjectKind always returns one pre-built instance.
	ObjectKind Kind = iota
	// FactoryKind calls a Factory on every resolution.
	FactoryKind
	// SingletonKind builds once, lazily, and caches.
	SingletonKind
	// TypeKind redirects resolution to another type.
	TypeKind
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case ObjectKind:
		return "object"
	case FactoryKind:
		return "factory"
	case SingletonKind:
		return "singleton"
	case TypeKind:
		return "type"
	default:
		return "unknown"
	}
}

// ── Object ───────────────────────────────────────────────────────────────────

// ObjectBinding holds a pre-built instance.
type ObjectBinding struct {
	object any
}

// NewObjectBinding wraps object.
func NewObjectBinding(object any) *ObjectBinding {
	return &ObjectBinding{object: object}
}

// Produce returns the held instance.
func (b *ObjectBinding) Produce(_ Resolver) (any, error) {
	if isNil(b.object) {
		return nil, fmt.Errorf("%w: nil object", ErrNoInstance)
	}
	return b.object, nil
}

func (b *ObjectBinding) Kind() Kind { return ObjectKind }

// Object returns the held instance.
func (b *ObjectBinding) Object() any { return b.object }

// ── Factory ──────────────────────────────────────────────────────────────────

// FactoryBinding calls its factory on every Produce. Nothing is cached.
type FactoryBinding struct {
	factory Factory
}

// NewFactoryBinding wraps f.
func NewFactoryBinding(f Factory) *FactoryBinding {
	return &FactoryBinding{factory: f}
}

// Produce invokes the factory with r.
func (b *FactoryBinding) Produce(r Resolver) (any, error) {
	if b.factory == nil {
		return nil, fmt.Errorf("%w: nil factory", ErrNoInstance)
	}
	obj := b.factory(r)
	if isNil(obj) {
		return nil, fmt.Errorf("%w: factory returned nil", ErrNoInstance)
	}
	return obj, nil
}

func (b *FactoryBinding) Kind() Kind { return FactoryKind }

// ── Singleton ────────────────────────────────────────────────────────────────

// SingletonBinding lazily builds one instance and caches it.
//
// Only a successful construction fills the cache; a failure is returned to
// the caller and the next Produce tries again. Concurrent first calls share a
// single construction. Resolving the singleton from inside its own
// construction blocks forever.
type SingletonBinding struct {
	target  reflect.Type
	factory Factory

	mu       sync.RWMutex
	instance any
	cached   bool

	group singleflight.Group
}

// NewSingletonBinding builds target with [Construct] on first use.
func NewSingletonBinding(target reflect.Type) *SingletonBinding {
	return &SingletonBinding{target: target}
}

// NewSingletonFactoryBinding caches the first non-nil result of f.
func NewSingletonFactoryBinding(target reflect.Type, f Factory) *SingletonBinding {
	return &SingletonBinding{target: target, factory: f}
}

// Produce returns the cached instance, building it first if needed.
func (b *SingletonBinding) Produce(r Resolver) (any, error) {
	if obj, ok := b.Cached(); ok {
		return obj, nil
	}

	obj, err, _ := b.group.Do("", func() (any, error) {
		if obj, ok := b.Cached(); ok {
			return obj, nil
		}
		obj, err := b.construct(r)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.instance, b.cached = obj, true
		b.mu.Unlock()
		return obj, nil
	})
	return obj, err
}

func (b *SingletonBinding) construct(r Resolver) (any, error) {
	if b.factory == nil {
		return Construct(b.target, r)
	}
	obj := b.factory(r)
	if isNil(obj) {
		return nil, fmt.Errorf("%w: singleton factory returned nil", ErrNoInstance)
	}
	return obj, nil
}

func (b *SingletonBinding) Kind() Kind { return SingletonKind }

// Target returns the type the singleton constructs.
func (b *SingletonBinding) Target() reflect.Type { return b.target }

// Cached returns the cached instance, if any.
func (b *SingletonBinding) Cached() (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.instance, b.cached
}

// ── Type alias ───────────────────────────────────────────────────────────────

// TypeBinding redirects resolution to another type: that type's binding if
// one exists, otherwise its default construction.
type TypeBinding struct {
	target reflect.Type
}

// NewTypeBinding redirects to target.
func NewTypeBinding(target reflect.Type) *TypeBinding {
	return &TypeBinding{target: target}
}

// Produce resolves the target type through r.
func (b *TypeBinding) Produce(r Resolver) (any, error) {
	return r.Resolve(b.target)
}

func (b *TypeBinding) Kind() Kind { return TypeKind }

// Target returns the type resolution is redirected to.
func (b *TypeBinding) Target() reflect.Type { return b.target }

// ── Helpers ──────────────────────────────────────────────────────────────────

// isNil reports whether v is nil or a typed nil (pointer, map, func, ...).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
