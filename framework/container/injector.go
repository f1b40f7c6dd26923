package container

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver is the handle passed to factories and injectable types so they
// can resolve their own dependencies. [*Injector] is the implementation.
type Resolver interface {
	// Resolve returns an instance of t: from t's binding when it produces a
	// value assignable to t, otherwise by default construction.
	Resolve(t reflect.Type) (any, error)

	// Get is Resolve with the reason for a failure dropped.
	Get(t reflect.Type) (any, bool)

	// Lookup returns whatever t's binding produces, with no fallback.
	Lookup(t reflect.Type) (any, bool)

	// LookupObject returns t's binding result if it is DefaultConstructible,
	// otherwise a no-arg construction of t.
	LookupObject(t reflect.Type) (any, bool)

	// LookupInjectable returns t's binding result if it is Injectable,
	// otherwise an Injectable construction of t.
	LookupInjectable(t reflect.Type) (any, bool)
}

// Injector owns a [Bindings] registry and resolves types against it.
//
// There is no process-wide injector: create one per application and pass it
// (or the [Resolver] interface) to whoever needs it.
type Injector struct {
	id       uuid.UUID
	bindings *Bindings
	logger   *zap.Logger
}

var _ Resolver = (*Injector)(nil)

// New creates an injector with an empty registry. Options apply to both.
func New(opts ...Option) *Injector {
	o := newOptions(opts)
	return &Injector{
		id:       uuid.New(),
		bindings: newBindings(o),
		logger:   o.logger,
	}
}

// NewWithBindings creates an injector resolving against an existing
// registry. Only [WithLogger] affects the injector itself.
func NewWithBindings(b *Bindings, opts ...Option) *Injector {
	if b == nil {
		b = NewBindings(opts...)
	}
	o := newOptions(opts)
	return &Injector{
		id:       uuid.New(),
		bindings: b,
		logger:   o.logger,
	}
}

// ID identifies this injector in logs and in the inspector.
func (inj *Injector) ID() uuid.UUID { return inj.id }

// Bindings returns the registry owned by the injector.
func (inj *Injector) Bindings() *Bindings { return inj.bindings }

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve runs the resolution chain for t:
//
//  1. t's binding, if it produces a value assignable to t;
//  2. Injectable construction (InitWith + InjectDependencies), or
//  3. no-arg construction (Init) for types that are only DefaultConstructible.
//
// When nothing applies the error wraps [ErrNotBound] for unbound types, or
// the binding's own failure. A failing InitWith is reported as
// [ErrConstructionFailed].
func (inj *Injector) Resolve(t reflect.Type) (any, error) {
	obj, bindErr := inj.bindings.Find(t, inj)
	if bindErr == nil {
		if assignable(obj, t) {
			return obj, nil
		}
		bindErr = fmt.Errorf("%w: [%s] bound to %T", ErrNoInstance, TypeName(t), obj)
	}

	obj, err := Construct(t, inj)
	if err == nil {
		return obj, nil
	}
	if errors.Is(err, ErrUnsupportedCapability) {
		err = bindErr
	}

	inj.logger.Debug("resolution failed",
		zap.Stringer("injector", inj.id),
		zap.String("type", TypeName(t)),
		zap.Error(err),
	)
	return nil, err
}

// Get resolves t and reports only whether an instance was produced.
func (inj *Injector) Get(t reflect.Type) (any, bool) {
	obj, err := inj.Resolve(t)
	if err != nil {
		return nil, false
	}
	return obj, true
}

// ── Lookups ───────────────────────────────────────────────────────────────────

// Lookup returns what t's binding produces. Unbound types are not
// constructed.
func (inj *Injector) Lookup(t reflect.Type) (any, bool) {
	obj, err := inj.bindings.Find(t, inj)
	if err != nil {
		return nil, false
	}
	return obj, true
}

// LookupObject resolves t along the no-arg construction path.
//
// A bound value is returned when it is DefaultConstructible; if it is also
// Injectable, InjectDependencies is called on it before it is returned, even
// though it did not come from an Injectable construction. Otherwise, and
// when t is unbound, a fresh t is built with Init if t is
// DefaultConstructible. Freshly built values never get InjectDependencies.
func (inj *Injector) LookupObject(t reflect.Type) (any, bool) {
	if obj, err := inj.bindings.Find(t, inj); err == nil {
		if _, ok := obj.(DefaultConstructible); ok {
			if injectable, ok := obj.(Injectable); ok {
				injectable.InjectDependencies(inj)
			}
			return obj, true
		}
	}

	if !Capabilities(t).Has(CanDefault) {
		return nil, false
	}
	return constructDefault(t), true
}

// LookupInjectable resolves t along the Injectable path: a bound value that
// is Injectable is returned as is, otherwise t is built with InitWith and
// InjectDependencies.
func (inj *Injector) LookupInjectable(t reflect.Type) (any, bool) {
	if obj, err := inj.bindings.Find(t, inj); err == nil {
		if _, ok := obj.(Injectable); ok {
			return obj, true
		}
	}

	if !Capabilities(t).Has(CanInject) {
		return nil, false
	}
	obj, err := constructInjectable(t, inj)
	if err != nil {
		inj.logger.Debug("injectable construction failed",
			zap.Stringer("injector", inj.id),
			zap.String("type", TypeName(t)),
			zap.Error(err),
		)
		return nil, false
	}
	return obj, true
}

// assignable reports whether obj can be returned for a request of type t.
func assignable(obj any, t reflect.Type) bool {
	if obj == nil || t == nil {
		return false
	}
	return reflect.TypeOf(obj).AssignableTo(t)
}
