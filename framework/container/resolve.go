package container

import "fmt"

// ── Generic helpers ──────────────────────────────────────────────────────────

// Resolve is the typed form of [Resolver.Get]:
//
//	logger, ok := container.Resolve[Logger](inj)
func Resolve[T any](r Resolver) (T, bool) {
	var zero T
	obj, ok := r.Get(TypeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// TryResolve is like [Resolve] but reports why resolution failed.
func TryResolve[T any](r Resolver) (T, error) {
	var zero T
	t := TypeOf[T]()
	obj, err := r.Resolve(t)
	if err != nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] resolved to %T", ErrNoInstance, TypeName(t), obj)
	}
	return typed, nil
}

// MustResolve is like [TryResolve] but panics on failure. Meant for
// composition roots where a missing dependency is a programming error.
func MustResolve[T any](r Resolver) T {
	typed, err := TryResolve[T](r)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve[%s]: %v", TypeName(TypeOf[T]()), err))
	}
	return typed
}

// BindObject binds object to T.
//
//	container.BindObject[Logger](inj.Bindings(), consoleLogger)
func BindObject[T any](b *Bindings, object T) {
	b.Bind(object, TypeOf[T]())
}

// BindFactory binds a typed factory to T.
func BindFactory[T any](b *Bindings, f func(r Resolver) T) {
	b.BindFactory(TypeOf[T](), func(r Resolver) any { return f(r) })
}

// BindSingleton binds T in singleton scope.
func BindSingleton[T any](b *Bindings) {
	b.BindSingleton(TypeOf[T]())
}

// BindSingletonFactory binds T in singleton scope, built once by f.
func BindSingletonFactory[T any](b *Bindings, f func(r Resolver) T) {
	b.BindSingletonFactory(TypeOf[T](), func(r Resolver) any { return f(r) })
}

// BindType redirects resolution of To to Bound:
//
//	container.BindType[*FileLogger, Logger](inj.Bindings())
func BindType[Bound, To any](b *Bindings) {
	b.BindType(TypeOf[Bound](), TypeOf[To]())
}
