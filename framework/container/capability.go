package container

import (
	"fmt"
	"reflect"
	"strings"
)

// ── Capabilities ─────────────────────────────────────────────────────────────

// DefaultConstructible is implemented by types that can be built without
// arguments. The container allocates a zero value and calls Init on it.
//
//	type Clock struct{ loc *time.Location }
//	func (c *Clock) Init() { c.loc = time.UTC }
type DefaultConstructible interface {
	Init()
}

// Injectable is implemented by types that are built from a [Resolver].
//
// InitWith acts as the constructor; a non-nil error means construction
// failed and nothing is returned to the caller. InjectDependencies is called
// once on the new instance right after a successful InitWith.
//
//	type UserService struct{ repo *UserRepo }
//
//	func (s *UserService) InitWith(r container.Resolver) error { return nil }
//	func (s *UserService) InjectDependencies(r container.Resolver) {
//	    s.repo, _ = container.Resolve[*UserRepo](r)
//	}
type Injectable interface {
	InitWith(r Resolver) error
	InjectDependencies(r Resolver)
}

// Capability is the set of construction capabilities a type supports.
type Capability uint8

const (
	// CanDefault marks a [DefaultConstructible] type.
	CanDefault Capability = 1 << iota
	// CanInject marks an [Injectable] type.
	CanInject
)

// Has reports whether every bit of o is set in c.
func (c Capability) Has(o Capability) bool { return c&o == o }

// String returns a human-readable form, e.g. "default|injectable".
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(CanDefault) {
		parts = append(parts, "default")
	}
	if c.Has(CanInject) {
		parts = append(parts, "injectable")
	}
	return strings.Join(parts, "|")
}

var (
	defaultConstructibleType = TypeOf[DefaultConstructible]()
	injectableType           = TypeOf[Injectable]()
)

// Capabilities classifies t. Only pointer types can be constructed: for
// t = *S a zero S is allocated and *S's method set decides the result.
// Interfaces and every other kind report no capability.
func Capabilities(t reflect.Type) Capability {
	if t == nil || t.Kind() != reflect.Pointer {
		return 0
	}
	var c Capability
	if t.Implements(defaultConstructibleType) {
		c |= CanDefault
	}
	if t.Implements(injectableType) {
		c |= CanInject
	}
	return c
}

// ── Default construction ─────────────────────────────────────────────────────

// Construct builds a new t without consulting any binding.
//
// Injectable types are built with InitWith(r) followed by
// InjectDependencies(r); a failing InitWith is reported as
// [ErrConstructionFailed] and the no-arg path is not tried. Types that are
// only DefaultConstructible get Init() and never fail. Anything else returns
// [ErrUnsupportedCapability].
func Construct(t reflect.Type, r Resolver) (any, error) {
	caps := Capabilities(t)
	switch {
	case caps.Has(CanInject):
		return constructInjectable(t, r)
	case caps.Has(CanDefault):
		return constructDefault(t), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCapability, TypeName(t))
	}
}

// constructDefault expects Capabilities(t).Has(CanDefault).
func constructDefault(t reflect.Type) any {
	obj := reflect.New(t.Elem()).Interface().(DefaultConstructible)
	obj.Init()
	return obj
}

// constructInjectable expects Capabilities(t).Has(CanInject).
func constructInjectable(t reflect.Type, r Resolver) (any, error) {
	obj := reflect.New(t.Elem()).Interface().(Injectable)
	if err := obj.InitWith(r); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstructionFailed, TypeName(t), err)
	}
	obj.InjectDependencies(r)
	return obj, nil
}
