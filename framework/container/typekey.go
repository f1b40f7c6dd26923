package container

import (
	"reflect"
	"strings"
)

// TypeOf returns the type identifier of T. Interfaces are supported:
//
//	key := container.TypeOf[Logger]()     // the interface type itself
//	key := container.TypeOf[*FileLogger]()
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeName returns the package-qualified name of t, e.g.
// "*github.com/acme/app/logging.FileLogger". Used for logs and the inspector;
// keys themselves are always reflect.Type values.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	var prefix strings.Builder
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		prefix.WriteByte('*')
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return prefix.String() + t.String()
	}
	return prefix.String() + t.PkgPath() + "." + t.Name()
}
