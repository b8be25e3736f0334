package module

import "reflect"

// PortSet is whatever a module returns from Ports, usually a struct of interfaces
type PortSet = any

// PortsOf finds a T in m's ports: the set itself, or an exported field of it
func PortsOf[T any](m Module) (T, bool) {
	return find[T](m.Ports())
}

// MustPortsOf is PortsOf for wiring code, it panics naming the module when T is missing
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}

// find looks at set, then at the exported fields of a struct or struct pointer
func find[T any](set any) (T, bool) {
	var zero T
	if set == nil {
		return zero, false
	}
	if v, ok := set.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(set)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}
