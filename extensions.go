package featurekit

import "reflect"

// Extensions is a type-keyed heterogeneous store attached to a context. Each
// stored type has at most one value. The backing map is allocated lazily on
// the first insert, so an untouched Extensions costs nothing.
//
// Extensions are only mutable through the ContextView handed to evaluator
// hooks, while the owning context is not yet (or no longer) shared; after
// construction a context's extensions are read-only.
//
// Go methods cannot be generic, so access goes through the package-level
// ExtHas, ExtGet, ExtPut and ExtRemove functions, keyed by reflect.Type.
type Extensions struct {
	m map[reflect.Type]any
}

// Len returns the number of stored extensions.
func (e *Extensions) Len() int {
	if e == nil {
		return 0
	}
	return len(e.m)
}

// ExtHas reports whether ext contains a value of type T.
func ExtHas[T any](ext *Extensions) bool {
	if ext == nil || ext.m == nil {
		return false
	}
	_, ok := ext.m[reflect.TypeFor[T]()]
	return ok
}

// ExtGet returns the stored value of type T, if present.
//
// The value is returned as stored. To mutate an extension in place, store a
// pointer type; a retrieved value type is a copy.
func ExtGet[T any](ext *Extensions) (T, bool) {
	var zero T
	if ext == nil || ext.m == nil {
		return zero, false
	}
	v, ok := ext.m[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// ExtPut stores value under its type, replacing and returning any previous
// value of the same type.
func ExtPut[T any](ext *Extensions, value T) (prev T, replaced bool) {
	if ext.m == nil {
		ext.m = make(map[reflect.Type]any, 1)
	}
	key := reflect.TypeFor[T]()
	if old, ok := ext.m[key]; ok {
		prev, replaced = old.(T), true
	}
	ext.m[key] = value
	return prev, replaced
}

// ExtRemove removes and returns the stored value of type T, if present.
func ExtRemove[T any](ext *Extensions) (T, bool) {
	var zero T
	if ext == nil || ext.m == nil {
		return zero, false
	}
	key := reflect.TypeFor[T]()
	v, ok := ext.m[key]
	if !ok {
		return zero, false
	}
	delete(ext.m, key)
	return v.(T), true
}
