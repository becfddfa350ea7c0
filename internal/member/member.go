// Package member reads a single named or indexed member from a Go value.
//
// Structured objects (structs and pointers to structs) expose exported fields
// and zero-argument getter methods by name. Containers (maps, slices, arrays
// and Keyed implementations) expose their elements by key or index. A value
// may be both when a struct implements Keyed.
package member

import (
	"errors"
	"reflect"
)

var (
	// ErrNotAccessible indicates the value is neither an object nor a container.
	ErrNotAccessible = errors.New("value is neither an object nor a container")

	// ErrNoSuchProperty indicates a named lookup found nothing. Callers may
	// retry the same name with Index.
	ErrNoSuchProperty = errors.New("no such property")

	// ErrNoSuchIndex indicates an indexed lookup found nothing.
	ErrNoSuchIndex = errors.New("no such index")

	// ErrNotIndexable indicates the value has no indexed members.
	ErrNotIndexable = errors.New("value cannot be indexed")
)

// Keyed is implemented by custom associative containers whose members are
// only reachable by key.
type Keyed interface {
	Lookup(key string) (any, bool)
}

// getter reads one member from a value of a known shape.
type getter interface {
	get(key string) (any, error)
}

// Accessible reports whether target is an object or a container.
func Accessible(target any) bool {
	s := shapeOf(target)
	return s.object || s.container
}

// Get reads the member called name. Containers report ErrNoSuchProperty, as
// they have no named properties of their own.
func Get(target any, name string) (any, error) {
	g, err := shapeOf(target).named()
	if err != nil {
		return nil, err
	}
	return g.get(name)
}

// Index reads the member stored under key. Map keys are converted to the map
// key type; sequence indexes are decimal and negative values count from the end.
func Index(target any, key string) (any, error) {
	g, err := shapeOf(target).indexed()
	if err != nil {
		return nil, err
	}
	return g.get(key)
}

type shape struct {
	value     reflect.Value
	keyed     Keyed
	object    bool
	container bool
}

func shapeOf(target any) shape {
	v, ok := indirect(reflect.ValueOf(target))
	if !ok {
		return shape{}
	}

	s := shape{value: v}
	if keyed, ok := target.(Keyed); ok {
		s.keyed = keyed
		s.container = true
	}

	switch v.Kind() {
	case reflect.Struct:
		s.object = true
	case reflect.Map, reflect.Slice, reflect.Array:
		s.container = true
	}

	return s
}

func (s shape) named() (getter, error) {
	switch {
	case s.object:
		return fieldGetter{value: s.value}, nil
	case s.container:
		return nil, ErrNoSuchProperty
	default:
		return nil, ErrNotAccessible
	}
}

func (s shape) indexed() (getter, error) {
	switch {
	case s.container:
		return indexGetter{value: s.value, keyed: s.keyed}, nil
	case s.object:
		return nil, ErrNotIndexable
	default:
		return nil, ErrNotAccessible
	}
}

// indirect follows pointers and interfaces; nil reports false.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}
