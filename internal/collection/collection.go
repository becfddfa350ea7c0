// Package collection iterates over sequence and associative targets and
// flattens fan-out results.
package collection

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// ErrNotIterable indicates the target cannot be broadcast over or filtered.
var ErrNotIterable = errors.New("value is not iterable")

// Entry is one element of an iterable together with its key or index.
type Entry struct {
	Key   any
	Value any
}

// Entries is an ordered, keyed selection of elements. It is itself iterable
// and list shaped.
type Entries []Entry

// Values returns the element values in order, discarding keys.
func (e Entries) Values() []any {
	values := make([]any, len(e))
	for i, entry := range e {
		values[i] = entry.Value
	}
	return values
}

// Iterable reports whether Of would accept target.
func Iterable(target any) bool {
	if _, ok := target.(Entries); ok {
		return true
	}
	v, ok := indirect(reflect.ValueOf(target))
	if !ok {
		return false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

// Of returns the elements of target. Slices and arrays keep index order; maps
// are ordered by key so repeated calls agree.
func Of(target any) (Entries, error) {
	if entries, ok := target.(Entries); ok {
		return entries, nil
	}

	v, ok := indirect(reflect.ValueOf(target))
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotIterable, target)
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		entries := make(Entries, v.Len())
		for i := range entries {
			entries[i] = Entry{Key: i, Value: v.Index(i).Interface()}
		}
		return entries, nil
	case reflect.Map:
		keys := v.MapKeys()
		slices.SortFunc(keys, compareKeys)
		entries := make(Entries, len(keys))
		for i, key := range keys {
			entries[i] = Entry{Key: key.Interface(), Value: v.MapIndex(key).Interface()}
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotIterable, target)
	}
}

func compareKeys(a, b reflect.Value) int {
	a, b = unwrap(a), unwrap(b)
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func unwrap(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
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
