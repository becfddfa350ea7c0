package member

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeFor[error]()

// getterPrefixes are tried, in order, in front of the capitalized name.
var getterPrefixes = []string{"", "Get", "Is", "Has"}

type fieldGetter struct {
	value reflect.Value // struct
}

func (g fieldGetter) get(name string) (any, error) {
	if name == "" {
		return nil, ErrNoSuchProperty
	}

	if field, ok := g.field(name); ok {
		return field.Interface(), nil
	}

	return g.method(name)
}

// field matches exported fields by Go name, then json and yaml tag names,
// then case-insensitively by Go name.
func (g fieldGetter) field(name string) (reflect.Value, bool) {
	fields := reflect.VisibleFields(g.value.Type())

	match := func(accept func(reflect.StructField) bool) (reflect.Value, bool) {
		for _, f := range fields {
			if !f.IsExported() || !accept(f) {
				continue
			}
			v, err := g.value.FieldByIndexErr(f.Index)
			if err != nil || !v.CanInterface() {
				continue
			}
			return v, true
		}
		return reflect.Value{}, false
	}

	if v, ok := match(func(f reflect.StructField) bool { return f.Name == name }); ok {
		return v, true
	}
	if v, ok := match(func(f reflect.StructField) bool {
		return tagName(f, "json") == name || tagName(f, "yaml") == name
	}); ok {
		return v, true
	}
	return match(func(f reflect.StructField) bool { return strings.EqualFold(f.Name, name) })
}

func (g fieldGetter) method(name string) (any, error) {
	receiver := g.value
	if receiver.CanAddr() {
		receiver = receiver.Addr()
	} else {
		ptr := reflect.New(receiver.Type())
		ptr.Elem().Set(receiver)
		receiver = ptr
	}

	capitalized := capitalize(name)
	for _, prefix := range getterPrefixes {
		m := receiver.MethodByName(prefix + capitalized)
		if !m.IsValid() || !isGetter(m.Type()) {
			continue
		}

		out := m.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, fmt.Errorf("%s%s: %w", prefix, capitalized, out[1].Interface().(error))
		}
		return out[0].Interface(), nil
	}

	return nil, fmt.Errorf("%w: %q on %s", ErrNoSuchProperty, name, g.value.Type())
}

func isGetter(t reflect.Type) bool {
	if t.NumIn() != 0 {
		return false
	}
	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == errorType
	default:
		return false
	}
}

func tagName(f reflect.StructField, key string) string {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
