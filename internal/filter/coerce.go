package filter

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/jacoelho/propath/internal/number"
)

// ScalarName is the field under which non-object elements are exposed.
const ScalarName = "scalar"

var stringType = reflect.TypeFor[string]()

// Coerce exposes element as an object-like value so expressions use the same
// field syntax whatever its shape:
//   - structs, pointers to structs and string keyed maps are returned as is
//   - other maps are re-keyed by the string form of their keys
//   - slices and arrays become maps keyed by decimal index
//   - anything else, nil included, is wrapped as {"scalar": element}
func Coerce(element any) any {
	v := reflect.ValueOf(element)
	base := v
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Interface {
		if base.IsNil() {
			return map[string]any{ScalarName: element}
		}
		base = base.Elem()
	}

	switch base.Kind() {
	case reflect.Struct:
		return element
	case reflect.Map:
		if base.Type().Key() == stringType {
			return element
		}
		out := make(map[string]any, base.Len())
		iter := base.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make(map[string]any, base.Len())
		for i := range base.Len() {
			out[strconv.Itoa(i)] = base.Index(i).Interface()
		}
		return out
	default:
		return map[string]any{ScalarName: element}
	}
}

// Truthy reports whether an expression result selects its element. nil,
// false, zero numbers, "", "0" and empty collections do not.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	}

	if f, ok := number.ToFloat64(value); ok {
		return f != 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
