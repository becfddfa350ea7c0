package number

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrConversion indicates a segment cannot be represented as the requested type.
var ErrConversion = errors.New("cannot convert key")

// ToFloat64 converts numeric values, including named numeric types and
// json.Number, to float64.
func ToFloat64(value any) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// ParseKey converts a path segment into a value assignable to typ, so it can
// be used as a map key. Only string, bool and numeric kinds are supported;
// interface key types receive the segment as a string.
func ParseKey(segment string, typ reflect.Type) (reflect.Value, error) {
	key := reflect.New(typ).Elem()

	switch typ.Kind() {
	case reflect.String:
		key.SetString(segment)
	case reflect.Interface:
		if !reflect.TypeOf(segment).AssignableTo(typ) {
			return reflect.Value{}, fmt.Errorf("%w: %q to %s", ErrConversion, segment, typ)
		}
		key.Set(reflect.ValueOf(segment))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(segment, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q to %s: %v", ErrConversion, segment, typ, err)
		}
		key.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		parsed, err := strconv.ParseUint(segment, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q to %s: %v", ErrConversion, segment, typ, err)
		}
		key.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(segment, typ.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q to %s: %v", ErrConversion, segment, typ, err)
		}
		key.SetFloat(parsed)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(segment)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q to %s: %v", ErrConversion, segment, typ, err)
		}
		key.SetBool(parsed)
	default:
		return reflect.Value{}, fmt.Errorf("%w: unsupported key type %s", ErrConversion, typ)
	}

	return key, nil
}
