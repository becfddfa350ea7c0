package member

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/jacoelho/propath/internal/number"
)

type indexGetter struct {
	value reflect.Value // map, slice or array; invalid for bare Keyed values
	keyed Keyed
}

func (g indexGetter) get(key string) (any, error) {
	if g.keyed != nil {
		if v, ok := g.keyed.Lookup(key); ok {
			return v, nil
		}
	}

	switch g.value.Kind() {
	case reflect.Map:
		return g.mapIndex(key)
	case reflect.Slice, reflect.Array:
		return g.sequenceIndex(key)
	}

	return nil, fmt.Errorf("%w: %q", ErrNoSuchIndex, key)
}

func (g indexGetter) mapIndex(key string) (any, error) {
	k, err := number.ParseKey(key, g.value.Type().Key())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchIndex, err)
	}

	v := g.value.MapIndex(k)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchIndex, key)
	}

	return v.Interface(), nil
}

func (g indexGetter) sequenceIndex(key string) (any, error) {
	i, err := strconv.Atoi(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an index", ErrNoSuchIndex, key)
	}

	length := g.value.Len()
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return nil, fmt.Errorf("%w: %d out of range [0,%d)", ErrNoSuchIndex, i, length)
	}

	return g.value.Index(i).Interface(), nil
}
