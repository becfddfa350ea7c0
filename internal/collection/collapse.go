package collection

import (
	"reflect"

	"github.com/jacoelho/propath/internal/stack"
)

// Collapse flattens list shaped nesting in values into a single ordered
// sequence of leaves. Only slices, arrays and Entries are expanded; maps,
// structs, byte slices and scalars are leaves, and empty lists vanish.
func Collapse(values []any) []any {
	out := make([]any, 0, len(values))

	pending := stack.NewWithCapacity[any](len(values))
	pending.PushReversed(values...)

	for !pending.IsEmpty() {
		value, _ := pending.Pop()
		if children, ok := listOf(value); ok {
			pending.PushReversed(children...)
			continue
		}
		out = append(out, value)
	}

	return out
}

func listOf(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil, []byte:
		return nil, false
	case []any:
		return v, true
	case Entries:
		return v.Values(), true
	}

	rv, ok := indirect(reflect.ValueOf(value))
	if !ok {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	children := make([]any, rv.Len())
	for i := range children {
		children[i] = rv.Index(i).Interface()
	}
	return children, true
}
