package input

import (
	"fmt"

	"github.com/qri-io/jsonpointer"
	"github.com/theory/jsonpath"
)

// Narrowing selects the part of a document paths are resolved against.
// Pointer is applied before JSONPath; empty fields are skipped.
type Narrowing struct {
	Pointer  string
	JSONPath string
}

func (n Narrowing) Apply(data any) (any, error) {
	var err error
	if n.Pointer != "" {
		if data, err = Pointer(data, n.Pointer); err != nil {
			return nil, err
		}
	}
	if n.JSONPath != "" {
		if data, err = JSONPath(data, n.JSONPath); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Pointer evaluates an RFC 6901 JSON Pointer. An empty pointer selects the
// whole document.
func Pointer(data any, pointer string) (any, error) {
	if pointer == "" {
		return data, nil
	}

	ptr, err := jsonpointer.Parse(pointer)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON Pointer %s: %v", ErrNarrow, pointer, err)
	}

	result, err := ptr.Eval(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, pointer, err)
	}

	// missing members evaluate to nil without an error
	if result == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pointer)
	}

	return result, nil
}

// JSONPath returns the first node an RFC 9535 query selects.
func JSONPath(data any, query string) (any, error) {
	path, err := jsonpath.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrNarrow, query, err)
	}

	nodes := path.Select(data)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, query)
	}

	return nodes[0], nil
}
