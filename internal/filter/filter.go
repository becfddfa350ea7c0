// Package filter selects the elements of an iterable that satisfy a boolean
// expression.
//
// Expressions use the expr language (github.com/expr-lang/expr). Each element
// is bound as "object" and the expression text is applied to it as a member
// access, so `status == "active"` is evaluated as `object.status == "active"`.
// Member names resolve as they do in paths: `value`, `Value`, `getValue()`
// and `GetValue()` all read a GetValue getter when there is no such field.
package filter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jacoelho/propath/internal/collection"
)

// ObjectName is the identifier each element is bound to.
const ObjectName = "object"

// ErrEvaluation indicates an expression failed to compile or to run.
var ErrEvaluation = errors.New("filter: expression evaluation failed")

type compiled struct {
	program *vm.Program
	err     error
}

// Evaluator compiles filter expressions once and applies them to elements.
// It is safe for concurrent use.
type Evaluator struct {
	logger *slog.Logger

	mu       sync.Mutex
	programs map[string]compiled
}

// New returns an Evaluator logging discarded elements to logger. A nil logger
// discards everything.
func New(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{
		logger:   logger,
		programs: make(map[string]compiled),
	}
}

// Select returns the entries of target for which expression is truthy,
// preserving order and keys. It fails only when target is not iterable;
// elements whose evaluation fails are excluded.
func (e *Evaluator) Select(target any, expression string) (collection.Entries, error) {
	entries, err := collection.Of(target)
	if err != nil {
		return nil, err
	}

	matched := make(collection.Entries, 0, len(entries))

	program, err := e.compile(expression)
	if err != nil {
		return matched, nil
	}

	for _, entry := range entries {
		ok, err := e.matches(program, entry.Value)
		if err != nil {
			e.logger.Debug("filter element excluded",
				slog.String("expression", expression),
				slog.Any("key", entry.Key),
				slog.String("error", err.Error()),
			)
			continue
		}
		if ok {
			matched = append(matched, entry)
		}
	}

	return matched, nil
}

// Eval evaluates expression against a single element and returns its raw value.
func (e *Evaluator) Eval(expression string, element any) (any, error) {
	program, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(program, element)
}

func (e *Evaluator) matches(program *vm.Program, element any) (bool, error) {
	out, err := e.run(program, element)
	if err != nil {
		return false, err
	}
	return Truthy(out), nil
}

func (e *Evaluator) run(program *vm.Program, element any) (any, error) {
	out, err := expr.Run(program, map[string]any{ObjectName: Coerce(element)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	return out, nil
}

func (e *Evaluator) compile(expression string) (*vm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.programs[expression]; ok {
		return c.program, c.err
	}

	source := ObjectName + "." + strings.TrimSpace(expression)
	program, err := expr.Compile(source,
		expr.Function(lookupName, lookup),
		expr.Patch(memberPatcher{}),
	)
	if err != nil {
		err = fmt.Errorf("%w: %q: %v", ErrEvaluation, expression, err)
		e.logger.Debug("filter expression rejected",
			slog.String("expression", expression),
			slog.String("error", err.Error()),
		)
	}

	e.programs[expression] = compiled{program: program, err: err}
	return program, err
}
