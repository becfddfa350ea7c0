package filter

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr/ast"

	"github.com/jacoelho/propath/internal/member"
)

// lookupName is the function member accesses are compiled to.
const lookupName = "member"

// memberPatcher rewrites `x.name` and `x.name()` into `member(x, "name")`,
// so expressions read elements with the same rules as path segments:
// fields by name, tag or case-insensitive name, zero-argument getters with
// or without a Get, Is or Has prefix, then keys and indexes. Calls with
// arguments and computed indexes are left to expr.
type memberPatcher struct{}

func (memberPatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.MemberNode:
		if n.Method {
			return
		}
		if name, ok := n.Property.(*ast.StringNode); ok {
			ast.Patch(node, lookupCall(n.Node, name.Value))
		}
	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.MemberNode)
		if !ok || !callee.Method || len(n.Arguments) > 0 {
			return
		}
		if name, ok := callee.Property.(*ast.StringNode); ok {
			ast.Patch(node, lookupCall(callee.Node, name.Value))
		}
	}
}

func lookupCall(target ast.Node, name string) ast.Node {
	return &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: lookupName},
		Arguments: []ast.Node{target, &ast.StringNode{Value: name}},
	}
}

// lookup reads a member the way the resolver does. Missing members are nil,
// as they are for map keys in expr itself.
func lookup(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("%s: want 2 arguments, got %d", lookupName, len(params))
	}
	target := params[0]
	name, ok := params[1].(string)
	if !ok {
		return nil, fmt.Errorf("%s: name must be a string, got %T", lookupName, params[1])
	}

	value, err := member.Get(target, name)
	if errors.Is(err, member.ErrNoSuchProperty) {
		value, err = member.Index(target, name)
	}

	switch {
	case err == nil:
		return value, nil
	case target == nil, errors.Is(err, member.ErrNoSuchIndex), errors.Is(err, member.ErrNotIndexable):
		return nil, nil
	default:
		return nil, err
	}
}
