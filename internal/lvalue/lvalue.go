// Package lvalue resolves assignment targets such as `m[1].yxz` into a base
// name and the ordered accessor chain applied to it.
package lvalue

import (
	"errors"
	"fmt"
	"strconv"

	"glslgen/internal/ast"
	"glslgen/internal/visit"
)

// ErrUnsupportedTarget is returned for target shapes the resolver cannot
// express as a base name plus accessors.
var ErrUnsupportedTarget = errors.New("unsupported assignment target")

// ParamKind classifies one accessor of a chain.
type ParamKind uint8

const (
	// ParamIndex is a literal numeric subscript.
	ParamIndex ParamKind = iota + 1
	// ParamField is a field or swizzle selection.
	ParamField
	// ParamExpr is a subscript computed by generated code.
	ParamExpr
)

// Param is one accessor in application order.
type Param struct {
	Kind ParamKind
	// Index holds the subscript for ParamIndex.
	Index float64
	// Text holds the selection for ParamField and the code for ParamExpr.
	Text string
}

// Code renders the accessor as an argument of the generic get/set runtime
// calls. Field selections are single-quoted, which both output styles accept.
func (p Param) Code() string {
	switch p.Kind {
	case ParamIndex:
		return strconv.FormatFloat(p.Index, 'g', -1, 64)
	case ParamField:
		return "'" + p.Text + "'"
	default:
		return p.Text
	}
}

// Chain is a resolved target: Operand with Params applied left to right.
type Chain struct {
	Operand string
	Params  []Param
}

// HasAccessors reports whether the target is more than a bare name.
func (c Chain) HasAccessors() bool { return len(c.Params) > 0 }

// Codes renders every accessor.
func (c Chain) Codes() []string {
	out := make([]string, len(c.Params))
	for i, p := range c.Params {
		out[i] = p.Code()
	}
	return out
}

// IndexEmitter produces code for a computed subscript expression.
type IndexEmitter func(index ast.Node) (string, error)

type state struct {
	chain Chain
	emit  IndexEmitter
	found bool
}

type none = struct{}

var resolver *visit.Dispatcher[*state, none]

func init() {
	resolver = visit.New("lvalue", visit.Table[*state, none]{
		ast.TagIdentifier:        identifier,
		ast.TagPostfixExpression: postfix,
		ast.TagOperator:          operator,
		ast.TagIndexSelector:     indexSelector,
		ast.TagFieldSelector:     fieldSelector,
		ast.TagIntegerLiteral:    integerLiteral,
		ast.TagFloatLiteral:      floatLiteral,
	})
}

// Resolve walks target into a chain. emit is called for subscripts that are
// not literals; it may be nil when the caller knows there are none.
func Resolve(target ast.Node, emit IndexEmitter) (Chain, error) {
	if target == nil {
		return Chain{}, fmt.Errorf("%w: empty target", ErrUnsupportedTarget)
	}
	st := &state{emit: emit}
	if _, err := resolver.Visit(st, target); err != nil {
		if errors.Is(err, visit.ErrUnsupportedNode) {
			return Chain{}, fmt.Errorf("%w: %w", ErrUnsupportedTarget, err)
		}
		return Chain{}, err
	}
	if !st.found {
		return Chain{}, fmt.Errorf("%w: %s at %s has no base variable", ErrUnsupportedTarget, target.Tag(), target.Position())
	}
	return st.chain, nil
}

func identifier(st *state, n ast.Node) (none, error) {
	id := n.(*ast.Identifier)
	if st.found {
		return none{}, fmt.Errorf("%w: second base %q after %q", ErrUnsupportedTarget, id.Name, st.chain.Operand)
	}
	st.chain.Operand = id.Name
	st.found = true
	return none{}, nil
}

func postfix(st *state, n ast.Node) (none, error) {
	p := n.(*ast.PostfixExpression)
	if _, err := resolver.Visit(st, p.Expression); err != nil {
		return none{}, err
	}
	if p.Operator == nil {
		return none{}, nil
	}
	return resolver.Visit(st, p.Operator)
}

// operator follows selector operators; token operators (++, --) add nothing.
func operator(st *state, n ast.Node) (none, error) {
	op := n.(*ast.Operator)
	if op.Selector == nil {
		return none{}, nil
	}
	return resolver.Visit(st, op.Selector)
}

func indexSelector(st *state, n ast.Node) (none, error) {
	sel := n.(*ast.IndexSelector)
	switch sel.Index.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral:
		return resolver.Visit(st, sel.Index)
	case nil:
		return none{}, fmt.Errorf("%w: subscript without index at %s", ErrUnsupportedTarget, sel.Position())
	}
	if st.emit == nil {
		return none{}, fmt.Errorf("%w: computed subscript at %s", ErrUnsupportedTarget, sel.Position())
	}
	code, err := st.emit(sel.Index)
	if err != nil {
		return none{}, err
	}
	st.chain.Params = append(st.chain.Params, Param{Kind: ParamExpr, Text: code})
	return none{}, nil
}

func fieldSelector(st *state, n ast.Node) (none, error) {
	sel := n.(*ast.FieldSelector)
	st.chain.Params = append(st.chain.Params, Param{Kind: ParamField, Text: sel.Selection})
	return none{}, nil
}

func integerLiteral(st *state, n ast.Node) (none, error) {
	st.chain.Params = append(st.chain.Params, Param{Kind: ParamIndex, Index: float64(n.(*ast.IntegerLiteral).Value)})
	return none{}, nil
}

func floatLiteral(st *state, n ast.Node) (none, error) {
	st.chain.Params = append(st.chain.Params, Param{Kind: ParamIndex, Index: n.(*ast.FloatLiteral).Value})
	return none{}, nil
}
