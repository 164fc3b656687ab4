// Package visit is the tag-keyed tree dispatcher shared by the code generator
// and the selector resolver. Each consumer owns an independent Table over the
// same ast.Tag universe; the dispatcher itself holds no traversal state.
package visit

import (
	"errors"
	"fmt"

	"glslgen/internal/ast"
)

// ErrUnsupportedNode marks a node whose tag has no handler in the table
// consulted for it.
var ErrUnsupportedNode = errors.New("unsupported node")

// UnsupportedError names the component and node that could not be handled.
type UnsupportedError struct {
	Component string
	Tag       ast.Tag
	Pos       ast.Pos
}

func (e *UnsupportedError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s at %s: %v", e.Component, e.Tag, e.Pos, ErrUnsupportedNode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Component, e.Tag, ErrUnsupportedNode)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupportedNode }

// Handler processes one node. C is the traversal context threaded through
// the recursion; R is the handler result, whose zero value means "no value".
type Handler[C any, R comparable] func(c C, n ast.Node) (R, error)

// Table maps tags to handlers.
type Table[C any, R comparable] map[ast.Tag]Handler[C, R]

// Ignore is registered for tags a component deliberately skips.
func Ignore[C any, R comparable](C, ast.Node) (R, error) {
	var zero R
	return zero, nil
}

// Dispatcher routes nodes to the handlers of one table.
type Dispatcher[C any, R comparable] struct {
	component string
	table     Table[C, R]
}

// New builds a dispatcher. component appears in unsupported-node errors.
func New[C any, R comparable](component string, table Table[C, R]) *Dispatcher[C, R] {
	return &Dispatcher[C, R]{component: component, table: table}
}

// Handles reports whether a handler is registered for tag.
func (d *Dispatcher[C, R]) Handles(tag ast.Tag) bool {
	_, ok := d.table[tag]
	return ok
}

// Visit invokes the handler for n. A nil node yields the zero result.
func (d *Dispatcher[C, R]) Visit(c C, n ast.Node) (R, error) {
	var zero R
	if n == nil {
		return zero, nil
	}
	h, ok := d.table[n.Tag()]
	if !ok {
		return zero, &UnsupportedError{Component: d.component, Tag: n.Tag(), Pos: n.Position()}
	}
	return h(c, n)
}

// VisitAll visits nodes in order and collects the non-zero results. It
// returns nil when nodes is empty or every handler yielded no value.
func (d *Dispatcher[C, R]) VisitAll(c C, nodes []ast.Node) ([]R, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	var zero R
	var out []R
	for _, n := range nodes {
		r, err := d.Visit(c, n)
		if err != nil {
			return nil, err
		}
		if r != zero {
			out = append(out, r)
		}
	}
	return out, nil
}
