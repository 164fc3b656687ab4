package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownTag is returned when a node carries a "type" the tree contract
// does not define.
var ErrUnknownTag = errors.New("unknown node type")

// DecodeError reports where in the input document decoding failed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ast: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeJSON decodes a shader descriptor from its JSON wire form.
func DecodeJSON(data []byte) (*Shader, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("ast: decode json: %w", err)
	}
	return DecodeValue(raw)
}

// DecodeMsgpack decodes a shader descriptor encoded with msgpack using the
// same field names as the JSON form.
func DecodeMsgpack(data []byte) (*Shader, error) {
	var raw any
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: decode msgpack: %w", err)
	}
	return DecodeValue(raw)
}

// Decode picks the codec from a file name: ".msgpack" and ".mp" select
// msgpack, anything else JSON.
func Decode(name string, data []byte) (*Shader, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".msgpack", ".mp":
		return DecodeMsgpack(data)
	}
	return DecodeJSON(data)
}

// DecodeValue builds a descriptor from an already-unmarshalled generic
// document (maps, slices, strings, numbers, bools).
func DecodeValue(raw any) (*Shader, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &DecodeError{Path: "$", Err: fmt.Errorf("descriptor must be an object, got %T", raw)}
	}
	d := &decoder{}
	sh := &Shader{}
	var err error
	if sh.AST, err = d.field(m, "ast"); err != nil {
		return nil, err
	}
	if sh.AST == nil {
		return nil, &DecodeError{Path: "$.ast", Err: errors.New("missing syntax tree")}
	}
	if sh.Uniforms, err = d.variables(m, "uniforms"); err != nil {
		return nil, err
	}
	if sh.Varyings, err = d.variables(m, "varyings"); err != nil {
		return nil, err
	}
	if sh.Attributes, err = d.variables(m, "attributes"); err != nil {
		return nil, err
	}
	trap, err := d.boolean(m, "debugTrap")
	if err != nil {
		return nil, err
	}
	legacy, err := d.boolean(m, "shouldEmitDebuggerStatement")
	if err != nil {
		return nil, err
	}
	sh.DebugTrap = trap || legacy
	return sh, nil
}

type decoder struct {
	path []string
}

func (d *decoder) push(seg string) { d.path = append(d.path, seg) }
func (d *decoder) pop()            { d.path = d.path[:len(d.path)-1] }

func (d *decoder) errorf(format string, args ...any) error {
	return &DecodeError{Path: "$" + strings.Join(d.path, ""), Err: fmt.Errorf(format, args...)}
}

func (d *decoder) wrap(err error) error {
	return &DecodeError{Path: "$" + strings.Join(d.path, ""), Err: err}
}

func (d *decoder) variables(m map[string]any, key string) ([]Variable, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	d.push("." + key)
	defer d.pop()
	list, ok := raw.([]any)
	if !ok {
		return nil, d.errorf("expected array, got %T", raw)
	}
	out := make([]Variable, 0, len(list))
	for i, item := range list {
		d.push("[" + strconv.Itoa(i) + "]")
		var v Variable
		switch x := item.(type) {
		case string:
			v.Name = name(x)
		case map[string]any:
			n, err := d.str(x, "name")
			if err != nil {
				d.pop()
				return nil, err
			}
			if n == "" {
				d.pop()
				return nil, d.errorf("variable without a name")
			}
			v.Name = name(n)
			if v.Type, err = d.str(x, "type"); err != nil {
				d.pop()
				return nil, err
			}
		default:
			d.pop()
			return nil, d.errorf("expected object or string, got %T", item)
		}
		out = append(out, v)
		d.pop()
	}
	return out, nil
}

// name normalizes identifiers so names from the descriptor lists and from the
// tree compare equal regardless of the producing tool's Unicode form.
func name(s string) string {
	return norm.NFC.String(s)
}

func (d *decoder) field(m map[string]any, key string) (Node, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	d.push("." + key)
	defer d.pop()
	return d.node(raw)
}

func (d *decoder) list(m map[string]any, key string) ([]Node, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	d.push("." + key)
	defer d.pop()
	items, ok := raw.([]any)
	if !ok {
		return nil, d.errorf("expected array, got %T", raw)
	}
	out := make([]Node, 0, len(items))
	for i, item := range items {
		d.push("[" + strconv.Itoa(i) + "]")
		n, err := d.node(item)
		d.pop()
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (d *decoder) str(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", d.errorf(".%s: expected string, got %T", key, raw)
	}
	return s, nil
}

func (d *decoder) strs(m map[string]any, key string) ([]string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, d.errorf(".%s: expected array, got %T", key, raw)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, d.errorf(".%s: expected string element, got %T", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) boolean(m map[string]any, key string) (bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, d.errorf(".%s: expected bool, got %T", key, raw)
	}
	return b, nil
}

func (d *decoder) number(m map[string]any, key string) (float64, error) {
	raw, ok := m[key]
	if !ok {
		return 0, d.errorf(".%s: missing", key)
	}
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, d.wrap(err)
		}
		return f, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, d.wrap(err)
		}
		return f, nil
	}
	return 0, d.errorf(".%s: expected number, got %T", key, raw)
}

func (d *decoder) pos(m map[string]any) (Pos, error) {
	raw, ok := m["loc"]
	if !ok || raw == nil {
		return Pos{}, nil
	}
	lm, ok := raw.(map[string]any)
	if !ok {
		return Pos{}, d.errorf(".loc: expected object, got %T", raw)
	}
	line, err := d.number(lm, "line")
	if err != nil {
		return Pos{}, err
	}
	var col float64
	if _, has := lm["col"]; has {
		if col, err = d.number(lm, "col"); err != nil {
			return Pos{}, err
		}
	}
	return Pos{Line: int(line), Col: int(col)}, nil
}

// operator accepts either a bare token string or an Operator/selector node.
func (d *decoder) operator(m map[string]any, key string) (*Operator, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, d.errorf(".%s: missing operator", key)
	}
	d.push("." + key)
	defer d.pop()
	if tok, ok := raw.(string); ok {
		return &Operator{Token: tok}, nil
	}
	n, err := d.node(raw)
	if err != nil {
		return nil, err
	}
	if op, ok := n.(*Operator); ok {
		return op, nil
	}
	switch n.Tag() {
	case TagIndexSelector, TagFieldSelector:
		return &Operator{Pos: n.Position(), Selector: n}, nil
	}
	return nil, d.errorf("operator must be a token or selector, got %s", n.Tag())
}

func (d *decoder) node(raw any) (Node, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, d.errorf("expected node object, got %T", raw)
	}
	typ, err := d.str(m, "type")
	if err != nil {
		return nil, err
	}
	tag, ok := ParseTag(typ)
	if !ok {
		return nil, d.wrap(fmt.Errorf("%w %q", ErrUnknownTag, typ))
	}
	pos, err := d.pos(m)
	if err != nil {
		return nil, err
	}
	return d.build(tag, pos, m)
}

//nolint:gocyclo // one case per tag keeps the wire contract readable.
func (d *decoder) build(tag Tag, pos Pos, m map[string]any) (Node, error) {
	var err error
	switch tag {
	case TagProgram:
		n := &Program{Pos: pos}
		n.Statements, err = d.list(m, "statements")
		return n, err
	case TagScope:
		n := &Scope{Pos: pos}
		n.Statements, err = d.list(m, "statements")
		return n, err
	case TagPreprocessor:
		n := &Preprocessor{Pos: pos}
		if n.Directive, err = d.str(m, "directive"); err != nil {
			return nil, err
		}
		if n.Identifier, err = d.str(m, "identifier"); err != nil {
			return nil, err
		}
		if n.Parameters, err = d.strs(m, "parameters"); err != nil {
			return nil, err
		}
		if n.Value, err = d.str(m, "value"); err != nil {
			return nil, err
		}
		n.GuardedStatements, err = d.list(m, "guarded_statements")
		return n, err
	case TagMacroCall:
		n := &MacroCall{Pos: pos}
		if n.MacroName, err = d.str(m, "macro_name"); err != nil {
			return nil, err
		}
		n.Parameters, err = d.strs(m, "parameters")
		return n, err
	case TagFunctionCall:
		n := &FunctionCall{Pos: pos}
		fn, err := d.str(m, "function_name")
		if err != nil {
			return nil, err
		}
		n.FunctionName = name(fn)
		n.Parameters, err = d.list(m, "parameters")
		return n, err
	case TagFunctionPrototype:
		n := &FunctionPrototype{Pos: pos}
		fn, err := d.str(m, "name")
		if err != nil {
			return nil, err
		}
		n.Name = name(fn)
		if n.ReturnType, err = d.field(m, "returnType"); err != nil {
			return nil, err
		}
		n.Parameters, err = d.list(m, "parameters")
		return n, err
	case TagFunctionDeclaration:
		n := &FunctionDeclaration{Pos: pos}
		fn, err := d.str(m, "name")
		if err != nil {
			return nil, err
		}
		n.Name = name(fn)
		if n.ReturnType, err = d.field(m, "returnType"); err != nil {
			return nil, err
		}
		if n.Parameters, err = d.list(m, "parameters"); err != nil {
			return nil, err
		}
		n.Body, err = d.field(m, "body")
		return n, err
	case TagIfStatement:
		n := &IfStatement{Pos: pos}
		if n.Condition, err = d.field(m, "condition"); err != nil {
			return nil, err
		}
		if n.Body, err = d.field(m, "body"); err != nil {
			return nil, err
		}
		n.ElseBody, err = d.field(m, "elseBody")
		return n, err
	case TagForStatement:
		n := &ForStatement{Pos: pos}
		if n.Initializer, err = d.field(m, "initializer"); err != nil {
			return nil, err
		}
		if n.Condition, err = d.field(m, "condition"); err != nil {
			return nil, err
		}
		if n.Increment, err = d.field(m, "increment"); err != nil {
			return nil, err
		}
		n.Body, err = d.field(m, "body")
		return n, err
	case TagWhileStatement:
		n := &WhileStatement{Pos: pos}
		if n.Condition, err = d.field(m, "condition"); err != nil {
			return nil, err
		}
		n.Body, err = d.field(m, "body")
		return n, err
	case TagDoStatement:
		n := &DoStatement{Pos: pos}
		if n.Condition, err = d.field(m, "condition"); err != nil {
			return nil, err
		}
		n.Body, err = d.field(m, "body")
		return n, err
	case TagReturnStatement:
		n := &ReturnStatement{Pos: pos}
		n.Value, err = d.field(m, "value")
		return n, err
	case TagContinueStatement:
		return &ContinueStatement{Pos: pos}, nil
	case TagBreakStatement:
		return &BreakStatement{Pos: pos}, nil
	case TagDiscardStatement:
		return &DiscardStatement{Pos: pos}, nil
	case TagExpressionStatement:
		n := &ExpressionStatement{Pos: pos}
		n.Expression, err = d.field(m, "expression")
		return n, err
	case TagDeclarator:
		n := &Declarator{Pos: pos}
		if n.TypeAttribute, err = d.field(m, "typeAttribute"); err != nil {
			return nil, err
		}
		n.Declarators, err = d.list(m, "declarators")
		return n, err
	case TagDeclaratorItem:
		n := &DeclaratorItem{Pos: pos}
		if s, ok := m["name"].(string); ok {
			n.Name = &Identifier{Pos: pos, Name: name(s)}
		} else if n.Name, err = d.field(m, "name"); err != nil {
			return nil, err
		}
		n.Initializer, err = d.field(m, "initializer")
		return n, err
	case TagInvariant:
		n := &Invariant{Pos: pos}
		n.Identifiers, err = d.list(m, "identifiers")
		return n, err
	case TagPrecision:
		n := &Precision{Pos: pos}
		if n.Precision, err = d.str(m, "precision"); err != nil {
			return nil, err
		}
		n.TypeName, err = d.str(m, "typeName")
		return n, err
	case TagParameter:
		n := &Parameter{Pos: pos}
		pn, err := d.str(m, "name")
		if err != nil {
			return nil, err
		}
		n.Name = name(pn)
		if n.TypeName, err = d.str(m, "type_name"); err != nil {
			return nil, err
		}
		if n.TypeQualifier, err = d.str(m, "typeQualifier"); err != nil {
			return nil, err
		}
		if n.ParameterQualifier, err = d.str(m, "parameterQualifier"); err != nil {
			return nil, err
		}
		if n.Precision, err = d.str(m, "precision"); err != nil {
			return nil, err
		}
		n.ArraySize, err = d.field(m, "arraySize")
		return n, err
	case TagStructDefinition:
		n := &StructDefinition{Pos: pos}
		if n.Qualifier, err = d.str(m, "qualifier"); err != nil {
			return nil, err
		}
		if n.Name, err = d.str(m, "name"); err != nil {
			return nil, err
		}
		if n.Members, err = d.list(m, "members"); err != nil {
			return nil, err
		}
		n.Declarators, err = d.list(m, "declarators")
		return n, err
	case TagType:
		n := &Type{Pos: pos}
		if n.Name, err = d.str(m, "name"); err != nil {
			return nil, err
		}
		if n.Precision, err = d.str(m, "precision"); err != nil {
			return nil, err
		}
		n.Qualifier, err = d.str(m, "qualifier")
		return n, err
	case TagIntegerLiteral:
		v, err := d.number(m, "value")
		if err != nil {
			return nil, err
		}
		if v != math.Trunc(v) {
			return nil, d.errorf(".value: integer literal %v has a fractional part", v)
		}
		iv, err := safecast.Convert[int64](v)
		if err != nil {
			return nil, d.errorf(".value: integer literal %v does not fit in 64 bits", v)
		}
		return &IntegerLiteral{Pos: pos, Value: iv}, nil
	case TagFloatLiteral:
		v, err := d.number(m, "value")
		if err != nil {
			return nil, err
		}
		return &FloatLiteral{Pos: pos, Value: v}, nil
	case TagBooleanLiteral:
		v, err := d.boolean(m, "value")
		if err != nil {
			return nil, err
		}
		return &BooleanLiteral{Pos: pos, Value: v}, nil
	case TagIdentifier:
		s, err := d.str(m, "name")
		if err != nil {
			return nil, err
		}
		return &Identifier{Pos: pos, Name: name(s)}, nil
	case TagOperator:
		n := &Operator{Pos: pos}
		raw := m["operator"]
		if tok, ok := raw.(string); ok {
			n.Token = tok
			return n, nil
		}
		if n.Selector, err = d.field(m, "operator"); err != nil {
			return nil, err
		}
		if n.Selector == nil {
			return nil, d.errorf(".operator: missing")
		}
		return n, nil
	case TagPostfixExpression:
		n := &PostfixExpression{Pos: pos}
		if n.Operator, err = d.operator(m, "operator"); err != nil {
			return nil, err
		}
		n.Expression, err = d.field(m, "expression")
		return n, err
	case TagUnaryExpression:
		n := &UnaryExpression{Pos: pos}
		if n.Operator, err = d.operator(m, "operator"); err != nil {
			return nil, err
		}
		n.Expression, err = d.field(m, "expression")
		return n, err
	case TagBinaryExpression:
		n := &BinaryExpression{Pos: pos}
		if n.Operator, err = d.operator(m, "operator"); err != nil {
			return nil, err
		}
		if n.Left, err = d.field(m, "left"); err != nil {
			return nil, err
		}
		n.Right, err = d.field(m, "right")
		return n, err
	case TagTernaryExpression:
		n := &TernaryExpression{Pos: pos}
		if n.Condition, err = d.field(m, "condition"); err != nil {
			return nil, err
		}
		if n.IsTrue, err = d.field(m, "is_true"); err != nil {
			return nil, err
		}
		n.IsFalse, err = d.field(m, "is_false")
		return n, err
	case TagIndexSelector:
		n := &IndexSelector{Pos: pos}
		n.Index, err = d.field(m, "index")
		return n, err
	case TagFieldSelector:
		n := &FieldSelector{Pos: pos}
		n.Selection, err = d.str(m, "selection")
		return n, err
	}
	return nil, d.wrap(fmt.Errorf("%w %q", ErrUnknownTag, tag.String()))
}
