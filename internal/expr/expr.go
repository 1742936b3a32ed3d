// Package expr defines the immutable expression-tree node model. Nodes are
// constructed bottom-up; every constructor validates its local invariants
// immediately and fails fast, so no invalid node is ever produced.
package expr

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/types"
)

// Node represents an expression-tree node. Every node carries the static
// type of the value it produces; statement-only nodes carry types.TypeVoid.
type Node interface {
	Type() types.Type
	exprNode() // sealed marker
}

// Parameter represents a positional parameter of an enclosing lambda. The
// name is diagnostic only; binding is purely ordinal.
type Parameter struct {
	name  string
	typ   types.Type
	index int
}

// NewParameter constructs a parameter node at the given ordinal position.
func NewParameter(index int, typ types.Type, name string) (*Parameter, error) {
	if index < 0 {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"parameter %q has negative ordinal %d", name, index)
	}
	if typ == nil || types.IsVoid(typ) {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"parameter %q must have a value-producing type", name)
	}
	if _, ok := typ.(*types.Ref); ok {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"parameter %q cannot have a by-reference type", name)
	}
	return &Parameter{name: name, typ: typ, index: index}, nil
}

func (p *Parameter) Name() string     { return p.name }
func (p *Parameter) Index() int       { return p.index }
func (p *Parameter) Type() types.Type { return p.typ }
func (p *Parameter) exprNode()        {}

// Constant represents an immutable literal value.
type Constant struct {
	value any
	typ   types.Type
}

// NewConstant constructs a constant node of the declared type. The dynamic
// value must be consistent with the declared primitive kind; constants of
// reference type may hold nil.
func NewConstant(value any, typ types.Type) (*Constant, error) {
	if typ == nil || types.IsVoid(typ) {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"constant must have a value-producing type")
	}
	if _, ok := typ.(*types.Ref); ok {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"constant cannot have a by-reference type")
	}
	if p, ok := typ.(*types.Primitive); ok {
		if !primitiveHolds(p.Kind, value) {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"constant value %v is not a %s", value, p.Kind)
		}
	}
	return &Constant{value: value, typ: typ}, nil
}

func primitiveHolds(kind types.PrimitiveKind, value any) bool {
	switch kind {
	case types.Bool:
		_, ok := value.(bool)
		return ok
	case types.Int:
		_, ok := value.(int)
		return ok
	case types.Int64:
		_, ok := value.(int64)
		return ok
	case types.Float64:
		_, ok := value.(float64)
		return ok
	case types.String:
		_, ok := value.(string)
		return ok
	}
	return false
}

// Basic constrains the Go types that map directly to a primitive kind.
type Basic interface {
	bool | int | int64 | float64 | string
}

// Const constructs a constant node, inferring the primitive type from the
// Go value. It cannot fail: every Basic value is a valid constant.
func Const[T Basic](value T) *Constant {
	var typ types.Type
	switch any(value).(type) {
	case bool:
		typ = types.TypeBool
	case int:
		typ = types.TypeInt
	case int64:
		typ = types.TypeInt64
	case float64:
		typ = types.TypeFloat64
	case string:
		typ = types.TypeString
	}
	return &Constant{value: value, typ: typ}
}

func (c *Constant) Value() any       { return c.value }
func (c *Constant) Type() types.Type { return c.typ }
func (c *Constant) exprNode()        {}

// Convert represents an explicit conversion of the operand to a target
// type. The conversion operation is fixed at construction time.
type Convert struct {
	operand Node
	typ     types.Type
	kind    types.ConvKind
}

// NewConvert constructs a conversion node. Only identity, boxing, unboxing,
// and widening numeric conversions are supported; anything else is a
// construction-time error.
func NewConvert(operand Node, to types.Type) (*Convert, error) {
	if operand == nil || to == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"conversion requires an operand and a target type")
	}
	kind, ok := types.ClassifyConversion(operand.Type(), to)
	if !ok {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsupportedConversion,
			"cannot convert %s to %s", operand.Type(), to)
	}
	return &Convert{operand: operand, typ: to, kind: kind}, nil
}

func (c *Convert) Operand() Node        { return c.operand }
func (c *Convert) Kind() types.ConvKind { return c.kind }
func (c *Convert) Type() types.Type     { return c.typ }
func (c *Convert) exprNode()            {}
