package expr

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/types"
)

// Block represents an ordered sequence of statement nodes. The block's
// value is the value of its last statement; earlier results are discarded.
type Block struct {
	stmts []Node
}

// NewBlock constructs a block node from one or more statements.
func NewBlock(stmts ...Node) (*Block, error) {
	if len(stmts) == 0 {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"block requires at least one statement")
	}
	for i, s := range stmts {
		if s == nil {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"block statement %d is missing", i)
		}
	}
	return &Block{stmts: stmts}, nil
}

// Stmts returns the statements in execution order.
func (b *Block) Stmts() []Node    { return b.stmts }
func (b *Block) Type() types.Type { return b.stmts[len(b.stmts)-1].Type() }
func (b *Block) exprNode()        {}

// Lambda wraps a body and its parameter list into the unit of compilation.
// A parameter node referenced inside the body must be the same node
// instance declared here; the compiler binds by instance, never by name.
type Lambda struct {
	body   Node
	params []*Parameter
	ret    types.Type
}

// NewLambda constructs a lambda node. The body's result type must match the
// declared return type, and parameter ordinals must match their positions
// in the list 1:1.
func NewLambda(body Node, ret types.Type, params ...*Parameter) (*Lambda, error) {
	if body == nil || ret == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"lambda requires a body and a return type")
	}
	if !types.Identical(body.Type(), ret) {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"lambda body has type %s, declared return type is %s", body.Type(), ret)
	}
	for i, p := range params {
		if p == nil {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"lambda parameter %d is missing", i)
		}
		if p.Index() != i {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"parameter %q has ordinal %d but is declared at position %d", p.Name(), p.Index(), i)
		}
	}
	return &Lambda{body: body, params: params, ret: ret}, nil
}

func (l *Lambda) Body() Node { return l.body }

// Params returns the parameter nodes in declaration order.
func (l *Lambda) Params() []*Parameter { return l.params }

// Return returns the declared return type.
func (l *Lambda) Return() types.Type { return l.ret }

// Type returns the function type of the lambda value, so a lambda can
// appear as an ordinary call argument.
func (l *Lambda) Type() types.Type {
	ps := make([]types.Type, len(l.params))
	for i, p := range l.params {
		ps[i] = p.Type()
	}
	return types.NewFunc(ps, l.ret)
}

func (l *Lambda) exprNode() {}
