package compile

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/expr"
	"github.com/exprkit/exprkit/internal/member"
	"github.com/exprkit/exprkit/internal/types"
)

// frame is the parameter environment of one lambda activation: a flat,
// ordinal-indexed slot array with a link to the enclosing activation. A
// frame is created per invocation and discarded at return.
type frame struct {
	slots []any
	up    *frame
}

// thunk evaluates one lowered node against a parameter environment.
type thunk func(env *frame) any

// scope is the compile-time mirror of the frame chain: the parameter lists
// of the lambdas enclosing the node being lowered.
type scope struct {
	params []*expr.Parameter
	up     *scope
}

// lowerer performs the post-order lowering pass.
type lowerer struct {
	scope *scope
}

// resolve finds a parameter node in the scope chain by instance identity,
// returning how many frames up it lives and its slot ordinal.
func (s *scope) resolve(p *expr.Parameter) (depth, index int, ok bool) {
	for cur := s; cur != nil; cur = cur.up {
		for i, q := range cur.params {
			if q == p {
				return depth, i, true
			}
		}
		depth++
	}
	return 0, 0, false
}

// lowerLambda lowers a lambda node into an activation function that binds
// its arguments to a fresh frame chained onto the defining environment.
func (l *lowerer) lowerLambda(n *expr.Lambda) (func(up *frame, args []any) any, error) {
	if !types.Identical(n.Body().Type(), n.Return()) {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"lambda body has type %s, declared return type is %s", n.Body().Type(), n.Return())
	}
	l.scope = &scope{params: n.Params(), up: l.scope}
	body, err := l.lowerExpr(n.Body())
	l.scope = l.scope.up
	if err != nil {
		return nil, err
	}
	return func(up *frame, args []any) any {
		return body(&frame{slots: args, up: up})
	}, nil
}

// lowerExpr lowers an expression node to a thunk, children first.
func (l *lowerer) lowerExpr(n expr.Node) (thunk, error) {
	switch n := n.(type) {
	case *expr.Parameter:
		return l.lowerParameter(n)
	case *expr.Constant:
		v := n.Value()
		return func(*frame) any { return v }, nil
	case *expr.MemberAccess:
		return l.lowerMemberAccess(n)
	case *expr.Call:
		return l.lowerCall(n)
	case *expr.Convert:
		return l.lowerConvert(n)
	case *expr.Assign:
		return l.lowerAssign(n)
	case *expr.Block:
		return l.lowerBlock(n)
	case *expr.Lambda:
		call, err := l.lowerLambda(n)
		if err != nil {
			return nil, err
		}
		return func(env *frame) any {
			return member.Invoker(func(args []any) any {
				return call(env, args)
			})
		}, nil
	default:
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeUnsupportedNode,
			"unsupported node %T", n)
	}
}

func (l *lowerer) lowerParameter(p *expr.Parameter) (thunk, error) {
	depth, index, ok := l.scope.resolve(p)
	if !ok {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"parameter %q is not bound by an enclosing lambda", p.Name())
	}
	if p.Index() != index {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"parameter %q has ordinal %d but is bound at position %d", p.Name(), p.Index(), index)
	}
	if depth == 0 {
		return func(env *frame) any { return env.slots[index] }, nil
	}
	return func(env *frame) any {
		for i := 0; i < depth; i++ {
			env = env.up
		}
		return env.slots[index]
	}, nil
}

func (l *lowerer) lowerCall(n *expr.Call) (thunk, error) {
	callee := n.Callee()
	params := callee.Params()
	if len(n.Args()) != len(params) {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"call to %s has %d arguments, signature wants %d", callee.Name(), len(n.Args()), len(params))
	}
	args := make([]thunk, len(n.Args()))
	for i, arg := range n.Args() {
		t, err := l.lowerArg(callee, i, arg, params[i])
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return func(env *frame) any {
		// Arguments evaluate strictly left-to-right before the call.
		vals := make([]any, len(args))
		for i, arg := range args {
			vals[i] = arg(env)
		}
		return callee.Invoke(vals)
	}, nil
}

// lowerArg lowers one call argument. An argument bound to a by-reference
// parameter lowers to its storage handle instead of its value.
func (l *lowerer) lowerArg(callee *member.Callable, i int, arg expr.Node, param types.Type) (thunk, error) {
	if ref, ok := param.(*types.Ref); ok {
		access, ok := arg.(*expr.MemberAccess)
		if !ok || !types.Identical(access.Type(), ref.Elem) {
			return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
				"call to %s: by-ref argument %d does not reference %s storage", callee.Name(), i, ref.Elem)
		}
		return l.lowerAddr(access)
	}
	if !types.AssignableTo(arg.Type(), param) {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"call to %s: argument %d has type %s, want %s", callee.Name(), i, arg.Type(), param)
	}
	return l.lowerExpr(arg)
}

func (l *lowerer) lowerConvert(n *expr.Convert) (thunk, error) {
	operand, err := l.lowerExpr(n.Operand())
	if err != nil {
		return nil, err
	}
	// The operation was selected when the node was built; pick the concrete
	// conversion function here, never a generic dynamic cast.
	switch n.Kind() {
	case types.ConvIdentity, types.ConvBox:
		// Values are boxed in the runtime representation already; boxing
		// changes only the static type.
		return operand, nil
	case types.ConvUnbox:
		unbox, err := unboxFn(n.Type())
		if err != nil {
			return nil, err
		}
		return func(env *frame) any { return unbox(operand(env)) }, nil
	case types.ConvWiden:
		widen, err := widenFn(n.Operand().Type(), n.Type())
		if err != nil {
			return nil, err
		}
		return func(env *frame) any { return widen(operand(env)) }, nil
	}
	return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
		"conversion node has unknown kind %q", n.Kind())
}

// unboxFn returns the checked unwrap for a primitive target. A dynamic type
// mismatch at invocation time is a programming defect and panics.
func unboxFn(to types.Type) (func(any) any, error) {
	p, ok := to.(*types.Primitive)
	if !ok {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"unbox target %s is not a primitive type", to)
	}
	switch p.Kind {
	case types.Bool:
		return func(v any) any { return v.(bool) }, nil
	case types.Int:
		return func(v any) any { return v.(int) }, nil
	case types.Int64:
		return func(v any) any { return v.(int64) }, nil
	case types.Float64:
		return func(v any) any { return v.(float64) }, nil
	case types.String:
		return func(v any) any { return v.(string) }, nil
	}
	return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
		"unbox target %s has no runtime representation", to)
}

// widenFn returns the concrete numeric widening for the (from, to) pair.
func widenFn(from, to types.Type) (func(any) any, error) {
	f, fok := from.(*types.Primitive)
	t, tok := to.(*types.Primitive)
	if fok && tok {
		switch {
		case f.Kind == types.Int && t.Kind == types.Int64:
			return func(v any) any { return int64(v.(int)) }, nil
		case f.Kind == types.Int && t.Kind == types.Float64:
			return func(v any) any { return float64(v.(int)) }, nil
		case f.Kind == types.Int64 && t.Kind == types.Float64:
			return func(v any) any { return float64(v.(int64)) }, nil
		}
	}
	return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
		"no widening from %s to %s", from, to)
}

func (l *lowerer) lowerBlock(n *expr.Block) (thunk, error) {
	stmts := make([]thunk, len(n.Stmts()))
	for i, s := range n.Stmts() {
		t, err := l.lowerExpr(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = t
	}
	last := len(stmts) - 1
	return func(env *frame) any {
		for _, s := range stmts[:last] {
			s(env)
		}
		return stmts[last](env)
	}, nil
}
