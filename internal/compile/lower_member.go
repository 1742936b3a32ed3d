package compile

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/expr"
	"github.com/exprkit/exprkit/internal/member"
	"github.com/exprkit/exprkit/internal/types"
)

// lowerMemberAccess lowers a member read to a direct load through the
// pre-resolved reference.
func (l *lowerer) lowerMemberAccess(n *expr.MemberAccess) (thunk, error) {
	if !n.Member().Readable() {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"member %s is not readable", n.Member().Name())
	}
	switch m := n.Member().(type) {
	case *member.Field:
		if m.Static() {
			st := m.Addr(nil)
			return func(*frame) any { return st.Load() }, nil
		}
		target, err := l.lowerExpr(n.Target())
		if err != nil {
			return nil, err
		}
		return func(env *frame) any { return m.Addr(target(env)).Load() }, nil
	case *member.Property:
		get := m.Getter()
		if m.Static() {
			return func(*frame) any { return get.Invoke(nil) }, nil
		}
		target, err := l.lowerExpr(n.Target())
		if err != nil {
			return nil, err
		}
		return func(env *frame) any { return get.Invoke([]any{target(env)}) }, nil
	}
	return nil, diag.Errorf(diag.PhaseCompile, diag.CodeUnsupportedNode,
		"unsupported member reference %T", n.Member())
}

// lowerAddr lowers a member access in by-reference position to a thunk
// producing the storage handle rather than the stored value.
func (l *lowerer) lowerAddr(n *expr.MemberAccess) (thunk, error) {
	field, ok := n.Member().(*member.Field)
	if !ok || !field.Settable() {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"member %s has no addressable storage", n.Member().Name())
	}
	if field.Static() {
		st := field.Addr(nil)
		return func(*frame) any { return st }, nil
	}
	target, err := l.lowerExpr(n.Target())
	if err != nil {
		return nil, err
	}
	return func(env *frame) any { return field.Addr(target(env)) }, nil
}

// lowerAssign lowers a native assignment to a store followed by producing
// the stored value.
func (l *lowerer) lowerAssign(n *expr.Assign) (thunk, error) {
	target := n.Target()
	if !target.Member().Settable() {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"assignment target %s is not settable", target.Member().Name())
	}
	if !types.Identical(target.Type(), n.Value().Type()) {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"assignment of %s to member %s of type %s",
			n.Value().Type(), target.Member().Name(), target.Type())
	}
	value, err := l.lowerExpr(n.Value())
	if err != nil {
		return nil, err
	}
	switch m := target.Member().(type) {
	case *member.Field:
		if m.Static() {
			st := m.Addr(nil)
			return func(env *frame) any {
				v := value(env)
				st.Store(v)
				return v
			}, nil
		}
		recv, err := l.lowerExpr(target.Target())
		if err != nil {
			return nil, err
		}
		return func(env *frame) any {
			r := recv(env)
			v := value(env)
			m.Addr(r).Store(v)
			return v
		}, nil
	case *member.Property:
		set := m.Setter()
		if m.Static() {
			return func(env *frame) any {
				v := value(env)
				set.Invoke([]any{v})
				return v
			}, nil
		}
		recv, err := l.lowerExpr(target.Target())
		if err != nil {
			return nil, err
		}
		return func(env *frame) any {
			r := recv(env)
			v := value(env)
			set.Invoke([]any{r, v})
			return v
		}, nil
	}
	return nil, diag.Errorf(diag.PhaseCompile, diag.CodeUnsupportedNode,
		"unsupported member reference %T", target.Member())
}
