package expr

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/member"
	"github.com/exprkit/exprkit/internal/types"
)

// MemberAccess represents a read of (or, as an assignment target, a write
// to) a pre-resolved host member. The target is nil iff the member is
// static.
type MemberAccess struct {
	target Node
	member member.Member
}

// NewMemberAccess constructs a member access node. The member must be
// readable or settable, and the target must be present exactly when the
// member is an instance member.
func NewMemberAccess(target Node, m member.Member) (*MemberAccess, error) {
	if m == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"member access requires a member reference")
	}
	if !m.Readable() && !m.Settable() {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsettableMember,
			"member %s exposes neither storage nor accessors", m.Name())
	}
	if m.Static() {
		if target != nil {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"static member %s must not have a target", m.Name())
		}
	} else {
		if target == nil {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"instance member %s requires a target", m.Name())
		}
		if !types.IsReference(target.Type()) {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"target of member %s must have a reference type, got %s", m.Name(), target.Type())
		}
	}
	return &MemberAccess{target: target, member: m}, nil
}

func (a *MemberAccess) Target() Node          { return a.target }
func (a *MemberAccess) Member() member.Member { return a.member }
func (a *MemberAccess) Type() types.Type      { return a.member.Type() }
func (a *MemberAccess) exprNode()             {}

// Call represents an invocation of a pre-resolved callable with positional
// argument nodes. Arguments are evaluated strictly left-to-right.
type Call struct {
	callee *member.Callable
	args   []Node
}

// NewCall constructs a call node. Argument count must match the callee
// signature and each argument's static type must be assignable to the
// declared parameter type; value-to-reference binding requires an explicit
// conversion node. A by-reference parameter requires the argument to be a
// member access of addressable storage of the element type.
func NewCall(callee *member.Callable, args ...Node) (*Call, error) {
	if callee == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"call requires a callee reference")
	}
	params := callee.Params()
	if len(args) != len(params) {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"call to %s expects %d arguments, got %d", callee.Name(), len(params), len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"call to %s: argument %d is missing", callee.Name(), i)
		}
		if err := checkArg(callee, i, arg, params[i]); err != nil {
			return nil, err
		}
	}
	return &Call{callee: callee, args: args}, nil
}

func checkArg(callee *member.Callable, i int, arg Node, param types.Type) error {
	if ref, ok := param.(*types.Ref); ok {
		access, ok := arg.(*MemberAccess)
		if !ok {
			return diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"call to %s: by-ref argument %d must be a member access", callee.Name(), i)
		}
		field, ok := access.Member().(*member.Field)
		if !ok || !field.Settable() {
			return diag.Errorf(diag.PhaseConstruct, diag.CodeUnsettableMember,
				"call to %s: by-ref argument %d must reference settable storage", callee.Name(), i)
		}
		if !types.Identical(access.Type(), ref.Elem) {
			return diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
				"call to %s: by-ref argument %d has type %s, want %s",
				callee.Name(), i, access.Type(), ref.Elem)
		}
		return nil
	}
	if !types.AssignableTo(arg.Type(), param) {
		return diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"call to %s: argument %d has type %s, want %s", callee.Name(), i, arg.Type(), param)
	}
	return nil
}

func (c *Call) Callee() *member.Callable { return c.callee }

// Args returns the argument nodes in evaluation order.
func (c *Call) Args() []Node     { return c.args }
func (c *Call) Type() types.Type { return c.callee.Result() }
func (c *Call) exprNode()        {}
