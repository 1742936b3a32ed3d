package expr

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/types"
)

// Profile is the runtime capability flag selecting between native
// assignment nodes and the assignment-compatibility shim.
type Profile struct {
	// NativeAssign reports whether the node set includes Assign. When it
	// is false, assignment must be routed through the shim package.
	NativeAssign bool
}

// Prebuilt profiles.
var (
	Modern = Profile{NativeAssign: true}
	Legacy = Profile{}
)

// Assign represents a native member assignment. Like every other node it
// produces a value: the assigned value.
type Assign struct {
	target *MemberAccess
	value  Node
}

// NewAssign constructs a native assignment node. It fails when the profile
// does not support native assignment (the caller must use the shim
// instead), when the target member is not settable, or when target and
// value types differ.
func NewAssign(p Profile, target *MemberAccess, value Node) (*Assign, error) {
	if !p.NativeAssign {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsupportedProfile,
			"profile does not support native assignment nodes")
	}
	if target == nil || value == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"assignment requires a target and a value")
	}
	if !target.Member().Settable() {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsettableMember,
			"member %s is not settable", target.Member().Name())
	}
	if !types.Identical(target.Type(), value.Type()) {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"cannot assign %s to member %s of type %s",
			value.Type(), target.Member().Name(), target.Type())
	}
	return &Assign{target: target, value: value}, nil
}

func (a *Assign) Target() *MemberAccess { return a.target }
func (a *Assign) Value() Node           { return a.value }
func (a *Assign) Type() types.Type      { return a.target.Type() }
func (a *Assign) exprNode()             {}
