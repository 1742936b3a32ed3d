// Package shim emulates member assignment as a value-producing expression
// on runtime profiles whose node set has no native assignment variant. It
// rewrites "assign member = value" into a call to a generic helper that
// performs the mutation and returns the assigned value, so downstream tree
// construction never needs to know which strategy produced a subtree.
package shim

import (
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/expr"
	"github.com/exprkit/exprkit/internal/member"
	"github.com/exprkit/exprkit/internal/types"
)

// Helpers supplies the two generic helper callables the shim synthesizes
// calls against, instantiated per assigned-value type at each call site.
type Helpers struct {
	// ForField returns the field helper with signature (ref T, T) T.
	ForField func(t types.Type) *member.Callable
	// ForSetter returns the setter helper with signature (func(T), T) T.
	ForSetter func(t types.Type) *member.Callable
}

// DefaultHelpers binds the built-in helper implementations.
func DefaultHelpers() Helpers {
	return Helpers{ForField: fieldHelper, ForSetter: setterHelper}
}

// fieldHelper writes the value into the referenced storage location and
// returns it unchanged.
func fieldHelper(t types.Type) *member.Callable {
	return member.NewCallable("setAndReturn",
		[]types.Type{types.NewRef(t), t}, t,
		func(args []any) any {
			args[0].(member.Storage).Store(args[1])
			return args[1]
		})
}

// setterHelper invokes the setter closure with the value and returns the
// value unchanged.
func setterHelper(t types.Type) *member.Callable {
	return member.NewCallable("setViaSetter",
		[]types.Type{types.NewFunc([]types.Type{t}, types.TypeVoid), t}, t,
		func(args []any) any {
			args[0].(member.Invoker)([]any{args[1]})
			return args[1]
		})
}

// Assigner builds assignment expressions for a given runtime profile,
// routing through the native node or the helper-call rewrite as the profile
// requires.
type Assigner struct {
	profile expr.Profile
	helpers Helpers
}

// NewAssigner constructs an assigner using the built-in helpers.
func NewAssigner(p expr.Profile) *Assigner {
	return &Assigner{profile: p, helpers: DefaultHelpers()}
}

// NewAssignerWith constructs an assigner with host-registered helpers.
func NewAssignerWith(p expr.Profile, h Helpers) *Assigner {
	return &Assigner{profile: p, helpers: h}
}

// Assign builds a value-producing assignment of value into target. The
// resulting node has the assigned value's type under either strategy.
func (a *Assigner) Assign(target *expr.MemberAccess, value expr.Node) (expr.Node, error) {
	if target == nil || value == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"assignment requires a target and a value")
	}
	if !types.Identical(target.Type(), value.Type()) {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeTypeMismatch,
			"cannot assign %s to member %s of type %s",
			value.Type(), target.Member().Name(), target.Type())
	}
	if a.profile.NativeAssign {
		return expr.NewAssign(a.profile, target, value)
	}
	switch m := target.Member().(type) {
	case *member.Field:
		return a.assignField(target, value, m)
	case *member.Property:
		return a.assignProperty(target, value, m)
	}
	return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsettableMember,
		"member %s exposes neither storage nor a setter", target.Member().Name())
}

// assignField rewrites the assignment as
// setAndReturn(ref target, value).
func (a *Assigner) assignField(target *expr.MemberAccess, value expr.Node, f *member.Field) (expr.Node, error) {
	if !f.Settable() {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsettableMember,
			"member %s is not settable", f.Name())
	}
	return expr.NewCall(a.helpers.ForField(target.Type()), target, value)
}

// assignProperty wraps the property setter in a fresh one-parameter lambda
// and rewrites the assignment as
// setViaSetter(func(v) { setter(target?, v) }, value).
func (a *Assigner) assignProperty(target *expr.MemberAccess, value expr.Node, p *member.Property) (expr.Node, error) {
	setter := p.Setter()
	if setter == nil {
		return nil, diag.Errorf(diag.PhaseConstruct, diag.CodeUnsettableMember,
			"property %s has no setter", p.Name())
	}
	v, err := expr.NewParameter(0, target.Type(), "v")
	if err != nil {
		return nil, err
	}
	var setArgs []expr.Node
	if p.Static() {
		setArgs = []expr.Node{v}
	} else {
		setArgs = []expr.Node{target.Target(), v}
	}
	setCall, err := expr.NewCall(setter, setArgs...)
	if err != nil {
		return nil, err
	}
	setClosure, err := expr.NewLambda(setCall, types.TypeVoid, v)
	if err != nil {
		return nil, err
	}
	return expr.NewCall(a.helpers.ForSetter(target.Type()), setClosure, value)
}
