package shim

import (
	"testing"

	"github.com/exprkit/exprkit/internal/compile"
	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/expr"
	"github.com/exprkit/exprkit/internal/member"
	"github.com/exprkit/exprkit/internal/types"
)

func mustParam(t *testing.T, index int, typ types.Type, name string) *expr.Parameter {
	t.Helper()
	p, err := expr.NewParameter(index, typ, name)
	if err != nil {
		t.Fatalf("NewParameter: %v", err)
	}
	return p
}

func mustAccess(t *testing.T, target expr.Node, m member.Member) *expr.MemberAccess {
	t.Helper()
	a, err := expr.NewMemberAccess(target, m)
	if err != nil {
		t.Fatalf("NewMemberAccess(%s): %v", m.Name(), err)
	}
	return a
}

// compileAssign builds and compiles λ(v int) int = target = v.
func compileAssign(t *testing.T, p expr.Profile, m member.Member) *compile.Closure {
	t.Helper()
	v := mustParam(t, 0, types.TypeInt, "v")
	assign, err := NewAssigner(p).Assign(mustAccess(t, nil, m), v)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	lambda, err := expr.NewLambda(assign, types.TypeInt, v)
	if err != nil {
		t.Fatalf("NewLambda: %v", err)
	}
	closure, err := compile.Compile(lambda)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return closure
}

func TestFieldAssignBothProfiles(t *testing.T) {
	profiles := []struct {
		name    string
		profile expr.Profile
	}{
		{"modern", expr.Modern},
		{"legacy", expr.Legacy},
	}
	for _, tt := range profiles {
		t.Run(tt.name, func(t *testing.T) {
			var store int
			field := member.Var("store", types.TypeInt, &store)
			closure := compileAssign(t, tt.profile, field)

			if got := closure.Invoke(123); got != 123 {
				t.Errorf("assignment produced %v, want 123", got)
			}
			if store != 123 {
				t.Errorf("field holds %d after assignment, want 123", store)
			}
		})
	}
}

func TestStaticPropertyAssignLegacy(t *testing.T) {
	var store int
	prop := member.Accessor("store", types.TypeInt,
		func() int { return store },
		func(v int) { store = v })
	closure := compileAssign(t, expr.Legacy, prop)

	if got := closure.Invoke(123); got != 123 {
		t.Errorf("assignment produced %v, want 123", got)
	}
	if store != 123 {
		t.Errorf("property backing holds %d after assignment, want 123", store)
	}
}

type counter struct {
	count int
}

var counterType = types.NewObject("counter")

// compileInstanceAssign builds and compiles λ(c counter, v int) int = c.m = v.
func compileInstanceAssign(t *testing.T, p expr.Profile, m member.Member) *compile.Closure {
	t.Helper()
	c := mustParam(t, 0, counterType, "c")
	v := mustParam(t, 1, types.TypeInt, "v")
	assign, err := NewAssigner(p).Assign(mustAccess(t, c, m), v)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	lambda, err := expr.NewLambda(assign, types.TypeInt, c, v)
	if err != nil {
		t.Fatalf("NewLambda: %v", err)
	}
	closure, err := compile.Compile(lambda)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return closure
}

func TestInstanceFieldAssign(t *testing.T) {
	profiles := []struct {
		name    string
		profile expr.Profile
	}{
		{"modern", expr.Modern},
		{"legacy", expr.Legacy},
	}
	for _, tt := range profiles {
		t.Run(tt.name, func(t *testing.T) {
			field := member.FieldOf("count", types.TypeInt, func(c *counter) *int { return &c.count })
			closure := compileInstanceAssign(t, tt.profile, field)

			c := &counter{}
			if got := closure.Invoke(c, 123); got != 123 {
				t.Errorf("assignment produced %v, want 123", got)
			}
			if c.count != 123 {
				t.Errorf("field holds %d after assignment, want 123", c.count)
			}
		})
	}
}

func TestInstancePropertyAssign(t *testing.T) {
	// Under the legacy profile the synthesized setter closure must capture
	// the receiver parameter of the enclosing lambda.
	profiles := []struct {
		name    string
		profile expr.Profile
	}{
		{"modern", expr.Modern},
		{"legacy", expr.Legacy},
	}
	for _, tt := range profiles {
		t.Run(tt.name, func(t *testing.T) {
			prop := member.PropertyOf("count", counterType, types.TypeInt,
				func(c *counter) int { return c.count },
				func(c *counter, v int) { c.count = v })
			closure := compileInstanceAssign(t, tt.profile, prop)

			c := &counter{}
			if got := closure.Invoke(c, 123); got != 123 {
				t.Errorf("assignment produced %v, want 123", got)
			}
			if c.count != 123 {
				t.Errorf("property backing holds %d after assignment, want 123", c.count)
			}
		})
	}
}

func TestNativeAndShimAgree(t *testing.T) {
	var native, shimmed int
	nativeClosure := compileAssign(t, expr.Modern, member.Var("native", types.TypeInt, &native))
	shimClosure := compileAssign(t, expr.Legacy, member.Var("shimmed", types.TypeInt, &shimmed))

	for _, v := range []int{0, -5, 123} {
		a, b := nativeClosure.Invoke(v), shimClosure.Invoke(v)
		if a != b {
			t.Errorf("strategies return different values for %d: %v vs %v", v, a, b)
		}
		if native != shimmed {
			t.Errorf("strategies store different values for %d: %d vs %d", v, native, shimmed)
		}
	}
}

func TestShimProducesOrdinaryNodes(t *testing.T) {
	var store int
	field := member.Var("store", types.TypeInt, &store)

	legacy, err := NewAssigner(expr.Legacy).Assign(mustAccess(t, nil, field), expr.Const(1))
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, ok := legacy.(*expr.Call); !ok {
		t.Errorf("legacy strategy built %T, want an ordinary call node", legacy)
	}
	if !types.Identical(legacy.Type(), types.TypeInt) {
		t.Errorf("legacy assignment type = %s, want the assigned value's type", legacy.Type())
	}

	modern, err := NewAssigner(expr.Modern).Assign(mustAccess(t, nil, field), expr.Const(1))
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, ok := modern.(*expr.Assign); !ok {
		t.Errorf("modern strategy built %T, want a native assign node", modern)
	}
}

func TestUnsettableTargets(t *testing.T) {
	var store int
	tests := []struct {
		name   string
		member member.Member
	}{
		{"read-only field", member.ReadOnlyVar("ro", types.TypeInt, &store)},
		{"read-only property", member.Accessor("ro", types.TypeInt, func() int { return store }, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssigner(expr.Legacy).Assign(mustAccess(t, nil, tt.member), expr.Const(1))
			if err == nil {
				t.Fatal("expected rejection before compilation")
			}
			if !diag.HasCode(err, diag.CodeUnsettableMember) {
				t.Errorf("error = %v, want %s", err, diag.CodeUnsettableMember)
			}
		})
	}
}

func TestAssignTypeMismatch(t *testing.T) {
	var store int
	field := member.Var("store", types.TypeInt, &store)
	_, err := NewAssigner(expr.Legacy).Assign(mustAccess(t, nil, field), expr.Const("x"))
	if err == nil {
		t.Fatal("expected type mismatch")
	}
	if !diag.HasCode(err, diag.CodeTypeMismatch) {
		t.Errorf("error = %v, want %s", err, diag.CodeTypeMismatch)
	}
}
