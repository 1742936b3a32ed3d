package main

import (
	"fmt"
	"strings"

	"github.com/exprkit/exprkit/internal/compile"
	"github.com/exprkit/exprkit/internal/expr"
	"github.com/exprkit/exprkit/internal/member"
	"github.com/exprkit/exprkit/internal/shim"
	"github.com/exprkit/exprkit/internal/types"
)

type scenario struct {
	name string
	desc string
	run  func() error
}

var scenarios = []scenario{
	{"format", "call a formatting function with a boxed argument", runFormat},
	{"assign-field", "native field assignment (modern profile)", runAssignField},
	{"assign-field-legacy", "field assignment via the helper-call shim", runAssignFieldLegacy},
	{"assign-property-legacy", "setter-backed assignment via the helper-call shim", runAssignPropertyLegacy},
	{"block", "two-statement block with ordered side effects", runBlock},
}

// formatCallable substitutes {0} in the format string with the argument.
// It stands in for the host formatting routine the member reference would
// normally resolve to.
func formatCallable() *member.Callable {
	return member.Func2("format", types.TypeString, types.TypeAny, types.TypeString,
		func(f string, arg any) string {
			return strings.ReplaceAll(f, "{0}", fmt.Sprint(arg))
		})
}

// runFormat builds λ(n int) string = format("Value = {0}", box(n)), compiles
// it and invokes it with 123.
func runFormat() error {
	n, err := expr.NewParameter(0, types.TypeInt, "n")
	if err != nil {
		return err
	}
	boxed, err := expr.NewConvert(n, types.TypeAny)
	if err != nil {
		return err
	}
	call, err := expr.NewCall(formatCallable(), expr.Const("Value = {0}"), boxed)
	if err != nil {
		return err
	}
	lambda, err := expr.NewLambda(call, types.TypeString, n)
	if err != nil {
		return err
	}
	closure, err := compile.Compile(lambda)
	if err != nil {
		return err
	}
	format, err := compile.Func1[int, string](closure)
	if err != nil {
		return err
	}
	fmt.Printf("   format(123) = %q\n", format(123))
	return nil
}

// assignLambda builds λ(v int) int = store = v with the given profile and
// returns the compiled closure.
func assignLambda(p expr.Profile, m member.Member) (*compile.Closure, error) {
	v, err := expr.NewParameter(0, types.TypeInt, "v")
	if err != nil {
		return nil, err
	}
	target, err := expr.NewMemberAccess(nil, m)
	if err != nil {
		return nil, err
	}
	assign, err := shim.NewAssigner(p).Assign(target, v)
	if err != nil {
		return nil, err
	}
	lambda, err := expr.NewLambda(assign, types.TypeInt, v)
	if err != nil {
		return nil, err
	}
	return compile.Compile(lambda)
}

func reportAssign(p expr.Profile, m member.Member, read func() int) error {
	closure, err := assignLambda(p, m)
	if err != nil {
		return err
	}
	got := closure.Invoke(123)
	fmt.Printf("   assign(123) = %v, %s now holds %d\n", got, m.Name(), read())
	return nil
}

func runAssignField() error {
	var store int
	field := member.Var("store", types.TypeInt, &store)
	return reportAssign(expr.Modern, field, func() int { return store })
}

func runAssignFieldLegacy() error {
	var store int
	field := member.Var("store", types.TypeInt, &store)
	return reportAssign(expr.Legacy, field, func() int { return store })
}

func runAssignPropertyLegacy() error {
	var store int
	prop := member.Accessor("store", types.TypeInt,
		func() int { return store },
		func(v int) { store = v })
	return reportAssign(expr.Legacy, prop, func() int { return store })
}

// runBlock builds λ(v int) int = { trace("first"); v } and shows that the
// side effect runs before the block value is produced.
func runBlock() error {
	var traced []string
	trace := member.Proc1("trace", types.TypeString, func(s string) {
		traced = append(traced, s)
	})
	v, err := expr.NewParameter(0, types.TypeInt, "v")
	if err != nil {
		return err
	}
	first, err := expr.NewCall(trace, expr.Const("first"))
	if err != nil {
		return err
	}
	block, err := expr.NewBlock(first, v)
	if err != nil {
		return err
	}
	lambda, err := expr.NewLambda(block, types.TypeInt, v)
	if err != nil {
		return err
	}
	closure, err := compile.Compile(lambda)
	if err != nil {
		return err
	}
	got := closure.Invoke(42)
	fmt.Printf("   block(42) = %v after trace %v\n", got, traced)
	return nil
}
