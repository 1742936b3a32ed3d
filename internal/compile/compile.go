// Package compile lowers a lambda node into a directly callable closure.
// Lowering is a single post-order recursive pass producing nested thunks;
// it is pure, synchronous and idempotent, and the source tree may be
// discarded once compilation succeeds.
package compile

import (
	"fmt"

	"github.com/exprkit/exprkit/internal/diag"
	"github.com/exprkit/exprkit/internal/expr"
	"github.com/exprkit/exprkit/internal/types"
)

// Closure is a compiled lambda. It may be invoked any number of times; each
// invocation gets a fresh parameter environment. A closure that mutates
// host storage (assignment trees) is caller-synchronized.
type Closure struct {
	params []types.Type
	result types.Type
	call   func(up *frame, args []any) any
}

// Params returns the parameter types of the compiled signature.
func (c *Closure) Params() []types.Type { return c.params }

// Result returns the result type of the compiled signature.
func (c *Closure) Result() types.Type { return c.result }

// Invoke runs the closure. The argument count must match the compiled
// signature; a mismatch is a programming defect and panics. Failures of the
// underlying host operations propagate unchanged.
func (c *Closure) Invoke(args ...any) any {
	if len(args) != len(c.params) {
		panic(fmt.Sprintf("compile: closure expects %d arguments, got %d", len(c.params), len(args)))
	}
	return c.call(nil, args)
}

// Compile lowers a lambda node to a closure with the lambda's parameter and
// return types.
func Compile(l *expr.Lambda) (*Closure, error) {
	if l == nil {
		return nil, diag.Errorf(diag.PhaseCompile, diag.CodeIllFormedTree,
			"cannot compile a nil lambda")
	}
	lw := &lowerer{}
	call, err := lw.lowerLambda(l)
	if err != nil {
		return nil, err
	}
	params := make([]types.Type, len(l.Params()))
	for i, p := range l.Params() {
		params[i] = p.Type()
	}
	return &Closure{params: params, result: l.Return(), call: call}, nil
}

// Func0 adapts a closure to a typed nullary Go function.
func Func0[R any](c *Closure) (func() R, error) {
	if err := checkSignature(c, 0); err != nil {
		return nil, err
	}
	return func() R {
		return c.Invoke().(R)
	}, nil
}

// Func1 adapts a closure to a typed unary Go function.
func Func1[A, R any](c *Closure) (func(A) R, error) {
	if err := checkSignature(c, 1); err != nil {
		return nil, err
	}
	return func(a A) R {
		return c.Invoke(a).(R)
	}, nil
}

// Func2 adapts a closure to a typed binary Go function.
func Func2[A, B, R any](c *Closure) (func(A, B) R, error) {
	if err := checkSignature(c, 2); err != nil {
		return nil, err
	}
	return func(a A, b B) R {
		return c.Invoke(a, b).(R)
	}, nil
}

func checkSignature(c *Closure, arity int) error {
	if len(c.params) != arity {
		return fmt.Errorf("closure has %d parameters, adapter wants %d", len(c.params), arity)
	}
	if types.IsVoid(c.result) {
		return fmt.Errorf("closure result is void; invoke it directly")
	}
	return nil
}
