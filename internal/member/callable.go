package member

import (
	"github.com/exprkit/exprkit/internal/types"
)

// Callable is a pre-resolved call target with a fixed signature. Instance
// methods are callables whose first parameter is the receiver. Failures
// raised by the underlying host function propagate to the caller unchanged.
type Callable struct {
	name   string
	params []types.Type
	result types.Type
	fn     func(args []any) any
}

// NewCallable wraps an arbitrary type-erased host function. result must be
// types.TypeVoid for functions that produce no value.
func NewCallable(name string, params []types.Type, result types.Type, fn func(args []any) any) *Callable {
	return &Callable{name: name, params: params, result: result, fn: fn}
}

func (c *Callable) Name() string { return c.name }

// Params returns the declared parameter types.
func (c *Callable) Params() []types.Type { return c.params }

// Result returns the declared result type.
func (c *Callable) Result() types.Type { return c.result }

// Invoke calls the underlying host function. Arguments must already match
// the declared signature; the compiler guarantees this for lowered trees.
func (c *Callable) Invoke(args []any) any {
	return c.fn(args)
}

// Func0 wraps a nullary host function.
func Func0[R any](name string, result types.Type, fn func() R) *Callable {
	return NewCallable(name, nil, result, func([]any) any {
		return fn()
	})
}

// Func1 wraps a unary host function.
func Func1[A, R any](name string, a, result types.Type, fn func(A) R) *Callable {
	return NewCallable(name, []types.Type{a}, result, func(args []any) any {
		return fn(args[0].(A))
	})
}

// Func2 wraps a binary host function.
func Func2[A, B, R any](name string, a, b, result types.Type, fn func(A, B) R) *Callable {
	return NewCallable(name, []types.Type{a, b}, result, func(args []any) any {
		return fn(args[0].(A), args[1].(B))
	})
}

// Proc1 wraps a unary host function that produces no value.
func Proc1[A any](name string, a types.Type, fn func(A)) *Callable {
	return NewCallable(name, []types.Type{a}, types.TypeVoid, func(args []any) any {
		fn(args[0].(A))
		return nil
	})
}

// Proc2 wraps a binary host function that produces no value.
func Proc2[A, B any](name string, a, b types.Type, fn func(A, B)) *Callable {
	return NewCallable(name, []types.Type{a, b}, types.TypeVoid, func(args []any) any {
		fn(args[0].(A), args[1].(B))
		return nil
	})
}
