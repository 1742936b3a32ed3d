package types

import (
	"fmt"
	"strings"
)

// Type represents a static type in the expression-tree type model.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// PrimitiveKind represents the kind of a primitive value type.
type PrimitiveKind string

const (
	Bool    PrimitiveKind = "bool"
	Int     PrimitiveKind = "int"
	Int64   PrimitiveKind = "int64"
	Float64 PrimitiveKind = "float64"
	String  PrimitiveKind = "string"
	Void    PrimitiveKind = "void"
)

// Primitive represents a primitive value type. Void is the sentinel type of
// statement-only nodes that produce no value.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Common primitive instances
var (
	TypeBool    = &Primitive{Kind: Bool}
	TypeInt     = &Primitive{Kind: Int}
	TypeInt64   = &Primitive{Kind: Int64}
	TypeFloat64 = &Primitive{Kind: Float64}
	TypeString  = &Primitive{Kind: String}
	TypeVoid    = &Primitive{Kind: Void}
)

// Object represents a named host reference type. Two object types are the
// same type iff their names are equal.
type Object struct {
	Name string
}

func (o *Object) String() string { return o.Name }
func (o *Object) IsType()        {}

// TypeAny is the top reference type: every object type widens to it.
var TypeAny = &Object{Name: "object"}

// NewObject constructs a named object type.
func NewObject(name string) *Object {
	return &Object{Name: name}
}

// Func represents the type of a lambda value: a callable with fixed
// parameter types and a result type.
type Func struct {
	Params []Type
	Result Type
}

func (f *Func) String() string {
	parts := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("func(%s) %s", strings.Join(parts, ", "), f.Result)
}

func (f *Func) IsType() {}

// NewFunc constructs a function type.
func NewFunc(params []Type, result Type) *Func {
	return &Func{Params: params, Result: result}
}

// Ref represents a by-reference parameter type. It only appears in the
// signatures of helper callables; an argument bound to a Ref parameter must
// be a member access of addressable storage of the element type.
type Ref struct {
	Elem Type
}

func (r *Ref) String() string { return "ref " + r.Elem.String() }
func (r *Ref) IsType()        {}

// NewRef constructs a by-reference type over elem.
func NewRef(elem Type) *Ref {
	return &Ref{Elem: elem}
}

// Identical reports whether a and b are the same static type.
func Identical(a, b Type) bool {
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Kind == b.Kind
	case *Object:
		b, ok := b.(*Object)
		return ok && a.Name == b.Name
	case *Func:
		b, ok := b.(*Func)
		if !ok || len(a.Params) != len(b.Params) || !Identical(a.Result, b.Result) {
			return false
		}
		for i := range a.Params {
			if !Identical(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case *Ref:
		b, ok := b.(*Ref)
		return ok && Identical(a.Elem, b.Elem)
	}
	return false
}

// IsValue reports whether t is a primitive value type (excluding void).
func IsValue(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind != Void
}

// IsReference reports whether t is an object reference type.
func IsReference(t Type) bool {
	_, ok := t.(*Object)
	return ok
}

// IsVoid reports whether t is the no-value sentinel.
func IsVoid(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == Void
}

// AssignableTo reports whether a value of type src may bind to a slot of
// type dst without an explicit conversion node. Only identity and reference
// widening qualify; value-to-reference requires an explicit box conversion.
func AssignableTo(src, dst Type) bool {
	if Identical(src, dst) {
		return true
	}
	if IsReference(src) && Identical(dst, TypeAny) {
		return true
	}
	return false
}

// Widens reports whether src widens numerically to dst.
func Widens(src, dst Type) bool {
	s, ok := src.(*Primitive)
	if !ok {
		return false
	}
	d, ok := dst.(*Primitive)
	if !ok {
		return false
	}
	switch s.Kind {
	case Int:
		return d.Kind == Int64 || d.Kind == Float64
	case Int64:
		return d.Kind == Float64
	}
	return false
}
