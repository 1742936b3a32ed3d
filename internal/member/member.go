// Package member defines opaque, pre-resolved references to host members:
// storage-backed fields, accessor-backed properties, and callables. The
// expression core consumes these references as-is; resolving a member by
// name is the host's job and never happens here.
package member

import (
	"github.com/exprkit/exprkit/internal/types"
)

// Storage is a handle to one addressable storage location.
type Storage interface {
	Load() any
	Store(v any)
}

// Invoker is the runtime representation of a compiled lambda value.
type Invoker func(args []any) any

// Member is a pre-resolved reference to a readable or settable host member.
type Member interface {
	Name() string
	Type() types.Type
	Static() bool
	Readable() bool
	Settable() bool
	memberRef() // sealed marker
}

// Field is a member backed by addressable storage.
type Field struct {
	name     string
	typ      types.Type
	static   bool
	settable bool
	addr     func(recv any) Storage
}

func (f *Field) Name() string     { return f.name }
func (f *Field) Type() types.Type { return f.typ }
func (f *Field) Static() bool     { return f.static }
func (f *Field) Readable() bool   { return true }
func (f *Field) Settable() bool   { return f.settable }
func (f *Field) memberRef()       {}

// Addr returns the storage location of the field on recv. Static fields
// ignore recv.
func (f *Field) Addr(recv any) Storage {
	return f.addr(recv)
}

type ptrStorage[T any] struct {
	p *T
}

func (s ptrStorage[T]) Load() any   { return *s.p }
func (s ptrStorage[T]) Store(v any) { *s.p = v.(T) }

// Var constructs a static field reference over the storage at p.
func Var[T any](name string, typ types.Type, p *T) *Field {
	return &Field{
		name:     name,
		typ:      typ,
		static:   true,
		settable: true,
		addr:     func(any) Storage { return ptrStorage[T]{p} },
	}
}

// ReadOnlyVar constructs a static field reference that rejects assignment.
func ReadOnlyVar[T any](name string, typ types.Type, p *T) *Field {
	f := Var(name, typ, p)
	f.settable = false
	return f
}

// FieldOf constructs an instance field reference. addr projects the storage
// location out of a receiver of type *R.
func FieldOf[R, T any](name string, typ types.Type, addr func(*R) *T) *Field {
	return &Field{
		name:     name,
		typ:      typ,
		settable: true,
		addr:     func(recv any) Storage { return ptrStorage[T]{addr(recv.(*R))} },
	}
}

// ReadOnlyFieldOf constructs an instance field reference that rejects
// assignment.
func ReadOnlyFieldOf[R, T any](name string, typ types.Type, addr func(*R) *T) *Field {
	f := FieldOf(name, typ, addr)
	f.settable = false
	return f
}

// Property is a member accessed only through getter/setter functions, with
// no addressable storage. Either accessor may be nil.
type Property struct {
	name   string
	typ    types.Type
	static bool
	getter *Callable
	setter *Callable
}

func (p *Property) Name() string     { return p.name }
func (p *Property) Type() types.Type { return p.typ }
func (p *Property) Static() bool     { return p.static }
func (p *Property) Readable() bool   { return p.getter != nil }
func (p *Property) Settable() bool   { return p.setter != nil }
func (p *Property) memberRef()       {}

// Getter returns the getter callable, or nil for a write-only property.
func (p *Property) Getter() *Callable { return p.getter }

// Setter returns the setter callable, or nil for a read-only property.
func (p *Property) Setter() *Callable { return p.setter }

// Accessor constructs a static property from getter/setter functions.
// Either may be nil.
func Accessor[T any](name string, typ types.Type, get func() T, set func(T)) *Property {
	p := &Property{name: name, typ: typ, static: true}
	if get != nil {
		p.getter = Func0("get_"+name, typ, get)
	}
	if set != nil {
		p.setter = Proc1("set_"+name, typ, set)
	}
	return p
}

// PropertyOf constructs an instance property on receivers of static type
// recv. Either accessor may be nil.
func PropertyOf[R, T any](name string, recv, typ types.Type, get func(R) T, set func(R, T)) *Property {
	p := &Property{name: name, typ: typ}
	if get != nil {
		p.getter = Func1("get_"+name, recv, typ, get)
	}
	if set != nil {
		p.setter = Proc2("set_"+name, recv, typ, set)
	}
	return p
}
