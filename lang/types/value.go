// Package types defines the runtime representation of the values manipulated
// by the compiler and the virtual machine: numbers, strings, symbols, cons
// cells, vectors and functions, along with the process-wide symbol table.
package types

// Value is the interface implemented by any value manipulated by the
// compiler and the machine.
type Value interface {
	// String returns the string representation of the value.
	String() string

	// Type returns a short string describing the value's type.
	Type() string
}

// A Callable value may sit in a symbol's function slot and be the target of
// a call instruction. The machine dispatches on the concrete type (*ByteFn
// or *Builtin); the interface only exposes what both share.
type Callable interface {
	Value

	// Name returns a name describing the callable, for error reporting
	// and debug listings.
	Name() string

	// FnArgs returns the argument requirements of the callable.
	FnArgs() FnArgs
}

// Env is the variable environment consumed by the machine and by builtin
// functions. Bindings are keyed by interned symbol.
type Env interface {
	// Get returns the value bound to sym, if any.
	Get(sym *Symbol) (Value, bool)

	// Set binds sym to v, replacing any previous binding.
	Set(sym *Symbol, v Value)
}

// A TypeTag discriminates value variants for error reporting.
type TypeTag uint8

const (
	TagCons TypeTag = iota
	TagList
	TagSymbol
	TagInt
	TagString
	TagNil
	TagTrue
	TagFloat
	TagVector
	TagFunc
)

var tagNames = [...]string{
	TagCons:   "cons",
	TagList:   "list",
	TagSymbol: "symbol",
	TagInt:    "int",
	TagString: "string",
	TagNil:    "nil",
	TagTrue:   "t",
	TagFloat:  "float",
	TagVector: "vector",
	TagFunc:   "function",
}

func (t TypeTag) String() string { return tagNames[t] }

// TagOf returns the TypeTag of v's variant.
func TagOf(v Value) TypeTag {
	switch v.(type) {
	case *Cons:
		return TagCons
	case *Symbol:
		return TagSymbol
	case Int:
		return TagInt
	case String:
		return TagString
	case NilType:
		return TagNil
	case TrueType:
		return TagTrue
	case Float:
		return TagFloat
	case *Vector:
		return TagVector
	case *ByteFn, *Builtin:
		return TagFunc
	}
	panic("unknown value variant: " + v.Type())
}

// IsNil reports whether v is the nil value. Nil is the only false value.
func IsNil(v Value) bool {
	_, ok := v.(NilType)
	return ok
}
