package types

import (
	"sync"

	"github.com/dolthub/swiss"
)

// A Symbol is an interned, address-stable name with a mutable function
// slot. Two symbols with the same name are the same symbol; compare them
// with ==.
type Symbol struct {
	name string
	fn   Callable
}

var _ Value = (*Symbol)(nil)

func (s *Symbol) String() string { return s.name }
func (s *Symbol) Type() string   { return "symbol" }

// Name returns the symbol's print name.
func (s *Symbol) Name() string { return s.name }

// Func returns the callable in the symbol's function slot, or nil if the
// slot is unset.
func (s *Symbol) Func() Callable { return s.fn }

// SetFunc stores fn in the symbol's function slot.
func (s *Symbol) SetFunc(fn Callable) { s.fn = fn }

// The process-wide symbol table. Symbols are allocated once and never
// freed, which is what makes their addresses stable handles. The map is
// created on first use and grows only.
var symtab struct {
	mu sync.Mutex
	m  *swiss.Map[string, *Symbol]
}

// Intern returns the unique symbol with the given name, creating it if it
// does not exist yet. Intern is safe for concurrent use.
func Intern(name string) *Symbol {
	symtab.mu.Lock()
	defer symtab.mu.Unlock()
	if symtab.m == nil {
		symtab.m = swiss.NewMap[string, *Symbol](64)
	}
	if sym, ok := symtab.m.Get(name); ok {
		return sym
	}
	sym := &Symbol{name: name}
	symtab.m.Put(name, sym)
	return sym
}
