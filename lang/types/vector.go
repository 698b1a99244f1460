package types

import "strings"

// A Vector is a fixed-length, indexable sequence of values.
type Vector struct {
	Elems []Value
}

var _ Value = (*Vector)(nil)

// NewVector returns a vector containing the specified elements. Callers
// should not subsequently modify elems.
func NewVector(elems []Value) *Vector { return &Vector{Elems: elems} }

func (v *Vector) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *Vector) Type() string { return "vector" }
func (v *Vector) Len() int     { return len(v.Elems) }

// Index returns the value at index i, which must satisfy 0 <= i < Len().
func (v *Vector) Index(i int) Value { return v.Elems[i] }
