package types

import "strings"

// A Cons is a pair of values. Chains of cons cells whose final cdr is nil
// form proper lists.
type Cons struct {
	Car Value
	Cdr Value
}

var _ Value = (*Cons)(nil)

// NewCons returns the cons of car and cdr.
func NewCons(car, cdr Value) *Cons { return &Cons{Car: car, Cdr: cdr} }

func (c *Cons) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(c.Car.String())
	rest := c.Cdr
	for {
		switch cdr := rest.(type) {
		case *Cons:
			sb.WriteByte(' ')
			sb.WriteString(cdr.Car.String())
			rest = cdr.Cdr
		case NilType:
			sb.WriteByte(')')
			return sb.String()
		default:
			sb.WriteString(" . ")
			sb.WriteString(cdr.String())
			sb.WriteByte(')')
			return sb.String()
		}
	}
}

func (c *Cons) Type() string { return "cons" }
