package types

// List builds a proper list from the given values.
func List(vals ...Value) Value {
	res := Nil
	for i := len(vals) - 1; i >= 0; i-- {
		res = NewCons(vals[i], res)
	}
	return res
}

// ListElems returns the elements of a proper list rooted at obj. The
// object must be a cons whose chain of cdrs terminates in nil.
func ListElems(obj Value) ([]Value, error) {
	cons, ok := obj.(*Cons)
	if !ok {
		return nil, TypeError{Expected: TagCons, Actual: TagOf(obj)}
	}
	elems := []Value{cons.Car}
	rest := cons.Cdr
	for {
		switch cdr := rest.(type) {
		case *Cons:
			elems = append(elems, cdr.Car)
			rest = cdr.Cdr
		case NilType:
			return elems, nil
		default:
			return nil, TypeError{Expected: TagList, Actual: TagOf(rest)}
		}
	}
}

// ArgElems is like ListElems but accepts nil as the empty list, which is
// how argument tails of forms are represented.
func ArgElems(obj Value) ([]Value, error) {
	switch obj.(type) {
	case NilType:
		return nil, nil
	case *Cons:
		return ListElems(obj)
	}
	return nil, TypeError{Expected: TagList, Actual: TagOf(obj)}
}
