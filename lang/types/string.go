package types

import "strconv"

// String is the type of a text string. It encapsulates an immutable
// sequence of bytes; the byte-code of a compiled function is exposed as a
// String through the function's indexed view.
type String string

var _ Value = String("")

func (s String) String() string { return strconv.Quote(string(s)) }
func (s String) Type() string   { return "string" }
