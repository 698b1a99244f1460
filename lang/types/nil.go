package types

// NilType is the type of the nil value. Nil doubles as the empty list and
// as the false value; it is the only value that is not truthy.
type NilType struct{}

// Nil is the nil value.
var Nil Value = NilType{}

var _ Value = NilType{}

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }

// TrueType is the type of the canonical true value t.
type TrueType struct{}

// True is the t value.
var True Value = TrueType{}

var _ Value = TrueType{}

func (TrueType) String() string { return "t" }
func (TrueType) Type() string   { return "t" }
