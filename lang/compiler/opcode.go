// Package compiler translates an object tree into a code object: a byte
// sequence over a fixed instruction set and the constant pool it indexes.
// The resulting functions are executed by the machine package.
package compiler

import "fmt"

type Opcode uint8

// Six instruction families carry an index operand in three encodings: an
// implicit index baked into the opcode for 0 through 5, a one-byte operand
// (the N form) and a big-endian two-byte operand (the N2 form). The short
// forms keep the byte-code compact for the overwhelmingly common small
// indices.
//
// "x DUP x x" is a "stack picture" that describes the state of the stack
// before and after execution of the instruction.
const (
	StackRef0 Opcode = iota //      - StackRef<k> dup of slot at depth k
	StackRef1
	StackRef2
	StackRef3
	StackRef4
	StackRef5
	StackRefN
	StackRefN2
	StackSet0 //      x StackSet<k> -    overwrite slot at depth k
	StackSet1
	StackSet2
	StackSet3
	StackSet4
	StackSet5
	StackSetN
	StackSetN2
	VarRef0 //        - VarRef<c>   value of symbol at constants[c]
	VarRef1
	VarRef2
	VarRef3
	VarRef4
	VarRef5
	VarRefN
	VarRefN2
	VarSet0 //        x VarSet<c>   -    store into symbol at constants[c]
	VarSet1
	VarSet2
	VarSet3
	VarSet4
	VarSet5
	VarSetN
	VarSetN2
	Constant0 //      - Constant<c> constants[c]
	Constant1
	Constant2
	Constant3
	Constant4
	Constant5
	ConstantN
	ConstantN2
	Call0 // fn a1..ak Call<k>      result
	Call1
	Call2
	Call3
	Call4
	Call5
	CallN
	CallN2

	Discard        //  x Discard        -
	Duplicate      //  x Duplicate      x x
	Jump           //  - Jump<i16>      -
	JumpNil        //  x JumpNil<i16>   -                 jump if x is nil
	JumpNilElsePop //  x JumpNilElsePop<i16> x if taken   else popped
	Ret            //  x Ret            -
	End            //  fence, invalid in executable code
	Unknown        //  fence, invalid in executable code
)

var opcodeNames = [...]string{
	StackRef0:      "stack_ref0",
	StackRef1:      "stack_ref1",
	StackRef2:      "stack_ref2",
	StackRef3:      "stack_ref3",
	StackRef4:      "stack_ref4",
	StackRef5:      "stack_ref5",
	StackRefN:      "stack_ref_n",
	StackRefN2:     "stack_ref_n2",
	StackSet0:      "stack_set0",
	StackSet1:      "stack_set1",
	StackSet2:      "stack_set2",
	StackSet3:      "stack_set3",
	StackSet4:      "stack_set4",
	StackSet5:      "stack_set5",
	StackSetN:      "stack_set_n",
	StackSetN2:     "stack_set_n2",
	VarRef0:        "var_ref0",
	VarRef1:        "var_ref1",
	VarRef2:        "var_ref2",
	VarRef3:        "var_ref3",
	VarRef4:        "var_ref4",
	VarRef5:        "var_ref5",
	VarRefN:        "var_ref_n",
	VarRefN2:       "var_ref_n2",
	VarSet0:        "var_set0",
	VarSet1:        "var_set1",
	VarSet2:        "var_set2",
	VarSet3:        "var_set3",
	VarSet4:        "var_set4",
	VarSet5:        "var_set5",
	VarSetN:        "var_set_n",
	VarSetN2:       "var_set_n2",
	Constant0:      "constant0",
	Constant1:      "constant1",
	Constant2:      "constant2",
	Constant3:      "constant3",
	Constant4:      "constant4",
	Constant5:      "constant5",
	ConstantN:      "constant_n",
	ConstantN2:     "constant_n2",
	Call0:          "call0",
	Call1:          "call1",
	Call2:          "call2",
	Call3:          "call3",
	Call4:          "call4",
	Call5:          "call5",
	CallN:          "call_n",
	CallN2:         "call_n2",
	Discard:        "discard",
	Duplicate:      "duplicate",
	Jump:           "jump",
	JumpNil:        "jump_nil",
	JumpNilElsePop: "jump_nil_else_pop",
	Ret:            "ret",
	End:            "end",
	Unknown:        "unknown",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal op (%d)", uint8(op))
}

// OperandWidth returns the number of operand bytes that follow the opcode:
// 1 for the N family forms, 2 for the N2 forms and the jumps, 0 otherwise.
func OperandWidth(op Opcode) int {
	switch op {
	case StackRefN, StackSetN, VarRefN, VarSetN, ConstantN, CallN:
		return 1
	case StackRefN2, StackSetN2, VarRefN2, VarSetN2, ConstantN2, CallN2,
		Jump, JumpNil, JumpNilElsePop:
		return 2
	}
	return 0
}
