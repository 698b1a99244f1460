package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The numeric assignments are shared between the compiler and the machine
// and must stay stable: the six indexed families occupy eight values each,
// followed by the control opcodes.
func TestOpcodeNumbering(t *testing.T) {
	assert.Equal(t, Opcode(0), StackRef0)
	assert.Equal(t, Opcode(8), StackSet0)
	assert.Equal(t, Opcode(16), VarRef0)
	assert.Equal(t, Opcode(24), VarSet0)
	assert.Equal(t, Opcode(32), Constant0)
	assert.Equal(t, Opcode(40), Call0)
	assert.Equal(t, Opcode(48), Discard)
	assert.Equal(t, Opcode(49), Duplicate)
	assert.Equal(t, Opcode(50), Jump)
	assert.Equal(t, Opcode(51), JumpNil)
	assert.Equal(t, Opcode(52), JumpNilElsePop)
	assert.Equal(t, Opcode(53), Ret)
	assert.Equal(t, Opcode(54), End)
	assert.Equal(t, Opcode(55), Unknown)
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "constant0", Constant0.String())
	assert.Equal(t, "stack_ref_n2", StackRefN2.String())
	assert.Equal(t, "jump_nil_else_pop", JumpNilElsePop.String())
	assert.Equal(t, "illegal op (77)", Opcode(77).String())
}

func TestOperandWidth(t *testing.T) {
	assert.Equal(t, 0, OperandWidth(Constant3))
	assert.Equal(t, 1, OperandWidth(ConstantN))
	assert.Equal(t, 2, OperandWidth(ConstantN2))
	assert.Equal(t, 1, OperandWidth(CallN))
	assert.Equal(t, 2, OperandWidth(Jump))
	assert.Equal(t, 2, OperandWidth(JumpNil))
	assert.Equal(t, 2, OperandWidth(JumpNilElsePop))
	assert.Equal(t, 0, OperandWidth(Ret))
}
