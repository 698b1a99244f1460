package compiler

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/zbelial/rune/lang/types"
)

// ErrConstOverflow reports a form that needs more than 65536 distinct
// constants in one function.
var ErrConstOverflow = errors.New("constant pool overflow")

// ErrStackSizeOverflow reports a stack-reference distance or jump offset
// that does not fit the 16-bit operand encoding.
var ErrStackSizeOverflow = errors.New("stack size overflow")

// LetValueCountError reports a let binding with more than one value form.
type LetValueCountError struct {
	Actual uint16
}

func (e LetValueCountError) Error() string {
	return fmt.Sprintf("let binding can only have one value, found %d", e.Actual)
}

// codeBuf is the append-only instruction buffer of a function under
// compilation.
type codeBuf struct {
	b []byte
}

func (c *codeBuf) push(op Opcode) {
	c.b = append(c.b, byte(op))
}

func (c *codeBuf) pushArg(op Opcode, arg uint8) {
	c.b = append(c.b, byte(op), arg)
}

func (c *codeBuf) pushArg2(op Opcode, arg uint16) {
	c.b = append(c.b, byte(op))
	c.b = binary.BigEndian.AppendUint16(c.b, arg)
}

// emitIndexed emits one instruction of the family whose implicit-0 opcode
// is base, choosing the shortest encoding that fits idx.
func (c *codeBuf) emitIndexed(base Opcode, idx uint16) {
	switch {
	case idx <= 5:
		c.push(base + Opcode(idx))
	case idx <= math.MaxUint8:
		c.pushArg(base+6, uint8(idx))
	default:
		c.pushArg2(base+7, idx)
	}
}

// pushJumpPlaceholder reserves the two operand bytes of the jump
// instruction just emitted and returns their position for patching.
func (c *codeBuf) pushJumpPlaceholder() int {
	pos := len(c.b)
	c.b = append(c.b, 0, 0)
	return pos
}

// patchJump resolves a forward jump placeholder to the current emission
// position. The stored offset is relative to the byte following the
// operand.
func (c *codeBuf) patchJump(pos int) error {
	offset := len(c.b) - pos - 2
	if offset > math.MaxInt16 {
		return ErrStackSizeOverflow
	}
	binary.BigEndian.PutUint16(c.b[pos:], uint16(offset))
	return nil
}

// pushBackJump emits the operand of a backward jump targeting an already
// emitted position.
func (c *codeBuf) pushBackJump(target int) error {
	offset := target - (len(c.b) + 2)
	if offset < math.MinInt16 {
		return ErrStackSizeOverflow
	}
	c.b = binary.BigEndian.AppendUint16(c.b, uint16(int16(offset)))
	return nil
}

// constVec is the ordered constant pool of a function under compilation,
// with a membership index over the atoms. Insertion deduplicates atoms
// only: comparing cons chains structurally would be quadratic and would
// leak representation identity, so compound values always get a fresh
// slot.
type constVec struct {
	vals  []types.Value
	index map[types.Value]uint16
}

func (cv *constVec) insert(obj types.Value) (uint16, error) {
	if atomic(obj) {
		if idx, ok := cv.index[obj]; ok {
			return idx, nil
		}
	}
	if len(cv.vals) > math.MaxUint16 {
		return 0, ErrConstOverflow
	}
	idx := uint16(len(cv.vals))
	cv.vals = append(cv.vals, obj)
	if atomic(obj) {
		if cv.index == nil {
			cv.index = make(map[types.Value]uint16)
		}
		cv.index[obj] = idx
	}
	return idx, nil
}

func atomic(obj types.Value) bool {
	switch obj.(type) {
	case types.Int, types.Float, types.String, types.NilType, types.TrueType, *types.Symbol:
		return true
	}
	return false
}
