package compiler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/zbelial/rune/lang/types"
)

// Disasm renders a compiled function as a human-readable listing: the
// instructions with their decoded operands, then the constant pool.
// Function constants are rendered recursively after their owner. This is a
// debug format, not a serialization contract.
func Disasm(fn *types.ByteFn) string {
	var sb strings.Builder
	disasmInto(&sb, fn, "")
	return sb.String()
}

func disasmInto(sb *strings.Builder, fn *types.ByteFn, indent string) {
	fmt.Fprintf(sb, "%scode:\n", indent)
	for pc := 0; pc < len(fn.Code); {
		op := Opcode(fn.Code[pc])
		fmt.Fprintf(sb, "%s\t%d\t%s", indent, pc, op)
		pc++
		switch OperandWidth(op) {
		case 1:
			fmt.Fprintf(sb, " %d", fn.Code[pc])
			pc++
		case 2:
			arg := binary.BigEndian.Uint16(fn.Code[pc:])
			if op == Jump || op == JumpNil || op == JumpNilElsePop {
				fmt.Fprintf(sb, " %d", int16(arg))
			} else {
				fmt.Fprintf(sb, " %d", arg)
			}
			pc += 2
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(sb, "%sconstants:\n", indent)
	for i, c := range fn.Constants {
		fmt.Fprintf(sb, "%s\t%d\t%s\n", indent, i, c)
	}
	for i, c := range fn.Constants {
		if sub, ok := c.(*types.ByteFn); ok {
			fmt.Fprintf(sb, "%sfunction %d (%s):\n", indent, i, sub.Name())
			disasmInto(sb, sub, indent+"\t")
		}
	}
}
