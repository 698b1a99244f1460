// Package machine implements the stack virtual machine that executes
// byte-code compiled functions against a variable environment. It owns the
// value stack and the call-frame stack; variable lookups and assignments
// are delegated to the environment, and calls to native functions are
// dispatched through the callee symbol's function slot.
package machine

import (
	"encoding/binary"
	"fmt"

	"github.com/zbelial/rune/lang/compiler"
	"github.com/zbelial/rune/lang/types"
)

// ip is a byte cursor over a function's code.
type ip struct {
	code []byte
	pc   int
}

func (p *ip) next() byte {
	b := p.code[p.pc]
	p.pc++
	return b
}

// takeArg fetches a one-byte operand.
func (p *ip) takeArg() int {
	return int(p.next())
}

// takeArg2 fetches a big-endian two-byte operand.
func (p *ip) takeArg2() int {
	v := binary.BigEndian.Uint16(p.code[p.pc:])
	p.pc += 2
	return int(v)
}

// jump moves the cursor relative to the byte following the operand just
// read.
func (p *ip) jump(offset int16) {
	p.pc += int(offset)
}

// A frame records one activation of a byte-code function. start is the
// absolute index of the callee slot on the value stack; Ret writes the
// result there and truncates everything above it.
type frame struct {
	ip    ip
	fn    *types.ByteFn
	start int
}

func newFrame(fn *types.ByteFn, start int) frame {
	return frame{ip: ip{code: fn.Code}, fn: fn, start: start}
}

func (fr *frame) getConst(i int) types.Value { return fr.fn.Constants[i] }

// A routine is the transient state of one Execute invocation: the value
// stack, the stack of suspended frames and the current frame, kept out of
// the frame stack so that it is not pushed and popped on every
// instruction.
type routine struct {
	stack  stack
	frames []frame
	frame  frame
}

// Execute runs a compiled function against the environment and returns
// the value left on the stack by the final Ret. Each invocation gets a
// fresh value and call-frame stack, so builtins may re-enter Execute. On
// error the whole routine state is abandoned.
func Execute(fn *types.ByteFn, env types.Env) (types.Value, error) {
	rt := &routine{frame: newFrame(fn, 0)}
	for {
		op := compiler.Opcode(rt.frame.ip.next())
		switch op {
		case compiler.StackRef0, compiler.StackRef1, compiler.StackRef2,
			compiler.StackRef3, compiler.StackRef4, compiler.StackRef5:
			rt.stack.pushRef(int(op - compiler.StackRef0))

		case compiler.StackRefN:
			rt.stack.pushRef(rt.frame.ip.takeArg())

		case compiler.StackRefN2:
			rt.stack.pushRef(rt.frame.ip.takeArg2())

		case compiler.StackSet0, compiler.StackSet1, compiler.StackSet2,
			compiler.StackSet3, compiler.StackSet4, compiler.StackSet5:
			rt.stack.setRef(int(op - compiler.StackSet0))

		case compiler.StackSetN:
			rt.stack.setRef(rt.frame.ip.takeArg())

		case compiler.StackSetN2:
			rt.stack.setRef(rt.frame.ip.takeArg2())

		case compiler.VarRef0, compiler.VarRef1, compiler.VarRef2,
			compiler.VarRef3, compiler.VarRef4, compiler.VarRef5:
			if err := rt.varRef(int(op-compiler.VarRef0), env); err != nil {
				return nil, err
			}

		case compiler.VarRefN:
			if err := rt.varRef(rt.frame.ip.takeArg(), env); err != nil {
				return nil, err
			}

		case compiler.VarRefN2:
			if err := rt.varRef(rt.frame.ip.takeArg2(), env); err != nil {
				return nil, err
			}

		case compiler.VarSet0, compiler.VarSet1, compiler.VarSet2,
			compiler.VarSet3, compiler.VarSet4, compiler.VarSet5:
			rt.varSet(int(op-compiler.VarSet0), env)

		case compiler.VarSetN:
			rt.varSet(rt.frame.ip.takeArg(), env)

		case compiler.VarSetN2:
			rt.varSet(rt.frame.ip.takeArg2(), env)

		case compiler.Constant0, compiler.Constant1, compiler.Constant2,
			compiler.Constant3, compiler.Constant4, compiler.Constant5:
			rt.stack.push(rt.frame.getConst(int(op - compiler.Constant0)))

		case compiler.ConstantN:
			rt.stack.push(rt.frame.getConst(rt.frame.ip.takeArg()))

		case compiler.ConstantN2:
			rt.stack.push(rt.frame.getConst(rt.frame.ip.takeArg2()))

		case compiler.Call0, compiler.Call1, compiler.Call2,
			compiler.Call3, compiler.Call4, compiler.Call5:
			if err := rt.call(int(op-compiler.Call0), env); err != nil {
				return nil, err
			}

		case compiler.CallN:
			if err := rt.call(rt.frame.ip.takeArg(), env); err != nil {
				return nil, err
			}

		case compiler.CallN2:
			if err := rt.call(rt.frame.ip.takeArg2(), env); err != nil {
				return nil, err
			}

		case compiler.Discard:
			rt.stack.pop()

		case compiler.Duplicate:
			rt.stack.push(rt.stack.top())

		case compiler.Jump:
			offset := rt.frame.ip.takeArg2()
			rt.frame.ip.jump(int16(offset))

		case compiler.JumpNil:
			cond := rt.stack.pop()
			offset := rt.frame.ip.takeArg2()
			if types.IsNil(cond) {
				rt.frame.ip.jump(int16(offset))
			}

		case compiler.JumpNilElsePop:
			cond := rt.stack.top()
			offset := rt.frame.ip.takeArg2()
			if types.IsNil(cond) {
				rt.frame.ip.jump(int16(offset))
			} else {
				rt.stack.pop()
			}

		case compiler.Ret:
			result := rt.stack.pop()
			if len(rt.frames) == 0 {
				return result, nil
			}
			rt.stack[rt.frame.start] = result
			rt.stack.truncate(rt.frame.start + 1)
			rt.frame = rt.frames[len(rt.frames)-1]
			rt.frames = rt.frames[:len(rt.frames)-1]

		default:
			panic(fmt.Sprintf("invalid opcode: %s", op))
		}
	}
}

func (rt *routine) varRef(idx int, env types.Env) error {
	sym, ok := rt.frame.getConst(idx).(*types.Symbol)
	if !ok {
		panic(fmt.Sprintf("var ref operand is not a symbol: %s", rt.frame.getConst(idx)))
	}
	v, ok := env.Get(sym)
	if !ok {
		return VoidVariableError{Sym: sym}
	}
	rt.stack.push(v)
	return nil
}

func (rt *routine) varSet(idx int, env types.Env) {
	sym, ok := rt.frame.getConst(idx).(*types.Symbol)
	if !ok {
		panic(fmt.Sprintf("var set operand is not a symbol: %s", rt.frame.getConst(idx)))
	}
	env.Set(sym, rt.stack.pop())
}

// call dispatches the call instruction: argc arguments sit on top of the
// stack with the callee symbol beneath them.
func (rt *routine) call(argc int, env types.Env) error {
	sym, ok := rt.stack.refAt(argc).(*types.Symbol)
	if !ok {
		panic(fmt.Sprintf("callee slot does not hold a symbol: %s", rt.stack.refAt(argc)))
	}
	callable := sym.Func()
	if callable == nil {
		return VoidFunctionError{Sym: sym}
	}

	fill, err := callable.FnArgs().CountFill(uint16(argc))
	if err != nil {
		return err
	}
	start := rt.stack.fromEnd(argc) // callee slot, stable across the fills
	for i := uint16(0); i < fill; i++ {
		rt.stack.push(types.Nil)
	}
	total := argc + int(fill)

	switch fn := callable.(type) {
	case *types.ByteFn:
		rt.frames = append(rt.frames, rt.frame)
		rt.frame = newFrame(fn, start)
	case *types.Builtin:
		res, err := fn.F(rt.stack.takeSlice(total), env)
		if err != nil {
			return err
		}
		rt.stack[start] = res
		rt.stack.truncate(start + 1)
	default:
		panic(fmt.Sprintf("unknown callable variant: %s", callable))
	}
	return nil
}
