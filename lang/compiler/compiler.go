package compiler

import (
	"math"

	"github.com/zbelial/rune/lang/types"
)

// Compile translates a single form into a compiled function whose body
// evaluates the form and returns its value. On error, no partial code or
// constants survive.
func Compile(obj types.Value) (*types.ByteFn, error) {
	return compileFuncBody([]types.Value{obj}, nil, types.FnArgs{})
}

// A fcomp holds the compiler state for one function body: the instruction
// buffer, the constant pool and the model of the runtime value stack.
//
// vars models the evaluation stack as it will exist while the compiled
// body runs: one entry per stack slot, nil for an anonymous intermediate
// and a symbol for a slot bound to a named local. The model must stay
// aligned with the runtime stack at every emission; a deviation silently
// miscompiles later stack references.
type fcomp struct {
	code   codeBuf
	consts constVec
	vars   []*types.Symbol
	depth  int
}

func compileFuncBody(forms []types.Value, vars []*types.Symbol, args types.FnArgs) (*types.ByteFn, error) {
	fc := &fcomp{vars: vars, depth: len(vars)}
	if err := fc.implicitProgn(forms); err != nil {
		return nil, err
	}
	fc.code.push(Ret)
	fc.vars = fc.vars[:0]
	return &types.ByteFn{
		Args:      args,
		Code:      fc.code.b,
		Constants: fc.consts.vals,
		Depth:     fc.depth,
	}, nil
}

// defaultFn is the compiled form of a lambda with no parameters and no
// body: push nil, return.
func defaultFn() *types.ByteFn {
	return &types.ByteFn{
		Code:      []byte{byte(Constant0), byte(Ret)},
		Constants: []types.Value{types.Nil},
		Depth:     1,
	}
}

func (fc *fcomp) pushVar(sym *types.Symbol) {
	fc.vars = append(fc.vars, sym)
	if len(fc.vars) > fc.depth {
		fc.depth = len(fc.vars)
	}
}

func (fc *fcomp) popVar() {
	fc.vars = fc.vars[:len(fc.vars)-1]
}

// addConst emits a constant push, with the new stack slot optionally bound
// to a symbol.
func (fc *fcomp) addConst(obj types.Value, bind *types.Symbol) error {
	idx, err := fc.consts.insert(obj)
	if err != nil {
		return err
	}
	fc.pushVar(bind)
	fc.code.emitIndexed(Constant0, idx)
	return nil
}

// stackRef emits a duplication of the model slot at index idx, rebinding
// the copy to sym so that the closest binding keeps winning.
func (fc *fcomp) stackRef(idx int, sym *types.Symbol) error {
	d := len(fc.vars) - idx - 1
	if d > math.MaxUint16 {
		return ErrStackSizeOverflow
	}
	fc.pushVar(sym)
	fc.code.emitIndexed(StackRef0, uint16(d))
	return nil
}

// stackSet emits a pop-and-overwrite of the model slot at index idx.
func (fc *fcomp) stackSet(idx int) error {
	d := len(fc.vars) - idx - 1
	if d > math.MaxUint16 {
		return ErrStackSizeOverflow
	}
	fc.popVar()
	fc.code.emitIndexed(StackSet0, uint16(d))
	return nil
}

func (fc *fcomp) discard() {
	fc.code.push(Discard)
	fc.popVar()
}

func (fc *fcomp) duplicate() {
	fc.code.push(Duplicate)
	fc.pushVar(nil)
}

// rposition returns the index of the topmost model slot bound to sym, or
// -1 if the symbol has no stack binding in scope.
func (fc *fcomp) rposition(sym *types.Symbol) int {
	for i := len(fc.vars) - 1; i >= 0; i-- {
		if fc.vars[i] == sym {
			return i
		}
	}
	return -1
}

func (fc *fcomp) compileForm(obj types.Value) error {
	switch o := obj.(type) {
	case *types.Cons:
		return fc.dispatchSpecialForm(o)
	case *types.Symbol:
		return fc.variableReference(o)
	}
	return fc.addConst(obj, nil)
}

func (fc *fcomp) dispatchSpecialForm(cons *types.Cons) error {
	sym, ok := cons.Car.(*types.Symbol)
	if !ok {
		return types.TypeError{Expected: types.TagSymbol, Actual: types.TagOf(cons.Car)}
	}
	switch sym.Name() {
	case "lambda":
		return fc.compileLambda(cons.Cdr)
	case "quote":
		return fc.quote(cons.Cdr)
	case "progn":
		return fc.progn(cons.Cdr)
	case "setq":
		return fc.setq(cons.Cdr)
	case "let":
		return fc.letForm(cons.Cdr)
	case "if":
		return fc.compileConditional(cons.Cdr)
	case "while":
		return fc.compileWhile(cons.Cdr)
	}
	return fc.compileFuncall(cons)
}

// variableReference resolves a symbol against the stack bindings in scope,
// closest first, and falls back to a dynamic variable reference through
// the constant pool.
func (fc *fcomp) variableReference(sym *types.Symbol) error {
	if idx := fc.rposition(sym); idx >= 0 {
		return fc.stackRef(idx, sym)
	}
	idx, err := fc.consts.insert(sym)
	if err != nil {
		return err
	}
	fc.pushVar(nil)
	fc.code.emitIndexed(VarRef0, idx)
	return nil
}

func (fc *fcomp) quote(value types.Value) error {
	list, err := types.ArgElems(value)
	if err != nil {
		return err
	}
	if len(list) != 1 {
		return types.ArgCountError{Expected: 1, Actual: uint16(len(list))}
	}
	return fc.addConst(list[0], nil)
}

func (fc *fcomp) progn(forms types.Value) error {
	list, err := types.ArgElems(forms)
	if err != nil {
		return err
	}
	return fc.implicitProgn(list)
}

// implicitProgn compiles a body of forms so that only the last form's
// value remains.
func (fc *fcomp) implicitProgn(forms []types.Value) error {
	if len(forms) == 0 {
		return fc.addConst(types.Nil, nil)
	}
	if err := fc.compileForm(forms[0]); err != nil {
		return err
	}
	for _, form := range forms[1:] {
		fc.discard()
		if err := fc.compileForm(form); err != nil {
			return err
		}
	}
	return nil
}

func (fc *fcomp) letForm(form types.Value) error {
	prev := len(fc.vars)
	list, err := types.ArgElems(form)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return types.ArgCountError{Expected: 1, Actual: 0}
	}
	if err := fc.letBind(list[0]); err != nil {
		return err
	}
	if err := fc.implicitProgn(list[1:]); err != nil {
		return err
	}
	// The bindings go out of scope but their runtime slots are only
	// reclaimed when the frame collapses on Ret, so the model keeps the
	// slots and drops the names.
	for i := prev; i < len(fc.vars); i++ {
		fc.vars[i] = nil
	}
	return nil
}

func (fc *fcomp) letBind(obj types.Value) error {
	bindings, err := types.ListElems(obj)
	if err != nil {
		return err
	}
	for _, binding := range bindings {
		switch b := binding.(type) {
		case *types.Cons:
			if err := fc.letBindValue(b); err != nil {
				return err
			}
		case *types.Symbol:
			if err := fc.addConst(types.Nil, b); err != nil {
				return err
			}
		default:
			return types.TypeError{Expected: types.TagCons, Actual: types.TagOf(binding)}
		}
	}
	return nil
}

// letBindValue compiles a (name value) binding. The value form is compiled
// recursively and the resulting top-of-stack slot is bound to the name.
func (fc *fcomp) letBindValue(cons *types.Cons) error {
	sym, ok := cons.Car.(*types.Symbol)
	if !ok {
		return types.TypeError{Expected: types.TagSymbol, Actual: types.TagOf(cons.Car)}
	}
	list, err := types.ArgElems(cons.Cdr)
	if err != nil {
		return err
	}
	switch len(list) {
	case 0:
		return fc.addConst(types.Nil, sym)
	case 1:
		if err := fc.compileForm(list[0]); err != nil {
			return err
		}
		fc.vars[len(fc.vars)-1] = sym
		return nil
	}
	return LetValueCountError{Actual: uint16(len(list))}
}

func (fc *fcomp) setq(obj types.Value) error {
	list, err := types.ArgElems(obj)
	if err != nil {
		return err
	}
	if len(list)%2 != 0 {
		return types.ArgCountError{Expected: uint16(len(list) - 1), Actual: uint16(len(list))}
	}
	if len(list) == 0 {
		return fc.addConst(types.Nil, nil)
	}
	for i := 0; i < len(list); i += 2 {
		sym, ok := list[i].(*types.Symbol)
		if !ok {
			return types.TypeError{Expected: types.TagSymbol, Actual: types.TagOf(list[i])}
		}
		if err := fc.compileForm(list[i+1]); err != nil {
			return err
		}
		// The last assignment's value doubles as the value of the whole
		// setq form.
		if i+2 == len(list) {
			fc.duplicate()
		}
		if idx := fc.rposition(sym); idx >= 0 {
			if err := fc.stackSet(idx); err != nil {
				return err
			}
		} else {
			idx, err := fc.consts.insert(sym)
			if err != nil {
				return err
			}
			fc.popVar()
			fc.code.emitIndexed(VarSet0, idx)
		}
	}
	return nil
}

func (fc *fcomp) compileConditional(obj types.Value) error {
	list, err := types.ArgElems(obj)
	if err != nil {
		return err
	}
	switch len(list) {
	case 0, 1:
		return types.ArgCountError{Expected: 2, Actual: uint16(len(list))}
	case 2:
		if err := fc.compileForm(list[0]); err != nil {
			return err
		}
		fc.code.push(JumpNilElsePop)
		place := fc.code.pushJumpPlaceholder()
		// On fall-through the condition is popped; on the taken path the
		// condition itself is the form's value.
		fc.popVar()
		if err := fc.compileForm(list[1]); err != nil {
			return err
		}
		return fc.code.patchJump(place)
	}
	if err := fc.compileForm(list[0]); err != nil {
		return err
	}
	fc.code.push(JumpNil)
	elsePlace := fc.code.pushJumpPlaceholder()
	fc.popVar()
	if err := fc.compileForm(list[1]); err != nil {
		return err
	}
	fc.code.push(Jump)
	endPlace := fc.code.pushJumpPlaceholder()
	if err := fc.code.patchJump(elsePlace); err != nil {
		return err
	}
	// The branches are alternatives: only one of them contributes the
	// form's stack slot, so the then-branch entry is dropped before the
	// else branch is modelled.
	fc.popVar()
	if err := fc.implicitProgn(list[2:]); err != nil {
		return err
	}
	return fc.code.patchJump(endPlace)
}

// compileWhile compiles (while test body...). The test runs at the head of
// the loop; when it yields nil the loop exits keeping that nil as the
// value of the whole form.
func (fc *fcomp) compileWhile(obj types.Value) error {
	list, err := types.ArgElems(obj)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return types.ArgCountError{Expected: 1, Actual: 0}
	}
	head := len(fc.code.b)
	if err := fc.compileForm(list[0]); err != nil {
		return err
	}
	fc.code.push(JumpNilElsePop)
	exit := fc.code.pushJumpPlaceholder()
	fc.popVar()
	if err := fc.implicitProgn(list[1:]); err != nil {
		return err
	}
	fc.discard()
	fc.code.push(Jump)
	if err := fc.code.pushBackJump(head); err != nil {
		return err
	}
	if err := fc.code.patchJump(exit); err != nil {
		return err
	}
	fc.pushVar(nil)
	return nil
}

func (fc *fcomp) compileLambda(obj types.Value) error {
	list, err := types.ArgElems(obj)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fc.addConst(defaultFn(), nil)
	}
	params, err := types.ArgElems(list[0])
	if err != nil {
		return err
	}
	vars := make([]*types.Symbol, len(params))
	for i, p := range params {
		sym, ok := p.(*types.Symbol)
		if !ok {
			return types.TypeError{Expected: types.TagSymbol, Actual: types.TagOf(p)}
		}
		vars[i] = sym
	}
	body := list[1:]
	if len(body) == 0 {
		return fc.addConst(defaultFn(), nil)
	}
	// The body compiles in a fresh state seeded only with the parameters:
	// lambdas do not close over enclosing stack bindings.
	fn, err := compileFuncBody(body, vars, types.FnArgs{Required: uint16(len(params))})
	if err != nil {
		return err
	}
	return fc.addConst(fn, nil)
}

// compileFuncall compiles a call form: the callee symbol as a constant,
// the arguments left to right, then the call instruction. Resolution of
// the symbol's function slot happens at call time.
func (fc *fcomp) compileFuncall(cons *types.Cons) error {
	if err := fc.addConst(cons.Car, nil); err != nil {
		return err
	}
	prev := len(fc.vars)
	list, err := types.ArgElems(cons.Cdr)
	if err != nil {
		return err
	}
	for _, form := range list {
		if err := fc.compileForm(form); err != nil {
			return err
		}
	}
	fc.code.emitIndexed(Call0, uint16(len(list)))
	// The callee slot becomes the result slot.
	fc.vars = fc.vars[:prev]
	return nil
}
