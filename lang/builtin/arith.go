package builtin

import (
	"errors"

	"github.com/zbelial/rune/lang/types"
)

func init() {
	defSubr("+", types.FnArgs{Rest: true}, add)
	defSubr("-", types.FnArgs{Required: 1, Rest: true}, sub)
	defSubr("*", types.FnArgs{Rest: true}, mul)
	defSubr("/", types.FnArgs{Required: 1, Rest: true}, div)
	defSubr("1+", types.FnArgs{Required: 1}, add1)
	defSubr("1-", types.FnArgs{Required: 1}, sub1)
	defSubr(">", types.FnArgs{Required: 2}, compareFn(func(c int) bool { return c > 0 }))
	defSubr("<", types.FnArgs{Required: 2}, compareFn(func(c int) bool { return c < 0 }))
	defSubr(">=", types.FnArgs{Required: 2}, compareFn(func(c int) bool { return c >= 0 }))
	defSubr("<=", types.FnArgs{Required: 2}, compareFn(func(c int) bool { return c <= 0 }))
	defSubr("=", types.FnArgs{Required: 2}, compareFn(func(c int) bool { return c == 0 }))
}

var errDivideByZero = errors.New("arithmetic error: division by zero")

// A number accumulates arithmetic over mixed int and float operands.
// Integer arithmetic stays exact until a float operand switches the
// accumulator to float.
type number struct {
	i  int64
	f  float64
	fl bool
}

func asNumber(v types.Value) (number, error) {
	switch n := v.(type) {
	case types.Int:
		return number{i: int64(n)}, nil
	case types.Float:
		return number{f: float64(n), fl: true}, nil
	}
	return number{}, types.TypeError{Expected: types.TagInt, Actual: types.TagOf(v)}
}

func (n number) value() types.Value {
	if n.fl {
		return types.Float(n.f)
	}
	return types.Int(n.i)
}

func (n number) widen() float64 {
	if n.fl {
		return n.f
	}
	return float64(n.i)
}

func (n number) combine(m number, ints func(int64, int64) int64, floats func(float64, float64) float64) number {
	if n.fl || m.fl {
		return number{f: floats(n.widen(), m.widen()), fl: true}
	}
	return number{i: ints(n.i, m.i)}
}

func fold(args []types.Value, init number, ints func(int64, int64) int64, floats func(float64, float64) float64) (types.Value, error) {
	acc := init
	for _, arg := range args {
		n, err := asNumber(arg)
		if err != nil {
			return nil, err
		}
		acc = acc.combine(n, ints, floats)
	}
	return acc.value(), nil
}

func add(args []types.Value, _ types.Env) (types.Value, error) {
	return fold(args, number{},
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

func mul(args []types.Value, _ types.Env) (types.Value, error) {
	return fold(args, number{i: 1},
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

func sub(args []types.Value, _ types.Env) (types.Value, error) {
	first, err := asNumber(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return first.combine(number{i: -1},
			func(a, b int64) int64 { return a * b },
			func(a, b float64) float64 { return a * b }).value(), nil
	}
	return fold(args[1:], first,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
}

func div(args []types.Value, _ types.Env) (types.Value, error) {
	acc, err := asNumber(args[0])
	if err != nil {
		return nil, err
	}
	divisors := args[1:]
	if len(divisors) == 0 {
		// (/ x) is (/ 1 x)
		acc, divisors = number{i: 1}, args
	}
	for _, arg := range divisors {
		n, err := asNumber(arg)
		if err != nil {
			return nil, err
		}
		if !n.fl && n.i == 0 {
			return nil, errDivideByZero
		}
		acc = acc.combine(n,
			func(a, b int64) int64 { return a / b },
			func(a, b float64) float64 { return a / b })
	}
	return acc.value(), nil
}

func add1(args []types.Value, _ types.Env) (types.Value, error) {
	return incr(args[0], 1)
}

func sub1(args []types.Value, _ types.Env) (types.Value, error) {
	return incr(args[0], -1)
}

func incr(v types.Value, by int64) (types.Value, error) {
	n, err := asNumber(v)
	if err != nil {
		return nil, err
	}
	if n.fl {
		return types.Float(n.f + float64(by)), nil
	}
	return types.Int(n.i + by), nil
}

func compareFn(ok func(int) bool) types.BuiltinFunc {
	return func(args []types.Value, _ types.Env) (types.Value, error) {
		a, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(args[1])
		if err != nil {
			return nil, err
		}
		var c int
		switch x, y := a.widen(), b.widen(); {
		case x > y:
			c = 1
		case x < y:
			c = -1
		}
		if ok(c) {
			return types.True, nil
		}
		return types.Nil, nil
	}
}
