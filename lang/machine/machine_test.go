package machine_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zbelial/rune/lang/compiler"
	"github.com/zbelial/rune/lang/machine"
	"github.com/zbelial/rune/lang/reader"
	"github.com/zbelial/rune/lang/types"

	// make the native functions resolvable
	_ "github.com/zbelial/rune/lang/builtin"
)

func testEval(t *testing.T, src string, want types.Value) {
	t.Helper()
	obj, err := reader.Read(src)
	require.NoError(t, err)
	fn, err := compiler.Compile(obj)
	require.NoError(t, err)
	got, err := machine.Execute(fn, machine.NewEnvironment())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func testEvalErr(t *testing.T, src string, want error) {
	t.Helper()
	obj, err := reader.Read(src)
	require.NoError(t, err)
	fn, err := compiler.Compile(obj)
	require.NoError(t, err)
	_, err = machine.Execute(fn, machine.NewEnvironment())
	require.Error(t, err)
	assert.Equal(t, want, err)
}

func TestExecCompute(t *testing.T) {
	testEval(t, "7", types.Int(7))
	testEval(t, "(- 7 (- 13 (* 3 (+ 7 (+ 13 1 2)))))", types.Int(63))
	testEval(t, "(+ 1 2.5)", types.Float(3.5))
	testEval(t, "(- 8)", types.Int(-8))
	testEval(t, "(/ 12 5)", types.Int(2))
}

func TestExecLet(t *testing.T) {
	testEval(t, "(let ((foo 5) (bar 8)) (+ foo bar))", types.Int(13))
	testEval(t, "(let ((foo 5) (bar 8)) (+ 1 bar))", types.Int(9))
	testEval(t, "(let (foo) foo)", types.Nil)
	testEval(t, "(let ((a 1)) (let ((b 2)) b) a)", types.Int(1))
}

func TestExecJump(t *testing.T) {
	testEval(t, "(+ 7 (if nil 11 3))", types.Int(10))
	testEval(t, "(+ 7 (if t 11 3) 4)", types.Int(22))
	testEval(t, "(let ((foo 7) (bar t)) (+ 7 (if bar foo 3)))", types.Int(14))
	testEval(t, "(let ((foo 7) (bar nil)) (+ 7 (if bar foo 3)))", types.Int(10))
	testEval(t, "(let ((foo (+ 3 4)) (bar t)) (+ 7 (if bar foo 3)))", types.Int(14))
	testEval(t, "(if nil 11)", types.Nil)
	testEval(t, "(if t 11)", types.Int(11))
	testEval(t, "(if nil 11 3)", types.Int(3))
	testEval(t, "(if t 11 3)", types.Int(11))
}

func TestExecLoops(t *testing.T) {
	testEval(t, "(while nil)", types.Nil)
	testEval(t, "(while nil (set 'foo 7))", types.Nil)
	testEval(t, "(let ((foo t)) (while foo (setq foo nil)))", types.Nil)
	testEval(t,
		"(let ((foo 10) (bar 0)) (while (> foo 3) (setq bar (1+ bar)) (setq foo (1- foo))) bar)",
		types.Int(7))
}

func TestExecVariables(t *testing.T) {
	testEval(t, "(progn (set 'foo 5) foo)", types.Int(5))
	testEval(t, "(let ((foo 1)) (setq foo 2) foo)", types.Int(2))
	testEval(t, "(progn (setq foo 2) foo)", types.Int(2))
	testEval(t, "(progn (eval '(set 'foo 31)) foo)", types.Int(31))
}

func TestExecCall(t *testing.T) {
	testEval(t, `(progn
(defalias 'bottom (lambda (x y z) (+ x z) (* x (+ y z))))
(defalias 'middle (lambda (x y z) (+ (bottom x z y) (bottom x z y))))
(middle 7 3 13))`,
		types.Int(224))
	testEval(t, "(progn (defalias 'twice (lambda (x) (+ x x))) (twice 21))", types.Int(42))
}

func TestExecErrors(t *testing.T) {
	testEvalErr(t, "(bad-function-name)",
		machine.VoidFunctionError{Sym: types.Intern("bad-function-name")})
	testEvalErr(t, "(progn unbound-var)",
		machine.VoidVariableError{Sym: types.Intern("unbound-var")})
	testEvalErr(t, "(1+ 1 2)", types.ArgCountError{Expected: 1, Actual: 2})
	testEvalErr(t, "(/)", types.ArgCountError{Expected: 1, Actual: 0})
	testEvalErr(t, "(progn (defalias 'one-arg (lambda (x) x)) (one-arg))",
		types.ArgCountError{Expected: 1, Actual: 0})
}

var rxAssertExec = regexp.MustCompile(`(?m)^\s*;;\s*###\s*(result|fail):\s*(.+)$`)

// TestExecFiles evaluates the forms of each testdata/eval/*.lisp file in a
// shared environment. Expected results are provided as comments in the
// file:
//   - ;; ### result: <value of the last form>
//   - ;; ### fail: <error message contains this>
//
// Values can be nil, t, an integer, a float or a quoted string.
func TestExecFiles(t *testing.T) {
	dir := filepath.Join("testdata", "eval")
	des, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, de := range des {
		if de.IsDir() || filepath.Ext(de.Name()) != ".lisp" {
			continue
		}
		t.Run(de.Name(), func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join(dir, de.Name()))
			require.NoError(t, err)

			ms := rxAssertExec.FindAllStringSubmatch(string(b), -1)
			require.NotNil(t, ms, "no assertion provided")

			forms, err := reader.ReadAll(string(b))
			require.NoError(t, err)

			env := machine.NewEnvironment()
			var last types.Value
			var execErr error
			for _, form := range forms {
				fn, err := compiler.Compile(form)
				require.NoError(t, err)
				last, execErr = machine.Execute(fn, env)
				if execErr != nil {
					break
				}
			}

			for _, m := range ms {
				want := strings.TrimSpace(m[2])
				switch m[1] {
				case "fail":
					assert.ErrorContains(t, execErr, want, "result: %v", last)
				case "result":
					if assert.NoError(t, execErr) {
						assertValue(t, want, last)
					}
				}
			}
		})
	}
}

func assertValue(t *testing.T, want string, got types.Value) {
	t.Helper()
	switch {
	case want == "nil":
		assert.Equal(t, types.Nil, got)
	case want == "t":
		assert.Equal(t, types.True, got)
	default:
		if qs, err := strconv.Unquote(want); err == nil {
			assert.Equal(t, types.String(qs), got)
		} else if n, err := strconv.ParseInt(want, 10, 64); err == nil {
			assert.Equal(t, types.Int(n), got)
		} else if f, err := strconv.ParseFloat(want, 64); err == nil {
			assert.Equal(t, types.Float(f), got)
		} else {
			t.Errorf("unexpected result: want %s, got %v (%[2]T)", want, got)
		}
	}
}
