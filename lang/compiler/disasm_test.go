package compiler_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zbelial/rune/internal/filetest"
	"github.com/zbelial/rune/lang/compiler"
	"github.com/zbelial/rune/lang/reader"
)

var testUpdateDisasmTests = flag.Bool("test.update-disasm-tests", false, "If set, updates the expected disassembly of the tests.")

// TestDisasm compiles the testdata/disasm/*.lisp files and compares the
// disassembly listing against the corresponding golden file.
func TestDisasm(t *testing.T) {
	dir := filepath.Join("testdata", "disasm")
	for _, fi := range filetest.SourceFiles(t, dir, ".lisp") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			require.NoError(t, err)

			obj, err := reader.Read(string(b))
			require.NoError(t, err)
			fn, err := compiler.Compile(obj)
			require.NoError(t, err)

			filetest.DiffOutput(t, fi, compiler.Disasm(fn), dir, testUpdateDisasmTests)
		})
	}
}
