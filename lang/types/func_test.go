package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgSpecRoundTrip(t *testing.T) {
	for _, spec := range []int64{0, 257, 513, 128, 771} {
		args, err := ParseArgSpec(spec)
		require.NoError(t, err, "spec %d", spec)
		assert.Equal(t, spec, args.ArgSpec(), "spec %d", spec)
	}

	for _, spec := range []int64{12345, 1, 0xFFFF, -1, 0x8000} {
		_, err := ParseArgSpec(spec)
		assert.Error(t, err, "spec %d", spec)
	}
}

// Every decodable spec must encode back to itself, and every encodable
// FnArgs must survive a round trip.
func TestArgSpecExhaustive(t *testing.T) {
	for spec := int64(0); spec <= 0x7FFF; spec++ {
		args, err := ParseArgSpec(spec)
		if err != nil {
			continue
		}
		assert.Equal(t, spec, args.ArgSpec(), "spec %d", spec)
	}

	for required := uint16(0); required <= 0x7F; required++ {
		for optional := uint16(0); optional <= 0x7F-required; optional++ {
			for _, rest := range []bool{false, true} {
				args := FnArgs{Required: required, Optional: optional, Rest: rest}
				got, err := ParseArgSpec(args.ArgSpec())
				require.NoError(t, err)
				assert.Equal(t, args, got)
			}
		}
	}
}

func TestCountFill(t *testing.T) {
	args := FnArgs{Required: 3, Optional: 2}

	fill, err := args.CountFill(4)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), fill)

	fill, err = args.CountFill(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), fill)

	_, err = args.CountFill(2)
	assert.Equal(t, ArgCountError{Expected: 3, Actual: 2}, err)

	_, err = args.CountFill(6)
	assert.Equal(t, ArgCountError{Expected: 5, Actual: 6}, err)

	args.Rest = true
	fill, err = args.CountFill(9)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), fill)
}

func TestByteFnIndex(t *testing.T) {
	fn := &ByteFn{
		Args:      FnArgs{Required: 2, Optional: 1},
		Code:      []byte{1, 2, 3},
		Constants: []Value{Int(42)},
		Depth:     5,
	}

	v, ok := fn.Index(0)
	require.True(t, ok)
	assert.Equal(t, Int(fn.Args.ArgSpec()), v)

	v, ok = fn.Index(1)
	require.True(t, ok)
	assert.Equal(t, String("\x01\x02\x03"), v)

	v, ok = fn.Index(2)
	require.True(t, ok)
	assert.Equal(t, NewVector([]Value{Int(42)}), v)

	v, ok = fn.Index(3)
	require.True(t, ok)
	assert.Equal(t, Int(5), v)

	_, ok = fn.Index(4)
	assert.False(t, ok)
}

func TestCallableName(t *testing.T) {
	b := NewBuiltin("frob", FnArgs{Required: 1}, nil)
	assert.Equal(t, "frob", b.Name())
	assert.Equal(t, "#<builtin frob>", b.String())

	assert.Equal(t, "lambda", (&ByteFn{}).Name())
}
