package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zbelial/rune/lang/types"
)

func TestStack(t *testing.T) {
	var s stack
	s.push(types.Int(1))
	s.push(types.Int(2))
	s.push(types.Int(3))

	assert.Equal(t, types.Int(3), s.top())
	assert.Equal(t, types.Int(3), s.refAt(0))
	assert.Equal(t, types.Int(1), s.refAt(2))

	s.pushRef(2)
	assert.Equal(t, types.Int(1), s.top())
	assert.Len(t, s, 4)

	// pop the copy back into the slot at depth 2
	s.setRef(2)
	assert.Equal(t, stack{types.Int(1), types.Int(1), types.Int(3)}, s)

	assert.Equal(t, []types.Value{types.Int(1), types.Int(3)}, s.takeSlice(2))
	assert.Empty(t, s.takeSlice(0))

	assert.Equal(t, types.Int(3), s.pop())
	s.truncate(1)
	assert.Equal(t, stack{types.Int(1)}, s)
}
