package machine

import "github.com/zbelial/rune/lang/types"

// stack is the machine's LIFO value stack. Depths count from the top:
// depth 0 is the most recently pushed slot.
type stack []types.Value

// fromEnd converts a depth to an absolute index.
func (s stack) fromEnd(i int) int { return len(s) - (i + 1) }

func (s *stack) push(v types.Value) { *s = append(*s, v) }

func (s *stack) pop() types.Value {
	n := len(*s) - 1
	v := (*s)[n]
	*s = (*s)[:n]
	return v
}

func (s stack) top() types.Value { return s[len(s)-1] }

// refAt returns the value at the given depth without popping.
func (s stack) refAt(i int) types.Value { return s[s.fromEnd(i)] }

// pushRef copies the value at the given depth to the top.
func (s *stack) pushRef(i int) { s.push(s.refAt(i)) }

// setRef pops the top value and overwrites the slot at the given depth
// with it.
func (s *stack) setRef(i int) {
	idx := s.fromEnd(i)
	(*s)[idx] = s.top()
	*s = (*s)[:len(*s)-1]
}

// takeSlice borrows the top i slots as a contiguous slice, bottom first.
func (s stack) takeSlice(i int) []types.Value { return s[s.fromEnd(i-1):] }

func (s *stack) truncate(n int) { *s = (*s)[:n] }
