package cinderbox2d

// CB2GrowableStack is a stack of node indices with a pre-sized backing array,
// used for non-recursive tree traversals. It grows by doubling if a traversal
// ever exceeds the initial capacity.
type CB2GrowableStack struct {
	entries []int
}

const cb2_stackInitialCapacity = 256

func MakeCB2GrowableStack() CB2GrowableStack {
	return CB2GrowableStack{
		entries: make([]int, 0, cb2_stackInitialCapacity),
	}
}

func (s *CB2GrowableStack) Push(value int) {
	s.entries = append(s.entries, value)
}

func (s *CB2GrowableStack) Pop() int {
	CB2Assert(len(s.entries) > 0)
	value := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return value
}

func (s *CB2GrowableStack) GetCount() int {
	return len(s.entries)
}
