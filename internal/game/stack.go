// internal/game/stack.go
//
// Stack: a capacity-bounded vertical pile of units.
// Responsibilities:
//   - Top inspection (empty sentinel when the stack is empty).
//   - Vacancy accounting (capacity minus current length).
//   - Extraction and re-insertion of the maximal top run of one kind,
//     which is the unit of transfer for every move in the game.
//
// Stacks are owned exclusively by a Game and never reference each other.

package game

// Stack is an ordered pile of units; the top is the last-inserted
// position. Length never exceeds capacity.
type Stack struct {
	units    []Kind
	capacity int
}

// NewStack constructs an empty stack with the given capacity and the
// given initial units, bottom first. Callers must not exceed capacity;
// the stages package validates layouts before they reach the engine.
func NewStack(capacity int, units ...Kind) Stack {
	s := Stack{units: make([]Kind, 0, capacity), capacity: capacity}
	s.units = append(s.units, units...)
	return s
}

// Len returns the current number of units.
func (s *Stack) Len() int { return len(s.units) }

// Capacity returns the fixed maximum number of units.
func (s *Stack) Capacity() int { return s.capacity }

// Top returns the kind of the topmost unit, or KindNone when empty.
func (s *Stack) Top() Kind {
	if len(s.units) == 0 {
		return KindNone
	}
	return s.units[len(s.units)-1]
}

// Vacancy returns the remaining room: capacity minus length.
func (s *Stack) Vacancy() int { return s.capacity - len(s.units) }

// Unit returns the unit at position i, bottom first. Used by renderers.
func (s *Stack) Unit(i int) Kind { return s.units[i] }

// PopRun removes and returns the maximal top run of the current top
// kind. A negative limit means uncapped; otherwise at most limit units
// are removed. Popping an empty stack returns an empty run.
func (s *Stack) PopRun(limit int) []Kind {
	top := s.Top()
	if top.None() || limit == 0 {
		return nil
	}
	n := 0
	for n < len(s.units) && s.units[len(s.units)-1-n] == top {
		n++
	}
	if limit > 0 && n > limit {
		n = limit
	}
	run := make([]Kind, n)
	copy(run, s.units[len(s.units)-n:])
	s.units = s.units[:len(s.units)-n]
	return run
}

// PushRun appends a run of units onto the top. The caller is
// responsible for having checked vacancy; PushRun trusts its input
// because every run it receives was just popped from some stack.
func (s *Stack) PushRun(run []Kind) {
	s.units = append(s.units, run...)
}

// Clone returns a fully independent copy.
func (s *Stack) Clone() Stack {
	c := Stack{units: make([]Kind, len(s.units), s.capacity), capacity: s.capacity}
	copy(c.units, s.units)
	return c
}
