// internal/game/types.go
//
// Core type definitions for the kindstack engine.
// Defines:
//   - Kind: identifier for a unit type, with an empty sentinel.
//   - Entry: one completed legal move, as recorded in the undo ledger.

package game

// Kind identifies a unit type. Kinds are ordered and compared by their
// rune value; stage files use the letters 'A'-'Z'. The zero value is
// KindNone, the "no unit" sentinel returned when an empty stack's top
// is inspected.
type Kind rune

// KindNone is the empty sentinel: no unit.
const KindNone Kind = 0

// None reports whether k is the empty sentinel.
func (k Kind) None() bool { return k == KindNone }

// String renders the kind's letter, or "." for the sentinel.
func (k Kind) String() string {
	if k.None() {
		return "."
	}
	return string(rune(k))
}

// Entry is an immutable record of one accepted player move. Entries are
// appended to the Game ledger and consumed (popped) by undo.
type Entry struct {
	From     int  // source stack index
	To       int  // destination stack index
	Kind     Kind // kind of the units moved
	Quantity int  // how many units moved
}
