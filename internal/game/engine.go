// internal/game/engine.go
//
// Core engine for a single kindstack stage.
// Responsibilities:
//   - Construct a Game from an initial stack layout, deriving the
//     per-kind population totals and the kind→bit-index assignment.
//   - Check move legality (kind matching + vacancy).
//   - Execute moves, maintaining the completion bitmask, the turn
//     counter and the undo ledger.
//   - Undo the most recent player move by replaying it in reverse.
//
// Notes:
//   - The engine is pure: no I/O, no logging, no errors. An illegal
//     move is a normal outcome reported as false, and state is left
//     exactly as before the attempt.
//   - Stacks are referenced by index; index validity is the input
//     collaborator's contract. Out-of-range indices are rejected like
//     any other illegal move rather than panicking.

package game

import "sort"

// Game holds the complete state of one stage in play.
type Game struct {
	stacks       []Stack
	unitsPerKind map[Kind]int // total population per kind, fixed at construction
	kindIndex    map[Kind]int // kind → bit position, fixed at construction
	kindsStatus  uint64       // bit k set iff kind with index k is fully consolidated
	turn         int          // 1-based; incremented per productive move
	ledger       []Entry
	name         string
}

// New constructs a Game from an initial layout. The per-kind totals and
// bit indices are derived here once and never change afterwards; bit
// indices follow the kinds' natural order, numbered from 0.
func New(name string, stacks []Stack) *Game {
	g := &Game{
		stacks: stacks,
		turn:   1,
		name:   name,
	}
	g.unitsPerKind = countKinds(stacks)
	g.kindIndex = indexKinds(g.unitsPerKind)
	return g
}

// countKinds totals each kind's units across all stacks.
func countKinds(stacks []Stack) map[Kind]int {
	totals := make(map[Kind]int)
	for i := range stacks {
		for _, u := range stacks[i].units {
			totals[u]++
		}
	}
	return totals
}

// indexKinds assigns each kind a stable bit position by sorting kinds
// in their natural order and numbering from 0.
func indexKinds(totals map[Kind]int) map[Kind]int {
	kinds := make([]Kind, 0, len(totals))
	for k := range totals {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	idx := make(map[Kind]int, len(kinds))
	for i, k := range kinds {
		idx[k] = i
	}
	return idx
}

// Clone returns an independent copy of the game as it would be freshly
// constructed from the current layout: stacks deep-copied, derived maps
// recomputed, turn back to 1, ledger empty. The stage driver takes one
// at stage start to implement reset.
func (g *Game) Clone() *Game {
	stacks := make([]Stack, len(g.stacks))
	for i := range g.stacks {
		stacks[i] = g.stacks[i].Clone()
	}
	return New(g.name, stacks)
}

// Name returns the stage's display name.
func (g *Game) Name() string { return g.name }

// Turn returns the 1-based turn counter.
func (g *Game) Turn() int { return g.turn }

// NumStacks returns the number of stacks.
func (g *Game) NumStacks() int { return len(g.stacks) }

// StackAt returns the stack at index i for read-only inspection by
// renderers. Mutation happens only through moves.
func (g *Game) StackAt(i int) *Stack { return &g.stacks[i] }

// LedgerLen returns the number of undoable moves.
func (g *Game) LedgerLen() int { return len(g.ledger) }

// UnitsOf returns the fixed total population of kind k.
func (g *Game) UnitsOf(k Kind) int { return g.unitsPerKind[k] }

// Complete reports whether every kind is fully consolidated onto a
// single stack, i.e. every bit of the status mask is set.
func (g *Game) Complete() bool {
	return g.kindsStatus == (uint64(1)<<len(g.unitsPerKind))-1
}

// moveIsLegal reports whether a popped run may land on dst. Legal iff
// the run's kind matches dst's top (with two escape clauses: empty run,
// empty destination) and the run fits dst's vacancy.
func (g *Game) moveIsLegal(run []Kind, dst *Stack) bool {
	runKind := KindNone
	if len(run) > 0 {
		runKind = run[0]
	}
	topsMatch := runKind == dst.Top() || runKind.None() || dst.Top().None()
	thereIsRoom := len(run) <= dst.Vacancy()
	return topsMatch && thereIsRoom
}

// updateKindStatus recomputes the status bit for the kind currently on
// top of stack i. The maximal top run is extracted and immediately
// restored; the bit is set, then cleared again unless the run holds the
// kind's entire population.
func (g *Game) updateKindStatus(i int) {
	run := g.stacks[i].PopRun(-1)
	if len(run) > 0 {
		k := run[0]
		bit := uint64(1) << g.kindIndex[k]
		g.kindsStatus |= bit
		if len(run) != g.unitsPerKind[k] {
			g.kindsStatus &^= bit
		}
	}
	g.stacks[i].PushRun(run)
}

// moveUnits relocates the maximal top run of stack from onto stack to.
// A negative limit means a normal player move: uncapped extraction,
// legality checked, ledger entry appended. A non-negative limit marks a
// forced move (the undo path): extraction capped at limit, legality
// skipped, never ledged.
func (g *Game) moveUnits(from, to, limit int) bool {
	forced := limit >= 0
	run := g.stacks[from].PopRun(limit)
	approved := forced || g.moveIsLegal(run, &g.stacks[to])
	dest := to
	if !approved {
		dest = from
	}
	g.stacks[dest].PushRun(run)
	if !approved {
		return false
	}

	g.updateKindStatus(from)
	g.updateKindStatus(to)
	// The completing move does not consume a turn: the final count
	// reflects the productive moves before completion.
	if !g.Complete() {
		g.turn++
	}
	if !forced {
		kind := KindNone
		if len(run) > 0 {
			kind = run[0]
		}
		g.ledger = append(g.ledger, Entry{From: from, To: to, Kind: kind, Quantity: len(run)})
	}
	return true
}

// MoveLegally attempts a player move of the maximal top run of stack
// from onto stack to. Returns false and leaves all state untouched if
// the move is illegal or either index is out of range.
func (g *Game) MoveLegally(from, to int) bool {
	if from < 0 || from >= len(g.stacks) || to < 0 || to >= len(g.stacks) {
		return false
	}
	return g.moveUnits(from, to, -1)
}

// moveForcefully replays a previously accepted move without a legality
// check. Only the undo path uses it; the reverse of a once-legal move
// is always structurally valid.
func (g *Game) moveForcefully(from, to, quantity int) {
	g.moveUnits(from, to, quantity)
}

// Undo reverses the most recent player move: the ledger's last entry is
// popped permanently and replayed with source and destination swapped.
// Returns false when there is nothing to undo.
func (g *Game) Undo() bool {
	if len(g.ledger) == 0 {
		return false
	}
	e := g.ledger[len(g.ledger)-1]
	g.ledger = g.ledger[:len(g.ledger)-1]
	g.moveForcefully(e.To, e.From, e.Quantity)
	return true
}
