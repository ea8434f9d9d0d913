// internal/tui/tui.go
//
// Terminal UI for kindstack, built on tcell.
// Responsibilities:
//   - Render the stacks as numbered colored columns, with a status
//     line and a menu bar.
//   - Turn key events into validated play.Decision values: digit keys
//     pick source then destination (Esc cancels a pending source),
//     letters drive the menu. Stack indices are checked against the
//     game before a move decision is returned.
//   - Help overlay and per-stage completion prompt.
//
// Environment variables:
//   KINDSTACK_ASCII=1  plain letters instead of colored cells
//   NO_COLOR=1         monochrome output

package tui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/mkaen/kindstack/internal/game"
	"github.com/mkaen/kindstack/internal/play"
)

// kindPalette cycles per kind letter. Chosen for legibility on both
// dark and light terminals.
var kindPalette = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorBlue,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorOrange,
	tcell.ColorLime,
}

// TUI implements play.UI on a tcell screen.
type TUI struct {
	screen  tcell.Screen
	ascii   bool
	mono    bool
	pending int // source stack picked but no destination yet; -1 when idle
}

// New creates and initializes a TUI on a real terminal screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an already-initialized screen. Tests pass a
// tcell simulation screen here.
func NewWithScreen(s tcell.Screen) *TUI {
	s.SetStyle(tcell.StyleDefault)
	return &TUI{
		screen:  s,
		ascii:   os.Getenv("KINDSTACK_ASCII") != "",
		mono:    os.Getenv("NO_COLOR") != "",
		pending: -1,
	}
}

// Close releases the terminal.
func (t *TUI) Close() {
	t.screen.Fini()
}

// Render draws the game with a status message for the last outcome.
func (t *TUI) Render(g *game.Game, last play.Outcome) {
	t.draw(g, statusFor(last))
}

// statusFor translates a driver outcome into the status line.
func statusFor(o play.Outcome) string {
	switch o {
	case play.OutcomeMoved:
		return "moved"
	case play.OutcomeRejected:
		return "illegal move"
	case play.OutcomeUndone:
		return "undone"
	case play.OutcomeNothingToUndo:
		return "nothing to undo"
	case play.OutcomeReset:
		return "stage reset"
	}
	return ""
}

// ReadDecision blocks on key events until a full decision is formed.
// Digit keys are validated against the stack count before they count
// as a selection.
func (t *TUI) ReadDecision(g *game.Game) (play.Decision, error) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			t.draw(g, "")
		case *tcell.EventKey:
			if d, ok := t.handleKey(g, ev); ok {
				return d, nil
			}
		}
	}
}

// handleKey maps one key event to a decision, or updates the pending
// source selection and reports that no decision is ready yet.
func (t *TUI) handleKey(g *game.Game, ev *tcell.EventKey) (play.Decision, bool) {
	if ev.Key() == tcell.KeyCtrlC {
		return play.Decision{Action: play.ActionQuit}, true
	}
	if ev.Key() == tcell.KeyEscape {
		t.pending = -1
		t.draw(g, "selection cleared")
		return play.Decision{}, false
	}
	if ev.Key() != tcell.KeyRune {
		return play.Decision{}, false
	}
	r := ev.Rune()
	switch {
	case r >= '1' && r <= '9':
		idx := int(r - '1')
		if idx >= g.NumStacks() {
			t.draw(g, fmt.Sprintf("no stack %c", r))
			return play.Decision{}, false
		}
		if t.pending < 0 {
			t.pending = idx
			t.draw(g, fmt.Sprintf("moving from %c to ...", r))
			return play.Decision{}, false
		}
		from := t.pending
		t.pending = -1
		return play.Decision{Action: play.ActionMove, From: from, To: idx}, true
	case r == 'u':
		return play.Decision{Action: play.ActionUndo}, true
	case r == 'r':
		return play.Decision{Action: play.ActionReset}, true
	case r == '?' || r == 'h':
		return play.Decision{Action: play.ActionHelp}, true
	case r == 'q':
		return play.Decision{Action: play.ActionQuit}, true
	}
	return play.Decision{}, false
}

// ShowHelp displays the help overlay until any key is pressed.
func (t *TUI) ShowHelp() {
	t.screen.Clear()
	lines := []string{
		"kindstack — consolidate every kind onto a single stack",
		"",
		"A move takes the whole top run of one kind and drops it on",
		"another stack. The destination must show the same kind on top",
		"(or be empty) and have room for the entire run.",
		"",
		"  1-9   pick source, then destination",
		"  Esc   cancel a pending source",
		"  u     undo the last move",
		"  r     reset the stage",
		"  ?     this help",
		"  q     quit",
		"",
		"press any key to continue",
	}
	for i, l := range lines {
		t.drawText(2, 1+i, l, tcell.StyleDefault)
	}
	t.screen.Show()
	t.waitForKey()
}

// StageComplete shows the completion prompt and waits for a key.
func (t *TUI) StageComplete(g *game.Game, last bool) error {
	msg := fmt.Sprintf("\"%s\" complete in %d turns — press any key for the next stage", g.Name(), g.Turn())
	if last {
		msg = fmt.Sprintf("\"%s\" complete in %d turns — that was the last stage, well played!", g.Name(), g.Turn())
	}
	t.draw(g, msg)
	t.waitForKey()
	return nil
}

// waitForKey swallows events until the next key press.
func (t *TUI) waitForKey() {
	for {
		switch t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// draw renders the full frame: header, columns, footer.
func (t *TUI) draw(g *game.Game, status string) {
	t.screen.Clear()

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	t.drawText(2, 1, fmt.Sprintf("%s   turn %d", g.Name(), g.Turn()), bold)

	// Columns grow upward from a shared baseline; every stack's well
	// is drawn to its full capacity.
	const (
		left  = 2
		wellW = 4
		top   = 3
	)
	maxCap := 0
	for i := 0; i < g.NumStacks(); i++ {
		if c := g.StackAt(i).Capacity(); c > maxCap {
			maxCap = c
		}
	}
	base := top + maxCap

	for i := 0; i < g.NumStacks(); i++ {
		st := g.StackAt(i)
		x := left + i*wellW
		for lvl := 0; lvl < st.Capacity(); lvl++ {
			y := base - 1 - lvl
			if lvl < st.Len() {
				t.drawUnit(x, y, st.Unit(lvl))
			} else {
				t.drawText(x, y, " . ", dim)
			}
		}
		numStyle := tcell.StyleDefault
		if i == t.pending {
			numStyle = numStyle.Reverse(true)
		}
		t.drawText(x, base, fmt.Sprintf(" %d ", i+1), numStyle)
	}

	t.drawText(2, base+2, status, tcell.StyleDefault)
	t.drawText(2, base+4, "1-9 move   u undo   r reset   ? help   q quit", dim)
	t.screen.Show()
}

// drawUnit renders one unit cell in the kind's color.
func (t *TUI) drawUnit(x, y int, k game.Kind) {
	style := tcell.StyleDefault
	if !t.mono {
		c := kindPalette[int(k-'A')%len(kindPalette)]
		if t.ascii {
			style = style.Foreground(c)
		} else {
			style = style.Background(c).Foreground(tcell.ColorBlack)
		}
	}
	t.drawText(x, y, fmt.Sprintf("[%s]", k), style)
}

// drawText writes a string starting at (x, y).
func (t *TUI) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
