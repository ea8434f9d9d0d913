// internal/play/play.go
//
// Turn-loop state machine driving one session of the game.
// Responsibilities:
//   - Run a single stage: render, check completion, dispatch one
//     validated player decision, repeat until the stage completes.
//   - Run the whole catalog in order, with a completion prompt between
//     stages and special handling for the final one.
//   - Own the reset backup: a deep clone of the game taken at stage
//     start, so reset swaps in a full fresh value rather than patching
//     the live one.
//
// The UI is an interface so tests can script decisions; the tcell
// implementation lives in internal/tui.

package play

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/mkaen/kindstack/internal/game"
	"github.com/mkaen/kindstack/internal/stages"
)

// Action is a menu decision from the player.
type Action int

const (
	ActionMove Action = iota
	ActionUndo
	ActionReset
	ActionHelp
	ActionQuit
)

// Decision is one validated player input: either a stack-to-stack move
// (Action == ActionMove, with From/To set) or a menu action. The UI
// guarantees From and To reference existing stacks before returning.
type Decision struct {
	Action Action
	From   int
	To     int
}

// Outcome tells the UI what the previous decision did, for the status
// line. It never affects game state.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeMoved
	OutcomeRejected
	OutcomeUndone
	OutcomeNothingToUndo
	OutcomeReset
)

// UI is the render + input collaborator consumed by the driver.
type UI interface {
	// Render draws the current game state. The outcome describes the
	// decision handled just before this render.
	Render(g *game.Game, last Outcome)

	// ReadDecision blocks until the player produces one validated
	// decision. Stack indices in a returned move are in range.
	ReadDecision(g *game.Game) (Decision, error)

	// ShowHelp displays the help screen and blocks until dismissed.
	ShowHelp()

	// StageComplete shows the stage completion prompt; last marks the
	// final stage of the session.
	StageComplete(g *game.Game, last bool) error
}

// ErrQuit reports that the player ended the session from the menu.
var ErrQuit = errors.New("player quit")

// RunStage plays one stage to completion. The passed game is mutated in
// place; reset replaces its value with a clone taken on entry.
func RunStage(g *game.Game, ui UI) error {
	backup := g.Clone()
	last := OutcomeNone
	for {
		ui.Render(g, last)
		if g.Complete() {
			log.Info().Str("stage", g.Name()).Int("turns", g.Turn()).Msg("stage complete")
			return nil
		}
		d, err := ui.ReadDecision(g)
		if err != nil {
			return err
		}
		switch d.Action {
		case ActionMove:
			if g.MoveLegally(d.From, d.To) {
				last = OutcomeMoved
				log.Debug().Int("from", d.From).Int("to", d.To).Int("turn", g.Turn()).Msg("move")
			} else {
				last = OutcomeRejected
				log.Debug().Int("from", d.From).Int("to", d.To).Msg("move rejected")
			}
		case ActionUndo:
			if g.Undo() {
				last = OutcomeUndone
			} else {
				last = OutcomeNothingToUndo
			}
		case ActionReset:
			*g = *backup.Clone()
			last = OutcomeReset
			log.Debug().Str("stage", g.Name()).Msg("stage reset")
		case ActionHelp:
			ui.ShowHelp()
			last = OutcomeNone
		case ActionQuit:
			return ErrQuit
		}
	}
}

// Run plays the whole catalog in order. Returns nil when every stage
// has been completed, ErrQuit when the player left early.
func Run(catalog []stages.Stage, ui UI) error {
	for i, s := range catalog {
		g := s.NewGame()
		log.Info().Str("stage", g.Name()).Int("index", i).Msg("stage start")
		if err := RunStage(g, ui); err != nil {
			return err
		}
		if err := ui.StageComplete(g, i == len(catalog)-1); err != nil {
			return err
		}
	}
	return nil
}
