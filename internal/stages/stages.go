// internal/stages/stages.go
//
// Stage catalog for the kindstack game.
//
// Responsibilities:
//   - Load the ordered stage list from an environment-provided file or
//     fall back to the embedded default catalog.
//   - Parse and validate the plain-text stage format.
//   - Build fresh game.Game values from a stage layout on demand.
//
// Stage format (one stage per block, "#" starts a comment line):
//   stage <display name>
//   capacity <n>
//   stack <units bottom to top, letters A-Z, or "-" for empty>
//
// Environment variables:
//   STAGES_FILE=/path/to/stages.txt
//
// Constraints:
//   • capacity ≥ 1, at least two stacks per stage, at least one kind.
//   • No stack may exceed its stage's capacity.
//   • Initialization is run once (sync.Once).

package stages

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mkaen/kindstack/internal/game"
)

//go:embed default_stages.txt
var embeddedCatalog string

// Stage is one puzzle definition: an initial layout plus a display
// name. Game values are built fresh from it so a stage can be replayed.
type Stage struct {
	Name     string
	Capacity int
	Layout   [][]game.Kind // per stack, bottom first
}

// NewGame constructs an independent Game from the stage layout.
func (s Stage) NewGame() *game.Game {
	stacks := make([]game.Stack, len(s.Layout))
	for i, units := range s.Layout {
		stacks[i] = game.NewStack(s.Capacity, units...)
	}
	return game.New(s.Name, stacks)
}

var (
	initOnce   sync.Once
	catalog    []Stage
	initialErr error
)

// Init loads the stage catalog exactly once. If STAGES_FILE is set the
// catalog is read from that file, otherwise the embedded default is
// used. Returns an error if the catalog ends up empty or malformed.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv("STAGES_FILE"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				initialErr = err
				return
			}
			defer f.Close()
			catalog, initialErr = Parse(f)
			return
		}
		catalog, initialErr = Parse(strings.NewReader(embeddedCatalog))
	})
	return initialErr
}

// All returns the ordered catalog. Init must have succeeded first.
func All() []Stage { return catalog }

// Count returns the number of loaded stages.
func Count() int { return len(catalog) }

// Parse reads a stage catalog from r. Errors carry the offending line
// number.
func Parse(r io.Reader) ([]Stage, error) {
	var (
		out  []Stage
		cur  *Stage
		line int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		if err := validate(*cur); err != nil {
			return fmt.Errorf("stage %q: %w", cur.Name, err)
		}
		out = append(out, *cur)
		cur = nil
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		field, rest, _ := strings.Cut(text, " ")
		rest = strings.TrimSpace(rest)
		switch field {
		case "stage":
			if err := flush(); err != nil {
				return nil, err
			}
			cur = &Stage{Name: rest}
		case "capacity":
			if cur == nil {
				return nil, fmt.Errorf("line %d: capacity outside a stage block", line)
			}
			n, err := strconv.Atoi(rest)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("line %d: bad capacity %q", line, rest)
			}
			cur.Capacity = n
		case "stack":
			if cur == nil {
				return nil, fmt.Errorf("line %d: stack outside a stage block", line)
			}
			units, err := parseUnits(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cur.Layout = append(cur.Layout, units)
		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", line, field)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("stages: catalog is empty")
	}
	return out, nil
}

// parseUnits reads one stack spec: letters A-Z bottom to top, or "-"
// for an empty stack.
func parseUnits(s string) ([]game.Kind, error) {
	if s == "-" {
		return nil, nil
	}
	units := make([]game.Kind, 0, len(s))
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return nil, fmt.Errorf("bad unit %q in stack spec %q", r, s)
		}
		units = append(units, game.Kind(r))
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("empty stack spec; use \"-\" for an empty stack")
	}
	return units, nil
}

// validate enforces the structural constraints on a parsed stage.
func validate(s Stage) error {
	if s.Capacity < 1 {
		return fmt.Errorf("missing capacity")
	}
	if len(s.Layout) < 2 {
		return fmt.Errorf("need at least two stacks, got %d", len(s.Layout))
	}
	kinds := make(map[game.Kind]bool)
	for i, units := range s.Layout {
		if len(units) > s.Capacity {
			return fmt.Errorf("stack %d holds %d units, capacity is %d", i, len(units), s.Capacity)
		}
		for _, u := range units {
			kinds[u] = true
		}
	}
	if len(kinds) == 0 {
		return fmt.Errorf("no units in any stack")
	}
	return nil
}
