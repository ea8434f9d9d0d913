package stages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaen/kindstack/internal/game"
)

func TestParseWellFormedCatalog(t *testing.T) {
	in := `
# comment
stage Warmup
capacity 3
stack AAB
stack BBA
stack -

stage Second
capacity 2
stack AB
stack BA
`
	got, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Warmup", got[0].Name)
	assert.Equal(t, 3, got[0].Capacity)
	require.Len(t, got[0].Layout, 3)
	assert.Equal(t, []game.Kind{'A', 'A', 'B'}, got[0].Layout[0])
	assert.Nil(t, got[0].Layout[2])

	assert.Equal(t, "Second", got[1].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"empty input", "", "catalog is empty"},
		{"capacity before stage", "capacity 3\n", "line 1"},
		{"stack before stage", "stack AA\n", "line 1"},
		{"bad capacity", "stage X\ncapacity nope\nstack AA\nstack -\n", "bad capacity"},
		{"bad unit letter", "stage X\ncapacity 3\nstack a1\nstack -\n", "line 3"},
		{"blank stack spec", "stage X\ncapacity 3\nstack\nstack -\n", "empty stack spec"},
		{"unknown directive", "stage X\nheight 3\n", "unknown directive"},
		{"overfull stack", "stage X\ncapacity 2\nstack AAA\nstack -\n", "capacity is 2"},
		{"single stack", "stage X\ncapacity 3\nstack AA\n", "at least two stacks"},
		{"no units anywhere", "stage X\ncapacity 3\nstack -\nstack -\n", "no units"},
		{"missing capacity", "stage X\nstack AA\nstack -\n", "missing capacity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// Init runs once per process, so exactly one test may call it; this one
// exercises the STAGES_FILE override branch.
func TestInitReadsStagesFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.txt")
	content := "stage Override\ncapacity 2\nstack AA\nstack -\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("STAGES_FILE", path)

	require.NoError(t, Init())
	require.Equal(t, 1, Count())
	assert.Equal(t, "Override", All()[0].Name)
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	got, err := Parse(strings.NewReader(embeddedCatalog))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	for _, s := range got {
		assert.NotEmpty(t, s.Name)
	}
}

func TestStageNewGameIsIndependent(t *testing.T) {
	s := Stage{
		Name:     "Warmup",
		Capacity: 3,
		Layout:   [][]game.Kind{{'A', 'A'}, {'B', 'B', 'B'}, nil},
	}
	g1 := s.NewGame()
	g2 := s.NewGame()

	assert.Equal(t, "Warmup", g1.Name())
	assert.Equal(t, 3, g1.NumStacks())
	assert.Equal(t, 2, g1.UnitsOf('A'))
	assert.Equal(t, 3, g1.UnitsOf('B'))

	require.True(t, g1.MoveLegally(1, 2))
	assert.Equal(t, 3, g2.StackAt(1).Len(), "games built from one stage must not share stacks")
}
