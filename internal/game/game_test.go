package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pagoda/internal/pubsub"
	"pagoda/registry"
)

type eventMsg = pubsub.Event[EventInfo]

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 1
	return opts
}

func countTiles(b Board) int {
	n := 0
	for _, v := range b.Cells {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestNew_StartsWithTwoTiles(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	require.Equal(t, 2, countTiles(g.State().Board))
	require.Equal(t, 0, g.State().Moves)
	require.NotEmpty(t, g.State().Session)
}

func TestNew_UnknownNamesAreRecoverable(t *testing.T) {
	opts := testOptions()
	opts.TextMethod = "klingon"
	_, err := New(opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown text method "klingon"`)
	require.Contains(t, err.Error(), "default", "error should list what is registered")

	opts = testOptions()
	opts.Moves = []string{"left", "diagonal"}
	_, err = New(opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown move "diagonal"`)
}

func TestNew_RejectsTinyBoard(t *testing.T) {
	opts := testOptions()
	opts.Size = 1
	_, err := New(opts)
	require.Error(t, err)
}

func TestGame_AdvanceSpawnsAndCounts(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	// Force a board where "left" always changes something.
	g.State().Board = boardFromRows(
		[]int{0, 2, 0, 2},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	changed, err := g.Advance("left")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, 1, g.State().Moves)
	require.Equal(t, 4, g.State().Score)
	// Merge left leaves one tile, then one spawns.
	require.Equal(t, 2, countTiles(g.State().Board))
}

func TestGame_AdvanceNoChangeSpawnsNothing(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	g.State().Board = boardFromRows(
		[]int{2, 0, 0, 0},
		[]int{4, 0, 0, 0},
		[]int{2, 0, 0, 0},
		[]int{4, 0, 0, 0},
	)

	changed, err := g.Advance("left")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, 0, g.State().Moves)
	require.Equal(t, 4, countTiles(g.State().Board))
}

func TestGame_AdvanceUnknownMove(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	_, err = g.Advance("diagonal")
	require.Error(t, err)
}

func TestGame_UndoAfterAdvance(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	g.State().Board = boardFromRows(
		[]int{2, 2, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	snapshotted := g.State().Board.Clone()

	changed, err := g.Advance("left")
	require.NoError(t, err)
	require.True(t, changed)

	require.True(t, g.Undo())
	require.Equal(t, snapshotted, g.State().Board)
	require.Equal(t, 0, g.State().Score)
}

func TestGame_WinEventPublishes(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := g.Subscribe().Subscribe(ctx)

	g.State().Board = boardFromRows(
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	changed, err := g.Advance("left")
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, g.State().Won)

	kinds := drainKinds(t, events, 2)
	require.Contains(t, kinds, EventScore)
	require.Contains(t, kinds, EventWin)
}

// alwaysEvent fires unconditionally; tests register it under throwaway names.
type alwaysEvent struct {
	registry.Entity
}

func (e *alwaysEvent) Check(*State) bool { return true }

func TestGame_LoseEventPublishes(t *testing.T) {
	// Consumers can register their own event children; the game resolves
	// them by name like any built-in.
	require.True(t, Events.SetChild("test-always", func(registry.NoArgs) Event {
		return &alwaysEvent{}
	}))
	defer Events.RemoveChild("test-always")

	opts := testOptions()
	opts.LoseEvent = "test-always"
	opts.ScoreEvent = ""
	g, err := New(opts)
	require.NoError(t, err)
	defer g.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := g.Subscribe().Subscribe(ctx)

	g.State().Board = boardFromRows(
		[]int{0, 2, 0, 2},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	changed, err := g.Advance("left")
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, g.State().Lost)

	kinds := drainKinds(t, events, 1)
	require.Contains(t, kinds, EventLose)
}

func drainKinds(t *testing.T, ch <-chan eventMsg, want int) []EventKind {
	t.Helper()
	kinds := make([]EventKind, 0, want)
	timeout := time.After(time.Second)
	for len(kinds) < want {
		select {
		case ev := <-ch:
			kinds = append(kinds, ev.Payload.Kind)
		case <-timeout:
			t.Fatalf("timed out after %d events, want %d", len(kinds), want)
		}
	}
	return kinds
}

func TestGame_HandleInput(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	g.State().Board = boardFromRows(
		[]int{0, 2, 0, 2},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	require.False(t, g.HandleInput("x"), "undecodable input is ignored")
	require.True(t, g.HandleInput("h"), "vim binding decodes to left")
	require.Equal(t, 1, g.State().Moves)
}

func TestGame_HelpAndText(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)
	defer g.Close()

	require.Contains(t, g.Help(), "# Square Merge")
	require.Equal(t, "Square Merge", g.Text("title"))
	require.Equal(t, "", g.Text("no-such-entry"))
}

func TestGame_TerseTextPack(t *testing.T) {
	opts := testOptions()
	opts.TextMethod = "terse"
	g, err := New(opts)
	require.NoError(t, err)
	defer g.Close()

	require.Equal(t, "2048", g.Text("title"))
}
