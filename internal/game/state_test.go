package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState_SpawnFillsEmptyCells(t *testing.T) {
	s := NewState(2, 0, 42)
	for i := 0; i < 4; i++ {
		require.True(t, s.Spawn())
	}
	require.False(t, s.Spawn(), "full board cannot spawn")

	for _, v := range s.Board.Cells {
		require.Contains(t, []int{2, 4}, v)
	}
}

func TestState_SpawnDeterministicPerSeed(t *testing.T) {
	a := NewState(4, 0, 7)
	b := NewState(4, 0, 7)
	for i := 0; i < 5; i++ {
		a.Spawn()
		b.Spawn()
	}
	require.Equal(t, a.Board, b.Board)
}

func TestState_UndoRestoresBoardAndScore(t *testing.T) {
	s := NewState(2, 4, 1)
	s.Board = boardFromRows(
		[]int{2, 2},
		[]int{0, 0},
	)
	before := s.Board.Clone()

	s.rememberSnapshot(before, s.Score)
	applyNamed(t, "left", s)
	require.Equal(t, 4, s.Score)

	require.True(t, s.Undo())
	require.Equal(t, before, s.Board)
	require.Equal(t, 0, s.Score)
	require.False(t, s.Undo(), "history exhausted")
}

func TestState_HistoryBoundedByMaxUndo(t *testing.T) {
	s := NewState(2, 2, 1)
	for i := 0; i < 5; i++ {
		s.rememberSnapshot(s.Board.Clone(), i)
	}
	require.Equal(t, 2, s.UndoDepth())

	// The retained snapshots are the most recent ones.
	require.True(t, s.Undo())
	require.Equal(t, 4, s.Score)
}

func TestState_MaxUndoZeroDisablesHistory(t *testing.T) {
	s := NewState(2, 0, 1)
	s.rememberSnapshot(s.Board.Clone(), 0)
	require.False(t, s.Undo())
}

func TestState_SaveLoadRoundTrip(t *testing.T) {
	s := NewState(3, 4, 9)
	s.Spawn()
	s.Spawn()
	s.Score = 24
	s.Moves = 7
	s.rememberSnapshot(s.Board.Clone(), 16)

	data, err := s.Save()
	require.NoError(t, err)

	restored := NewState(3, 4, 1)
	require.NoError(t, restored.Load(data))
	require.Equal(t, s.Session, restored.Session)
	require.Equal(t, s.Board, restored.Board)
	require.Equal(t, 24, restored.Score)
	require.Equal(t, 7, restored.Moves)
	require.Equal(t, 1, restored.UndoDepth())
}

func TestState_LoadRejectsMalformed(t *testing.T) {
	s := NewState(2, 0, 1)
	require.Error(t, s.Load([]byte("{not yaml")))
	require.Error(t, s.Load([]byte("board:\n  size: 3\n  cells: [1, 2]\n")))
}

func TestState_MaxTile(t *testing.T) {
	s := NewState(2, 0, 1)
	require.Equal(t, 0, s.MaxTile())
	s.Board = boardFromRows(
		[]int{2, 128},
		[]int{64, 4},
	)
	require.Equal(t, 128, s.MaxTile())
}
