package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveFillsIdentity(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(Result{Game: "merge", Score: 1024, Moves: 88, Won: true})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.PlayedAt.IsZero())
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, score := range []int{100, 300, 200} {
		_, err := store.Save(Result{
			Game:     "merge",
			Score:    score,
			PlayedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	results, err := store.List("merge", 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, 200, results[0].Score)
	require.Equal(t, 300, results[1].Score)
	require.Equal(t, 100, results[2].Score)
}

func TestStore_ListFiltersByGame(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(Result{Game: "merge", Score: 512})
	require.NoError(t, err)
	_, err = store.Save(Result{Game: "hanoi", Moves: 31, Won: true})
	require.NoError(t, err)

	results, err := store.List("hanoi", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "hanoi", results[0].Game)
	require.True(t, results[0].Won)

	all, err := store.List("", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestStore_ListLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.Save(Result{Game: "merge", Score: i})
		require.NoError(t, err)
	}

	results, err := store.List("merge", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestStore_Best(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Best("merge")
	require.ErrorIs(t, err, ErrNotFound)

	for _, score := range []int{400, 900, 100} {
		_, err := store.Save(Result{Game: "merge", Score: score})
		require.NoError(t, err)
	}

	best, err := store.Best("merge")
	require.NoError(t, err)
	require.Equal(t, 900, best.Score)
}

func TestOpen_CreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Save(Result{Game: "hanoi", Moves: 7, Won: true, Detail: "tiles=3"})
	require.NoError(t, err)

	results, err := store.List("hanoi", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "tiles=3", results[0].Detail)
}
