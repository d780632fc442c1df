package hanoi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"pagoda/registry"
)

func TestSolvers_Registered(t *testing.T) {
	require.Equal(t, []string{"iterative", "recursive"}, Solvers.GetChildren())
}

func TestSolvers_UnknownName(t *testing.T) {
	_, err := Solvers.Create("clairvoyant", registry.NoArgs{})
	require.ErrorIs(t, err, registry.ErrUnknown)
}

func TestSolvers_ProduceOptimalWinningSequences(t *testing.T) {
	for _, name := range Solvers.GetChildren() {
		for n := MinTiles; n <= 6; n++ {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				solver, err := Solvers.Create(name, registry.NoArgs{})
				require.NoError(t, err)
				require.Equal(t, name, solver.Name())

				steps := solver.Solve(n)
				require.Len(t, steps, (1<<n)-1, "sequence must be optimal")

				game, err := New(n)
				require.NoError(t, err)
				for i, step := range steps {
					require.NoError(t, game.Move(step.From, step.To),
						"step %d %d→%d must be legal", i, step.From, step.To)
				}
				require.True(t, game.Solved())
				require.Equal(t, game.MinMoves(), game.Moves())
			})
		}
	}
}

func TestSolvers_AgreeOnSmallestCase(t *testing.T) {
	recursive, err := Solvers.Create("recursive", registry.NoArgs{})
	require.NoError(t, err)
	iterative, err := Solvers.Create("iterative", registry.NoArgs{})
	require.NoError(t, err)

	require.Equal(t, recursive.Solve(MinTiles), iterative.Solve(MinTiles))
}
