package hanoi

import "pagoda/registry"

// Step is one move in a winning sequence.
type Step struct {
	From int
	To   int
}

// Solver produces a complete winning move sequence for n tiles, from peg 0
// to peg 2. Every registered solver yields an optimal 2^n - 1 sequence.
type Solver interface {
	registry.Named
	Solve(n int) []Step
}

// Solvers is the base table for winning strategies. The auto-play UI picks
// one by name from the --solver flag.
var Solvers = registry.NewBase[Solver, registry.NoArgs](
	registry.WithDescription("Strategies that produce a winning move sequence."))

// recursiveSolver is the textbook divide-and-conquer solution.
type recursiveSolver struct {
	registry.Entity
}

func (s *recursiveSolver) Solve(n int) []Step {
	steps := make([]Step, 0, (1<<n)-1)
	var rec func(n, from, to int)
	rec = func(n, from, to int) {
		if n == 0 {
			return
		}
		other := NumPegs - from - to
		rec(n-1, from, other)
		steps = append(steps, Step{From: from, To: to})
		rec(n-1, other, to)
	}
	rec(n, 0, 2)
	return steps
}

// iterativeSolver alternates the smallest tile's cyclic move with the only
// other legal move, the loop-based solution. The smallest tile's direction
// depends on tile-count parity so the stack lands on peg 2.
type iterativeSolver struct {
	registry.Entity
}

func (s *iterativeSolver) Solve(n int) []Step {
	game, err := New(n)
	if err != nil {
		return nil
	}

	// Odd counts cycle the smallest tile 0→2→1, even counts 0→1→2.
	step := 2
	if n%2 == 0 {
		step = 1
	}
	smallestOn := 0
	total := (1 << n) - 1
	steps := make([]Step, 0, total)

	for i := 0; i < total; i++ {
		if i%2 == 0 {
			// Move the smallest tile one step around its cycle.
			to := (smallestOn + step) % NumPegs
			steps = append(steps, Step{From: smallestOn, To: to})
			_ = game.Move(smallestOn, to)
			smallestOn = to
			continue
		}
		// Exactly one legal move avoids the smallest tile.
		for from := 0; from < NumPegs; from++ {
			if from == smallestOn {
				continue
			}
			for to := 0; to < NumPegs; to++ {
				if to == smallestOn || game.Validate(from, to) != nil {
					continue
				}
				steps = append(steps, Step{From: from, To: to})
				_ = game.Move(from, to)
				from = NumPegs // break both loops
				break
			}
		}
	}
	return steps
}

var (
	_ = registry.Bind(Solvers, "recursive", func(registry.NoArgs) Solver { return &recursiveSolver{} })
	_ = registry.Bind(Solvers, "iterative", func(registry.NoArgs) Solver { return &iterativeSolver{} })
)
