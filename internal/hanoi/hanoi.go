// Package hanoi implements the Tower of Hanoi engine played by the terminal
// UI. Winning strategies are children of a registry base, constructed by
// name from the --solver flag.
package hanoi

import (
	"errors"
	"fmt"
)

const (
	// NumPegs is fixed at the classic three.
	NumPegs = 3
	// MinTiles and MaxTiles bound the playable range; the upper bound keeps
	// the widest tile renderable on a standard 80-column terminal.
	MinTiles = 2
	MaxTiles = 9
)

var (
	// ErrNoSuchPeg indicates a peg index outside 0..NumPegs-1.
	ErrNoSuchPeg = errors.New("hanoi: no such peg")
	// ErrEmptyPeg indicates a move from a peg with no tiles.
	ErrEmptyPeg = errors.New("hanoi: peg is empty")
	// ErrTileTooLarge indicates placing a tile onto a smaller one.
	ErrTileTooLarge = errors.New("hanoi: cannot place a tile on a smaller tile")
	// ErrSamePeg indicates a move with identical source and destination.
	ErrSamePeg = errors.New("hanoi: source and destination are the same peg")
)

// Game is the peg state of one Tower of Hanoi session. Tiles are recorded by
// size, bottom first; all start on peg 0.
type Game struct {
	pegs  [NumPegs][]int
	tiles int
	moves int
}

// New sets up a game with n tiles stacked on the first peg.
func New(n int) (*Game, error) {
	if n < MinTiles || n > MaxTiles {
		return nil, fmt.Errorf("tile count %d: want %d to %d", n, MinTiles, MaxTiles)
	}
	g := &Game{tiles: n}
	for size := n; size >= 1; size-- {
		g.pegs[0] = append(g.pegs[0], size)
	}
	return g, nil
}

// Tiles returns the number of tiles in play.
func (g *Game) Tiles() int { return g.tiles }

// Moves returns how many moves have been made.
func (g *Game) Moves() int { return g.moves }

// MinMoves returns the optimal move count, 2^n - 1.
func (g *Game) MinMoves() int { return (1 << g.tiles) - 1 }

// Peg returns the tile sizes on peg i, bottom first.
func (g *Game) Peg(i int) []int {
	if i < 0 || i >= NumPegs {
		return nil
	}
	out := make([]int, len(g.pegs[i]))
	copy(out, g.pegs[i])
	return out
}

// Validate reports why moving the top tile from one peg to another would be
// illegal, or nil when the move is allowed. The rules mirror the classic
// game: pegs must exist and differ, the source must be non-empty, and a tile
// never rests on a smaller one.
func (g *Game) Validate(from, to int) error {
	if from < 0 || from >= NumPegs || to < 0 || to >= NumPegs {
		return ErrNoSuchPeg
	}
	if from == to {
		return ErrSamePeg
	}
	if len(g.pegs[from]) == 0 {
		return ErrEmptyPeg
	}
	src := g.pegs[from][len(g.pegs[from])-1]
	if n := len(g.pegs[to]); n > 0 && src > g.pegs[to][n-1] {
		return ErrTileTooLarge
	}
	return nil
}

// Move transfers the top tile between pegs, counting the move.
func (g *Game) Move(from, to int) error {
	if err := g.Validate(from, to); err != nil {
		return err
	}
	n := len(g.pegs[from])
	tile := g.pegs[from][n-1]
	g.pegs[from] = g.pegs[from][:n-1]
	g.pegs[to] = append(g.pegs[to], tile)
	g.moves++
	return nil
}

// Solved reports whether every tile has reached a peg other than the first.
func (g *Game) Solved() bool {
	for i := 1; i < NumPegs; i++ {
		if len(g.pegs[i]) == g.tiles {
			return true
		}
	}
	return false
}
