package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultTarget is the tile value that satisfies the built-in win event.
const DefaultTarget = 2048

// Board is a square grid of tile values; zero means empty.
type Board struct {
	Size  int   `yaml:"size"`
	Cells []int `yaml:"cells"`
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) Board {
	return Board{Size: size, Cells: make([]int, size*size)}
}

// At returns the tile value at (row, col).
func (b Board) At(row, col int) int { return b.Cells[row*b.Size+col] }

// Set places value at (row, col).
func (b Board) Set(row, col, value int) { b.Cells[row*b.Size+col] = value }

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	cells := make([]int, len(b.Cells))
	copy(cells, b.Cells)
	return Board{Size: b.Size, Cells: cells}
}

// Empty returns the indexes of all empty cells.
func (b Board) Empty() []int {
	var empty []int
	for i, v := range b.Cells {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	return empty
}

// snapshot is one undo step: the board and the score that went with it.
type snapshot struct {
	Board Board `yaml:"board"`
	Score int   `yaml:"score"`
}

// State is the full mutable game state threaded through moves and events.
type State struct {
	Session string
	Target  int
	MaxUndo int
	Board   Board
	Score   int
	Moves   int
	Won     bool
	Lost    bool

	history  []snapshot
	lastGain int
	rng      *rand.Rand
}

// NewState creates a fresh state with an empty board.
func NewState(size, maxUndo int, seed int64) *State {
	return &State{
		Session: uuid.NewString(),
		Target:  DefaultTarget,
		MaxUndo: maxUndo,
		Board:   NewBoard(size),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Spawn places a new tile (2, or 4 one time in ten) on a random empty cell.
// Returns false when the board is full.
func (s *State) Spawn() bool {
	empty := s.Board.Empty()
	if len(empty) == 0 {
		return false
	}
	value := 2
	if s.rng.Intn(10) == 0 {
		value = 4
	}
	s.Board.Cells[empty[s.rng.Intn(len(empty))]] = value
	return true
}

// rememberSnapshot pushes an explicit pre-move snapshot, trimming the
// history to MaxUndo entries.
func (s *State) rememberSnapshot(b Board, score int) {
	if s.MaxUndo <= 0 {
		return
	}
	s.history = append(s.history, snapshot{Board: b, Score: score})
	if len(s.history) > s.MaxUndo {
		s.history = s.history[len(s.history)-s.MaxUndo:]
	}
}

// Undo restores the most recent snapshot, reporting whether one existed.
func (s *State) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.Board = last.Board
	s.Score = last.Score
	s.Lost = false
	return true
}

// UndoDepth returns the number of undo steps currently available.
func (s *State) UndoDepth() int { return len(s.history) }

// LastGain returns the score gained by the most recent move.
func (s *State) LastGain() int { return s.lastGain }

// MaxTile returns the largest tile on the board.
func (s *State) MaxTile() int {
	maxTile := 0
	for _, v := range s.Board.Cells {
		if v > maxTile {
			maxTile = v
		}
	}
	return maxTile
}

// stateDoc is the serialized form of State.
type stateDoc struct {
	Session string     `yaml:"session"`
	Target  int        `yaml:"target"`
	MaxUndo int        `yaml:"max_undo"`
	Board   Board      `yaml:"board"`
	Score   int        `yaml:"score"`
	Moves   int        `yaml:"moves"`
	Won     bool       `yaml:"won"`
	Lost    bool       `yaml:"lost"`
	History []snapshot `yaml:"history,omitempty"`
}

// Save serializes the state, including undo history, to YAML.
func (s *State) Save() ([]byte, error) {
	doc := stateDoc{
		Session: s.Session,
		Target:  s.Target,
		MaxUndo: s.MaxUndo,
		Board:   s.Board,
		Score:   s.Score,
		Moves:   s.Moves,
		Won:     s.Won,
		Lost:    s.Lost,
		History: s.history,
	}
	return yaml.Marshal(doc)
}

// Load replaces the state with a previously saved one. The random source is
// kept; a missing or malformed document is a recoverable error.
func (s *State) Load(data []byte) error {
	var doc stateDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("loading game state: %w", err)
	}
	if doc.Board.Size <= 0 || len(doc.Board.Cells) != doc.Board.Size*doc.Board.Size {
		return fmt.Errorf("loading game state: board is %dx%d with %d cells",
			doc.Board.Size, doc.Board.Size, len(doc.Board.Cells))
	}
	s.Session = doc.Session
	s.Target = doc.Target
	s.MaxUndo = doc.MaxUndo
	s.Board = doc.Board
	s.Score = doc.Score
	s.Moves = doc.Moves
	s.Won = doc.Won
	s.Lost = doc.Lost
	s.history = doc.History
	s.lastGain = 0
	return nil
}
