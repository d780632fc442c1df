package game

import (
	"fmt"
	"strings"
	"time"

	"pagoda/internal/log"
	"pagoda/internal/pubsub"
	"pagoda/registry"
)

// Options names the children a game resolves from the registry at setup,
// plus the numeric parameters of the board.
type Options struct {
	Seed       int64
	Size       int
	MaxUndo    int
	TextMethod string
	MoveMethod string
	WinEvent   string
	LoseEvent  string
	ScoreEvent string
	Moves      []string
}

// DefaultOptions returns the stock game: a 4×4 board, the keyboard method,
// the default text pack, and the four shift moves.
func DefaultOptions() Options {
	return Options{
		Seed:       time.Now().UnixNano(),
		Size:       4,
		MaxUndo:    16,
		TextMethod: "default",
		MoveMethod: "keyboard",
		WinEvent:   "win",
		LoseEvent:  "lose",
		ScoreEvent: "score",
		Moves:      []string{"left", "right", "up", "down"},
	}
}

// EventKind classifies game events published to the UI.
type EventKind string

const (
	EventScore EventKind = "score"
	EventWin   EventKind = "win"
	EventLose  EventKind = "lose"
)

// EventInfo is the payload published on the game's event broker.
type EventInfo struct {
	Kind  EventKind
	Gain  int
	Score int
	Moves int
}

// Game wires resolved children together and runs the square-merge rules.
// Text/method/event children are held through shared-ownership handles,
// released by Close.
type Game struct {
	opts  Options
	state *State

	text   *registry.Shared[TextMethod]
	method *registry.Shared[MoveMethod]
	win    *registry.Shared[Event]
	lose   *registry.Shared[Event]
	score  *registry.Shared[Event]

	moves  map[string]Move
	broker *pubsub.Broker[EventInfo]
}

// New resolves every named child in opts through the registry and starts a
// game with two spawned tiles. Unknown names are recoverable errors that
// identify the base and list what is registered.
func New(opts Options) (*Game, error) {
	if opts.Size < 2 {
		return nil, fmt.Errorf("board size %d: need at least 2", opts.Size)
	}

	g := &Game{
		opts:   opts,
		state:  NewState(opts.Size, opts.MaxUndo, opts.Seed),
		moves:  make(map[string]Move, len(opts.Moves)),
		broker: pubsub.NewBroker[EventInfo](),
	}

	var err error
	if g.text, err = TextMethods.CreateShared(opts.TextMethod, registry.NoArgs{}); err != nil {
		return nil, describeUnknown("text method", opts.TextMethod, TextMethods.GetChildren())
	}
	if g.method, err = MoveMethods.CreateShared(opts.MoveMethod, registry.NoArgs{}); err != nil {
		return nil, describeUnknown("move method", opts.MoveMethod, MoveMethods.GetChildren())
	}
	if g.win, err = Events.CreateShared(opts.WinEvent, registry.NoArgs{}); err != nil {
		return nil, describeUnknown("win event", opts.WinEvent, Events.GetChildren())
	}
	if g.lose, err = Events.CreateShared(opts.LoseEvent, registry.NoArgs{}); err != nil {
		return nil, describeUnknown("lose event", opts.LoseEvent, Events.GetChildren())
	}
	if opts.ScoreEvent != "" {
		if g.score, err = Events.CreateShared(opts.ScoreEvent, registry.NoArgs{}); err != nil {
			return nil, describeUnknown("score event", opts.ScoreEvent, Events.GetChildren())
		}
	}
	for _, name := range opts.Moves {
		mv, err := Moves.Create(name, registry.NoArgs{})
		if err != nil {
			return nil, describeUnknown("move", name, Moves.GetChildren())
		}
		g.moves[name] = mv
	}

	g.state.Spawn()
	g.state.Spawn()

	log.Info(log.CatGame, "game started",
		"session", g.state.Session, "size", opts.Size, "seed", opts.Seed)
	return g, nil
}

func describeUnknown(what, name string, have []string) error {
	return fmt.Errorf("unknown %s %q (registered: %s)", what, name, strings.Join(have, ", "))
}

// State returns the live game state.
func (g *Game) State() *State { return g.state }

// Options returns the options the game was created with.
func (g *Game) Options() Options { return g.opts }

// Text looks up a user-visible string from the game's text method.
func (g *Game) Text(entry string) string { return g.text.Value().Text(entry) }

// MoveNames returns the names of the moves enabled for this game.
func (g *Game) MoveNames() []string {
	names := make([]string, 0, len(g.moves))
	for name := range g.moves {
		names = append(names, name)
	}
	return names
}

// Subscribe returns the game's event broker for UI consumption.
func (g *Game) Subscribe() *pubsub.Broker[EventInfo] { return g.broker }

// HandleInput decodes raw input through the game's move method and advances.
// Undecodable input is ignored and returns false.
func (g *Game) HandleInput(input string) bool {
	name, ok := g.method.Value().Decode(input)
	if !ok {
		return false
	}
	changed, err := g.Advance(name)
	if err != nil {
		log.ErrorErr(log.CatGame, "advance failed", err, "move", name)
		return false
	}
	return changed
}

// Advance applies the named move. When the board changes it spawns a tile,
// bumps the move counter, and dispatches the game's events. Returns whether
// the board changed; a move name outside the game's enabled set is an error.
func (g *Game) Advance(moveName string) (bool, error) {
	mv, ok := g.moves[moveName]
	if !ok {
		return false, fmt.Errorf("move %q is not enabled for this game", moveName)
	}

	s := g.state
	s.lastGain = 0
	before := s.Board.Clone()
	scoreBefore := s.Score

	if !mv.Apply(s) {
		return false, nil
	}

	s.rememberSnapshot(before, scoreBefore)
	s.Spawn()
	s.Moves++
	g.dispatch()
	return true, nil
}

// Undo restores the previous board and score.
func (g *Game) Undo() bool {
	return g.state.Undo()
}

// Help renders the game's help text from its text pack as markdown.
func (g *Game) Help() string {
	return g.Text("help.title") + "\n\n" + g.Text("help.body")
}

// dispatch checks the game's events against the state and publishes hits.
func (g *Game) dispatch() {
	s := g.state
	info := EventInfo{Gain: s.lastGain, Score: s.Score, Moves: s.Moves}

	if g.score != nil && g.score.Value().Check(s) {
		info.Kind = EventScore
		g.broker.Publish(pubsub.UpdatedEvent, info)
	}
	if !s.Won && g.win.Value().Check(s) {
		s.Won = true
		info.Kind = EventWin
		g.broker.Publish(pubsub.UpdatedEvent, info)
		log.Info(log.CatGame, "game won", "session", s.Session, "moves", s.Moves)
	}
	if g.lose.Value().Check(s) {
		s.Lost = true
		info.Kind = EventLose
		g.broker.Publish(pubsub.UpdatedEvent, info)
		log.Info(log.CatGame, "game lost", "session", s.Session, "moves", s.Moves)
	}
}

// Close releases the game's shared children and its event broker.
func (g *Game) Close() error {
	g.broker.Close()
	for _, h := range []*registry.Shared[Event]{g.win, g.lose, g.score} {
		if h != nil {
			_ = h.Release()
		}
	}
	if g.method != nil {
		_ = g.method.Release()
	}
	if g.text != nil {
		_ = g.text.Release()
	}
	return nil
}
