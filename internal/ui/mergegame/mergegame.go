// Package mergegame contains the square-merge board screen.
package mergegame

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pagoda/internal/game"
	"pagoda/internal/keys"
	"pagoda/internal/log"
	"pagoda/internal/pubsub"
	"pagoda/internal/ui/markdown"
	"pagoda/internal/ui/styles"
)

// tileWidth is the rendered width of one board cell.
const tileWidth = 6

// Minimum terminal size the screen is legible at.
const (
	minWidth  = 80
	minHeight = 24
)

// FinishFunc is called once when a game reaches a terminal state.
type FinishFunc func(won bool, score, moves int)

// eventMsg is a game event delivered through the broker.
type eventMsg = pubsub.Event[game.EventInfo]

// logMsg is a debug log entry delivered through the log broker.
type logMsg = pubsub.Event[string]

// Model holds the merge game screen state.
type Model struct {
	game     *game.Game
	keys     keys.KeyMap
	listener *pubsub.ContinuousListener[game.EventInfo]
	logs     *log.LogListener
	cancel   context.CancelFunc
	md       *markdown.Renderer

	width    int
	height   int
	showHelp bool
	status   string
	lastLog  string
	finished bool
	onFinish FinishFunc
}

// Option customizes the model.
type Option func(*Model)

// WithFinishFunc registers a callback for terminal game states. It fires at
// most once per game.
func WithFinishFunc(fn FinishFunc) Option {
	return func(m *Model) { m.onFinish = fn }
}

// WithMarkdownStyle sets the glamour style used for the help overlay.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		if r, err := markdown.New(60, style); err == nil {
			m.md = r
		}
	}
}

// New creates the merge game screen around an already-constructed game.
// The model owns the game and closes it on quit.
func New(g *game.Game, opts ...Option) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		game:     g,
		keys:     keys.DefaultKeyMap(),
		listener: pubsub.NewContinuousListener(ctx, g.Subscribe()),
		logs:     log.NewListener(ctx),
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.md == nil {
		if r, err := markdown.New(60, ""); err == nil {
			m.md = r
		}
	}
	return m
}

// Game exposes the underlying game for tests and score recording.
func (m Model) Game() *game.Game { return m.game }

// Init starts the event listener, plus the log listener when the debug
// logger is running.
func (m Model) Init() tea.Cmd {
	if m.logs == nil {
		return m.listener.Listen()
	}
	return tea.Batch(m.listener.Listen(), m.logs.Listen())
}

// Update handles key presses and game events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		return m.handleEvent(msg)

	case logMsg:
		m.lastLog = strings.TrimSpace(msg.Payload)
		if m.logs == nil {
			return m, nil
		}
		return m, m.logs.Listen()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleEvent(msg eventMsg) (tea.Model, tea.Cmd) {
	info := msg.Payload
	switch info.Kind {
	case game.EventScore:
		m.status = fmt.Sprintf("+%d", info.Gain)
	case game.EventWin:
		m.status = m.game.Text("win")
		m.finish(true, info)
	case game.EventLose:
		m.status = m.game.Text("lose")
		m.finish(false, info)
	}
	return m, m.listener.Listen()
}

func (m *Model) finish(won bool, info game.EventInfo) {
	if m.finished {
		return
	}
	m.finished = true
	if m.onFinish != nil {
		m.onFinish(won, info.Score, info.Moves)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		_ = m.game.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.game.Undo() {
			m.status = "undo"
		}
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		return m.restart()
	}

	if m.showHelp {
		return m, nil
	}
	if m.game.HandleInput(msg.String()) {
		log.Debug(log.CatUI, "applied move", "key", msg.String())
	}
	return m, nil
}

// restart closes the current game and starts a fresh one with the same
// options but a new seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	opts := m.game.Options()
	opts.Seed = time.Now().UnixNano()

	next, err := game.New(opts)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.cancel()
	_ = m.game.Close()

	ctx, cancel := context.WithCancel(context.Background())
	m.game = next
	m.cancel = cancel
	m.listener = pubsub.NewContinuousListener(ctx, next.Subscribe())
	m.logs = log.NewListener(ctx)
	m.finished = false
	m.status = ""
	return m, m.Init()
}

// View renders the screen.
func (m Model) View() string {
	if m.width > 0 && (m.width < minWidth || m.height < minHeight) {
		return styles.ErrorStyle.Render(
			fmt.Sprintf("Terminal too small: need at least %dx%d.", minWidth, minHeight))
	}
	if m.showHelp {
		return m.helpView()
	}

	s := m.game.State()
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.game.Text("title")))
	b.WriteString("\n")
	b.WriteString(styles.ScoreStyle.Render(
		fmt.Sprintf(m.game.Text("status"), s.Score, s.Moves, s.UndoDepth())))
	b.WriteString("\n\n")
	b.WriteString(styles.BoardStyle.Render(m.boardView()))
	b.WriteString("\n")

	switch {
	case s.Lost:
		b.WriteString(styles.ErrorStyle.Render(m.game.Text("lose")))
	case m.status == m.game.Text("win"):
		b.WriteString(styles.SuccessStyle.Render(m.status))
	case m.status != "":
		b.WriteString(styles.StatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("? help · u undo · n new game · q quit"))
	if m.lastLog != "" {
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render(m.lastLog))
	}
	return b.String()
}

// boardView renders the tile grid.
func (m Model) boardView() string {
	s := m.game.State()
	rows := make([]string, 0, s.Board.Size)
	for row := 0; row < s.Board.Size; row++ {
		cells := make([]string, 0, s.Board.Size)
		for col := 0; col < s.Board.Size; col++ {
			cells = append(cells, renderTile(s.Board.At(row, col)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTile pads a tile value to a fixed cell width.
func renderTile(value int) string {
	label := "·"
	if value > 0 {
		label = strconv.Itoa(value)
	}
	pad := tileWidth - runewidth.StringWidth(label)
	left := pad / 2
	label = strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left)
	return styles.TileStyle(value).Render(label)
}

// helpView renders the markdown help overlay.
func (m Model) helpView() string {
	body := m.game.Help()
	if m.md != nil {
		if out, err := m.md.Render(body); err == nil {
			return out + "\n" + styles.HelpStyle.Render("? close help")
		}
	}
	return body
}
