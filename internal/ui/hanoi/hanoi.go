// Package hanoi contains the Tower of Hanoi screen.
package hanoi

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pagoda/internal/hanoi"
	"pagoda/internal/keys"
	"pagoda/internal/log"
	"pagoda/internal/ui/styles"
	"pagoda/registry"
)

// autoTickInterval is the delay between solver steps in auto mode.
const autoTickInterval = 300 * time.Millisecond

// FinishFunc is called once when the puzzle is solved.
type FinishFunc func(moves, minMoves int)

// autoTickMsg drives auto-solve playback.
type autoTickMsg struct{}

// Model holds the hanoi screen state.
type Model struct {
	game   *hanoi.Game
	tiles  int
	solver string
	keys   keys.KeyMap

	selected  int // 1-based peg picked as source; 0 means none
	auto      bool
	autoStart bool
	script    []hanoi.Step
	status    string
	finished  bool
	onFinish  FinishFunc
}

// Option customizes the model.
type Option func(*Model)

// WithFinishFunc registers a callback for the solved state. It fires at most
// once per puzzle.
func WithFinishFunc(fn FinishFunc) Option {
	return func(m *Model) { m.onFinish = fn }
}

// WithAutoStart begins solver playback as soon as the program starts, as if
// the auto key had been pressed.
func WithAutoStart() Option {
	return func(m *Model) { m.autoStart = true }
}

// New creates a hanoi screen with the given tile count and solver name.
func New(tiles int, solver string, opts ...Option) (Model, error) {
	g, err := hanoi.New(tiles)
	if err != nil {
		return Model{}, err
	}
	if !hanoi.Solvers.HasChild(solver) {
		return Model{}, fmt.Errorf("unknown solver %q (registered: %s)",
			solver, strings.Join(hanoi.Solvers.GetChildren(), ", "))
	}
	m := Model{
		game:   g,
		tiles:  tiles,
		solver: solver,
		keys:   keys.DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m, nil
}

// Game exposes the underlying engine for tests and score recording.
func (m Model) Game() *hanoi.Game { return m.game }

// Init starts auto playback when requested; otherwise it waits for input.
func (m Model) Init() tea.Cmd {
	if m.autoStart {
		return func() tea.Msg { return autoStartMsg{} }
	}
	return nil
}

// autoStartMsg triggers solver playback from Init.
type autoStartMsg struct{}

func autoTick() tea.Cmd {
	return tea.Tick(autoTickInterval, func(time.Time) tea.Msg {
		return autoTickMsg{}
	})
}

// Update handles key presses and auto-solve ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autoStartMsg:
		return m.startAuto()
	case autoTickMsg:
		return m.stepAuto()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NewGame):
		fresh, err := hanoi.New(m.tiles)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.game = fresh
		m.selected = 0
		m.auto = false
		m.script = nil
		m.finished = false
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Auto):
		return m.startAuto()
	}

	if m.auto || m.game.Solved() {
		return m, nil
	}

	switch msg.String() {
	case "1", "2", "3":
		return m.pickPeg(int(msg.Runes[0] - '0')), nil
	case "esc":
		m.selected = 0
		m.status = ""
		return m, nil
	}
	return m, nil
}

// pickPeg handles the two-stroke move entry: first digit selects the source
// peg, second the destination.
func (m Model) pickPeg(peg int) Model {
	if m.selected == 0 {
		m.selected = peg
		m.status = fmt.Sprintf("moving from peg %d", peg)
		return m
	}

	from, to := m.selected-1, peg-1
	m.selected = 0
	if err := m.game.Move(from, to); err != nil {
		m.status = err.Error()
		return m
	}
	m.status = ""
	m.checkSolved()
	return m
}

// startAuto resets the puzzle and plays the configured solver's script.
func (m Model) startAuto() (tea.Model, tea.Cmd) {
	if m.auto {
		m.auto = false
		m.script = nil
		m.status = ""
		return m, nil
	}

	solver, err := hanoi.Solvers.Create(m.solver, registry.NoArgs{})
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	fresh, err := hanoi.New(m.tiles)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.game = fresh
	m.auto = true
	m.finished = false
	m.selected = 0
	m.script = solver.Solve(m.tiles)
	m.status = fmt.Sprintf("auto-solving with %s", m.solver)
	log.Info(log.CatHanoi, "auto solve started", "solver", m.solver, "tiles", m.tiles)
	return m, autoTick()
}

// stepAuto applies the next scripted move.
func (m Model) stepAuto() (tea.Model, tea.Cmd) {
	if !m.auto || len(m.script) == 0 {
		return m, nil
	}

	step := m.script[0]
	m.script = m.script[1:]
	if err := m.game.Move(step.From, step.To); err != nil {
		m.auto = false
		m.status = err.Error()
		log.ErrorErr(log.CatHanoi, "scripted move rejected", err)
		return m, nil
	}

	if len(m.script) == 0 {
		m.auto = false
		m.checkSolved()
		return m, nil
	}
	return m, autoTick()
}

func (m *Model) checkSolved() {
	if !m.game.Solved() || m.finished {
		return
	}
	m.finished = true
	m.status = fmt.Sprintf("solved in %d moves (minimum %d)",
		m.game.Moves(), m.game.MinMoves())
	if m.onFinish != nil {
		m.onFinish(m.game.Moves(), m.game.MinMoves())
	}
}

// View renders the pegs.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Tower of Hanoi"))
	b.WriteString("\n")
	b.WriteString(styles.ScoreStyle.Render(
		fmt.Sprintf("Moves: %d  Minimum: %d", m.game.Moves(), m.game.MinMoves())))
	b.WriteString("\n\n")
	b.WriteString(styles.BoardStyle.Render(m.pegsView()))
	b.WriteString("\n")

	switch {
	case m.game.Solved():
		b.WriteString(styles.SuccessStyle.Render(m.status))
	case m.status != "":
		b.WriteString(styles.StatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("1-3 pick peg · a auto · n restart · q quit"))
	return b.String()
}

// pegsView renders the three pegs side by side, largest tile at the bottom.
func (m Model) pegsView() string {
	colWidth := m.tiles*2 + 1
	columns := make([]string, hanoi.NumPegs)

	for peg := 0; peg < hanoi.NumPegs; peg++ {
		tiles := m.game.Peg(peg)
		lines := make([]string, 0, m.tiles+2)

		for level := m.tiles - 1; level >= 0; level-- {
			if level < len(tiles) {
				lines = append(lines, renderDisc(tiles[level], colWidth))
			} else {
				lines = append(lines, renderPost(colWidth))
			}
		}

		label := center(fmt.Sprintf("%d", peg+1), colWidth)
		if m.selected == peg+1 {
			label = styles.SelectedStyle.Render(label)
		}
		lines = append(lines, strings.Repeat("─", colWidth))
		lines = append(lines, label)

		columns[peg] = lipgloss.JoinVertical(lipgloss.Center, lines...)
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom, columns...)
}

// renderDisc draws a tile of the given size as a centered bar.
func renderDisc(size, width int) string {
	bar := strings.Repeat("█", size*2+1)
	return styles.TileStyle(1 << size).Render(center(bar, width))
}

// renderPost draws the empty post segment.
func renderPost(width int) string {
	return lipgloss.NewStyle().Foreground(styles.PegColor).Render(center("│", width))
}

// center pads s to width, accounting for wide runes.
func center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
