// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic colors
	HighlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#874BFD"} // Titles, focused elements
	SubtleColor    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#6C6C6C"} // Hints, help text, footers
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#FF5555", Dark: "#FF5555"} // Errors, lost state
	SuccessColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#50FA7B"} // Wins, solved state

	// Board colors
	TileEmptyColor  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#3A3A3A"}
	TileLowColor    = lipgloss.AdaptiveColor{Light: "#EEE4DA", Dark: "#EEE4DA"}
	TileMidColor    = lipgloss.AdaptiveColor{Light: "#F59563", Dark: "#F59563"}
	TileHighColor   = lipgloss.AdaptiveColor{Light: "#EDC22E", Dark: "#EDC22E"}
	TileTextColor   = lipgloss.AdaptiveColor{Light: "#494437", Dark: "#494437"}
	PegColor        = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}
	TileAccentColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Styles rebuilt by ApplyTheme
	TitleStyle    lipgloss.Style
	StatusStyle   lipgloss.Style
	HelpStyle     lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
	BoardStyle    lipgloss.Style
	ScoreStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	StatusStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	HelpStyle = lipgloss.NewStyle().Foreground(SubtleColor).Italic(true)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	BoardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)
	ScoreStyle = lipgloss.NewStyle().Bold(true)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(TileAccentColor)
}

// TileStyle returns the style for a tile of the given value. Values grow by
// doubling, so the bands are value thresholds rather than an exact map.
func TileStyle(value int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	switch {
	case value == 0:
		return base.Foreground(TileEmptyColor)
	case value < 64:
		return base.Foreground(TileTextColor).Background(TileLowColor)
	case value < 512:
		return base.Foreground(TileTextColor).Background(TileMidColor)
	default:
		return base.Foreground(TileTextColor).Background(TileHighColor)
	}
}
