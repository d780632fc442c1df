// Package config provides configuration types, defaults, and persistence for
// pagoda.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GameConfig holds square-merge game defaults; flags override per run.
type GameConfig struct {
	Size       int    `mapstructure:"size"`
	MaxUndo    int    `mapstructure:"max_undo"`
	TextMethod string `mapstructure:"text_method"`
	MoveMethod string `mapstructure:"move_method"`
}

// HanoiConfig holds Tower of Hanoi defaults.
type HanoiConfig struct {
	Tiles  int    `mapstructure:"tiles"`
	Solver string `mapstructure:"solver"`
}

// ThemeConfig holds color customization. Values are hex colors.
type ThemeConfig struct {
	Highlight     string `mapstructure:"highlight"`
	Subtle        string `mapstructure:"subtle"`
	Error         string `mapstructure:"error"`
	Success       string `mapstructure:"success"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ScoresConfig holds the result-history database location.
type ScoresConfig struct {
	Path string `mapstructure:"path"`
}

// Config holds all configuration options for pagoda.
type Config struct {
	Debug  bool         `mapstructure:"debug"`
	Game   GameConfig   `mapstructure:"game"`
	Hanoi  HanoiConfig  `mapstructure:"hanoi"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Scores ScoresConfig `mapstructure:"scores"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		Game: GameConfig{
			Size:       4,
			MaxUndo:    16,
			TextMethod: "default",
			MoveMethod: "keyboard",
		},
		Hanoi: HanoiConfig{
			Tiles:  5,
			Solver: "recursive",
		},
		Theme: ThemeConfig{
			Highlight:     "#874BFD",
			Subtle:        "#6C6C6C",
			Error:         "#FF5555",
			Success:       "#50FA7B",
			MarkdownStyle: "dark",
		},
		Scores: ScoresConfig{
			Path: DefaultScoresPath(),
		},
	}
}

// DefaultScoresPath returns the default location of the score database.
func DefaultScoresPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagoda-scores.db"
	}
	return filepath.Join(home, ".config", "pagoda", "scores.db")
}

// Validate checks ranges the UI depends on.
func (c Config) Validate() error {
	if c.Game.Size < 2 || c.Game.Size > 8 {
		return fmt.Errorf("game.size %d: want 2 to 8", c.Game.Size)
	}
	if c.Game.MaxUndo < 0 {
		return fmt.Errorf("game.max_undo %d: must not be negative", c.Game.MaxUndo)
	}
	switch c.Theme.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("theme.markdown_style %q: want dark or light", c.Theme.MarkdownStyle)
	}
	return nil
}
