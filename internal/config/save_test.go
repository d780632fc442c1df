package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "# pagoda configuration"))

	var cfg yamlConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Equal(t, 4, cfg.Game.Size)
	require.Equal(t, "recursive", cfg.Hanoi.Solver)
}

func TestSaveGame_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveGame(path, GameConfig{
		Size: 5, MaxUndo: 8, TextMethod: "terse", MoveMethod: "keyboard",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg yamlConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Equal(t, 5, cfg.Game.Size)
	require.Equal(t, "terse", cfg.Game.TextMethod)
}

func TestSaveGame_PreservesOtherSectionsAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := `# my tweaks
theme:
  highlight: "#FF00FF" # neon
game:
  size: 4
  max_undo: 16
  text_method: default
  move_method: keyboard
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	require.NoError(t, SaveGame(path, GameConfig{
		Size: 6, MaxUndo: 4, TextMethod: "default", MoveMethod: "keyboard",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "# my tweaks")
	require.Contains(t, text, "# neon")
	require.Contains(t, text, "size: 6")

	var cfg yamlConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Equal(t, "#FF00FF", cfg.Theme.Highlight)
	require.Equal(t, 6, cfg.Game.Size)
	require.Equal(t, 4, cfg.Game.MaxUndo)
}

func TestSaveGame_AppendsMissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0644))

	require.NoError(t, SaveGame(path, GameConfig{Size: 4, MaxUndo: 16}))

	var cfg yamlConfig
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.True(t, cfg.Debug)
	require.Equal(t, 4, cfg.Game.Size)
}
