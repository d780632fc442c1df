package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTheme_Empty(t *testing.T) {
	before := HighlightColor
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, before, HighlightColor)
}

func TestApplyTheme_Override(t *testing.T) {
	original := HighlightColor
	defer func() {
		HighlightColor = original
		rebuildStyles()
	}()

	require.NoError(t, ApplyTheme(ThemeConfig{Highlight: "#FF0000"}))
	require.Equal(t, "#FF0000", HighlightColor.Dark)
}

func TestApplyTheme_InvalidHex(t *testing.T) {
	require.Error(t, ApplyTheme(ThemeConfig{Error: "red"}))
	require.Error(t, ApplyTheme(ThemeConfig{Subtle: "#FFF"}))
}

func TestTileStyle_Bands(t *testing.T) {
	require.Equal(t, TileEmptyColor, TileStyle(0).GetForeground())
	require.Equal(t, TileLowColor, TileStyle(2).GetBackground())
	require.Equal(t, TileLowColor, TileStyle(32).GetBackground())
	require.Equal(t, TileMidColor, TileStyle(64).GetBackground())
	require.Equal(t, TileHighColor, TileStyle(2048).GetBackground())
}
