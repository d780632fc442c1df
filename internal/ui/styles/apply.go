package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Highlight string
	Subtle    string
	Error     string
	Success   string
}

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func isValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// ApplyTheme applies color overrides from configuration and rebuilds the
// package-level Style objects. Empty fields keep their defaults.
func ApplyTheme(cfg ThemeConfig) error {
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	overrides := []struct {
		name  string
		value string
		dst   *lipgloss.AdaptiveColor
	}{
		{"highlight", cfg.Highlight, &HighlightColor},
		{"subtle", cfg.Subtle, &SubtleColor},
		{"error", cfg.Error, &ErrorColor},
		{"success", cfg.Success, &SuccessColor},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		if !isValidHexColor(o.value) {
			return fmt.Errorf("invalid hex color for %s: %s", o.name, o.value)
		}
		*o.dst = makeColor(o.value)
	}

	rebuildStyles()
	return nil
}
