package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigHeader = `# pagoda configuration
# Flags override these values per run; see pagoda --help.
`

// yamlGame mirrors GameConfig with yaml tags for persistence.
type yamlGame struct {
	Size       int    `yaml:"size"`
	MaxUndo    int    `yaml:"max_undo"`
	TextMethod string `yaml:"text_method"`
	MoveMethod string `yaml:"move_method"`
}

// yamlConfig mirrors Config with yaml tags for persistence.
type yamlConfig struct {
	Debug bool     `yaml:"debug"`
	Game  yamlGame `yaml:"game"`
	Hanoi struct {
		Tiles  int    `yaml:"tiles"`
		Solver string `yaml:"solver"`
	} `yaml:"hanoi"`
	Theme struct {
		Highlight     string `yaml:"highlight"`
		Subtle        string `yaml:"subtle"`
		Error         string `yaml:"error"`
		Success       string `yaml:"success"`
		MarkdownStyle string `yaml:"markdown_style"`
	} `yaml:"theme"`
	Scores struct {
		Path string `yaml:"path"`
	} `yaml:"scores"`
}

func toYAML(c Config) yamlConfig {
	var out yamlConfig
	out.Debug = c.Debug
	out.Game = yamlGame(c.Game)
	out.Hanoi.Tiles = c.Hanoi.Tiles
	out.Hanoi.Solver = c.Hanoi.Solver
	out.Theme.Highlight = c.Theme.Highlight
	out.Theme.Subtle = c.Theme.Subtle
	out.Theme.Error = c.Theme.Error
	out.Theme.Success = c.Theme.Success
	out.Theme.MarkdownStyle = c.Theme.MarkdownStyle
	out.Scores.Path = c.Scores.Path
	return out
}

// WriteDefaultConfig writes the stock configuration to path, creating parent
// directories as needed. Used on first run when no config exists.
func WriteDefaultConfig(path string) error {
	data, err := yaml.Marshal(toYAML(Defaults()))
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultConfigHeader), data...), 0644)
}

// SaveGame updates the game section of the config file in place, preserving
// comments and formatting elsewhere by editing the YAML node tree.
func SaveGame(configPath string, game GameConfig) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	gameNode, err := buildGameNode(game)
	if err != nil {
		return fmt.Errorf("building game node: %w", err)
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind: yaml.MappingNode,
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Value: "game"},
					gameNode,
				},
			}},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "game" {
					root.Content[i+1] = gameNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "game"}, gameNode)
			}
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, buf.Bytes(), 0644)
}

// buildGameNode converts a GameConfig into a YAML mapping node.
func buildGameNode(game GameConfig) (*yaml.Node, error) {
	data, err := yaml.Marshal(yamlGame(game))
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("unexpected node shape for game config")
	}
	return doc.Content[0], nil
}
