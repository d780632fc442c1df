package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"pagoda/internal/game"
	"pagoda/internal/hanoi"
)

// baseSummary is the JSON shape for one registry base.
type baseSummary struct {
	Base        string   `json:"base"`
	Description string   `json:"description"`
	Children    []string `json:"children"`
}

var regBase string

var registryListCmd = &cobra.Command{
	Use:   "registry:list",
	Short: "List registered game components",
	Long: `List every registry base and its registered children as JSON.

Children are the names accepted by --text, --method, and --solver.
Use --base to show a single base.

Examples:
  # List everything
  pagoda registry:list

  # Only the hanoi solvers
  pagoda registry:list --base solvers

  # Parse specific fields with jq
  pagoda registry:list | jq '.[].children'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries := []baseSummary{
			{"moves", game.Moves.Description(), game.Moves.GetChildren()},
			{"move-methods", game.MoveMethods.Description(), game.MoveMethods.GetChildren()},
			{"text-methods", game.TextMethods.Description(), game.TextMethods.GetChildren()},
			{"events", game.Events.Description(), game.Events.GetChildren()},
			{"solvers", hanoi.Solvers.Description(), hanoi.Solvers.GetChildren()},
		}

		if regBase != "" {
			filtered := summaries[:0]
			for _, s := range summaries {
				if s.Base == regBase {
					filtered = append(filtered, s)
				}
			}
			summaries = filtered
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	},
}

func init() {
	registryListCmd.Flags().StringVarP(&regBase, "base", "b", "",
		"show only the named base")
	rootCmd.AddCommand(registryListCmd)
}
