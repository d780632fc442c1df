package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pagoda/internal/infrastructure/sqlite"
)

var (
	scoresGame  string
	scoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded game results",
	Long: `Show game results recorded in the score database, newest first.

Use --game to filter ("merge" or "hanoi") and --limit to cap the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		store, err := sqlite.Open(cfg.Scores.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		results, err := store.List(scoresGame, scoresLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no results recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PLAYED\tGAME\tSCORE\tMOVES\tWON\tDETAIL")
		for _, r := range results {
			won := ""
			if r.Won {
				won = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
				r.PlayedAt.Format("2006-01-02 15:04"), r.Game, r.Score, r.Moves, won, r.Detail)
		}
		return w.Flush()
	},
}

func init() {
	scoresCmd.Flags().StringVar(&scoresGame, "game", "", "filter by game name")
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 20, "maximum rows to show")
	rootCmd.AddCommand(scoresCmd)
}
