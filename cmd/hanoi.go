package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pagoda/internal/infrastructure/sqlite"
	"pagoda/internal/log"
	uihanoi "pagoda/internal/ui/hanoi"
)

var hanoiCmd = &cobra.Command{
	Use:   "hanoi",
	Short: "Play Tower of Hanoi",
	Long: `Play Tower of Hanoi in the terminal.

Move tiles by pressing the source peg number (1-3) then the destination,
or press 'a' to watch the configured solver play. Solvers are registered
components; list them with 'pagoda registry:list'.`,
	RunE: runHanoi,
}

func init() {
	hanoiCmd.Flags().IntP("tiles", "n", 0,
		"number of tiles (2-9, overrides config)")
	hanoiCmd.Flags().String("solver", "",
		"solver to use for auto mode (overrides config)")
	hanoiCmd.Flags().Bool("auto", false,
		"start solver playback immediately")
	hanoiCmd.Flags().Bool("no-save", false,
		"do not record the result in the score database")
	rootCmd.AddCommand(hanoiCmd)
}

func runHanoi(cmd *cobra.Command, args []string) error {
	cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tiles := cfg.Hanoi.Tiles
	if n, _ := cmd.Flags().GetInt("tiles"); n > 0 {
		tiles = n
	}
	solver := cfg.Hanoi.Solver
	if s, _ := cmd.Flags().GetString("solver"); s != "" {
		solver = s
	}

	store := openStore(cmd)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	var opts []uihanoi.Option
	if auto, _ := cmd.Flags().GetBool("auto"); auto {
		opts = append(opts, uihanoi.WithAutoStart())
	}
	if store != nil {
		detail := fmt.Sprintf("tiles=%d solver=%s", tiles, solver)
		opts = append(opts, uihanoi.WithFinishFunc(func(moves, minMoves int) {
			if _, err := store.Save(sqlite.Result{
				Game: "hanoi", Moves: moves, Won: true, Detail: detail,
			}); err != nil {
				log.ErrorErr(log.CatDB, "score save failed", err)
			}
		}))
	}

	model, err := uihanoi.New(tiles, solver, opts...)
	if err != nil {
		return err
	}

	stopWatch := watchConfig()
	defer stopWatch()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
