package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pagoda/internal/config"
	"pagoda/internal/game"
	"pagoda/internal/infrastructure/sqlite"
	"pagoda/internal/log"
	"pagoda/internal/ui/mergegame"
	"pagoda/internal/ui/styles"
	"pagoda/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "pagoda",
	Short:   "Terminal puzzle games built on a name-keyed factory",
	Long:    `Pagoda plays square-merge (2048) and Tower of Hanoi in the terminal. Moves, solvers, text packs, and win conditions are registered components resolved by name, so variants plug in without touching the game loops.`,
	Version: version,
	RunE:    runMerge,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/pagoda/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log next to the config file")
	rootCmd.Flags().IntP("size", "s", 0,
		"board size (2-8, overrides config)")
	rootCmd.Flags().Int64("seed", 0,
		"random seed for tile spawning (0 means time-based)")
	rootCmd.Flags().String("text", "",
		"text pack to play with (see 'pagoda registry:list')")
	rootCmd.Flags().String("method", "",
		"move method to play with")
	rootCmd.Flags().Bool("no-save", false,
		"do not record the result in the score database")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("game.size", defaults.Game.Size)
	viper.SetDefault("game.max_undo", defaults.Game.MaxUndo)
	viper.SetDefault("game.text_method", defaults.Game.TextMethod)
	viper.SetDefault("game.move_method", defaults.Game.MoveMethod)
	viper.SetDefault("hanoi.tiles", defaults.Hanoi.Tiles)
	viper.SetDefault("hanoi.solver", defaults.Hanoi.Solver)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)
	viper.SetDefault("theme.markdown_style", defaults.Theme.MarkdownStyle)
	viper.SetDefault("scores.path", defaults.Scores.Path)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .pagoda/config.yaml (current directory)
		// 2. ~/.config/pagoda/config.yaml (user config)
		if _, err := os.Stat(".pagoda/config.yaml"); err == nil {
			viper.SetConfigFile(".pagoda/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "pagoda"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at ~/.config/pagoda
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "pagoda", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setup applies the pieces every game command shares: validation, theme, and
// the debug log. The returned cleanup flushes the log file.
func setup() (func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Highlight: cfg.Theme.Highlight,
		Subtle:    cfg.Theme.Subtle,
		Error:     cfg.Theme.Error,
		Success:   cfg.Theme.Success,
	}); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	if os.Getenv("PAGODA_DEBUG") != "" {
		cfg.Debug = true
	}

	cleanup := func() {}
	if cfg.Debug {
		logPath := filepath.Join(filepath.Dir(configFilePath()), "pagoda.log")
		c, err := log.InitWithTeaLog(logPath, "pagoda")
		if err != nil {
			return nil, fmt.Errorf("opening debug log: %w", err)
		}
		log.SetEnabled(true)
		cleanup = c
	}
	return cleanup, nil
}

// configFilePath returns the config file in use, falling back to the default
// location when none was loaded.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagoda/config.yaml"
	}
	return filepath.Join(home, ".config", "pagoda", "config.yaml")
}

// watchConfig hot-reloads theme colors while a game is on screen. The
// returned stop function must be called before process exit.
func watchConfig() func() {
	w, err := watcher.New(watcher.DefaultConfig(configFilePath()))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "config watcher unavailable", err)
		return func() {}
	}
	onChange, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "config watcher unavailable", err)
		return func() {}
	}

	go func() {
		for range onChange {
			if err := viper.ReadInConfig(); err != nil {
				log.ErrorErr(log.CatConfig, "config reload failed", err)
				continue
			}
			if err := viper.Unmarshal(&cfg); err != nil {
				log.ErrorErr(log.CatConfig, "config reload failed", err)
				continue
			}
			_ = styles.ApplyTheme(styles.ThemeConfig{
				Highlight: cfg.Theme.Highlight,
				Subtle:    cfg.Theme.Subtle,
				Error:     cfg.Theme.Error,
				Success:   cfg.Theme.Success,
			})
			log.Info(log.CatConfig, "config reloaded", "path", configFilePath())
		}
	}()
	return func() { _ = w.Stop() }
}

// openStore opens the score database, or nil when saving is disabled.
func openStore(cmd *cobra.Command) *sqlite.Store {
	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
		return nil
	}
	store, err := sqlite.Open(cfg.Scores.Path)
	if err != nil {
		log.ErrorErr(log.CatDB, "score database unavailable", err)
		return nil
	}
	return store
}

func runMerge(cmd *cobra.Command, args []string) error {
	cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := game.DefaultOptions()
	opts.Size = cfg.Game.Size
	opts.MaxUndo = cfg.Game.MaxUndo
	opts.TextMethod = cfg.Game.TextMethod
	opts.MoveMethod = cfg.Game.MoveMethod
	if size, _ := cmd.Flags().GetInt("size"); size > 0 {
		opts.Size = size
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		opts.Seed = seed
	}
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		opts.TextMethod = text
	}
	if method, _ := cmd.Flags().GetString("method"); method != "" {
		opts.MoveMethod = method
	}

	g, err := game.New(opts)
	if err != nil {
		return err
	}

	store := openStore(cmd)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	modelOpts := []mergegame.Option{
		mergegame.WithMarkdownStyle(cfg.Theme.MarkdownStyle),
	}
	if store != nil {
		detail := fmt.Sprintf("size=%d", opts.Size)
		modelOpts = append(modelOpts, mergegame.WithFinishFunc(func(won bool, score, moves int) {
			if _, err := store.Save(sqlite.Result{
				Game: "merge", Score: score, Moves: moves, Won: won, Detail: detail,
			}); err != nil {
				log.ErrorErr(log.CatDB, "score save failed", err)
			}
		}))
	}

	stopWatch := watchConfig()
	defer stopWatch()

	model := mergegame.New(g, modelOpts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	persistGameOverrides(cmd, opts)
	return nil
}

// persistGameOverrides writes game settings changed by flags back to the
// config file, so the next run picks them up without flags. Comments in the
// file survive the rewrite.
func persistGameOverrides(cmd *cobra.Command, opts game.Options) {
	changed := false
	for _, name := range []string{"size", "text", "method"} {
		if cmd.Flags().Changed(name) {
			changed = true
			break
		}
	}
	if !changed {
		return
	}

	gc := cfg.Game
	gc.Size = opts.Size
	gc.TextMethod = opts.TextMethod
	gc.MoveMethod = opts.MoveMethod
	if err := config.SaveGame(configFilePath(), gc); err != nil {
		log.ErrorErr(log.CatConfig, "saving game settings failed", err)
		return
	}
	log.Info(log.CatConfig, "game settings saved", "path", configFilePath())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
