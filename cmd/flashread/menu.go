package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/games/wordfall"
	"github.com/flashread/wordfall/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick difficulty and theme from a menu",
	Long: `Start Word Fall in interactive menu mode.

Choose a difficulty and a word theme, then play. Going back from a round
(B/Esc) returns to the menu; the scoreboard is one key away.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty or theme
  Enter/Space   - Select
  Tab           - High scores
  Q             - Quit

Examples:
  flashread menu
  flashread menu --fps 30
  flashread menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty selected when the menu opens")
	menuCmd.Flags().StringVar(&flagTheme, "theme", "", "Word theme selected when the menu opens")
	menuCmd.Flags().StringVar(&flagServer, "server", "", "Base URL of a remote scorer")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger("flashread")
	defer closeLog()

	gameCfg := loadGameConfig(flagConfig)
	wordfall.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	wireScoring(gameCfg, store, flagServer, logger)

	opts := tui.SessionOptions{
		GameID: wordfall.ID,
		Options: tui.Options{
			Logger: logger,
			Themes: gameCfg.WordThemes(),
			Theme:  flagTheme,
		},
	}
	if flagDifficulty != "" {
		opts.Difficulty = config.ParseDifficulty(flagDifficulty)
	}

	if err := tui.RunSession(store, terminalConfig(), opts); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
