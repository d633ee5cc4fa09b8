package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/games/wordfall"
	"github.com/flashread/wordfall/internal/platform/tui"
	"github.com/flashread/wordfall/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTheme      string
	flagServer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round of Word Fall",
	Long: `Start a round of Word Fall directly, skipping the menu.

Controls:
  Mouse, Left/Right  - Move the catcher
  Enter/Space        - Start or stop the round
  Tab                - Cycle difficulty (resets the counters)
  P                  - Pause
  R                  - Play again after game over
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Difficulty options:
  easy, medium, hard, extreme

Scoring:
  By default words are scored in process and results saved to --db.
  With --server the round is scored by a FlashRead scorer over HTTP.

Examples:
  flashread play
  flashread play --theme Science --difficulty hard
  flashread play --config ./my-wordfall.yaml
  flashread play --server http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard, extreme")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Word theme to catch")
	playCmd.Flags().StringVar(&flagServer, "server", "", "Base URL of a remote scorer")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger("flashread")
	defer closeLog()

	gameCfg := loadGameConfig(flagConfig)
	config.ApplyDifficultyPreset(&gameCfg, flagDifficulty)
	if flagTheme != "" && !slices.Contains(gameCfg.WordThemes(), flagTheme) {
		fmt.Fprintf(os.Stderr, "Warning: theme %q has no configured words, the scorer must provide them\n", flagTheme)
	}

	wordfall.SetConfigPath(flagConfig)
	wordfall.SetDifficultyPreset(flagDifficulty)
	wordfall.SetWordTheme(flagTheme)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	wireScoring(gameCfg, store, flagServer, logger)

	game, err := registry.Create(wordfall.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	cfg := terminalConfig()
	logger.Info("starting round", "player", cfg.Player, "difficulty", config.ParseDifficulty(gameCfg.Difficulty), "theme", wordfall.WordTheme())

	if err := tui.Run(game, store, cfg, tui.Options{Logger: logger, Themes: gameCfg.WordThemes()}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
