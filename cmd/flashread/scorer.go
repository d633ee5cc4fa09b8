package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/server"
)

var flagAddr string

var scorerCmd = &cobra.Command{
	Use:   "scorer",
	Short: "Start the HTTP scoring server",
	Long: `Start the FlashRead scoring server.

The server scores word catches and misses, hands out word pools and keeps
the leaderboard. Clients connect with 'flashread play --server <url>'.

Endpoints:
  POST /api/task2/points   score a catch or a miss
  POST /api/task2/words    word pool for a theme
  POST /api/task2/score    save a finished round
  GET  /api/leaderboard    best rounds (?limit=&difficulty=)
  GET  /api/health         liveness

Examples:
  flashread scorer
  flashread scorer --addr :9090 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScorer,
}

func init() {
	scorerCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "HTTP listen address")
	scorerCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
}

func runScorer(_ *cobra.Command, _ []string) error {
	logger := stderrLogger("flashread-scorer")
	if flagLogPath != "" {
		fileLogger, closeLog := newLogger("flashread-scorer")
		defer closeLog()
		logger = fileLogger
	}

	gameCfg := loadGameConfig(flagConfig)

	store := openStore()
	var board server.Leaderboard
	if store != nil {
		defer store.Close()
		if _, err := store.SeedWords(gameCfg.Words.Themes); err != nil {
			logger.Warn("seeding word pools", "err", err)
		}
		board = store
	}

	local := localBackend(gameCfg, store)
	rules := local.Rules()
	logger.Info("scoring rules",
		"catch", rules.CatchPoints, "combo_bonus", rules.ComboBonus,
		"filler_penalty", rules.FillerPenalty, "miss_penalty", rules.MissPenalty)

	srv := server.New(local, board, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, flagAddr); err != nil {
		return fmt.Errorf("scorer: %w", err)
	}
	return nil
}
