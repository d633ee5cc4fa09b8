package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/games/wordfall"
	"github.com/flashread/wordfall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Word Fall SSH server",
	Long: `Start an SSH server that lets users connect and play Word Fall.

Each SSH connection gets its own session with the difficulty and theme
menu. Results are recorded under the SSH user name and all users share
the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flashread/host_key

Examples:
  flashread serve                           # Listen on :23234 with auto-generated key
  flashread serve --ssh :2222               # Listen on port 2222
  flashread serve --host-key ./my_host_key  # Use specific host key
  flashread serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	serveCmd.Flags().StringVar(&flagServer, "server", "", "Base URL of a remote scorer")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := stderrLogger("flashread-ssh")

	gameCfg := loadGameConfig(flagConfig)
	wordfall.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
		if n, err := store.SeedWords(gameCfg.Words.Themes); err != nil {
			logger.Warn("seeding word pools", "err", err)
		} else if n > 0 {
			logger.Info("seeded word pools", "words", n)
		}
	}
	wireScoring(gameCfg, store, flagServer, logger)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.Store = store
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.GameID = wordfall.ID
	cfg.Themes = gameCfg.WordThemes()
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Word Fall SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
