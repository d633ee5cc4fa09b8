package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/games/wordfall"
	"github.com/flashread/wordfall/internal/scoring"
	"github.com/flashread/wordfall/internal/storage"
)

// newLogger returns the file logger requested with --log, or a logger that
// discards everything. The TUI owns the terminal, so nothing logs to it.
func newLogger(prefix string) (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	//nolint:errcheck // Best-effort close
	return logger, func() { f.Close() }
}

// stderrLogger is used by the servers, which do not draw to the terminal.
func stderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Player = playerName()
	return cfg
}

// playerName picks the name results are recorded under.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "guest-" + uuid.NewString()[:8]
}

// openStore opens the scores database. Callers that can run without it
// get nil and a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// loadGameConfig loads the game config, falling back to the defaults.
func loadGameConfig(path string) config.WordfallConfig {
	cfg, err := config.LoadWordfall(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultWordfallConfig()
	}
	return cfg
}

// localBackend builds the in-process scoring backend. A nil store keeps
// the configured word pools and drops results.
func localBackend(cfg config.WordfallConfig, store *storage.Store) *scoring.Local {
	rules := scoring.RulesFrom(cfg.Scoring)
	if store == nil {
		return scoring.NewLocal(rules, cfg.Words.Themes, nil)
	}
	return scoring.NewLocal(rules, cfg.Words.Themes, store)
}

// wireScoring points the game at a remote scorer when serverURL is set
// and at the local backend otherwise.
func wireScoring(cfg config.WordfallConfig, store *storage.Store, serverURL string, logger *log.Logger) {
	wordfall.SetLogger(logger)

	if serverURL == "" {
		wordfall.SetBackend(localBackend(cfg, store))
		wordfall.SetResultSink(nil)
		return
	}

	timeout := time.Duration(cfg.Scoring.TimeoutMS) * time.Millisecond
	client := scoring.NewClient(serverURL, timeout)
	wordfall.SetBackend(client)
	wordfall.SetResultSink(client)
	logger.Info("using remote scorer", "url", client.BaseURL())
}
