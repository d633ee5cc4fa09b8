package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/storage"
)

func TestPlayerName(t *testing.T) {
	t.Cleanup(func() { flagPlayer = "" })

	flagPlayer = "ann"
	if got := playerName(); got != "ann" {
		t.Errorf("playerName() = %q, want flag value", got)
	}

	flagPlayer = ""
	t.Setenv("USER", "bob")
	if got := playerName(); got != "bob" {
		t.Errorf("playerName() = %q, want $USER", got)
	}

	t.Setenv("USER", "")
	a, b := playerName(), playerName()
	if !strings.HasPrefix(a, "guest-") || len(a) != len("guest-")+8 {
		t.Errorf("guest name = %q", a)
	}
	if a == b {
		t.Error("guest names should differ")
	}
}

func TestLocalBackendWithoutStore(t *testing.T) {
	cfg := config.DefaultWordfallConfig()
	b := localBackend(cfg, nil)

	theme := cfg.WordThemes()[0]
	words, err := b.Words(context.Background(), theme)
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if len(words) != len(cfg.Words.Themes[theme]) {
		t.Errorf("got %d words, want the configured %d", len(words), len(cfg.Words.Themes[theme]))
	}
}

func TestLocalBackendPrefersStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, err := store.AddWords("Custom", []string{"alpha", "beta"}); err != nil {
		t.Fatalf("AddWords failed: %v", err)
	}

	b := localBackend(config.DefaultWordfallConfig(), store)
	words, err := b.Words(context.Background(), "Custom")
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if strings.Join(words, ",") != "alpha,beta" {
		t.Errorf("words = %v, want the stored pool", words)
	}
}
