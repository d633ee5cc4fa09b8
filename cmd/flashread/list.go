package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/registry"
	"github.com/flashread/wordfall/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the registered games and how many rounds of each were recorded.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Rounds")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "------")

	for _, g := range games {
		rounds := 0
		if st, ok := stats[g.ID]; ok {
			rounds = st.GamesCount
		}
		fmt.Printf("  %-*s  %-12s  %d\n", maxIDLen, g.ID, g.Title, rounds)
	}

	fmt.Println()
	fmt.Println("Run 'flashread play' to play, or 'flashread menu' to pick a theme first.")
}
