package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/games/wordfall"
	"github.com/flashread/wordfall/internal/scoring"
	"github.com/flashread/wordfall/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best Word Fall rounds.

Rounds are read from the local database, or from a scorer with --server.

Examples:
  flashread scores
  flashread scores --difficulty hard --limit 20
  flashread scores --server http://localhost:8080
  flashread scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Only show rounds of this difficulty")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().StringVar(&flagServer, "server", "", "Read the leaderboard from a remote scorer")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded round")
}

func runScores(_ *cobra.Command, _ []string) error {
	difficulty := ""
	if flagDifficulty != "" {
		difficulty = string(config.ParseDifficulty(flagDifficulty))
	}

	if flagServer != "" {
		return remoteScores()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(wordfall.ID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	scores, err := store.TopScoresFor(wordfall.ID, difficulty, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "High Scores - Word Fall"
	if difficulty != "" {
		title += " (" + difficulty + ")"
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flashread play' to set the first high score!")
		return nil
	}

	printHeader()
	for i, e := range scores {
		printRow(i+1, e.Player, e.Score, e.CorrectWords, e.Difficulty, e.Theme, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(wordfall.ID); err == nil && stats != nil {
		fmt.Printf("Best: %d  Average: %.1f  Rounds: %d  Words caught: %d\n",
			stats.HighScore, stats.AvgScore, stats.GamesCount, stats.CorrectWords)
	}
	return nil
}

func remoteScores() error {
	client := scoring.NewClient(flagServer, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := client.Leaderboard(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("fetching leaderboard: %w", err)
	}

	fmt.Printf("High Scores - %s\n", client.BaseURL())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	printHeader()
	for i, e := range entries {
		date := e.CreatedAt
		if t, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
			date = t.Local().Format("2006-01-02 15:04")
		}
		printRow(i+1, e.Player, e.Points, e.CorrectWords, e.Difficulty, e.Theme, date)
	}
	return nil
}

func printHeader() {
	fmt.Printf("  %-4s  %-14s  %6s  %5s  %-8s  %-10s  %s\n", "Rank", "Player", "Points", "Words", "Level", "Theme", "Date")
	fmt.Printf("  %-4s  %-14s  %6s  %5s  %-8s  %-10s  %s\n", "----", "------", "------", "-----", "-----", "-----", "----")
}

func printRow(rank int, player string, points, words int, difficulty, theme, date string) {
	fmt.Printf("  %-4d  %-14s  %6d  %5d  %-8s  %-10s  %s\n", rank, player, points, words, difficulty, theme, date)
}
