// flashread runs the Word Fall reading game in the terminal.
//
// Usage:
//
//	flashread play            - Play a round of Word Fall
//	flashread menu            - Pick difficulty and theme from a menu
//	flashread serve           - Start SSH server for remote play
//	flashread scorer          - Start the HTTP scoring server
//	flashread scores          - Show high scores
//	flashread list            - List available games
//	flashread words           - Manage word pools
//	flashread config init     - Write the default game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.flashread/scores.db)
//	--log <path>    - Write a debug log to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/flashread/wordfall/internal/games/wordfall"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagPlayer  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flashread",
	Short: "FlashRead Word Fall - catch the words of your theme",
	Long: `FlashRead Word Fall is a speed reading game for the terminal.

Words fall down the field. Move with the mouse or the arrow keys and
catch the words that belong to your theme; let the filler words fall.

Available commands:
  play     - Play a round directly
  menu     - Pick difficulty and theme from a menu
  serve    - Start SSH server for remote play
  scorer   - Start the HTTP scoring server
  scores   - View high scores
  list     - Show all available games
  words    - List, add and seed word pools
  config   - Write the default game config

Examples:
  flashread play --theme History --difficulty hard
  flashread play --server http://localhost:8080
  flashread menu
  flashread serve --ssh :2222
  flashread scorer --addr :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flashread/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a debug log to this file")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name results are recorded under (default: $USER or a guest name)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scorerCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(configCmd)
}
