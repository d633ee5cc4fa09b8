package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/storage"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List, add and seed word pools",
	Long: `Manage the word pools stored in the scores database.

The local scorer and 'flashread scorer' read pools from the database and
fall back to the pools in the game config for themes it does not have.

Examples:
  flashread words list
  flashread words list History
  flashread words add Science atom cell orbit
  flashread words remove Science orbit
  flashread words seed --config ./my-wordfall.yaml`,
}

var wordsListCmd = &cobra.Command{
	Use:   "list [theme]",
	Short: "List themes, or the words of one theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			if len(args) == 0 {
				themes, err := store.Themes()
				if err != nil {
					return err
				}
				if len(themes) == 0 {
					fmt.Println("No word pools stored. Run 'flashread words seed' to load the defaults.")
					return nil
				}
				for _, t := range themes {
					words, err := store.Words(t)
					if err != nil {
						return err
					}
					fmt.Printf("  %-12s %d words\n", t, len(words))
				}
				return nil
			}

			words, err := store.Words(args[0])
			if err != nil {
				return err
			}
			if len(words) == 0 {
				fmt.Printf("Theme %q has no words.\n", args[0])
				return nil
			}
			fmt.Println(strings.Join(words, "\n"))
			return nil
		})
	},
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <theme> <word>...",
	Short: "Add words to a theme",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			n, err := store.AddWords(args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Printf("Added %d word(s) to %s.\n", n, args[0])
			return nil
		})
	},
}

var wordsRemoveCmd = &cobra.Command{
	Use:   "remove <theme> <word>",
	Short: "Remove a word from a theme",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			return store.RemoveWord(args[0], args[1])
		})
	},
}

var wordsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the configured pools into themes that have no words",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		gameCfg := loadGameConfig(flagConfig)
		return withStore(func(store *storage.Store) error {
			n, err := store.SeedWords(gameCfg.Words.Themes)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d word(s).\n", n)
			return nil
		})
	},
}

func init() {
	wordsSeedCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsRemoveCmd)
	wordsCmd.AddCommand(wordsSeedCmd)
}

// withStore opens the database for the duration of fn.
func withStore(fn func(store *storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()
	return fn(store)
}
