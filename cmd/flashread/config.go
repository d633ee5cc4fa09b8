package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flashread/wordfall/internal/config"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the game config",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default game config",
	Long: `Write the built-in game config so it can be edited.

Without a path the file goes to ~/.flashread/configs/wordfall.yaml, which
is picked up automatically. A path ending in .toml is written as TOML.
Existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := config.UserConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no home directory, pass a path")
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective game config",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if flagShowDefault {
			_, err := os.Stdout.Write(config.DefaultYAML())
			return err
		}

		cfg := loadGameConfig(flagConfig)
		d := config.ParseDifficulty(cfg.Difficulty)
		fmt.Printf("difficulty:  %s (factor %.2f, %d hearts, at most %d words)\n",
			d, d.Factor(), d.MaxHealth(), d.SpawnCap(cfg.Spawn))
		fmt.Printf("theme:       %s\n", cfg.Theme)
		fmt.Printf("reconcile:   %s\n", cfg.Scoring.Reconcile)
		fmt.Printf("pointer:     %s\n", cfg.Player.PointerMapping)
		fmt.Printf("word themes: %v\n", cfg.WordThemes())
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	configShowCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in config file instead")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
