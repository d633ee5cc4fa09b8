package config

import (
	_ "embed"
)

//go:embed defaults/wordfall.yaml
var defaultWordfallYAML []byte

// DefaultWordfallConfig returns the built-in configuration used when the
// embedded YAML cannot be parsed.
func DefaultWordfallConfig() WordfallConfig {
	return WordfallConfig{
		Difficulty: string(DifficultyMedium),
		Player: PlayerConfig{
			Radius:         0.05,
			LaneY:          0.1,
			PointerMapping: "literal",
			KeyStep:        0.03,
		},
		Spawn: SpawnConfig{
			XMin:        0.1,
			XMax:        0.9,
			MinSize:     20,
			SizeRange:   20,
			RotMin:      0.0002,
			RotMax:      0.01,
			FallMin:     0.0002,
			FallMax:     0.001,
			Color:       "black",
			ChanceScale: 2,
			CapScale:    400,
			RotDivisor:  4,
			FallDivisor: 20,
		},
		Scoring: ScoringConfig{
			TaskID:        2,
			Reconcile:     "sequenced",
			TimeoutMS:     3000,
			CatchPoints:   10,
			ComboBonus:    5,
			FillerPenalty: 15,
			MissPenalty:   5,
		},
		Render: RenderConfig{
			CellWidth:     8,
			CellHeight:    16,
			SpriteOffsetX: 0.057,
			SpriteOffsetY: 0.07,
			SpriteSize:    0.12,
		},
		Theme: "classic",
		Themes: map[string]ThemeConfig{
			"classic": {Background: "235", Text: "255", Accent: "214", Font: "regular"},
		},
		Words: WordsConfig{
			FillerTheme: "Fillers",
			Themes: map[string][]string{
				"Fillers":    {"the", "and", "but", "with", "from", "into"},
				"History":    {"empire", "treaty", "dynasty", "revolution"},
				"Technology": {"compiler", "network", "silicon", "kernel"},
				"Anime":      {"shonen", "mecha", "isekai", "senpai"},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWordfallYAML
}
