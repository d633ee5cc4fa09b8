// Package config provides YAML-based game configuration loading and the
// difficulty table for the word fall game.
package config

import "sort"

// WordfallConfig contains all configuration for the word fall game.
type WordfallConfig struct {
	Difficulty string                 `yaml:"difficulty" toml:"difficulty"`
	Player     PlayerConfig           `yaml:"player" toml:"player"`
	Spawn      SpawnConfig            `yaml:"spawn" toml:"spawn"`
	Scoring    ScoringConfig          `yaml:"scoring" toml:"scoring"`
	Render     RenderConfig           `yaml:"render" toml:"render"`
	Theme      string                 `yaml:"theme" toml:"theme"`
	Themes     map[string]ThemeConfig `yaml:"themes" toml:"themes"`
	Words      WordsConfig            `yaml:"words" toml:"words"`
}

// PlayerConfig defines the player hitbox and pointer handling.
type PlayerConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`                   // hitbox radius in normalized units
	LaneY          float64 `yaml:"lane_y" toml:"lane_y"`                   // fixed vertical position
	PointerMapping string  `yaml:"pointer_mapping" toml:"pointer_mapping"` // "literal" or "corrected"
	KeyStep        float64 `yaml:"key_step" toml:"key_step"`               // pointer nudge per key press, fraction of width
}

// SpawnConfig defines how new falling words are generated.
type SpawnConfig struct {
	XMin        float64 `yaml:"x_min" toml:"x_min"`
	XMax        float64 `yaml:"x_max" toml:"x_max"`
	MinSize     int     `yaml:"min_size" toml:"min_size"`
	SizeRange   int     `yaml:"size_range" toml:"size_range"`
	RotMin      float64 `yaml:"rot_min" toml:"rot_min"`
	RotMax      float64 `yaml:"rot_max" toml:"rot_max"`
	FallMin     float64 `yaml:"fall_min" toml:"fall_min"`
	FallMax     float64 `yaml:"fall_max" toml:"fall_max"`
	Color       string  `yaml:"color" toml:"color"`
	ChanceScale float64 `yaml:"chance_scale" toml:"chance_scale"` // spawn chance = factor * chance_scale
	CapScale    float64 `yaml:"cap_scale" toml:"cap_scale"`       // entity cap = floor(factor * cap_scale)
	RotDivisor  float64 `yaml:"rot_divisor" toml:"rot_divisor"`   // |rotSpeed| <= factor / rot_divisor
	FallDivisor float64 `yaml:"fall_divisor" toml:"fall_divisor"` // fallSpeed <= factor / fall_divisor
}

// ScoringConfig defines the scoring collaborator and its reconciliation.
type ScoringConfig struct {
	TaskID        int    `yaml:"task_id" toml:"task_id"`
	Reconcile     string `yaml:"reconcile" toml:"reconcile"` // "sequenced" or "unordered"
	TimeoutMS     int    `yaml:"timeout_ms" toml:"timeout_ms"`
	CatchPoints   int    `yaml:"catch_points" toml:"catch_points"`
	ComboBonus    int    `yaml:"combo_bonus" toml:"combo_bonus"`
	FillerPenalty int    `yaml:"filler_penalty" toml:"filler_penalty"`
	MissPenalty   int    `yaml:"miss_penalty" toml:"miss_penalty"`
}

// RenderConfig defines the virtual pixel grid and sprite placement.
type RenderConfig struct {
	CellWidth     int     `yaml:"cell_width" toml:"cell_width"`   // virtual pixels per terminal column
	CellHeight    int     `yaml:"cell_height" toml:"cell_height"` // virtual pixels per terminal row
	SpriteOffsetX float64 `yaml:"sprite_offset_x" toml:"sprite_offset_x"`
	SpriteOffsetY float64 `yaml:"sprite_offset_y" toml:"sprite_offset_y"`
	SpriteSize    float64 `yaml:"sprite_size" toml:"sprite_size"`
}

// ThemeConfig is a visual palette: the terminal counterpart of the CSS
// variables the canvas used to read.
type ThemeConfig struct {
	Background string `yaml:"background" toml:"background"`
	Text       string `yaml:"text" toml:"text"`
	Accent     string `yaml:"accent" toml:"accent"`
	Font       string `yaml:"font" toml:"font"` // "regular", "mono" or "bold"
}

// WordsConfig holds the built-in word pools, keyed by theme name.
type WordsConfig struct {
	FillerTheme string              `yaml:"filler_theme" toml:"filler_theme"`
	Themes      map[string][]string `yaml:"themes" toml:"themes"`
}

// ActiveTheme returns the configured visual theme, falling back to the
// "classic" palette and then to an empty palette.
func (c WordfallConfig) ActiveTheme() ThemeConfig {
	if t, ok := c.Themes[c.Theme]; ok {
		return t
	}
	if t, ok := c.Themes["classic"]; ok {
		return t
	}
	return ThemeConfig{}
}

// WordThemes returns the names of the playable word themes, excluding the
// filler pool.
func (c WordfallConfig) WordThemes() []string {
	names := make([]string, 0, len(c.Words.Themes))
	for name := range c.Words.Themes {
		if name == c.Words.FillerTheme {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
