package config

import "math"

// Difficulty names a difficulty level. Any string is accepted; names outside
// the table behave as the default level.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyExtreme Difficulty = "EXTREME"
)

// Difficulties lists the selectable levels in menu order.
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyExtreme,
}

type difficultyLevel struct {
	factor float64
	health int
}

var difficultyTable = map[Difficulty]difficultyLevel{
	DifficultyEasy:    {factor: 0.005, health: 10},
	DifficultyMedium:  {factor: 0.007, health: 5},
	DifficultyHard:    {factor: 0.009, health: 3},
	DifficultyExtreme: {factor: 0.02, health: 1},
}

var defaultLevel = difficultyLevel{factor: 0.007, health: 5}

func (d Difficulty) level() difficultyLevel {
	if l, ok := difficultyTable[d]; ok {
		return l
	}
	return defaultLevel
}

// Factor returns the spawn factor controlling spawn chance and entity cap.
func (d Difficulty) Factor() float64 {
	return d.level().factor
}

// MaxHealth returns the health budget for the difficulty.
func (d Difficulty) MaxHealth() int {
	return d.level().health
}

// SpawnChance returns the per-tick spawn probability.
func (d Difficulty) SpawnChance(spawn SpawnConfig) float64 {
	return d.Factor() * spawn.ChanceScale
}

// SpawnCap returns the maximum number of live entities. The product is
// floored so the live count never exceeds factor * cap_scale.
func (d Difficulty) SpawnCap(spawn SpawnConfig) int {
	return int(math.Floor(d.Factor() * spawn.CapScale))
}

// Next returns the level after d in menu order, wrapping around.
// Unknown names advance to the first level.
func (d Difficulty) Next() Difficulty {
	for i, l := range Difficulties {
		if l == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Difficulties[0]
}

// ParseDifficulty maps CLI spellings onto difficulty names.
// Unrecognized input is returned unchanged and plays as the default level.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy", "Easy":
		return DifficultyEasy
	case "medium", "normal", "Medium":
		return DifficultyMedium
	case "hard", "Hard":
		return DifficultyHard
	case "extreme", "EXTREME", "Extreme":
		return DifficultyExtreme
	}
	return Difficulty(s)
}
