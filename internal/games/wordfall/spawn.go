package wordfall

import (
	"math"

	"github.com/flashread/wordfall/internal/core"
)

// spawn adds at most one word per tick. The chance and the cap both come
// from the difficulty factor; with no words to choose from nothing spawns.
func (g *Game) spawn() {
	sc := g.cfg.Spawn
	if g.rng.Float64() >= g.difficulty.SpawnChance(sc) {
		return
	}
	if len(g.entities) >= g.difficulty.SpawnCap(sc) {
		return
	}

	pool := len(g.filler) + len(g.words)
	if pool == 0 {
		return
	}
	idx := g.rng.Intn(pool)
	var text string
	if idx < len(g.filler) {
		text = g.filler[idx]
	} else {
		text = g.words[idx-len(g.filler)]
	}

	factor := g.difficulty.Factor()
	x := g.rng.Float64()*(sc.XMax-sc.XMin) + sc.XMin

	sign := 1.0
	if g.rng.Float64() < 0.5 {
		sign = -1
	}
	rot := sign * math.Min(math.Max(sc.RotMin, g.rng.Float64()*sc.RotMax), factor/sc.RotDivisor)
	fall := math.Min(math.Max(sc.FallMin, g.rng.Float64()*sc.FallMax), factor/sc.FallDivisor)
	size := int(math.Floor(g.rng.Float64()*float64(sc.SizeRange) + float64(sc.MinSize)))

	g.entities = append(g.entities, FallingEntity{
		Text:      text,
		Pos:       core.V(x, 1),
		Color:     sc.Color,
		Angle:     0,
		RotSpeed:  rot,
		FallSpeed: fall,
		Size:      size,
	})
}
