package wordfall

import (
	"math"

	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/render"
)

// textBox returns the collision box of a word in game space and its center.
// The box sits on the word's position (the baseline) and is half the text
// height taller on each side once scaled by the canvas aspect ratio.
func textBox(e FallingEntity, m render.TextMetrics, canvas core.Vec2) (core.Box, core.Vec2) {
	w := m.Width / canvas.X
	h := m.Height() / canvas.Y
	center := core.V(e.Pos.X, e.Pos.Y+h/2)
	aspect := canvas.X / canvas.Y
	return core.BoxAround(center, w/2, h/2*aspect), center
}

// hitDistance is the distance from the player to a word's rotated box.
// The player is rotated into the word's frame, so the box can stay axis
// aligned. The word is drawn turned by Angle in screen space, where y
// points down, which is -Angle in game space; undoing it rotates the
// player by +Angle. A degenerate canvas never collides.
func hitDistance(e FallingEntity, m render.TextMetrics, canvas core.Vec2, player core.Vec2) float64 {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return math.Inf(1)
	}
	box, center := textBox(e, m, canvas)
	return box.Dist(player.RotateAround(center, e.Angle))
}
