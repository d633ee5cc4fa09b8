// Package render draws word fall frames onto a terminal cell buffer.
//
// The surface works in virtual pixels: every terminal cell covers a fixed
// block of pixels (8x16 by default), so text metrics, sprite placement and
// pointer positions keep the proportions of a pixel canvas while the output
// is a grid of runes.
package render

import "github.com/flashread/wordfall/internal/core"

// TextMetrics is the measured extent of a string, in pixels.
type TextMetrics struct {
	Width   float64 // advance width
	Ascent  float64 // distance above the baseline
	Descent float64 // distance below the baseline
}

// Height returns Ascent + Descent.
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Context is what a tick function may ask of the surface it runs in.
type Context interface {
	// MeasureText measures text at the given font size using the surface's
	// current font family.
	MeasureText(text string, size int) TextMetrics
	// CanvasSize returns the drawing buffer size in pixels.
	CanvasSize() core.Vec2
}

// TickFunc advances the simulation by dt milliseconds. A nil snapshot means
// the simulation produced nothing this frame.
type TickFunc func(ctx Context, dt float64) *core.GameData

// Pointer is a pointer move relative to the surface.
type Pointer struct {
	X, Y   float64   // surface-relative pixels
	Offset core.Vec2 // the surface's offset inside the terminal, in pixels
}

// PointerFunc receives surface-relative pointer moves.
type PointerFunc func(p Pointer)
