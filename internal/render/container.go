package render

import "github.com/flashread/wordfall/internal/core"

// Bounds is a measured area in pixels.
type Bounds struct {
	Offset core.Vec2 // top-left corner inside the terminal
	Size   core.Vec2
}

// Container measures the terminal area a surface lives in and tells
// subscribers when it changes. The platform feeds it layout observations;
// nothing downstream looks the layout up on its own.
//
// A Container is used from a single goroutine (the UI loop).
type Container struct {
	cellW, cellH int
	area         core.Rect
	observed     bool
	nextID       int
	subs         map[int]func(Bounds)
}

// NewContainer creates a container whose cells are cellW x cellH pixels.
// Unset dimensions get the same defaults as a Surface.
func NewContainer(cellW, cellH int) *Container {
	cellW, cellH = cellSize(cellW, cellH)
	return &Container{
		cellW: cellW,
		cellH: cellH,
		subs:  make(map[int]func(Bounds)),
	}
}

// CellSize returns the pixel size of one terminal cell.
func (c *Container) CellSize() (int, int) {
	return c.cellW, c.cellH
}

// Area returns the last observed area in cells.
func (c *Container) Area() core.Rect {
	return c.area
}

// Bounds returns the last observed area in pixels.
func (c *Container) Bounds() Bounds {
	return Bounds{
		Offset: core.V(float64(c.area.X*c.cellW), float64(c.area.Y*c.cellH)),
		Size:   core.V(float64(c.area.W*c.cellW), float64(c.area.H*c.cellH)),
	}
}

// Observe records the area (in cells) the surface occupies. Subscribers are
// notified only when the area actually changes.
func (c *Container) Observe(area core.Rect) {
	area.W = max(area.W, 0)
	area.H = max(area.H, 0)
	if c.observed && area == c.area {
		return
	}
	c.area = area
	c.observed = true

	b := c.Bounds()
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.subs[id]; ok {
			fn(b)
		}
	}
}

// Subscribe registers fn for bounds changes. If an area was already observed
// fn is called immediately. The returned function unsubscribes.
func (c *Container) Subscribe(fn func(Bounds)) func() {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	if c.observed {
		fn(c.Bounds())
	}
	return func() {
		delete(c.subs, id)
	}
}
