package render

import (
	"math"
	"time"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
)

// Theme holds the colors and font family a surface paints with.
type Theme struct {
	Background core.Color
	Text       core.Color
	Accent     core.Color
	Font       string
}

// ThemeFrom converts a configured palette.
func ThemeFrom(tc config.ThemeConfig) Theme {
	font := tc.Font
	if font == "" {
		font = FontRegular
	}
	return Theme{
		Background: core.ParseColor(tc.Background),
		Text:       core.ParseColor(tc.Text),
		Accent:     core.ParseColor(tc.Accent),
		Font:       font,
	}
}

// SpriteLayout places the player sprite relative to the player position,
// as fractions of the canvas width.
type SpriteLayout struct {
	OffsetX float64
	OffsetY float64
	Size    float64
}

// DefaultSpriteLayout centers the sprite slightly above the player point.
var DefaultSpriteLayout = SpriteLayout{OffsetX: 0.057, OffsetY: 0.07, Size: 0.12}

// Options configures a Surface.
type Options struct {
	CellW, CellH int
	Theme        Theme
	Measurer     Measurer
	Sprite       SpriteLayout
}

// OptionsFrom builds surface options from the game configuration.
func OptionsFrom(cfg config.WordfallConfig, m Measurer) Options {
	return Options{
		CellW:    cfg.Render.CellWidth,
		CellH:    cfg.Render.CellHeight,
		Theme:    ThemeFrom(cfg.ActiveTheme()),
		Measurer: m,
		Sprite: SpriteLayout{
			OffsetX: cfg.Render.SpriteOffsetX,
			OffsetY: cfg.Render.SpriteOffsetY,
			Size:    cfg.Render.SpriteSize,
		},
	}
}

// Surface is the drawing surface of one game view. The platform calls Frame
// on every frame; the surface paints the background, runs the tick function
// and draws whatever snapshot it returns.
type Surface struct {
	size   core.Vec2 // pixels
	offset core.Vec2 // pixels
	cellW  int
	cellH  int
	screen *core.Screen

	tick      TickFunc
	onPointer PointerFunc

	theme    Theme
	measurer Measurer
	layout   SpriteLayout

	assets     AssetState
	assetErr   error
	sprite     *Sprite
	spriteLoad <-chan SpriteResult

	last        time.Time
	hasBaseline bool
	closed      bool

	unsubscribe func()
}

// Default pixel size of one terminal cell.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// cellSize replaces unset cell dimensions with the defaults.
func cellSize(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultCellW
	}
	if h <= 0 {
		h = DefaultCellH
	}
	return w, h
}

// NewSurface creates a surface with an empty drawing buffer.
func NewSurface(opts Options) *Surface {
	opts.CellW, opts.CellH = cellSize(opts.CellW, opts.CellH)
	if opts.Sprite == (SpriteLayout{}) {
		opts.Sprite = DefaultSpriteLayout
	}
	if opts.Measurer == nil {
		opts.Measurer = FixedMeasurer{RuneWidth: 10, Ascent: 14, Descent: 4}
	}
	return &Surface{
		cellW:    opts.CellW,
		cellH:    opts.CellH,
		screen:   core.NewScreen(0, 0),
		theme:    opts.Theme,
		measurer: opts.Measurer,
		layout:   opts.Sprite,
		assets:   AssetLoading,
	}
}

// Role identifies the surface the way an accessible image would.
func (s *Surface) Role() string {
	return "img"
}

// CellSize returns the pixel size of one terminal cell.
func (s *Surface) CellSize() (int, int) {
	return s.cellW, s.cellH
}

// Screen returns the drawing buffer.
func (s *Surface) Screen() *core.Screen {
	return s.screen
}

// CanvasSize implements Context.
func (s *Surface) CanvasSize() core.Vec2 {
	return s.size
}

// MeasureText implements Context using the theme's font family.
func (s *Surface) MeasureText(text string, size int) TextMetrics {
	return s.measurer.Measure(s.theme.Font, text, size)
}

// Offset returns the surface's top-left corner in terminal pixels.
func (s *Surface) Offset() core.Vec2 {
	return s.offset
}

// SetTheme changes the palette used from the next frame on.
func (s *Surface) SetTheme(t Theme) {
	s.theme = t
}

// SetTick replaces the tick function and restarts the frame clock.
// A nil tick leaves the surface idle.
func (s *Surface) SetTick(fn TickFunc) {
	s.tick = fn
	s.hasBaseline = false
}

// SetPointerHandler sets the receiver of pointer moves.
func (s *Surface) SetPointerHandler(fn PointerFunc) {
	s.onPointer = fn
}

// Resize resets the drawing buffer to size pixels and restarts the frame
// clock. The buffer is rounded down to whole cells.
func (s *Surface) Resize(size core.Vec2) {
	s.size = size
	cols := int(size.X) / s.cellW
	rows := int(size.Y) / s.cellH
	s.screen.Resize(cols, rows)
	s.screen.Clear()
	s.hasBaseline = false
}

// Bind sizes the surface from a container and follows its changes.
func (s *Surface) Bind(c *Container) {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.unsubscribe = c.Subscribe(func(b Bounds) {
		s.offset = b.Offset
		if b.Size != s.size {
			s.Resize(b.Size)
		}
	})
}

// PointerMove takes a pointer position in absolute terminal pixels,
// makes it surface-relative and forwards it.
func (s *Surface) PointerMove(absX, absY float64) {
	if s.onPointer == nil || s.closed {
		return
	}
	s.onPointer(Pointer{
		X:      absX - s.offset.X,
		Y:      absY - s.offset.Y,
		Offset: s.offset,
	})
}

// AttachSprite starts waiting for a sprite load. Until it resolves the
// player is not drawn.
func (s *Surface) AttachSprite(ch <-chan SpriteResult) {
	s.spriteLoad = ch
	s.sprite = nil
	s.assetErr = nil
	s.assets = AssetLoading
}

// AssetState reports whether the player sprite is drawable.
func (s *Surface) AssetState() AssetState {
	return s.assets
}

// AssetErr returns the sprite load error, if any.
func (s *Surface) AssetErr() error {
	return s.assetErr
}

func (s *Surface) pollAssets() {
	if s.spriteLoad == nil {
		return
	}
	select {
	case res, ok := <-s.spriteLoad:
		s.spriteLoad = nil
		switch {
		case !ok:
			s.assets = AssetFailed
		case res.Err != nil:
			s.assets = AssetFailed
			s.assetErr = res.Err
		default:
			s.sprite = res.Sprite
			s.assets = AssetReady
		}
	default:
	}
}

// Close tears the surface down. Later frames and pointer moves are ignored.
func (s *Surface) Close() {
	s.closed = true
	s.tick = nil
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Frame runs one frame at time now. It reports whether a snapshot was drawn.
//
// dt is the time since the last frame whose tick produced a snapshot. The
// first productive frame after a (re)start gets dt = 0.
func (s *Surface) Frame(now time.Time) bool {
	if s.closed {
		return false
	}
	s.pollAssets()
	if s.tick == nil {
		return false
	}

	s.screen.Fill(s.theme.Background)

	dt := 0.0
	if s.hasBaseline {
		dt = float64(now.Sub(s.last)) / float64(time.Millisecond)
	}

	data := s.tick(s, dt)
	if data == nil {
		return false
	}
	s.last = now
	s.hasBaseline = true

	s.drawText(data)
	s.drawPlayer(data)
	return true
}

func (s *Surface) drawText(data *core.GameData) {
	for _, e := range data.TextArray {
		runes := []rune(e.Text)
		if len(runes) == 0 {
			continue
		}
		pos := core.ToScreenPos(e.Pos, s.size)
		m := s.MeasureText(e.Text, e.Size)
		adv := m.Width / float64(len(runes))
		// Glyph centers sit half the ink height above the baseline.
		ly := -(m.Ascent - m.Descent) / 2
		sin, cos := math.Sincos(e.Angle)

		for i, r := range runes {
			lx := (float64(i)+0.5)*adv - m.Width/2
			x := pos.X + lx*cos - ly*sin
			y := pos.Y + lx*sin + ly*cos
			s.screen.SetFG(s.col(x), s.row(y), r, s.theme.Text)
		}
	}
}

func (s *Surface) drawPlayer(data *core.GameData) {
	if s.assets != AssetReady || s.sprite == nil {
		return
	}

	p := core.ToScreenPos(data.PlayerPos, s.size)
	w := s.size.X
	rx := p.X - s.layout.OffsetX*w
	ry := p.Y - s.layout.OffsetY*w
	dim := s.layout.Size * w

	x0, y0 := s.col(rx), s.row(ry)
	x1 := int(math.Ceil((rx + dim) / float64(s.cellW)))
	y1 := int(math.Ceil((ry + dim) / float64(s.cellH)))
	area := core.NewRect(x0, y0, x1-x0, y1-y0)

	sx := area.X + (area.W-s.sprite.Width())/2
	sy := area.Y + (area.H-s.sprite.Height())/2
	for dy, line := range s.sprite.Lines {
		dx := 0
		for _, r := range line {
			x, y := sx+dx, sy+dy
			dx++
			if r == ' ' || !area.Contains(x, y) {
				continue
			}
			s.screen.SetFG(x, y, r, s.theme.Accent)
		}
	}
}

func (s *Surface) col(px float64) int {
	return int(math.Floor(px / float64(s.cellW)))
}

func (s *Surface) row(py float64) int {
	return int(math.Floor(py / float64(s.cellH)))
}
