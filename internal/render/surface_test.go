package render

import (
	"errors"
	"testing"
	"time"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
)

func newTestSurface() *Surface {
	s := NewSurface(Options{
		CellW:    8,
		CellH:    16,
		Theme:    Theme{Background: core.ColorBlue, Text: core.ColorWhite, Accent: core.ColorYellow, Font: FontRegular},
		Measurer: FixedMeasurer{RuneWidth: 10, Ascent: 14, Descent: 4},
	})
	s.Resize(core.V(800, 320))
	return s
}

func readySprite(t *testing.T) <-chan SpriteResult {
	t.Helper()
	sp, err := ParseSprite("\\_/")
	if err != nil {
		t.Fatal(err)
	}
	ch := make(chan SpriteResult, 1)
	ch <- SpriteResult{Sprite: sp}
	close(ch)
	return ch
}

func TestSurfaceRole(t *testing.T) {
	if got := newTestSurface().Role(); got != "img" {
		t.Errorf("Role() = %q, expected img", got)
	}
}

func TestSurfaceIdleWithoutTick(t *testing.T) {
	s := newTestSurface()

	for i := 0; i < 3; i++ {
		if s.Frame(time.Now()) {
			t.Fatal("frame without a tick function should not draw")
		}
	}
	if s.Screen().GetCell(0, 0).BG != core.NoColor {
		t.Error("idle surface should not paint the background")
	}
}

func TestSurfaceDtBaseline(t *testing.T) {
	s := newTestSurface()
	start := time.Unix(1000, 0)

	var dts []float64
	produce := []bool{true, false, false, true, true}
	call := 0
	s.SetTick(func(ctx Context, dt float64) *core.GameData {
		dts = append(dts, dt)
		ok := produce[call]
		call++
		if !ok {
			return nil
		}
		return core.NewGameData(core.V(0.5, 0.1), nil)
	})

	for i := range produce {
		s.Frame(start.Add(time.Duration(i*16) * time.Millisecond))
	}

	// Frames returning nil keep the baseline at the last productive frame.
	want := []float64{0, 16, 32, 48, 16}
	for i, w := range want {
		if dts[i] != w {
			t.Errorf("frame %d dt = %v, expected %v", i, dts[i], w)
		}
	}
}

func TestSurfaceSetTickRestartsBaseline(t *testing.T) {
	s := newTestSurface()
	start := time.Unix(1000, 0)

	var last float64
	tick := func(ctx Context, dt float64) *core.GameData {
		last = dt
		return core.NewGameData(core.V(0.5, 0.1), nil)
	}
	s.SetTick(tick)
	s.Frame(start)
	s.Frame(start.Add(20 * time.Millisecond))
	if last != 20 {
		t.Fatalf("dt = %v, expected 20", last)
	}

	s.SetTick(tick)
	s.Frame(start.Add(500 * time.Millisecond))
	if last != 0 {
		t.Errorf("dt after SetTick = %v, expected 0", last)
	}

	s.Frame(start.Add(510 * time.Millisecond))
	s.Resize(core.V(640, 320))
	s.Frame(start.Add(900 * time.Millisecond))
	if last != 0 {
		t.Errorf("dt after Resize = %v, expected 0", last)
	}
}

func TestSurfacePaintsBackgroundEvenWhenTickReturnsNil(t *testing.T) {
	s := newTestSurface()
	s.SetTick(func(ctx Context, dt float64) *core.GameData { return nil })

	if s.Frame(time.Now()) {
		t.Error("nil snapshot should not count as drawn")
	}
	if s.Screen().GetCell(3, 3).BG != core.ColorBlue {
		t.Error("background should be painted before the tick runs")
	}
}

func TestSurfaceDrawsTextWithThemeColor(t *testing.T) {
	s := newTestSurface()
	s.SetTick(func(ctx Context, dt float64) *core.GameData {
		return core.NewGameData(core.V(0.5, 0.1), []core.FallingEntity{
			{Text: "cat", Pos: core.V(0.5, 0.5), Color: "red", Size: 20},
		})
	})
	s.Frame(time.Now())

	found := 0
	scr := s.Screen()
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			c := scr.GetCell(x, y)
			if c.Rune == 'c' || c.Rune == 'a' || c.Rune == 't' {
				found++
				if c.FG != core.ColorWhite {
					t.Errorf("glyph %q drawn in %v, expected theme text color", c.Rune, c.FG)
				}
			}
		}
	}
	if found != 3 {
		t.Errorf("found %d glyphs, expected 3", found)
	}

	// Baseline at y = 160px, glyph centers 5px above: row 9.
	if scr.Get(50, 9) != 'a' {
		t.Errorf("middle glyph should be centered at column 50, row 9; row = %q", scr.Row(9))
	}
}

func TestSurfaceSkipsPlayerUntilSpriteReady(t *testing.T) {
	s := newTestSurface()
	s.SetTick(func(ctx Context, dt float64) *core.GameData {
		return core.NewGameData(core.V(0.5, 0.5), nil)
	})

	ch := make(chan SpriteResult, 1)
	s.AttachSprite(ch)

	s.Frame(time.Now())
	if s.AssetState() != AssetLoading {
		t.Fatalf("asset state = %v, expected loading", s.AssetState())
	}
	if countRune(s.Screen(), '_') != 0 {
		t.Error("player should not be drawn while the sprite is loading")
	}

	sp, _ := ParseSprite("\\_/")
	ch <- SpriteResult{Sprite: sp}
	s.Frame(time.Now())
	if s.AssetState() != AssetReady {
		t.Fatalf("asset state = %v, expected ready", s.AssetState())
	}
	if countRune(s.Screen(), '_') != 1 {
		t.Error("player should be drawn once the sprite is ready")
	}
}

func TestSurfaceSpriteFailure(t *testing.T) {
	s := newTestSurface()
	ch := make(chan SpriteResult, 1)
	ch <- SpriteResult{Err: errors.New("boom")}
	s.AttachSprite(ch)
	s.SetTick(func(ctx Context, dt float64) *core.GameData {
		return core.NewGameData(core.V(0.5, 0.5), nil)
	})
	s.Frame(time.Now())

	if s.AssetState() != AssetFailed {
		t.Errorf("asset state = %v, expected failed", s.AssetState())
	}
	if s.AssetErr() == nil {
		t.Error("AssetErr should report the load error")
	}
}

func TestSurfacesDoNotShareAssetState(t *testing.T) {
	a := newTestSurface()
	b := newTestSurface()
	a.AttachSprite(readySprite(t))
	b.AttachSprite(make(chan SpriteResult))

	tick := func(ctx Context, dt float64) *core.GameData { return core.NewGameData(core.V(0.5, 0.5), nil) }
	a.SetTick(tick)
	b.SetTick(tick)
	a.Frame(time.Now())
	b.Frame(time.Now())

	if a.AssetState() != AssetReady || b.AssetState() != AssetLoading {
		t.Errorf("states = %v/%v, expected ready/loading", a.AssetState(), b.AssetState())
	}
}

func TestSurfacePointerMoveSubtractsOffset(t *testing.T) {
	s := newTestSurface()
	c := NewContainer(8, 16)
	c.Observe(core.NewRect(2, 1, 100, 20))
	s.Bind(c)

	var got Pointer
	s.SetPointerHandler(func(p Pointer) { got = p })
	s.PointerMove(116, 48)

	if got.X != 100 || got.Y != 32 {
		t.Errorf("pointer = (%v, %v), expected (100, 32)", got.X, got.Y)
	}
	if got.Offset != core.V(16, 16) {
		t.Errorf("offset = %v, expected (16, 16)", got.Offset)
	}
	if s.CanvasSize() != core.V(800, 320) {
		t.Errorf("canvas size = %v, expected container size", s.CanvasSize())
	}
}

func TestSurfaceClose(t *testing.T) {
	s := newTestSurface()
	calls := 0
	s.SetTick(func(ctx Context, dt float64) *core.GameData {
		calls++
		return core.NewGameData(core.V(0.5, 0.1), nil)
	})
	s.SetPointerHandler(func(p Pointer) { calls++ })

	s.Close()
	s.Frame(time.Now())
	s.PointerMove(1, 1)
	if calls != 0 {
		t.Errorf("closed surface made %d calls", calls)
	}
}

func countRune(s *core.Screen, r rune) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == r {
				n++
			}
		}
	}
	return n
}

func TestThemeFromDefaultsFont(t *testing.T) {
	th := ThemeFrom(config.ThemeConfig{Background: "17", Text: "white"})
	if th.Font != FontRegular {
		t.Errorf("font = %q, expected regular", th.Font)
	}
	if th.Background != core.Color(17) || th.Text != core.ColorWhite || th.Accent != core.NoColor {
		t.Errorf("theme = %+v", th)
	}
}
