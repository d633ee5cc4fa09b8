package tui

import (
	"strings"
	"testing"

	"github.com/flashread/wordfall/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hi", core.NoColor)
	s.DrawText(1, 1, "yo", core.NoColor)

	got := RenderScreen(s)
	want := "hi   \n yo  "
	if got != want {
		t.Errorf("RenderScreen = %q, want %q", got, want)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 3)
	s.Fill(core.ColorBlue)
	s.DrawText(1, 1, "rome", core.ColorYellow)

	got := RenderScreen(s)
	if n := strings.Count(got, "\n"); n != 2 {
		t.Errorf("got %d line breaks, want 2", n)
	}
	if !strings.Contains(got, "rome") {
		t.Errorf("rendered screen lost its text: %q", got)
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if got := RenderScreen(core.NewScreen(0, 0)); got != "" {
		t.Errorf("empty screen rendered %q", got)
	}
}

func TestCellStyleCached(t *testing.T) {
	a := cellStyle(core.ColorRed, core.NoColor)
	b := cellStyle(core.ColorRed, core.NoColor)
	if a.Render("x") != b.Render("x") {
		t.Error("cached style renders differently")
	}

	styleMu.Lock()
	_, ok := styleCache[colorPair{core.ColorRed, core.NoColor}]
	styleMu.Unlock()
	if !ok {
		t.Error("style was not cached")
	}
}
