package wordfall

import (
	"fmt"
	"strings"

	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/render"
)

// Help line shown under the field.
const helpLine = "←/→ move  ENTER start/stop  TAB difficulty  P pause  Q quit"

// Render draws the HUD, the field and any overlay onto dst.
func (a *Arcade) Render(dst *core.Screen) {
	pal := render.ThemeFrom(a.cfg.ActiveTheme())
	dst.Fill(pal.Background)

	a.drawTopBar(dst, pal)

	if a.surface != nil {
		dst.Blit(a.surface.Screen(), 0, hudTop)
	}

	a.drawBottomBar(dst, pal)

	switch {
	case a.ended:
		drawCenteredMessage(dst, pal, "GAME OVER",
			fmt.Sprintf("Points: %d  Words: %d", a.session.Points, a.session.CorrectWords),
			"ENTER or R to play again")
	case a.loading != nil:
		drawCenteredMessage(dst, pal, "Loading words", a.theme)
	case a.paused:
		drawCenteredMessage(dst, pal, "PAUSED", "Press P to resume")
	case a.game.State() == Idle:
		drawCenteredMessage(dst, pal, "WORD FALL",
			fmt.Sprintf("Catch the %s words", a.theme),
			"Press ENTER to start")
	}
}

func (a *Arcade) drawTopBar(dst *core.Screen, pal render.Theme) {
	left := fmt.Sprintf(" Points: %d  Combo: x%d  Words: %d ",
		a.session.Points, a.session.Combo, a.session.CorrectWords)
	dst.DrawText(0, 0, left, pal.Text)

	right := fmt.Sprintf(" %s | %s ", a.game.Difficulty(), a.theme)
	dst.DrawText(dst.Width()-len([]rune(right)), 0, right, pal.Accent)
}

func (a *Arcade) drawBottomBar(dst *core.Screen, pal render.Theme) {
	y := dst.Height() - 1
	hearts := " " + a.session.Hearts() + " "
	dst.DrawText(0, y, hearts, core.ColorRed)

	if a.surface != nil && a.surface.AssetState() == render.AssetFailed {
		dst.DrawText(len([]rune(hearts)), y, "(no sprite)", pal.Text)
	}

	x := dst.Width() - len([]rune(helpLine)) - 1
	if x > len([]rune(hearts))+12 {
		dst.DrawText(x, y, helpLine, pal.Text)
	}
}

func drawCenteredMessage(dst *core.Screen, pal render.Theme, title string, lines ...string) {
	w := len([]rune(title))
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW := w + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawText(box.X, y, strings.Repeat(" ", boxW), pal.Text)
	}
	dst.DrawBox(box, pal.Accent)

	center := func(y int, s string, fg core.Color) {
		dst.DrawText(box.X+(boxW-len([]rune(s)))/2, y, s, fg)
	}
	center(box.Y+1, title, pal.Accent)
	for i, l := range lines {
		center(box.Y+3+i, l, pal.Text)
	}
}
