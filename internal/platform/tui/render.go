package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/flashread/wordfall/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

var (
	styleMu    sync.Mutex
	styleCache = map[colorPair]lipgloss.Style{}
)

// cellStyle returns the lipgloss style for a foreground/background pair.
func cellStyle(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}

	styleMu.Lock()
	defer styleMu.Unlock()

	if s, ok := styleCache[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if fg.IsSet() {
		s = s.Foreground(lipgloss.Color(fg.String()))
	}
	if bg.IsSet() {
		s = s.Background(lipgloss.Color(bg.String()))
	}
	styleCache[key] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.FG.IsSet() && !start.BG.IsSet() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
