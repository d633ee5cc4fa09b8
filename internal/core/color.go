package core

import "strconv"

// Color is an ANSI 256-color code for a screen cell.
// NoColor leaves the terminal default in place.
type Color int16

// NoColor means "use the terminal default".
const NoColor Color = -1

// Predefined colors used by the HUD and the default themes.
const (
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
	ColorOrange  Color = 208
	ColorGray    Color = 245
)

// IsSet reports whether c is a concrete color.
func (c Color) IsSet() bool {
	return c >= 0 && c <= 255
}

// String returns the ANSI code as a decimal string, or "" for NoColor.
func (c Color) String() string {
	if !c.IsSet() {
		return ""
	}
	return strconv.Itoa(int(c))
}

// ParseColor parses an ANSI 256 code ("208") or one of the basic color
// names. Unknown input yields NoColor.
func ParseColor(s string) Color {
	switch s {
	case "", "default", "none":
		return NoColor
	case "black":
		return ColorBlack
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "blue":
		return ColorBlue
	case "magenta":
		return ColorMagenta
	case "cyan":
		return ColorCyan
	case "white":
		return ColorWhite
	case "orange":
		return ColorOrange
	case "gray", "grey":
		return ColorGray
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return NoColor
	}
	return Color(n)
}
