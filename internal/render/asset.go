package render

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed assets/player.txt
var assetFS embed.FS

// AssetState tracks whether a surface's sprite can be drawn.
type AssetState int

const (
	AssetLoading AssetState = iota
	AssetReady
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetLoading:
		return "loading"
	case AssetReady:
		return "ready"
	case AssetFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sprite is a block of runes. Spaces are transparent.
type Sprite struct {
	Lines []string
}

// Width returns the widest line in runes.
func (s *Sprite) Width() int {
	w := 0
	for _, l := range s.Lines {
		w = max(w, len([]rune(l)))
	}
	return w
}

// Height returns the number of lines.
func (s *Sprite) Height() int {
	return len(s.Lines)
}

// ParseSprite builds a sprite from text. Trailing blank lines are dropped.
func ParseSprite(text string) (*Sprite, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("render: empty sprite")
	}
	return &Sprite{Lines: lines}, nil
}

// SpriteResult is the outcome of an asynchronous sprite load.
type SpriteResult struct {
	Sprite *Sprite
	Err    error
}

// LoadSprite reads an embedded sprite in the background. The channel yields
// exactly one result and is then closed.
func LoadSprite(name string) <-chan SpriteResult {
	ch := make(chan SpriteResult, 1)
	go func() {
		defer close(ch)
		data, err := assetFS.ReadFile("assets/" + name)
		if err != nil {
			ch <- SpriteResult{Err: fmt.Errorf("render: load sprite %s: %w", name, err)}
			return
		}
		s, err := ParseSprite(string(data))
		if err != nil {
			ch <- SpriteResult{Err: fmt.Errorf("render: load sprite %s: %w", name, err)}
			return
		}
		ch <- SpriteResult{Sprite: s}
	}()
	return ch
}

// PlayerSprite is the embedded player sprite name.
const PlayerSprite = "player.txt"
