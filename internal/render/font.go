package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font families understood by FontMeasurer.
const (
	FontRegular = "regular"
	FontMono    = "mono"
	FontBold    = "bold"
)

// Measurer measures text for a font family and pixel size.
type Measurer interface {
	Measure(family, text string, size int) TextMetrics
}

type faceKey struct {
	family string
	size   int
}

// FontMeasurer measures text with the Go fonts. Faces are created lazily and
// cached per family and size. It is safe for concurrent use.
type FontMeasurer struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFontMeasurer parses the embedded Go fonts.
func NewFontMeasurer() (*FontMeasurer, error) {
	sources := map[string][]byte{
		FontRegular: goregular.TTF,
		FontMono:    gomono.TTF,
		FontBold:    gobold.TTF,
	}

	m := &FontMeasurer{
		fonts: make(map[string]*opentype.Font, len(sources)),
		faces: make(map[faceKey]font.Face),
	}
	for name, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s font: %w", name, err)
		}
		m.fonts[name] = f
	}
	return m, nil
}

// Measure returns the advance width and the ink ascent/descent of text.
// Unknown families measure as regular. Sizes below 1 measure as zero.
func (m *FontMeasurer) Measure(family, text string, size int) TextMetrics {
	if size < 1 || text == "" {
		return TextMetrics{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(family, size)
	if err != nil {
		return TextMetrics{}
	}

	bounds, advance := font.BoundString(face, text)
	return TextMetrics{
		Width:   fixedToFloat(advance),
		Ascent:  -fixedToFloat(bounds.Min.Y),
		Descent: fixedToFloat(bounds.Max.Y),
	}
}

func (m *FontMeasurer) face(family string, size int) (font.Face, error) {
	if _, ok := m.fonts[family]; !ok {
		family = FontRegular
	}
	key := faceKey{family: family, size: size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}

	f, err := opentype.NewFace(m.fonts[family], &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}

// Close releases cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.faces {
		f.Close()
		delete(m.faces, k)
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FixedMeasurer gives every rune the same box regardless of family.
// Sizes scale the box linearly from a 20px reference.
type FixedMeasurer struct {
	RuneWidth float64 // advance per rune at 20px
	Ascent    float64 // at 20px
	Descent   float64 // at 20px
}

// Measure implements Measurer.
func (f FixedMeasurer) Measure(_, text string, size int) TextMetrics {
	scale := float64(size) / 20
	n := float64(len([]rune(text)))
	if n == 0 {
		return TextMetrics{}
	}
	return TextMetrics{
		Width:   f.RuneWidth * n * scale,
		Ascent:  f.Ascent * scale,
		Descent: f.Descent * scale,
	}
}
