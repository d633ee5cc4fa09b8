package render

import "testing"

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer() failed: %v", err)
	}
	defer m.Close()

	small := m.Measure(FontRegular, "reading", 20)
	large := m.Measure(FontRegular, "reading", 40)

	if small.Width <= 0 || small.Ascent <= 0 {
		t.Fatalf("unexpected metrics %+v", small)
	}
	if large.Width <= small.Width {
		t.Errorf("larger size should be wider: %v <= %v", large.Width, small.Width)
	}
	if m.Measure(FontRegular, "reading", 20) != small {
		t.Error("cached face should give identical metrics")
	}

	// "g" descends below the baseline, "x" does not.
	if m.Measure(FontRegular, "g", 20).Descent <= 0 {
		t.Error("g should have a descent")
	}
	if d := m.Measure(FontRegular, "x", 20).Descent; d > 0.5 {
		t.Errorf("x descent = %v, expected about zero", d)
	}
}

func TestFontMeasurerFamilies(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer() failed: %v", err)
	}

	// Every glyph in a monospaced font has the same advance.
	if m.Measure(FontMono, "iiii", 20).Width != m.Measure(FontMono, "WWWW", 20).Width {
		t.Error("mono font should have uniform advances")
	}
	if m.Measure("comic", "word", 20) != m.Measure(FontRegular, "word", 20) {
		t.Error("unknown family should measure as regular")
	}
	if m.Measure(FontRegular, "", 20) != (TextMetrics{}) {
		t.Error("empty text should measure as zero")
	}
	if m.Measure(FontRegular, "word", 0) != (TextMetrics{}) {
		t.Error("zero size should measure as zero")
	}
}

func TestFixedMeasurer(t *testing.T) {
	f := FixedMeasurer{RuneWidth: 10, Ascent: 14, Descent: 4}
	got := f.Measure("", "abcd", 40)
	if got.Width != 80 || got.Ascent != 28 || got.Descent != 8 {
		t.Errorf("Measure() = %+v", got)
	}
	if got.Height() != 36 {
		t.Errorf("Height() = %v, expected 36", got.Height())
	}
}
