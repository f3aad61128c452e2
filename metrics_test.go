package grid_test

import (
	"errors"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/go-theft-auto/grid"
)

func TestMonoMetrics(t *testing.T) {
	m := grid.NewMonoMetrics()

	tests := []struct {
		text string
		size float32
		want grid.Size
	}{
		{"abc", 13, grid.Size{W: 21, H: 13}},
		{"abc", 26, grid.Size{W: 42, H: 26}},
		{"日本", 13, grid.Size{W: 28, H: 13}},
		{"", 13, grid.Size{}},
	}
	for _, tt := range tests {
		got, err := m.MeasureText(tt.text, grid.Font{Family: "mono", Size: tt.size})
		if err != nil {
			t.Fatalf("MeasureText(%q) error: %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("MeasureText(%q, %v) = %v, want %v", tt.text, tt.size, got, tt.want)
		}
	}

	if _, err := m.MeasureText("x", grid.Font{Family: "mono"}); !errors.Is(err, grid.ErrFontNotFound) {
		t.Errorf("zero size should fail with ErrFontNotFound, got %v", err)
	}
}

func TestFaceMetrics(t *testing.T) {
	m := grid.NewFaceMetrics()

	got, err := m.MeasureText("abc", grid.Font{Family: "BASIC", Size: 13})
	if err != nil {
		t.Fatalf("MeasureText() error: %v", err)
	}
	if got != (grid.Size{W: 21, H: 13}) {
		t.Errorf("expected 21x13, got %v", got)
	}

	got, _ = m.MeasureText("abc", grid.Font{Family: "basic", Size: 26})
	if got != (grid.Size{W: 42, H: 26}) {
		t.Errorf("expected 42x26 at double size, got %v", got)
	}

	if _, err := m.MeasureText("abc", grid.Font{Family: "serif", Size: 13}); !errors.Is(err, grid.ErrFontNotFound) {
		t.Errorf("expected ErrFontNotFound, got %v", err)
	}

	m.Register("Serif", basicfont.Face7x13)
	if _, err := m.MeasureText("abc", grid.Font{Family: "serif", Size: 13}); err != nil {
		t.Errorf("registered face should measure, got %v", err)
	}
}

func TestProviderMetrics(t *testing.T) {
	atlas, err := grid.NewFaceAtlas(basicfont.Face7x13, grid.PrintableASCII)
	if err != nil {
		t.Fatalf("NewFaceAtlas() error: %v", err)
	}
	fonts := grid.FontSet{}
	fonts.Add("Pixel", atlas)
	m := grid.ProviderMetrics{Fonts: fonts, Fallback: tenPx}

	got, err := m.MeasureText("ab", grid.Font{Family: "pixel", Size: 26})
	if err != nil {
		t.Fatalf("MeasureText() error: %v", err)
	}
	if got != (grid.Size{W: 28, H: 26}) {
		t.Errorf("expected atlas measure 28x26, got %v", got)
	}

	got, _ = m.MeasureText("ab", grid.Font{Family: "mono", Size: 12})
	if got != (grid.Size{W: 20, H: 10}) {
		t.Errorf("expected fallback measure 20x10, got %v", got)
	}

	bare := grid.ProviderMetrics{Fonts: fonts}
	if _, err := bare.MeasureText("ab", grid.Font{Family: "mono", Size: 12}); !errors.Is(err, grid.ErrFontNotFound) {
		t.Errorf("expected ErrFontNotFound without fallback, got %v", err)
	}
}

func TestStyle_DeriveHeight(t *testing.T) {
	s := grid.Style{Font: grid.Font{Family: "mono", Size: 26}}
	if err := s.DeriveHeight(grid.NewMonoMetrics()); err != nil {
		t.Fatalf("DeriveHeight() error: %v", err)
	}
	if s.Height != 30 {
		t.Errorf("expected 26 + 2*2 = 30, got %v", s.Height)
	}

	s.Font.Family = "missing"
	if err := s.DeriveHeight(tenPx); err == nil {
		t.Error("expected an error for an unknown font")
	}
	if s.Height != 30 {
		t.Errorf("failed derivation should keep the height, got %v", s.Height)
	}
}

func TestThemes(t *testing.T) {
	for name, theme := range map[string]grid.Theme{"default": grid.DefaultTheme(), "dark": grid.DarkTheme()} {
		if theme.Columns.ForeColor == 0 || theme.Rows.ForeColor == 0 {
			t.Errorf("%s theme has zero fore color", name)
		}
		if theme.Columns.Height == 0 || theme.Rows.Height == 0 {
			t.Errorf("%s theme has zero height", name)
		}
	}
}

func TestFaceAtlas(t *testing.T) {
	if _, err := grid.NewFaceAtlas(nil, grid.PrintableASCII); err == nil {
		t.Error("expected an error for a nil face")
	}

	a, err := grid.NewFaceAtlas(basicfont.Face7x13, grid.PrintableASCII)
	if err != nil {
		t.Fatalf("NewFaceAtlas() error: %v", err)
	}

	// 95 glyphs in 16 columns of 7x13 cells.
	if b := a.Image.Bounds(); b.Dx() != 112 || b.Dy() != 78 {
		t.Errorf("expected a 112x78 atlas, got %v", b)
	}
	if !a.HasGlyph('A') || a.HasGlyph('é') {
		t.Error("unexpected glyph coverage")
	}
	if got := a.MeasureText("ab", 1); got != (grid.Size{W: 14, H: 13}) {
		t.Errorf("expected 14x13, got %v", got)
	}
	if got := a.MeasureText("▲", 2); got != (grid.Size{W: 14, H: 26}) {
		t.Errorf("fallback glyph should measure like '^', got %v", got)
	}
	if got := a.LineHeight(2); got != 26 {
		t.Errorf("expected line height 26, got %v", got)
	}

	quads := a.GetGlyphQuads("a b", 10, 5, 1)
	if len(quads) != 2 {
		t.Fatalf("expected spaces to be skipped, got %d quads", len(quads))
	}
	if quads[0].X0 != 10 || quads[0].Y0 != 5 || quads[1].X0 != 24 {
		t.Errorf("unexpected quad positions %+v", quads)
	}
	for _, q := range quads {
		if q.U0 < 0 || q.U1 > 1 || q.V0 < 0 || q.V1 > 1 || q.U0 >= q.U1 {
			t.Errorf("texture coordinates out of range: %+v", q)
		}
	}
}
