package grid

import (
	"fmt"
	"strings"
)

// FontProvider resolves a font family to a GPU glyph atlas. It abstracts font
// loading so applications can inject their own fonts (game fonts, system
// fonts, mock fonts for testing). Families it does not know fall back to the
// renderer's built-in bitmap font.
type FontProvider interface {
	Lookup(family string) (GlyphFont, bool)
}

// GlyphFont is a single font that can render text from a texture atlas.
type GlyphFont interface {
	// TextureID returns the texture holding the glyph atlas.
	TextureID() uint32

	// HasGlyph returns true if the font has a glyph for the given rune.
	HasGlyph(r rune) bool

	// MeasureText returns the pixel dimensions of text at the given scale.
	MeasureText(text string, scale float32) Size

	// GetGlyphQuads generates quads for rendering text with its top-left at
	// x, y. The returned slice should be used immediately and not stored.
	GetGlyphQuads(text string, x, y, scale float32) []GlyphQuad

	// LineHeight returns the line height at the given scale.
	LineHeight(scale float32) float32
}

// GlyphQuad is one character's rendering quad.
type GlyphQuad struct {
	// Screen coordinates (top-left and bottom-right)
	X0, Y0 float32
	X1, Y1 float32

	// Texture coordinates (top-left and bottom-right)
	U0, V0 float32
	U1, V1 float32
}

// FontSet is a FontProvider backed by a map, keyed case-insensitively.
type FontSet map[string]GlyphFont

// Lookup implements FontProvider.
func (s FontSet) Lookup(family string) (GlyphFont, bool) {
	f, ok := s[strings.ToLower(family)]
	return f, ok
}

// Add registers f under family.
func (s FontSet) Add(family string, f GlyphFont) {
	s[strings.ToLower(family)] = f
}

// fontScale returns the scale that makes f's line height equal size.
func fontScale(f GlyphFont, size float32) float32 {
	lh := f.LineHeight(1)
	if lh <= 0 || size <= 0 {
		return 1
	}
	return size / lh
}

// ProviderMetrics measures text with a FontProvider, falling back to another
// TextMetrics for families the provider does not have.
type ProviderMetrics struct {
	Fonts    FontProvider
	Fallback TextMetrics
}

// MeasureText implements TextMetrics.
func (m ProviderMetrics) MeasureText(text string, f Font) (Size, error) {
	if m.Fonts != nil {
		if gf, ok := m.Fonts.Lookup(f.Family); ok {
			if text == "" {
				return Size{}, nil
			}
			scale := fontScale(gf, f.Size)
			sz := gf.MeasureText(text, scale)
			return Size{W: sz.W, H: maxf(sz.H, gf.LineHeight(scale))}, nil
		}
	}
	if m.Fallback == nil {
		return Size{}, fmt.Errorf("%w: %s", ErrFontNotFound, f)
	}
	return m.Fallback.MeasureText(text, f)
}
