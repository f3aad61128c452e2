package grid

import (
	"errors"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// atlasColumns is the number of glyph cells per atlas row.
const atlasColumns = 16

// PrintableASCII is the rune set of the built-in atlas.
const PrintableASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

type atlasGlyph struct {
	cell    image.Rectangle
	advance float32
}

// FaceAtlas is a GlyphFont rasterised from a font.Face into an alpha-only
// texture. A renderer uploads Image and assigns the texture with
// SetTextureID.
type FaceAtlas struct {
	Image *image.Alpha

	tex        uint32
	glyphs     map[rune]atlasGlyph
	cellW      int
	lineHeight float32
}

// NewFaceAtlas rasterises runes of face into a grid of equal cells.
func NewFaceAtlas(face font.Face, runes string) (*FaceAtlas, error) {
	if face == nil {
		return nil, errors.New("grid: nil font face")
	}
	m := face.Metrics()
	lineH := m.Height.Ceil()
	ascent := m.Ascent.Ceil()

	set := []rune(runes)
	if len(set) == 0 {
		return nil, errors.New("grid: empty atlas rune set")
	}
	cellW := 1
	for _, r := range set {
		if adv, ok := face.GlyphAdvance(r); ok {
			cellW = max(cellW, adv.Ceil())
		}
	}
	rows := (len(set) + atlasColumns - 1) / atlasColumns
	img := image.NewAlpha(image.Rect(0, 0, cellW*atlasColumns, lineH*rows))

	a := &FaceAtlas{
		Image:      img,
		glyphs:     make(map[rune]atlasGlyph, len(set)),
		cellW:      cellW,
		lineHeight: float32(lineH),
	}
	d := &font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for i, r := range set {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		x := (i % atlasColumns) * cellW
		y := (i / atlasColumns) * lineH
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(string(r))
		a.glyphs[r] = atlasGlyph{
			cell:    image.Rect(x, y, x+cellW, y+lineH),
			advance: float32(adv.Ceil()),
		}
	}
	return a, nil
}

// SetTextureID records the texture the atlas was uploaded to.
func (a *FaceAtlas) SetTextureID(id uint32) { a.tex = id }

// TextureID implements GlyphFont.
func (a *FaceAtlas) TextureID() uint32 { return a.tex }

// HasGlyph implements GlyphFont.
func (a *FaceAtlas) HasGlyph(r rune) bool {
	_, ok := a.glyphs[r]
	return ok
}

func (a *FaceAtlas) glyph(r rune) (atlasGlyph, bool) {
	if g, ok := a.glyphs[r]; ok {
		return g, true
	}
	if g, ok := a.glyphs[asciiFallback(r)]; ok {
		return g, true
	}
	g, ok := a.glyphs['?']
	return g, ok
}

// MeasureText implements GlyphFont.
func (a *FaceAtlas) MeasureText(text string, scale float32) Size {
	if text == "" {
		return Size{}
	}
	var w float32
	for _, r := range text {
		if g, ok := a.glyph(r); ok {
			w += g.advance
		}
	}
	return Size{W: w * scale, H: a.lineHeight * scale}
}

// GetGlyphQuads implements GlyphFont.
func (a *FaceAtlas) GetGlyphQuads(text string, x, y, scale float32) []GlyphQuad {
	b := a.Image.Bounds()
	tw, th := float32(b.Dx()), float32(b.Dy())
	quads := make([]GlyphQuad, 0, len(text))
	pen := x
	for _, r := range text {
		g, ok := a.glyph(r)
		if !ok {
			continue
		}
		if r != ' ' {
			quads = append(quads, GlyphQuad{
				X0: pen, Y0: y,
				X1: pen + float32(a.cellW)*scale, Y1: y + a.lineHeight*scale,
				U0: float32(g.cell.Min.X) / tw, V0: float32(g.cell.Min.Y) / th,
				U1: float32(g.cell.Max.X) / tw, V1: float32(g.cell.Max.Y) / th,
			})
		}
		pen += g.advance * scale
	}
	return quads
}

// LineHeight implements GlyphFont.
func (a *FaceAtlas) LineHeight(scale float32) float32 {
	return a.lineHeight * scale
}

// asciiFallback maps runes outside the atlas to printable ASCII.
func asciiFallback(r rune) rune {
	if r >= 32 && r < 127 {
		return r
	}
	switch r {
	case '▲', '▴', '↑':
		return '^'
	case '▼', '▾', '↓':
		return 'v'
	case '✓', '✔':
		return '+'
	case '—', '–':
		return '-'
	case '█':
		return '#'
	default:
		return '?'
	}
}
