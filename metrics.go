package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ErrFontNotFound is returned by TextMetrics when a font cannot be resolved.
var ErrFontNotFound = errors.New("grid: font not found")

// Font names a typeface and its pixel size.
type Font struct {
	Family string
	Size   float32
}

func (f Font) String() string {
	return fmt.Sprintf("%s %.0fpx", f.Family, f.Size)
}

// TextMetrics measures text extents. It abstracts font loading so the grid
// can be laid out without a renderer (terminal cells, real faces, test fakes).
type TextMetrics interface {
	// MeasureText returns the pixel size of text drawn with f. Empty text
	// measures as zero.
	MeasureText(text string, f Font) (Size, error)
}

// MonoMetrics measures text as a grid of fixed cells, the way the built-in
// atlas renders it. Wide (East Asian) runes take two cells.
type MonoMetrics struct {
	CellWidth  float32 // cell width at BaseSize
	CellHeight float32 // cell height at BaseSize
	BaseSize   float32 // font size the cell dimensions refer to
}

// NewMonoMetrics returns metrics matching the built-in 7x13 atlas.
func NewMonoMetrics() *MonoMetrics {
	return &MonoMetrics{CellWidth: 7, CellHeight: 13, BaseSize: 13}
}

// MeasureText implements TextMetrics.
func (m *MonoMetrics) MeasureText(text string, f Font) (Size, error) {
	if f.Size <= 0 || m.BaseSize <= 0 {
		return Size{}, fmt.Errorf("%w: %s", ErrFontNotFound, f)
	}
	if text == "" {
		return Size{}, nil
	}
	scale := f.Size / m.BaseSize
	cells := runewidth.StringWidth(text)
	return Size{W: float32(cells) * m.CellWidth * scale, H: m.CellHeight * scale}, nil
}

// FaceMetrics measures text with golang.org/x/image font faces, keyed by
// family name (case-insensitive). Size scales the face's nominal line height.
type FaceMetrics struct {
	faces map[string]font.Face
}

// NewFaceMetrics returns FaceMetrics with basicfont.Face7x13 registered as "basic".
func NewFaceMetrics() *FaceMetrics {
	m := &FaceMetrics{faces: make(map[string]font.Face)}
	m.Register("basic", basicfont.Face7x13)
	return m
}

// Register adds or replaces a face.
func (m *FaceMetrics) Register(family string, face font.Face) {
	m.faces[strings.ToLower(family)] = face
}

// MeasureText implements TextMetrics.
func (m *FaceMetrics) MeasureText(text string, f Font) (Size, error) {
	face, ok := m.faces[strings.ToLower(f.Family)]
	if !ok {
		return Size{}, fmt.Errorf("%w: %s", ErrFontNotFound, f)
	}
	if text == "" {
		return Size{}, nil
	}
	lineHeight := float32(face.Metrics().Height.Ceil())
	scale := float32(1)
	if f.Size > 0 && lineHeight > 0 {
		scale = f.Size / lineHeight
	}
	adv := font.MeasureString(face, text)
	return Size{W: float32(adv.Ceil()) * scale, H: lineHeight * scale}, nil
}
