package grid

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrNoTexture is returned by Canvas.DrawImage when an image has no texture.
var ErrNoTexture = errors.New("grid: image has no texture")

// ImageTextures uploads images to the GPU and returns their texture IDs.
// Implementations cache by image identity; 0 means the upload failed.
type ImageTextures interface {
	ImageTexture(img image.Image) uint32
}

// Canvas is a Surface that records into a DrawList. Text uses a FontProvider
// when it knows the family, otherwise the renderer's default font.
type Canvas struct {
	dl          *DrawList
	metrics     TextMetrics
	fonts       FontProvider
	defaultFont GlyphFont
	images      ImageTextures
	clips       []Rect
}

// NewCanvas returns a Canvas drawing into dl. images and fonts may be nil.
func NewCanvas(dl *DrawList, metrics TextMetrics, defaultFont GlyphFont, images ImageTextures, fonts FontProvider) *Canvas {
	return &Canvas{dl: dl, metrics: metrics, defaultFont: defaultFont, images: images, fonts: fonts}
}

func (c *Canvas) glyphFont(family string) (GlyphFont, bool) {
	if c.fonts != nil {
		if gf, ok := c.fonts.Lookup(family); ok {
			return gf, true
		}
	}
	return c.defaultFont, c.defaultFont != nil
}

// DrawList returns the underlying draw list.
func (c *Canvas) DrawList() *DrawList { return c.dl }

func (c *Canvas) FillRect(r Rect, color uint32) {
	c.dl.AddRect(r.X, r.Y, r.W, r.H, color)
}

func (c *Canvas) FillRectGradientV(r Rect, top, bottom uint32) {
	c.dl.AddRectGradientV(r.X, r.Y, r.W, r.H, top, bottom)
}

func (c *Canvas) StrokeRect(r Rect, color uint32, thickness float32) {
	c.dl.AddRectOutline(r.X, r.Y, r.W, r.H, color, thickness)
}

func (c *Canvas) DrawLine(from, to Vec2, color uint32, thickness float32, cap LineCap) {
	half := thickness / 2
	switch cap {
	case CapRound:
		c.dl.AddLine(from.X, from.Y, to.X, to.Y, color, thickness)
		c.dl.AddCircleFilled(from.X, from.Y, half, color, 8)
		c.dl.AddCircleFilled(to.X, to.Y, half, color, 8)
	case CapSquare:
		dx, dy := to.X-from.X, to.Y-from.Y
		if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
			dx, dy = dx/l*half, dy/l*half
		}
		c.dl.AddLine(from.X-dx, from.Y-dy, to.X+dx, to.Y+dy, color, thickness)
	default:
		c.dl.AddLine(from.X, from.Y, to.X, to.Y, color, thickness)
	}
}

func (c *Canvas) DrawImage(img image.Image, r Rect) error {
	if img == nil {
		return nil
	}
	var tex uint32
	if c.images != nil {
		tex = c.images.ImageTexture(img)
	}
	if tex == 0 {
		return ErrNoTexture
	}
	c.dl.AddImage(tex, r.X, r.Y, r.W, r.H, ColorWhite)
	return nil
}

func (c *Canvas) DrawString(text string, f Font, r Rect, color uint32, h, v Alignment) error {
	if text == "" {
		return nil
	}
	sz, err := c.MeasureText(text, f)
	if err != nil {
		return err
	}
	gf, ok := c.glyphFont(f.Family)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFontNotFound, f)
	}
	at := alignRect(r, sz, h, v)
	c.dl.AddGlyphQuads(gf.TextureID(), gf.GetGlyphQuads(text, at.X, at.Y, fontScale(gf, f.Size)), color)
	return nil
}

func (c *Canvas) MeasureText(text string, f Font) (Size, error) {
	return c.metrics.MeasureText(text, f)
}

func (c *Canvas) PushClip(r Rect) {
	if n := len(c.clips); n > 0 {
		r = intersectRect(c.clips[n-1], r)
	}
	c.clips = append(c.clips, r)
	c.dl.PushClipRect(r.X, r.Y, r.Right(), r.Bottom())
}

func (c *Canvas) PopClip() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
		c.dl.PopClipRect()
	}
}

func (c *Canvas) ResetClip() {
	c.clips = c.clips[:0]
	c.dl.ResetClipRect()
}
