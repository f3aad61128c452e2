package grid

import "image"

// LineCap is the end style of a stroked line.
type LineCap int

const (
	CapFlat LineCap = iota
	CapRound
	CapSquare
)

// Surface is the immediate-mode 2D drawing target the painter renders into.
// Coordinates are control-space pixels with the origin at the top-left of
// the client area.
type Surface interface {
	FillRect(r Rect, color uint32)
	FillRectGradientV(r Rect, top, bottom uint32)
	StrokeRect(r Rect, color uint32, thickness float32)
	DrawLine(from, to Vec2, color uint32, thickness float32, cap LineCap)
	DrawImage(img image.Image, r Rect) error
	// DrawString draws text aligned inside r.
	DrawString(text string, f Font, r Rect, color uint32, h, v Alignment) error
	MeasureText(text string, f Font) (Size, error)

	// PushClip intersects the active clip with r.
	PushClip(r Rect)
	PopClip()
	ResetClip()
}

// alignIn returns the offset that places an extent of size inside avail.
func alignIn(a Alignment, avail, size float32) float32 {
	switch a {
	case AlignCenter:
		return (avail - size) / 2
	case AlignFar:
		return avail - size
	default:
		return 0
	}
}

// alignRect places a box of size sz inside r.
func alignRect(r Rect, sz Size, h, v Alignment) Rect {
	return Rect{
		X: r.X + alignIn(h, r.W, sz.W),
		Y: r.Y + alignIn(v, r.H, sz.H),
		W: sz.W,
		H: sz.H,
	}
}

// intersectRect returns the overlap of a and b, empty when disjoint.
func intersectRect(a, b Rect) Rect {
	x1 := maxf(a.X, b.X)
	y1 := maxf(a.Y, b.Y)
	x2 := minf(a.Right(), b.Right())
	y2 := minf(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}
