// Package terminal renders a grid into a tcell screen. Pixel coordinates are
// mapped onto character cells of a fixed pixel size.
package terminal

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/grid"
)

// Pixel size of one character cell. Rows of the default theme are one cell
// tall.
const (
	CellWidth  = 7
	CellHeight = 16
)

// cellRect is a half-open range of character cells.
type cellRect struct {
	x1, y1, x2, y2 int
}

func (c cellRect) empty() bool { return c.x2 <= c.x1 || c.y2 <= c.y1 }

func (c cellRect) intersect(o cellRect) cellRect {
	r := cellRect{max(c.x1, o.x1), max(c.y1, o.y1), min(c.x2, o.x2), min(c.y2, o.y2)}
	if r.empty() {
		return cellRect{}
	}
	return r
}

func (c cellRect) contains(x, y int) bool {
	return x >= c.x1 && x < c.x2 && y >= c.y1 && y < c.y2
}

// Surface implements grid.Surface on a tcell.Screen.
type Surface struct {
	screen  tcell.Screen
	metrics grid.TextMetrics
	clips   []cellRect
}

// NewSurface returns a Surface drawing on screen. Text is measured with
// metrics, normally the grid's own.
func NewSurface(screen tcell.Screen, metrics grid.TextMetrics) *Surface {
	return &Surface{screen: screen, metrics: metrics}
}

func toCells(r grid.Rect) cellRect {
	return cellRect{
		x1: int(math.Round(float64(r.X / CellWidth))),
		y1: int(math.Round(float64(r.Y / CellHeight))),
		x2: int(math.Round(float64(r.Right() / CellWidth))),
		y2: int(math.Round(float64(r.Bottom() / CellHeight))),
	}
}

func toCell(p grid.Vec2) (int, int) {
	return int(math.Floor(float64(p.X / CellWidth))), int(math.Floor(float64(p.Y / CellHeight)))
}

func (s *Surface) clip() cellRect {
	if n := len(s.clips); n > 0 {
		return s.clips[n-1]
	}
	w, h := s.screen.Size()
	return cellRect{0, 0, w, h}
}

// color converts a packed ABGR color, blending translucent colors over the
// background already in the cell.
func (s *Surface) color(c uint32, x, y int) tcell.Color {
	r, g, b, a := grid.UnpackRGBA(c)
	if a < 255 {
		_, _, st, _ := s.screen.GetContent(x, y)
		_, bg, _ := st.Decompose()
		if bg.Valid() {
			br, bgr, bb := bg.RGB()
			r = blend(uint8(br), r, a)
			g = blend(uint8(bgr), g, a)
			b = blend(uint8(bb), b, a)
		}
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func blend(under, over, alpha uint8) uint8 {
	return uint8((int(under)*(255-int(alpha)) + int(over)*int(alpha)) / 255)
}

// paint sets the background of a cell, keeping its rune and foreground.
func (s *Surface) paint(x, y int, bg uint32) {
	mainc, combc, st, _ := s.screen.GetContent(x, y)
	s.screen.SetContent(x, y, mainc, combc, st.Background(s.color(bg, x, y)))
}

// put sets the rune and foreground of a cell, keeping its background.
func (s *Surface) put(x, y int, ch rune, fg uint32) {
	_, _, st, _ := s.screen.GetContent(x, y)
	s.screen.SetContent(x, y, ch, nil, st.Foreground(s.color(fg, x, y)))
}

func (s *Surface) FillRect(r grid.Rect, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	c := toCells(r).intersect(s.clip())
	for y := c.y1; y < c.y2; y++ {
		for x := c.x1; x < c.x2; x++ {
			s.paint(x, y, color)
		}
	}
}

// FillRectGradientV picks the color at the vertical center of every cell row.
func (s *Surface) FillRectGradientV(r grid.Rect, top, bottom uint32) {
	c := toCells(r)
	rows := c.y2 - c.y1
	for y := c.y1; y < c.y2; y++ {
		t := (float32(y-c.y1) + 0.5) / float32(max(rows, 1))
		row := grid.Rect{X: r.X, Y: float32(y * CellHeight), W: r.W, H: CellHeight}
		s.FillRect(row, lerpColor(top, bottom, t))
	}
}

func lerpColor(a, b uint32, t float32) uint32 {
	ar, ag, ab, aa := grid.UnpackRGBA(a)
	br, bg, bb, ba := grid.UnpackRGBA(b)
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return grid.RGBA(mix(ar, br), mix(ag, bg), mix(ab, bb), mix(aa, ba))
}

// StrokeRect draws a box outline. Rectangles one cell tall become a bracket
// pair since a box needs at least two rows.
func (s *Surface) StrokeRect(r grid.Rect, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	c := toCells(r)
	clip := s.clip()
	set := func(x, y int, ch rune) {
		if clip.contains(x, y) {
			s.put(x, y, ch, color)
		}
	}
	switch {
	case c.empty():
		return
	case c.y2-c.y1 == 1 && c.x2-c.x1 == 1:
		set(c.x1, c.y1, '□')
	case c.y2-c.y1 == 1:
		// Rows of the grid are a single cell; their borders are skipped.
		if c.x2-c.x1 <= 3 {
			set(c.x1, c.y1, '[')
			set(c.x2-1, c.y1, ']')
		}
	default:
		for x := c.x1 + 1; x < c.x2-1; x++ {
			set(x, c.y1, '─')
			set(x, c.y2-1, '─')
		}
		for y := c.y1 + 1; y < c.y2-1; y++ {
			set(c.x1, y, '│')
			set(c.x2-1, y, '│')
		}
		set(c.x1, c.y1, '┌')
		set(c.x2-1, c.y1, '┐')
		set(c.x1, c.y2-1, '└')
		set(c.x2-1, c.y2-1, '┘')
	}
}

// DrawLine walks the cells between the end points. Hairlines only draw on
// blank cells so borders never hide text.
func (s *Surface) DrawLine(from, to grid.Vec2, color uint32, thickness float32, cap grid.LineCap) {
	if color&0xFF000000 == 0 {
		return
	}
	x0, y0 := toCell(from)
	x1, y1 := toCell(to)
	ch := lineRune(to.X-from.X, to.Y-from.Y)
	clip := s.clip()

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	hair := thickness < 2
	for {
		if clip.contains(x0, y0) && (!hair || s.blank(x0, y0)) {
			s.put(x0, y0, ch, color)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x0 += sx
		} else {
			e += dx
			y0 += sy
		}
	}
}

func (s *Surface) blank(x, y int) bool {
	ch, _, _, _ := s.screen.GetContent(x, y)
	return ch == ' ' || ch == 0
}

func lineRune(dx, dy float32) rune {
	switch {
	case math.Abs(float64(dy)) <= math.Abs(float64(dx))/3:
		return '─'
	case math.Abs(float64(dx)) <= math.Abs(float64(dy))/3:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// DrawImage samples two pixels per cell and draws them as an upper half
// block: foreground on top, background below.
func (s *Surface) DrawImage(img image.Image, r grid.Rect) error {
	if img == nil {
		return nil
	}
	c := toCells(r)
	b := img.Bounds()
	if c.empty() || b.Empty() {
		return nil
	}
	clip := s.clip()
	w, h := c.x2-c.x1, (c.y2-c.y1)*2
	sample := func(px, py int) uint32 {
		ix := b.Min.X + px*b.Dx()/w
		iy := b.Min.Y + py*b.Dy()/h
		cr, cg, cb, ca := img.At(ix, iy).RGBA()
		return grid.RGBA(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8), uint8(ca>>8))
	}
	for y := c.y1; y < c.y2; y++ {
		for x := c.x1; x < c.x2; x++ {
			if !clip.contains(x, y) {
				continue
			}
			py := (y - c.y1) * 2
			s.paint(x, y, sample(x-c.x1, py+1))
			s.put(x, y, '▀', sample(x-c.x1, py))
		}
	}
	return nil
}

// DrawString writes text on the cell row under the vertical center of its
// aligned box. Wide runes take two cells.
func (s *Surface) DrawString(text string, f grid.Font, r grid.Rect, color uint32, h, v grid.Alignment) error {
	if text == "" {
		return nil
	}
	sz, err := s.MeasureText(text, f)
	if err != nil {
		return err
	}
	at := alignText(r, sz, h, v)
	x, y := toCell(grid.Vec2{X: at.X + CellWidth/2, Y: at.Y + at.H/2})
	clip := s.clip()
	for _, ch := range text {
		if clip.contains(x, y) {
			s.put(x, y, ch, color)
		}
		x += max(runewidth.RuneWidth(ch), 1)
	}
	return nil
}

func alignText(r grid.Rect, sz grid.Size, h, v grid.Alignment) grid.Rect {
	off := func(a grid.Alignment, avail, size float32) float32 {
		switch a {
		case grid.AlignCenter:
			return (avail - size) / 2
		case grid.AlignFar:
			return avail - size
		}
		return 0
	}
	return grid.Rect{X: r.X + off(h, r.W, sz.W), Y: r.Y + off(v, r.H, sz.H), W: sz.W, H: sz.H}
}

func (s *Surface) MeasureText(text string, f grid.Font) (grid.Size, error) {
	return s.metrics.MeasureText(text, f)
}

func (s *Surface) PushClip(r grid.Rect) {
	s.clips = append(s.clips, toCells(r).intersect(s.clip()))
}

func (s *Surface) PopClip() {
	if n := len(s.clips); n > 0 {
		s.clips = s.clips[:n-1]
	}
}

func (s *Surface) ResetClip() {
	s.clips = s.clips[:0]
}
