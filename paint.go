package grid

import (
	"strconv"
	"strings"
)

// Overlay alpha for hover highlights.
const hoverAlpha = 128

// HoverState is the most recently resolved pointer target of one grid.
type HoverState struct {
	Point  Vec2
	Inside bool // pointer is over the control
	Hit    Hit
}

func (h *HoverState) over(r Rect) bool {
	return h != nil && h.Inside && r.Contains(h.Point)
}

// Painter draws a grid into a Surface. It keeps no state between passes
// except the VisibleCells cache it rebuilds.
type Painter struct {
	Columns   *Columns
	Rows      *Rows
	Cells     *VisibleCells
	Hover     *HoverState
	Client    Rect
	Scroll    Vec2
	BackColor uint32
}

// Paint runs one full pass. Every element is drawn best-effort: a failing
// image or string is logged and the pass carries on.
func (p *Painter) Paint(s Surface) {
	s.ResetClip()
	s.FillRect(p.Client, p.BackColor)
	p.Cells.Clear()

	headH := p.Columns.style.Height
	clipper := NewRowClipper(p.Rows, p.Client.H-headH, p.Scroll.Y)
	for _, c := range p.Columns.Ordered() {
		if !c.visible || !c.HasBounds(PartFull) {
			continue
		}
		full := c.bounds[PartFull].Offset(p.Client.X-p.Scroll.X, p.Client.Y)
		if !p.Client.Intersects(full) {
			continue
		}
		p.paintHeader(s, c, full)

		body := Rect{X: full.X, Y: p.Client.Y + headH, W: full.W, H: p.Client.H - headH}
		s.PushClip(intersectRect(body, p.Client))
		shown := p.Rows.visibleBefore(clipper.StartIdx)
		for i := clipper.StartIdx; i < clipper.EndIdx; i++ {
			if !clipper.ShouldRender(i) {
				continue
			}
			ordinal := shown
			shown++
			r := p.Rows.list[i]
			y := clipper.ItemY(i, p.Client.Y+headH, p.Scroll.Y)
			cell := Rect{X: full.X, Y: y, W: full.W, H: r.Style().Height}
			if !cell.Intersects(p.Client) {
				continue
			}
			p.Cells.Put(i, c.name, cell)
			p.paintCell(s, c, r, ordinal, cell)
		}
		s.ResetClip()
	}
}

// part returns a header part in control space.
func (p *Painter) part(c *Column, pt Part) (Rect, bool) {
	r, ok := c.bounds[pt]
	if !ok {
		return Rect{}, false
	}
	return r.Offset(p.Client.X-p.Scroll.X, p.Client.Y), true
}

func (p *Painter) paintHeader(s Surface, c *Column, full Rect) {
	st := &c.style
	s.PushClip(full)
	defer s.PopClip()

	p.safe("header background", c.name, func() error {
		accent := st.BackColorAccent
		if accent == 0 {
			accent = st.BackColor
		}
		s.FillRectGradientV(full, st.BackColor, accent)
		return nil
	})
	if r, ok := p.part(c, PartImage); ok {
		p.safe("header image", c.name, func() error {
			return s.DrawImage(c.image, r)
		})
	}
	if p.Hover.over(full) {
		s.FillRect(full, WithAlpha(st.BackColor, hoverAlpha))
	}
	if c.order != SortNone {
		if g, ok := p.part(c, PartSortGlyph); ok {
			p.safe("sort glyph", c.name, func() error {
				ys := sortYs(c.order)
				for i, y := range ys {
					s.DrawLine(Vec2{X: g.X + 2, Y: g.Y + y}, Vec2{X: g.X + sortLens[i], Y: g.Y + y}, st.ForeColor, 3, CapRound)
				}
				return nil
			})
		}
		if b, ok := p.part(c, PartSortBadge); ok {
			p.safe("sort badge", c.name, func() error {
				s.FillRect(b, st.ForeColor)
				prio := p.Columns.sorts.Priority(c.name)
				return s.DrawString(strconv.Itoa(prio), st.Font, b, st.BackColor, AlignCenter, AlignCenter)
			})
		}
	}
	if t, ok := p.part(c, PartText); ok {
		p.safe("header label", c.name, func() error {
			fore := st.ForeColor
			if c.selected && st.ForeColorSelect != 0 {
				fore = st.ForeColorSelect
			}
			area := Rect{X: t.X, Y: full.Y, W: t.W, H: full.H}
			return s.DrawString(UpperLabel(c.name), st.Font, area, fore, st.AlignHeadH, st.AlignHeadV)
		})
	}
	drawSunken(s, full)
}

// drawSunken draws a 1px 3D border with the shadow on the top-left edges.
func drawSunken(s Surface, r Rect) {
	x2, y2 := r.Right()-1, r.Bottom()-1
	s.DrawLine(Vec2{X: r.X, Y: r.Y}, Vec2{X: x2, Y: r.Y}, ColorGray, 1, CapFlat)
	s.DrawLine(Vec2{X: r.X, Y: r.Y}, Vec2{X: r.X, Y: y2}, ColorGray, 1, CapFlat)
	s.DrawLine(Vec2{X: r.X, Y: y2}, Vec2{X: x2, Y: y2}, ColorWhite, 1, CapFlat)
	s.DrawLine(Vec2{X: x2, Y: r.Y}, Vec2{X: x2, Y: y2}, ColorWhite, 1, CapFlat)
}

// rowColors returns the background and text colors of a row. Alternation
// counts visible rows only.
func rowColors(r *Row, ordinal int) (back, fore uint32) {
	st := r.Style()
	back, fore = st.BackColor, st.ForeColor
	if ordinal%2 == 1 {
		if st.BackColorAlternate != 0 {
			back = st.BackColorAlternate
		}
		if st.ForeColorAlternate != 0 {
			fore = st.ForeColorAlternate
		}
	}
	if r.selected {
		if st.BackColorSelect != 0 {
			back = st.BackColorSelect
		}
		if st.ForeColorSelect != 0 {
			fore = st.ForeColorSelect
		}
	}
	return back, fore
}

func (p *Painter) paintCell(s Surface, c *Column, r *Row, ordinal int, cell Rect) {
	st := r.Style()
	back, fore := rowColors(r, ordinal)
	s.FillRect(cell, back)
	s.StrokeRect(cell, ColorSilver, 1)

	switch c.kind {
	case KindBool:
		p.safe("checkbox", c.name, func() error {
			drawCheckbox(s, cell, r.Value(c.name), fore)
			return nil
		})
	case KindImage:
		p.safe("cell image", c.name, func() error {
			img := cellImage(r.Value(c.name))
			if img == nil {
				return nil
			}
			return s.DrawImage(img, alignRect(cell, imageSize(img), c.style.AlignContentH, st.AlignContentV))
		})
	default:
		p.safe("cell text", c.name, func() error {
			area := cell.Inset(headPad)
			area.Y, area.H = cell.Y, cell.H
			return s.DrawString(r.Text(c.name), st.Font, area, fore, c.style.AlignContentH, st.AlignContentV)
		})
	}

	if p.Hover.over(cell) {
		s.FillRect(cell, WithAlpha(ColorYellow, hoverAlpha))
	}
}

// checkSize is the side of a checkbox glyph.
const checkSize float32 = 13

// drawCheckbox draws an on/off box for parseable values and a red outline
// for null (indeterminate) values. Unparseable values draw as off.
func drawCheckbox(s Surface, cell Rect, v any, fore uint32) {
	side := minf(checkSize, cell.H-4)
	if side <= 0 {
		return
	}
	box := alignRect(cell, Size{W: side, H: side}, AlignCenter, AlignCenter)
	if v == nil || strings.EqualFold(strings.TrimSpace(rawString(v)), "null") {
		s.StrokeRect(box, ColorRed, 1)
		return
	}
	s.StrokeRect(box, fore, 1)
	if on, _ := ParseBool(v); on {
		a := Vec2{X: box.X + side*0.2, Y: box.Y + side*0.5}
		b := Vec2{X: box.X + side*0.42, Y: box.Y + side*0.75}
		e := Vec2{X: box.X + side*0.8, Y: box.Y + side*0.25}
		s.DrawLine(a, b, fore, 2, CapRound)
		s.DrawLine(b, e, fore, 2, CapRound)
	}
}

// safe runs one draw step, logging instead of propagating failures.
func (p *Painter) safe(what, column string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			gridLogger.Debug("paint step panicked", "step", what, "column", column, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		gridLogger.Debug("paint step failed", "step", what, "column", column, "err", err)
	}
}
