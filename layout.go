package grid

import (
	"fmt"
	"strconv"
)

// Sort glyph box size.
const (
	sortGlyphW float32 = 18
	sortGlyphH float32 = 13
)

// LayoutEngine computes header sub-bounds for every visible column and the
// total content size.
type LayoutEngine struct {
	Metrics TextMetrics
}

type headPart struct {
	part Part
	w, h float32
}

// Recompute lays out the visible columns left to right and returns the
// content size. A column that fails to lay out keeps empty bounds and takes
// no horizontal space; the pass continues with the next column.
func (e *LayoutEngine) Recompute(cols *Columns, rows *Rows) Size {
	headH := cols.style.Height
	var cursor float32
	for _, c := range cols.Ordered() {
		if !c.visible {
			clear(c.bounds)
			continue
		}
		w, err := e.layoutColumn(c, rows, cursor, headH, cols.sorts.Priority(c.name))
		if err != nil {
			clear(c.bounds)
			gridLogger.Debug("column layout failed", "column", c.name, "err", err)
			continue
		}
		cursor += w
	}
	return Size{W: cursor, H: headH + rows.VisibleHeight()}
}

func (e *LayoutEngine) layoutColumn(c *Column, rows *Rows, cursor, headH float32, priority int) (width float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layout %s: %v", c.name, r)
		}
	}()

	if err := c.measureHead(e.Metrics); err != nil {
		return 0, err
	}
	label, err := e.Metrics.MeasureText(UpperLabel(c.name), c.style.Font)
	if err != nil {
		return 0, err
	}

	parts := make([]headPart, 0, 4)
	if c.image != nil {
		sz := imageSize(c.image)
		parts = append(parts, headPart{PartImage, sz.W, sz.H})
	}

	content := rows.MaxWidth(c.name)
	textW := max(c.headWidth, content)
	textAt := len(parts)
	parts = append(parts, headPart{PartText, textW, label.H})

	if c.order != SortNone {
		badge, err := e.Metrics.MeasureText(strconv.Itoa(priority), c.style.Font)
		if err != nil {
			return 0, err
		}
		badgeW := badge.W + headPad
		parts = append(parts,
			headPart{PartSortGlyph, sortGlyphW, sortGlyphH},
			headPart{PartSortBadge, badgeW, badge.H},
		)
		sortW := sortGlyphW + headPad + badgeW + headPad
		if content-c.headWidth > sortW {
			parts[textAt].w = content - sortW
		}
	}

	natural := headPad * float32(len(parts)-1)
	for _, p := range parts {
		natural += p.w
	}
	target := natural
	if target < c.widthMin {
		target = c.widthMin
	}
	// With min > max the maximum wins.
	if target > c.widthMax {
		target = c.widthMax
	}
	parts[textAt].w = max(0, parts[textAt].w+target-natural)

	c.resetBounds(cursor, headH)
	x := cursor
	for _, p := range parts {
		c.bounds[p.part] = Rect{X: x, Y: (headH - p.h) / 2, W: p.w, H: p.h}
		x += p.w + headPad
	}
	// Parts that no longer fit once the text is gone spill past the full
	// bounds and are clipped by the header.
	c.bounds[PartFull] = Rect{X: cursor, Y: 0, W: target, H: headH}
	return target, nil
}
