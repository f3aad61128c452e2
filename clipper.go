package grid

import "sort"

// RowClipper calculates which rows of a variable-height sequence intersect a
// viewport, so painting only touches those rows. Hidden rows take no space.
//
// Usage:
//
//	clipper := NewRowClipper(rows, bodyHeight, scrollY)
//	for i := clipper.StartIdx; i < clipper.EndIdx; i++ {
//	    y := clipper.ItemY(i, bodyTop, scrollY)
//	    // Draw row i at y
//	}
type RowClipper struct {
	StartIdx int // First visible row index (inclusive)
	EndIdx   int // Last visible row index (exclusive)

	tops    []float32 // content-space top of each row
	heights []float32 // 0 for hidden rows
	total   float32
}

// NewRowClipper computes the visible row range for a viewport of
// visibleHeight scrolled by scrollY.
func NewRowClipper(rows *Rows, visibleHeight, scrollY float32) *RowClipper {
	n := rows.Len()
	c := &RowClipper{
		tops:    make([]float32, n),
		heights: make([]float32, n),
	}
	var y float32
	for i, r := range rows.list {
		c.tops[i] = y
		if r.visible {
			c.heights[i] = r.Style().Height
		}
		y += c.heights[i]
	}
	c.total = y

	// First row whose bottom is below the top edge.
	c.StartIdx = sort.Search(n, func(i int) bool {
		return c.tops[i]+c.heights[i] > scrollY
	})
	// First row starting at or after the bottom edge.
	bottom := scrollY + visibleHeight
	c.EndIdx = sort.Search(n, func(i int) bool {
		return c.tops[i] >= bottom
	})
	if c.EndIdx < c.StartIdx {
		c.EndIdx = c.StartIdx
	}
	return c
}

// ShouldRender returns true if the row at idx intersects the viewport.
func (c *RowClipper) ShouldRender(idx int) bool {
	return idx >= c.StartIdx && idx < c.EndIdx && c.heights[idx] > 0
}

// ItemY returns the on-screen top of row idx.
func (c *RowClipper) ItemY(idx int, baseY, scrollY float32) float32 {
	return baseY + c.tops[idx] - scrollY
}

// VisibleCount returns the number of rows in the visible range.
func (c *RowClipper) VisibleCount() int {
	return c.EndIdx - c.StartIdx
}

// ContentHeight returns the height of all visible rows.
func (c *RowClipper) ContentHeight() float32 {
	return c.total
}

// MaxScroll returns the maximum valid scroll offset.
func (c *RowClipper) MaxScroll(visibleHeight float32) float32 {
	return maxf(0, c.total-visibleHeight)
}

// ScrollToItem returns the scroll offset needed to make row idx visible.
// If the row is already visible, returns the current scroll unchanged.
func (c *RowClipper) ScrollToItem(idx int, currentScroll, visibleHeight float32) float32 {
	if idx < 0 || idx >= len(c.tops) {
		return currentScroll
	}
	top := c.tops[idx]
	bottom := top + c.heights[idx]
	if top < currentScroll {
		return top
	}
	if bottom > currentScroll+visibleHeight {
		return bottom - visibleHeight
	}
	return currentScroll
}
