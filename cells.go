package grid

import (
	"cmp"
	"slices"
	"strings"
)

// CellRef identifies one cached cell.
type CellRef struct {
	Row    int    // display index
	Column string // lower-cased column name
}

// VisibleCells maps row display index and column name to the on-screen cell
// rectangle. The painter rebuilds it on every pass.
type VisibleCells struct {
	cells map[CellRef]Rect
}

// Clear drops every cached rectangle.
func (v *VisibleCells) Clear() { clear(v.cells) }

// Len returns the number of cached cells.
func (v *VisibleCells) Len() int { return len(v.cells) }

// Put caches the rectangle of a cell.
func (v *VisibleCells) Put(row int, column string, r Rect) {
	if v.cells == nil {
		v.cells = make(map[CellRef]Rect)
	}
	v.cells[CellRef{Row: row, Column: strings.ToLower(column)}] = r
}

// Get returns the cached rectangle of a cell.
func (v *VisibleCells) Get(row int, column string) (Rect, bool) {
	r, ok := v.cells[CellRef{Row: row, Column: strings.ToLower(column)}]
	return r, ok
}

// Each calls fn for every cached cell ordered by row then column name,
// stopping when fn returns false.
func (v *VisibleCells) Each(fn func(ref CellRef, r Rect) bool) {
	refs := make([]CellRef, 0, len(v.cells))
	for ref := range v.cells {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b CellRef) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return strings.Compare(a.Column, b.Column)
	})
	for _, ref := range refs {
		if !fn(ref, v.cells[ref]) {
			return
		}
	}
}

// find returns the first cached cell containing pt.
func (v *VisibleCells) find(pt Vec2) (CellRef, Rect, bool) {
	for ref, r := range v.cells {
		if r.Contains(pt) {
			return ref, r, true
		}
	}
	return CellRef{}, Rect{}, false
}
