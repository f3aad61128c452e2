package grid

import (
	"image"
	"slices"
	"strings"
)

// Row is the grid's projection of one source row.
type Row struct {
	rows     *Rows
	source   int
	visible  bool
	selected bool
	style    *Style // nil falls back to the shared row style

	cells  map[string]any     // keyed by lower-cased column name
	strs   map[string]string  // cached display strings
	widths map[string]float32 // cached display string widths
}

func cellKey(column string) string { return strings.ToLower(column) }

// Source returns the stable index of the row in the data source.
func (r *Row) Source() int { return r.source }

// Index returns the row's position in the current ordering, or -1 when detached.
func (r *Row) Index() int {
	if r.rows == nil {
		return -1
	}
	return slices.Index(r.rows.list, r)
}

// Visible reports whether the row is painted.
func (r *Row) Visible() bool { return r.visible }

// Selected reports whether the row is highlighted with the select colors.
func (r *Row) Selected() bool { return r.selected }

// Style returns the row's own style or the shared one.
func (r *Row) Style() *Style {
	if r.style != nil {
		return r.style
	}
	return &r.rows.style
}

// HasOwnStyle reports whether the row overrides the shared style.
func (r *Row) HasOwnStyle() bool { return r.style != nil }

// Value returns the raw cell value, nil when unset.
func (r *Row) Value(column string) any {
	return r.cells[cellKey(column)]
}

// Text returns the cached display string of a cell.
func (r *Row) Text(column string) string {
	return r.strs[cellKey(column)]
}

// TextWidth returns the cached pixel width of a cell's display string.
func (r *Row) TextWidth(column string) float32 {
	return r.widths[cellKey(column)]
}

// store updates a cell and its caches. A measuring failure leaves a zero width.
func (r *Row) store(column string, kind ValueKind, v any, m TextMetrics) error {
	key := cellKey(column)
	r.cells[key] = v
	s := FormatValue(kind, v)
	r.strs[key] = s
	if kind == KindImage {
		if img, ok := v.(image.Image); ok {
			r.widths[key] = imageSize(img).W
			return nil
		}
	}
	sz, err := m.MeasureText(s, r.Style().Font)
	if err != nil {
		r.widths[key] = 0
		return err
	}
	r.widths[key] = sz.W
	return nil
}

// drop removes a cell and its caches.
func (r *Row) drop(column string) {
	key := cellKey(column)
	delete(r.cells, key)
	delete(r.strs, key)
	delete(r.widths, key)
}

// remeasure recomputes the cached widths after a font change.
func (r *Row) remeasure(cols *Columns, m TextMetrics) error {
	var firstErr error
	for _, c := range cols.list {
		if err := r.store(c.name, c.kind, r.Value(c.name), m); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Rows is the ordered row sequence of a Grid.
type Rows struct {
	list  []*Row
	style Style
}

// Len returns the number of rows.
func (rs *Rows) Len() int { return len(rs.list) }

// At returns the row at a display index, or nil.
func (rs *Rows) At(i int) *Row {
	if i < 0 || i >= len(rs.list) {
		return nil
	}
	return rs.list[i]
}

// BySource returns the row with the given source index, or nil.
func (rs *Rows) BySource(source int) *Row {
	for _, r := range rs.list {
		if r.source == source {
			return r
		}
	}
	return nil
}

// All returns the rows in display order.
func (rs *Rows) All() []*Row { return slices.Clone(rs.list) }

// Style returns the shared row style.
func (rs *Rows) Style() Style { return rs.style }

// VisibleHeight returns the sum of visible row heights.
func (rs *Rows) VisibleHeight() float32 {
	var h float32
	for _, r := range rs.list {
		if r.visible {
			h += r.Style().Height
		}
	}
	return h
}

// visibleBefore counts the visible rows ahead of display index i.
func (rs *Rows) visibleBefore(i int) int {
	n := 0
	for _, r := range rs.list[:min(i, len(rs.list))] {
		if r.visible {
			n++
		}
	}
	return n
}

// AverageHeight returns the mean height of all rows, or the shared height
// when there are none.
func (rs *Rows) AverageHeight() float32 {
	if len(rs.list) == 0 {
		return rs.style.Height
	}
	var h float32
	for _, r := range rs.list {
		h += r.Style().Height
	}
	return h / float32(len(rs.list))
}

// MaxWidth returns the widest cached display string of a column.
func (rs *Rows) MaxWidth(column string) float32 {
	var w float32
	key := cellKey(column)
	for _, r := range rs.list {
		w = max(w, r.widths[key])
	}
	return w
}

func (rs *Rows) add(source int) *Row {
	r := &Row{
		rows:    rs,
		source:  source,
		visible: true,
		cells:   make(map[string]any),
		strs:    make(map[string]string),
		widths:  make(map[string]float32),
	}
	rs.list = append(rs.list, r)
	return r
}

func (rs *Rows) clear() { rs.list = nil }
