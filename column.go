package grid

import (
	"image"
	"slices"
	"strings"
)

// Part names one sub-rectangle of a column header.
type Part string

const (
	PartImage     Part = "image"
	PartText      Part = "text"
	PartSortGlyph Part = "sort-glyph"
	PartSortBadge Part = "sort-badge"
	PartFull      Part = "full"
)

// Default column width limits.
const (
	DefaultWidthMin float32 = 100
	DefaultWidthMax float32 = 600
)

// Column is the grid's projection of one source column.
type Column struct {
	name     string
	kind     ValueKind
	index    int
	widthMin float32
	widthMax float32
	visible  bool
	selected bool
	editable bool
	image    image.Image
	order    SortOrder
	style    Style

	// headWidth is the padded width of the upper-cased label, -1 until measured.
	headWidth float32
	bounds    map[Part]Rect
}

func newColumn(name string, kind ValueKind, index int, group *Style) *Column {
	c := &Column{
		name:      name,
		kind:      kind,
		index:     index,
		widthMin:  DefaultWidthMin,
		widthMax:  DefaultWidthMax,
		visible:   true,
		editable:  true,
		headWidth: -1,
		bounds:    make(map[Part]Rect, 5),
	}
	copyStyle(&c.style, group)
	c.style.AlignContentH = kind.ContentAlign()
	return c
}

// Name returns the column name as the source declared it.
func (c *Column) Name() string { return c.name }

// Kind returns the declared value kind.
func (c *Column) Kind() ValueKind { return c.kind }

// Index returns the display index.
func (c *Column) Index() int { return c.index }

// WidthMin returns the minimum full width.
func (c *Column) WidthMin() float32 { return c.widthMin }

// WidthMax returns the maximum full width. It wins over WidthMin.
func (c *Column) WidthMax() float32 { return c.widthMax }

// Visible reports whether the column is laid out and painted.
func (c *Column) Visible() bool { return c.visible }

// Selected reports whether the header label uses the select color.
func (c *Column) Selected() bool { return c.selected }

// Editable reports whether boolean cells toggle on click.
func (c *Column) Editable() bool { return c.editable }

// Image returns the header image, nil when none is set.
func (c *Column) Image() image.Image { return c.image }

// SortOrder returns the column's sort direction.
func (c *Column) SortOrder() SortOrder { return c.order }

// Style returns the column's copy of the header style.
func (c *Column) Style() Style { return c.style }

// HeadWidth returns the padded label width, -1 before the first layout.
func (c *Column) HeadWidth() float32 { return c.headWidth }

// Bounds returns the layout rectangle of a header part in content space.
func (c *Column) Bounds(p Part) Rect { return c.bounds[p] }

// HasBounds reports whether the last layout produced part p.
func (c *Column) HasBounds(p Part) bool {
	_, ok := c.bounds[p]
	return ok
}

func (c *Column) String() string { return c.name + " (" + c.kind.String() + ")" }

// Width returns the full width from the last layout.
func (c *Column) Width() float32 { return c.bounds[PartFull].W }

func (c *Column) sortKey() SortKey { return SortKey{Column: c.name, Kind: c.kind, Order: c.order} }

func (c *Column) resetBounds(x, h float32) {
	clear(c.bounds)
	c.bounds[PartFull] = Rect{X: x, H: h}
}

// measureHead measures the upper-cased label. On failure headWidth stays as it was.
func (c *Column) measureHead(m TextMetrics) error {
	sz, err := m.MeasureText(UpperLabel(c.name), c.style.Font)
	if err != nil {
		return err
	}
	c.headWidth = headPad + sz.W
	return nil
}

// SortRegistry keeps the active sort keys. A column's priority is its
// 1-based position, so priorities are always dense.
type SortRegistry struct {
	names []string
}

// Priority returns the 1-based priority of a column, or 0 when unsorted.
func (r *SortRegistry) Priority(name string) int {
	for i, n := range r.names {
		if strings.EqualFold(n, name) {
			return i + 1
		}
	}
	return 0
}

// Add registers name with the next free priority. Existing keys keep theirs.
func (r *SortRegistry) Add(name string) int {
	if p := r.Priority(name); p > 0 {
		return p
	}
	r.names = append(r.names, name)
	return len(r.names)
}

// Remove drops name; every higher priority moves down by one.
func (r *SortRegistry) Remove(name string) {
	if p := r.Priority(name); p > 0 {
		r.names = slices.Delete(r.names, p-1, p)
	}
}

// Names returns column names in priority order.
func (r *SortRegistry) Names() []string { return slices.Clone(r.names) }

// Len returns the number of active keys.
func (r *SortRegistry) Len() int { return len(r.names) }

func (r *SortRegistry) clear() { r.names = r.names[:0] }

// Columns is the ordered column set of a Grid.
type Columns struct {
	list  []*Column
	style Style
	sorts SortRegistry
}

// Len returns the number of columns.
func (cs *Columns) Len() int { return len(cs.list) }

// Style returns the shared header style.
func (cs *Columns) Style() Style { return cs.style }

// Sorts returns the sort registry.
func (cs *Columns) Sorts() *SortRegistry { return &cs.sorts }

// Get looks a column up by name, ignoring case.
func (cs *Columns) Get(name string) *Column {
	for _, c := range cs.list {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

// At returns the column at a display index.
func (cs *Columns) At(index int) *Column {
	for _, c := range cs.list {
		if c.index == index {
			return c
		}
	}
	return nil
}

// Ordered returns the columns in display order.
func (cs *Columns) Ordered() []*Column {
	out := slices.Clone(cs.list)
	slices.SortStableFunc(out, func(a, b *Column) int { return a.index - b.index })
	return out
}

// SortKeys returns the active keys in priority order.
func (cs *Columns) SortKeys() []SortKey {
	keys := make([]SortKey, 0, cs.sorts.Len())
	for _, n := range cs.sorts.names {
		if c := cs.Get(n); c != nil && c.order != SortNone {
			keys = append(keys, c.sortKey())
		}
	}
	return keys
}

func (cs *Columns) add(name string, kind ValueKind) *Column {
	c := newColumn(name, kind, len(cs.list), &cs.style)
	cs.list = append(cs.list, c)
	return c
}

func (cs *Columns) remove(name string) bool {
	c := cs.Get(name)
	if c == nil {
		return false
	}
	ordered := cs.Ordered()
	ordered = slices.DeleteFunc(ordered, func(o *Column) bool { return o == c })
	for i, o := range ordered {
		o.index = i
	}
	cs.list = slices.DeleteFunc(cs.list, func(o *Column) bool { return o == c })
	cs.sorts.Remove(c.name)
	return true
}

func (cs *Columns) clear() {
	cs.list = nil
	cs.sorts.clear()
}

// setIndex moves c to display index to (clamped) and renumbers its siblings
// so indexes stay a dense permutation of [0, n).
func (cs *Columns) setIndex(c *Column, to int) bool {
	ordered := cs.Ordered()
	from := slices.Index(ordered, c)
	if from < 0 {
		return false
	}
	to = max(0, min(to, len(ordered)-1))
	if from == to {
		return false
	}
	ordered = slices.Delete(ordered, from, from+1)
	ordered = slices.Insert(ordered, to, c)
	for i, o := range ordered {
		o.index = i
	}
	return true
}

// setSortOrder changes c's order and keeps the registry in step:
// a newly sorted column takes the next priority, an unsorted one is removed.
func (cs *Columns) setSortOrder(c *Column, order SortOrder) (boundsChange bool) {
	if c.order == order {
		return false
	}
	boundsChange = (c.order == SortNone) != (order == SortNone)
	c.order = order
	if order == SortNone {
		cs.sorts.Remove(c.name)
	} else {
		cs.sorts.Add(c.name)
	}
	return boundsChange
}

// applyGroupStyle copies the shared header style to every column and reports
// whether any column's bounds are affected.
func (cs *Columns) applyGroupStyle() bool {
	impacts := false
	for _, c := range cs.list {
		if affectsBounds(&cs.style, &c.style) {
			impacts = true
		}
		copyStyle(&c.style, &cs.style)
		c.style.AlignContentH = c.kind.ContentAlign()
	}
	return impacts
}

// sortYs returns the vertical offsets of the three glyph strokes, whose
// lengths grow 7, 10, 13. Ascending draws the short stroke on top.
func sortYs(order SortOrder) [3]float32 {
	if order == SortDescending {
		return [3]float32{10, 6, 2}
	}
	return [3]float32{2, 6, 10}
}

var sortLens = [3]float32{7, 10, 13}
