package grid

import (
	"cmp"
	"fmt"
	"slices"
)

// ClickEvent is delivered to column and row click handlers.
type ClickEvent struct {
	Button MouseButton
	Point  Vec2
	Column *Column
	Row    *Row // nil for header clicks
	Part   Part
}

// Grid is an owner-drawn data grid. All methods must be called from the
// goroutine that owns the window.
type Grid struct {
	columns Columns
	rows    Rows
	source  DataSource
	metrics TextMetrics
	engine  LayoutEngine
	cells   VisibleCells
	hover   HoverState
	scroll  ScrollCoordinator

	bounds    Rect
	backColor uint32
	content   Size

	queue     *TaskQueue
	layoutKey string
	dirty     bool
	redraw    bool

	clipboard ClipboardProvider

	pressed       [MouseButtonCount]Hit
	onColumnClick []func(ClickEvent)
	onRowClick    []func(ClickEvent)
}

// New creates an empty grid with the default theme and mono metrics.
func New(opts ...Option) *Grid {
	theme := DefaultTheme()
	g := &Grid{
		metrics:   NewMonoMetrics(),
		backColor: theme.BackColor,
	}
	g.columns.style = theme.Columns
	g.rows.style = theme.Rows

	for _, opt := range opts {
		opt(g)
	}

	if g.queue == nil {
		g.queue = NewTaskQueue()
	}
	g.layoutKey = fmt.Sprintf("grid-layout-%p", g)
	g.engine.Metrics = g.metrics
	if err := g.columns.style.DeriveHeight(g.metrics); err != nil {
		gridLogger.Debug("header height not derived", "err", err)
	}
	if err := g.rows.style.DeriveHeight(g.metrics); err != nil {
		gridLogger.Debug("row height not derived", "err", err)
	}
	if g.source != nil {
		g.project(g.source)
	}
	g.Layout()
	return g
}

// Columns returns the column set.
func (g *Grid) Columns() *Columns { return &g.columns }

// Rows returns the row sequence.
func (g *Grid) Rows() *Rows { return &g.rows }

// Source returns the assigned data source, or nil.
func (g *Grid) Source() DataSource { return g.source }

// Metrics returns the text metrics used for layout.
func (g *Grid) Metrics() TextMetrics { return g.metrics }

// Bounds returns the client rectangle in window space.
func (g *Grid) Bounds() Rect { return g.bounds }

// ContentSize returns the size computed by the last layout pass.
func (g *Grid) ContentSize() Size { return g.content }

// VScroll returns the vertical scrollbar state.
func (g *Grid) VScroll() ScrollBar { return g.scroll.V }

// HScroll returns the horizontal scrollbar state.
func (g *Grid) HScroll() ScrollBar { return g.scroll.H }

// ScrollOffset returns the drawing offset.
func (g *Grid) ScrollOffset() Vec2 { return g.scroll.Offset() }

// Hover returns the current pointer target.
func (g *Grid) Hover() HoverState { return g.hover }

// VisibleCells returns the cell cache of the last paint pass.
func (g *Grid) VisibleCells() *VisibleCells { return &g.cells }

// BackColor returns the control background color.
func (g *Grid) BackColor() uint32 { return g.backColor }

// Queue returns the queue deferred layout passes are posted to.
func (g *Grid) Queue() *TaskQueue { return g.queue }

// LayoutPending reports whether a layout pass is scheduled.
func (g *Grid) LayoutPending() bool { return g.dirty }

// NeedsRedraw reports whether anything changed since the last Paint.
func (g *Grid) NeedsRedraw() bool { return g.redraw || g.dirty }

// Apply runs a mutation and dispatches its effects: layout is deferred to
// the task queue (coalescing bursts) and a redraw is requested.
func (g *Grid) Apply(m Mutation) (Effects, error) {
	e, err := m.apply(g)
	g.dispatch(e)
	return e, err
}

func (g *Grid) dispatch(e Effects) {
	if e.NeedsLayout {
		g.dirty = true
		g.queue.Post(g.layoutKey, func() {
			if g.dirty {
				g.Layout()
			}
		})
	}
	if e.NeedsRedraw || e.NeedsLayout {
		g.redraw = true
	}
}

// SetSource projects src into the grid. A nil src empties it.
func (g *Grid) SetSource(src DataSource) error {
	_, err := g.Apply(AssignSource{Source: src})
	return err
}

// Clear drops every column and row.
func (g *Grid) Clear() {
	g.Apply(ClearGrid{})
}

// SetCell changes a cell by row display index and writes it back to the source.
func (g *Grid) SetCell(row int, column string, v any) error {
	_, err := g.Apply(SetCell{Row: row, Column: column, Value: v})
	return err
}

// Layout recomputes every column's bounds and the scrollbars immediately.
func (g *Grid) Layout() {
	g.content = g.engine.Recompute(&g.columns, &g.rows)
	g.updateScroll()
	g.dirty = false
	g.redraw = true
}

func (g *Grid) ensureLayout() {
	if g.dirty {
		g.Layout()
	}
}

func (g *Grid) updateScroll() {
	g.scroll.Update(g.content, Size{W: g.bounds.W, H: g.bounds.H}, g.rows.AverageHeight())
}

// Paint draws the grid into s, laying out first when a pass is pending.
func (g *Grid) Paint(s Surface) {
	g.ensureLayout()
	p := Painter{
		Columns:   &g.columns,
		Rows:      &g.rows,
		Cells:     &g.cells,
		Hover:     &g.hover,
		Client:    g.bounds,
		Scroll:    g.scroll.Offset(),
		BackColor: g.backColor,
	}
	p.Paint(s)
	g.redraw = false
}

// HitTest resolves a window-space point.
func (g *Grid) HitTest(pt Vec2) Hit {
	g.ensureLayout()
	h := HitTester{
		Columns: &g.columns,
		Rows:    &g.rows,
		Cells:   &g.cells,
		Client:  g.bounds,
		Scroll:  g.scroll.Offset(),
	}
	return h.Resolve(pt)
}

// SetBounds moves and resizes the client rectangle.
func (g *Grid) SetBounds(r Rect) {
	if r == g.bounds {
		return
	}
	g.bounds = r
	g.updateScroll()
	g.redraw = true
}

// Resize changes the client size, keeping its position.
func (g *Grid) Resize(w, h float32) {
	g.SetBounds(Rect{X: g.bounds.X, Y: g.bounds.Y, W: w, H: h})
}

// ScrollTo sets the drawing offset, clamped to the scroll ranges.
func (g *Grid) ScrollTo(x, y float32) {
	if g.scroll.ScrollTo(x, y) {
		g.redraw = true
	}
}

// ScrollToRow scrolls vertically until the row at display index i is visible.
func (g *Grid) ScrollToRow(i int) {
	g.ensureLayout()
	headH := g.columns.style.Height
	c := NewRowClipper(&g.rows, g.bounds.H-headH, g.scroll.V.Value)
	g.ScrollTo(g.scroll.H.Value, c.ScrollToItem(i, g.scroll.V.Value, g.bounds.H-headH))
}

// OnColumnClick registers a header click handler.
func (g *Grid) OnColumnClick(fn func(ClickEvent)) {
	g.onColumnClick = append(g.onColumnClick, fn)
}

// OnRowClick registers a cell click handler.
func (g *Grid) OnRowClick(fn func(ClickEvent)) {
	g.onRowClick = append(g.onRowClick, fn)
}

// PointerMove updates the hover state and requests a redraw when the target
// under the pointer changed.
func (g *Grid) PointerMove(pt Vec2) {
	prev := g.hover
	g.hover.Point = pt
	g.hover.Inside = g.bounds.Contains(pt)
	g.hover.Hit = g.HitTest(pt)
	if prev.Inside != g.hover.Inside || !sameTarget(prev.Hit, g.hover.Hit) || prev.Hit.Rect != g.hover.Hit.Rect {
		g.redraw = true
	}
}

// PointerLeave clears the hover state.
func (g *Grid) PointerLeave() {
	if g.hover.Inside {
		g.redraw = true
	}
	g.hover = HoverState{Point: g.hover.Point}
}

// PointerDown remembers the target under the pointer for the matching PointerUp.
func (g *Grid) PointerDown(pt Vec2, button MouseButton) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	g.pressed[button] = g.HitTest(pt)
}

// PointerUp completes a click when the pointer is released over the target
// it was pressed on.
func (g *Grid) PointerUp(pt Vec2, button MouseButton) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	down := g.pressed[button]
	g.pressed[button] = Hit{}
	up := g.HitTest(pt)
	if !sameTarget(down, up) {
		return
	}
	g.click(up, button, pt)
}

// Wheel scrolls by small steps; positive dy scrolls up.
func (g *Grid) Wheel(dx, dy float32) {
	if g.scroll.ScrollBy(-dx, -dy) {
		g.redraw = true
	}
}

// HandleInput translates one frame of polled input into grid events.
func (g *Grid) HandleInput(in *InputState) {
	if in.Resized() {
		g.Resize(in.DisplayW-g.bounds.X, in.DisplayH-g.bounds.Y)
	}
	pt := in.MousePos()
	if in.MouseMoved() {
		if in.MouseOutside() {
			g.PointerLeave()
		} else {
			g.PointerMove(pt)
		}
	}
	for b := MouseButton(0); b < MouseButtonCount; b++ {
		if in.MouseClicked(b) {
			g.PointerDown(pt, b)
		}
		if in.MouseReleased(b) {
			g.PointerUp(pt, b)
		}
	}
	if in.MouseWheelX != 0 || in.MouseWheelY != 0 {
		g.Wheel(in.MouseWheelX, in.MouseWheelY)
	}

	switch {
	case in.KeyPressed(KeyUp):
		g.Wheel(0, 1)
	case in.KeyPressed(KeyDown):
		g.Wheel(0, -1)
	case in.KeyPressed(KeyLeft):
		g.Wheel(1, 0)
	case in.KeyPressed(KeyRight):
		g.Wheel(-1, 0)
	case in.KeyPressed(KeyPageUp):
		if g.scroll.Page(-1) {
			g.redraw = true
		}
	case in.KeyPressed(KeyPageDown):
		if g.scroll.Page(1) {
			g.redraw = true
		}
	case in.KeyPressed(KeyHome):
		g.ScrollTo(g.scroll.H.Value, 0)
	case in.KeyPressed(KeyEnd):
		g.ScrollTo(g.scroll.H.Value, g.scroll.V.Max)
	case in.KeyPressed(KeyCopy):
		g.CopySelection()
	}
}

func sameTarget(a, b Hit) bool {
	return a.Zone != HitNone && a.Zone == b.Zone && a.Column == b.Column && a.Row == b.Row
}

// click applies the header and cell click rules:
//   - primary click on an unsorted header sorts it ascending with the next
//     free priority;
//   - primary click on the sort glyph or badge toggles the direction and
//     keeps the priority;
//   - secondary click on a sorted header removes its sort key;
//   - primary click on an editable boolean cell toggles it.
func (g *Grid) click(hit Hit, button MouseButton, pt Vec2) {
	ev := ClickEvent{Button: button, Point: pt, Column: hit.Column, Row: hit.Row, Part: hit.Part}
	switch hit.Zone {
	case HitHeader:
		c := hit.Column
		next := c.order
		switch {
		case button == MouseButtonRight:
			next = SortNone
		case button != MouseButtonLeft:
		case c.order == SortNone:
			next = SortAscending
		case hit.Part == PartSortGlyph || hit.Part == PartSortBadge:
			next = SortAscending
			if c.order == SortAscending {
				next = SortDescending
			}
		}
		if next != c.order {
			if _, err := g.Apply(SetColumnSort{Column: c.name, Order: next}); err != nil {
				gridLogger.Debug("sort not applied", "column", c.name, "err", err)
			}
		}
		for _, fn := range g.onColumnClick {
			fn(ev)
		}
	case HitCell:
		c, r := hit.Column, hit.Row
		if button == MouseButtonLeft && c.kind == KindBool && c.editable {
			on, _ := ParseBool(r.Value(c.name))
			if _, err := g.Apply(SetCell{Row: r.Index(), Column: c.name, Value: !on}); err != nil {
				gridLogger.Debug("cell toggle not written back", "column", c.name, "err", err)
			}
		}
		for _, fn := range g.onRowClick {
			fn(ev)
		}
	}
}

// reset drops the projection and the per-instance caches.
func (g *Grid) reset() {
	g.columns.clear()
	g.rows.clear()
	g.cells.Clear()
	g.hover.Hit = Hit{}
	g.pressed = [MouseButtonCount]Hit{}
	g.scroll.ScrollTo(0, 0)
}

// project reads src once into columns and rows.
func (g *Grid) project(src DataSource) {
	cols := slices.Clone(src.Columns())
	slices.SortStableFunc(cols, func(a, b SourceColumn) int { return cmp.Compare(a.Index, b.Index) })
	for _, sc := range cols {
		if g.columns.Get(sc.Name) != nil {
			gridLogger.Debug("duplicate source column skipped", "column", sc.Name)
			continue
		}
		g.columns.add(sc.Name, sc.Kind)
	}
	for i, rec := range src.Rows() {
		r := g.rows.add(i)
		for _, c := range g.columns.list {
			if err := r.store(c.name, c.kind, recordValue(rec, c.name), g.metrics); err != nil {
				gridLogger.Debug("cell not measured", "column", c.name, "row", i, "err", err)
			}
		}
	}
	SortRows(g.rows.list, g.columns.SortKeys())
}

// remeasure refreshes a row's cached widths after its font changed.
func (g *Grid) remeasure(r *Row) {
	if err := r.remeasure(&g.columns, g.metrics); err != nil {
		gridLogger.Debug("row not measured", "row", r.source, "err", err)
	}
}
