package grid

import (
	"fmt"
	"image"
)

// Effects tells the dispatcher what a mutation invalidated.
type Effects struct {
	NeedsLayout bool
	NeedsRedraw bool
}

// Merge combines two effect sets.
func (e Effects) Merge(o Effects) Effects {
	return Effects{
		NeedsLayout: e.NeedsLayout || o.NeedsLayout,
		NeedsRedraw: e.NeedsRedraw || o.NeedsRedraw,
	}
}

var (
	layoutEffects = Effects{NeedsLayout: true, NeedsRedraw: true}
	redrawEffects = Effects{NeedsRedraw: true}
)

// Mutation is one state change of a Grid. Grid.Apply runs it and reacts to
// the returned Effects.
type Mutation interface {
	apply(g *Grid) (Effects, error)
}

func (g *Grid) column(name string) (*Column, error) {
	c := g.columns.Get(name)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return c, nil
}

func (g *Grid) row(index int) (*Row, error) {
	r := g.rows.At(index)
	if r == nil {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	return r, nil
}

// AddColumn appends a column after the last display index. Cell values are
// read from the data source's rows under the new name; rows without one, or a
// grid without a source, hold null.
type AddColumn struct {
	Name string
	Kind ValueKind
}

func (m AddColumn) apply(g *Grid) (Effects, error) {
	if g.columns.Get(m.Name) != nil {
		return Effects{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, m.Name)
	}
	c := g.columns.add(m.Name, m.Kind)
	values := make(map[int]any, len(g.rows.list))
	if g.source != nil {
		for i, rec := range g.source.Rows() {
			values[i] = recordValue(rec, c.name)
		}
	}
	for _, r := range g.rows.list {
		if err := r.store(c.name, c.kind, values[r.source], g.metrics); err != nil {
			gridLogger.Debug("cell not measured", "column", c.name, "row", r.source, "err", err)
		}
	}
	return layoutEffects, nil
}

// RemoveColumn drops a column and its cells. Remaining display indexes and
// sort priorities close the gap; a sorted column's removal re-sorts the rows
// by the keys that are left.
type RemoveColumn struct {
	Name string
}

func (m RemoveColumn) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Name)
	if err != nil {
		return Effects{}, err
	}
	g.columns.remove(c.name)
	for _, r := range g.rows.list {
		r.drop(c.name)
	}
	if c.order != SortNone {
		SortRows(g.rows.list, g.columns.SortKeys())
	}
	if g.hover.Hit.Column == c {
		g.hover.Hit = Hit{}
	}
	for i := range g.pressed {
		if g.pressed[i].Column == c {
			g.pressed[i] = Hit{}
		}
	}
	g.cells.Clear()
	return layoutEffects, nil
}

// SetColumnIndex moves a column to a display index. Out of range indexes
// are clamped; siblings are renumbered.
type SetColumnIndex struct {
	Column string
	Index  int
}

func (m SetColumnIndex) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	if !g.columns.setIndex(c, m.Index) {
		return Effects{}, nil
	}
	return layoutEffects, nil
}

// SetColumnWidthLimits changes a column's minimum and maximum width.
type SetColumnWidthLimits struct {
	Column   string
	Min, Max float32
}

func (m SetColumnWidthLimits) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	if c.widthMin == m.Min && c.widthMax == m.Max {
		return Effects{}, nil
	}
	c.widthMin, c.widthMax = m.Min, m.Max
	return layoutEffects, nil
}

// SetColumnVisible shows or hides a column.
type SetColumnVisible struct {
	Column  string
	Visible bool
}

func (m SetColumnVisible) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	if c.visible == m.Visible {
		return Effects{}, nil
	}
	c.visible = m.Visible
	return layoutEffects, nil
}

// SetColumnImage sets or removes a header image.
type SetColumnImage struct {
	Column string
	Image  image.Image
}

func (m SetColumnImage) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	old := c.image
	c.image = m.Image
	if (old == nil) != (m.Image == nil) || imageSize(old) != imageSize(m.Image) {
		return layoutEffects, nil
	}
	if SameImage(old, m.Image) {
		return Effects{}, nil
	}
	return redrawEffects, nil
}

// SetColumnSort changes a column's sort order and re-sorts the rows by every
// active key.
type SetColumnSort struct {
	Column string
	Order  SortOrder
}

func (m SetColumnSort) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	if c.order == m.Order {
		return Effects{}, nil
	}
	boundsChange := g.columns.setSortOrder(c, m.Order)
	SortRows(g.rows.list, g.columns.SortKeys())
	if boundsChange {
		return layoutEffects, nil
	}
	return redrawEffects, nil
}

// SetColumnSelected highlights a header label.
type SetColumnSelected struct {
	Column   string
	Selected bool
}

func (m SetColumnSelected) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	if c.selected == m.Selected {
		return Effects{}, nil
	}
	c.selected = m.Selected
	return redrawEffects, nil
}

// SetColumnEditable controls whether boolean cells toggle on click.
type SetColumnEditable struct {
	Column   string
	Editable bool
}

func (m SetColumnEditable) apply(g *Grid) (Effects, error) {
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	c.editable = m.Editable
	return Effects{}, nil
}

// deriveOnFontChange re-derives next.Height when its font differs from prev.
// A font that cannot be measured keeps the previous height.
func deriveOnFontChange(next *Style, prev *Style, m TextMetrics) {
	if next.Font == prev.Font {
		return
	}
	if err := next.DeriveHeight(m); err != nil {
		next.Height = prev.Height
		gridLogger.Debug("style height not derived", "font", next.Font.String(), "err", err)
	}
}

// SetColumnStyle replaces the shared header style and copies it to every
// column. Only font and height changes invalidate layout.
type SetColumnStyle struct {
	Style Style
}

func (m SetColumnStyle) apply(g *Grid) (Effects, error) {
	next := m.Style
	deriveOnFontChange(&next, &g.columns.style, g.metrics)
	g.columns.style = next
	if g.columns.applyGroupStyle() {
		return layoutEffects, nil
	}
	return redrawEffects, nil
}

// SetRowStyle replaces the shared row style. Rows with their own style keep it.
type SetRowStyle struct {
	Style Style
}

func (m SetRowStyle) apply(g *Grid) (Effects, error) {
	prev := g.rows.style
	next := m.Style
	deriveOnFontChange(&next, &prev, g.metrics)
	g.rows.style = next
	if !affectsBounds(&prev, &next) {
		return redrawEffects, nil
	}
	if prev.Font != next.Font {
		for _, r := range g.rows.list {
			if r.style == nil {
				g.remeasure(r)
			}
		}
	}
	return layoutEffects, nil
}

// SetRowOwnStyle gives one row (by display index) its own style; a nil
// Style restores the shared one.
type SetRowOwnStyle struct {
	Row   int
	Style *Style
}

func (m SetRowOwnStyle) apply(g *Grid) (Effects, error) {
	r, err := g.row(m.Row)
	if err != nil {
		return Effects{}, err
	}
	prev := *r.Style()
	if m.Style == nil {
		r.style = nil
	} else {
		next := *m.Style
		deriveOnFontChange(&next, &prev, g.metrics)
		r.style = &next
	}
	next := r.Style()
	if !affectsBounds(&prev, next) {
		return redrawEffects, nil
	}
	if prev.Font != next.Font {
		g.remeasure(r)
	}
	return layoutEffects, nil
}

// SetRowVisible shows or hides a row by display index.
type SetRowVisible struct {
	Row     int
	Visible bool
}

func (m SetRowVisible) apply(g *Grid) (Effects, error) {
	r, err := g.row(m.Row)
	if err != nil {
		return Effects{}, err
	}
	if r.visible == m.Visible {
		return Effects{}, nil
	}
	r.visible = m.Visible
	return layoutEffects, nil
}

// SetRowSelected highlights a row by display index.
type SetRowSelected struct {
	Row      int
	Selected bool
}

func (m SetRowSelected) apply(g *Grid) (Effects, error) {
	r, err := g.row(m.Row)
	if err != nil {
		return Effects{}, err
	}
	if r.selected == m.Selected {
		return Effects{}, nil
	}
	r.selected = m.Selected
	return redrawEffects, nil
}

// SetCell changes a cell by row display index and column name and writes the
// value back to the data source by source row index. The grid keeps the new
// value even when the write-back fails; that error is returned.
type SetCell struct {
	Row    int
	Column string
	Value  any
}

func (m SetCell) apply(g *Grid) (Effects, error) {
	r, err := g.row(m.Row)
	if err != nil {
		return Effects{}, err
	}
	c, err := g.column(m.Column)
	if err != nil {
		return Effects{}, err
	}
	before := r.TextWidth(c.name)
	if err := r.store(c.name, c.kind, m.Value, g.metrics); err != nil {
		gridLogger.Debug("cell not measured", "column", c.name, "row", m.Row, "err", err)
	}
	effects := redrawEffects
	if r.TextWidth(c.name) != before {
		effects = layoutEffects
	}
	if g.source != nil {
		if err := g.source.SetCell(r.source, c.name, m.Value); err != nil {
			gridLogger.Warn("source write-back failed", "column", c.name, "row", r.source, "err", err)
			return effects, fmt.Errorf("write cell %s[%d]: %w", c.name, r.source, err)
		}
	}
	return effects, nil
}

// SetBackColor changes the control background.
type SetBackColor struct {
	Color uint32
}

func (m SetBackColor) apply(g *Grid) (Effects, error) {
	if g.backColor == m.Color {
		return Effects{}, nil
	}
	g.backColor = m.Color
	return redrawEffects, nil
}

// AssignSource replaces the data source and rebuilds the projection.
// A nil source empties the grid.
type AssignSource struct {
	Source DataSource
}

func (m AssignSource) apply(g *Grid) (Effects, error) {
	g.reset()
	g.source = m.Source
	if m.Source == nil {
		return layoutEffects, nil
	}
	g.project(m.Source)
	return layoutEffects, nil
}

// ClearGrid drops every column and row and detaches the source.
type ClearGrid struct{}

func (ClearGrid) apply(g *Grid) (Effects, error) {
	g.reset()
	g.source = nil
	return layoutEffects, nil
}
