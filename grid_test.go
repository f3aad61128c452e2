package grid_test

import (
	"errors"
	"image"
	"testing"
	"unicode/utf8"

	"github.com/go-theft-auto/grid"
)

// fixedMetrics measures every rune as charW wide and every line as height
// tall, so layout expectations can be computed by hand.
type fixedMetrics struct {
	charW  float32
	height float32
	fail   string // text that fails to measure
}

func (m fixedMetrics) MeasureText(text string, f grid.Font) (grid.Size, error) {
	if f.Family == "missing" || (m.fail != "" && text == m.fail) {
		return grid.Size{}, grid.ErrFontNotFound
	}
	if text == "" {
		return grid.Size{}, nil
	}
	return grid.Size{W: float32(utf8.RuneCountInString(text)) * m.charW, H: m.height}, nil
}

// tenPx gives a header and row height of 14 (10 + 2*2 padding).
var tenPx = fixedMetrics{charW: 10, height: 10}

func peopleTable() *grid.MemoryTable {
	t := grid.NewMemoryTable(
		grid.SourceColumn{Name: "name", Kind: grid.KindString},
		grid.SourceColumn{Name: "age", Kind: grid.KindInt},
		grid.SourceColumn{Name: "active", Kind: grid.KindBool},
	)
	t.AddRow("bob", 41, true)
	t.AddRow("alice", 30, false)
	t.AddRow("carol", 7, nil)
	return t
}

// newGrid returns an 800x600 grid over src measured with tenPx.
func newGrid(t *testing.T, src grid.DataSource, opts ...grid.Option) *grid.Grid {
	t.Helper()
	base := []grid.Option{
		grid.WithMetrics(tenPx),
		grid.WithBounds(grid.Rect{W: 800, H: 600}),
	}
	if src != nil {
		base = append(base, grid.WithSource(src))
	}
	return grid.New(append(base, opts...)...)
}

func rowNames(g *grid.Grid, column string) []string {
	var out []string
	for _, r := range g.Rows().All() {
		out = append(out, r.Text(column))
	}
	return out
}

func center(r grid.Rect) grid.Vec2 {
	return grid.Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func click(g *grid.Grid, pt grid.Vec2, button grid.MouseButton) {
	g.PointerDown(pt, button)
	g.PointerUp(pt, button)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_ProjectsSource(t *testing.T) {
	g := newGrid(t, peopleTable())

	if g.Columns().Len() != 3 {
		t.Fatalf("expected 3 columns, got %d", g.Columns().Len())
	}
	if g.Rows().Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", g.Rows().Len())
	}
	if g.Columns().Style().Height != 14 || g.Rows().Style().Height != 14 {
		t.Errorf("expected derived heights 14/14, got %v/%v", g.Columns().Style().Height, g.Rows().Style().Height)
	}
	if got := rowNames(g, "name"); !equalStrings(got, []string{"bob", "alice", "carol"}) {
		t.Errorf("expected source order, got %v", got)
	}
	if g.LayoutPending() {
		t.Error("New should lay out immediately")
	}

	r := g.Rows().At(2)
	if r.Source() != 2 || r.Index() != 2 {
		t.Errorf("expected source/index 2/2, got %d/%d", r.Source(), r.Index())
	}
	if r.Text("active") != "null" {
		t.Errorf("expected nil bool to display as null, got %q", r.Text("active"))
	}
	if r.Text("AGE") != "7" {
		t.Errorf("cell lookup should ignore case, got %q", r.Text("AGE"))
	}
}

func TestNew_DuplicateColumnsSkipped(t *testing.T) {
	src := grid.NewMemoryTable(
		grid.SourceColumn{Name: "id", Kind: grid.KindInt},
		grid.SourceColumn{Name: "ID", Kind: grid.KindString},
	)
	src.AddRow(1, "one")
	g := newGrid(t, src)

	if g.Columns().Len() != 1 {
		t.Fatalf("expected 1 column, got %d", g.Columns().Len())
	}
	if c := g.Columns().Get("Id"); c == nil || c.Kind() != grid.KindInt {
		t.Errorf("expected the first declaration to win, got %v", c)
	}
}

func TestSort_MultiKeyPriority(t *testing.T) {
	src := grid.NewMemoryTable(
		grid.SourceColumn{Name: "Name", Kind: grid.KindString},
		grid.SourceColumn{Name: "Age", Kind: grid.KindInt},
		grid.SourceColumn{Name: "Active", Kind: grid.KindBool},
	)
	src.AddRow("b", 30, true)
	src.AddRow("a", 30, false)
	src.AddRow("c", 20, true)
	g := newGrid(t, src)

	if _, err := g.ConfigureColumn("Age", grid.SortedBy(grid.SortAscending)); err != nil {
		t.Fatalf("ConfigureColumn(Age) error: %v", err)
	}
	if got := rowNames(g, "Name"); !equalStrings(got, []string{"c", "b", "a"}) {
		t.Errorf("age only: expected stable c,b,a, got %v", got)
	}

	if _, err := g.ConfigureColumn("Name", grid.SortedBy(grid.SortAscending)); err != nil {
		t.Fatalf("ConfigureColumn(Name) error: %v", err)
	}
	if got := rowNames(g, "Name"); !equalStrings(got, []string{"c", "a", "b"}) {
		t.Errorf("expected c,a,b, got %v", got)
	}
	if got := g.Columns().Sorts().Names(); !equalStrings(got, []string{"Age", "Name"}) {
		t.Errorf("expected priorities [Age Name], got %v", got)
	}

	// Source indexes survive sorting.
	if r := g.Rows().At(0); r.Source() != 2 {
		t.Errorf("expected row c to keep source index 2, got %d", r.Source())
	}
}

func TestSort_RemovingKeyRenumbers(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.ConfigureColumn("age", grid.SortedBy(grid.SortAscending))
	g.ConfigureColumn("name", grid.SortedBy(grid.SortDescending))

	if _, err := g.Apply(grid.SetColumnSort{Column: "age", Order: grid.SortNone}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	sorts := g.Columns().Sorts()
	if sorts.Len() != 1 || sorts.Priority("name") != 1 || sorts.Priority("age") != 0 {
		t.Errorf("expected name to move up to priority 1, got %v", sorts.Names())
	}
	if got := rowNames(g, "name"); !equalStrings(got, []string{"carol", "bob", "alice"}) {
		t.Errorf("expected name descending, got %v", got)
	}

	// Dropping every key keeps the current order.
	g.Apply(grid.SetColumnSort{Column: "name", Order: grid.SortNone})
	if got := rowNames(g, "name"); !equalStrings(got, []string{"carol", "bob", "alice"}) {
		t.Errorf("expected order kept after clearing keys, got %v", got)
	}
}

func TestClick_SortBadgeTogglesKeepingPriority(t *testing.T) {
	g := newGrid(t, peopleTable())
	if _, err := g.ConfigureColumn("age", grid.SortedBy(grid.SortDescending)); err != nil {
		t.Fatalf("ConfigureColumn() error: %v", err)
	}
	g.Layout()
	age := g.Columns().Get("age")
	pt := center(age.Bounds(grid.PartSortBadge))

	hit := g.HitTest(pt)
	if hit.Zone != grid.HitHeader || hit.Column != age || hit.Part != grid.PartSortBadge {
		t.Fatalf("expected header/age/sort-badge, got %v/%v/%v", hit.Zone, hit.Column, hit.Part)
	}

	click(g, pt, grid.MouseButtonLeft)
	if age.SortOrder() != grid.SortAscending {
		t.Errorf("expected ascending, got %v", age.SortOrder())
	}
	if p := g.Columns().Sorts().Priority("age"); p != 1 {
		t.Errorf("expected priority 1, got %d", p)
	}

	// Clicking the glyph flips it back.
	click(g, center(age.Bounds(grid.PartSortGlyph)), grid.MouseButtonLeft)
	if age.SortOrder() != grid.SortDescending {
		t.Errorf("expected descending after glyph click, got %v", age.SortOrder())
	}

	// Clicking the label of a sorted column leaves it alone.
	click(g, center(age.Bounds(grid.PartText)), grid.MouseButtonLeft)
	if age.SortOrder() != grid.SortDescending {
		t.Errorf("expected label click on sorted column to keep order, got %v", age.SortOrder())
	}
}

func TestClick_UnsortedHeaderTakesNextPriority(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.ConfigureColumn("age", grid.SortedBy(grid.SortDescending))
	g.Layout()

	name := g.Columns().Get("name")
	click(g, center(name.Bounds(grid.PartText)), grid.MouseButtonLeft)

	if name.SortOrder() != grid.SortAscending {
		t.Errorf("expected ascending, got %v", name.SortOrder())
	}
	if p := g.Columns().Sorts().Priority("name"); p != 2 {
		t.Errorf("expected priority 2, got %d", p)
	}
	if !g.LayoutPending() {
		t.Error("adding sort parts should schedule a layout pass")
	}
}

func TestClick_RightClickClearsSort(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.ConfigureColumn("age", grid.SortedBy(grid.SortAscending))
	g.ConfigureColumn("name", grid.SortedBy(grid.SortAscending))
	g.Layout()

	age := g.Columns().Get("age")
	click(g, center(age.Bounds(grid.PartFull)), grid.MouseButtonRight)

	if age.SortOrder() != grid.SortNone {
		t.Errorf("expected none, got %v", age.SortOrder())
	}
	if p := g.Columns().Sorts().Priority("name"); p != 1 {
		t.Errorf("expected name to become priority 1, got %d", p)
	}

	// Right click on an unsorted header is a no-op.
	click(g, center(age.Bounds(grid.PartFull)), grid.MouseButtonRight)
	if age.SortOrder() != grid.SortNone {
		t.Errorf("expected none, got %v", age.SortOrder())
	}
}

func TestClick_ReleaseElsewhereCancels(t *testing.T) {
	g := newGrid(t, peopleTable())
	name := g.Columns().Get("name")
	age := g.Columns().Get("age")

	g.PointerDown(center(name.Bounds(grid.PartFull)), grid.MouseButtonLeft)
	g.PointerUp(center(age.Bounds(grid.PartFull)), grid.MouseButtonLeft)

	if name.SortOrder() != grid.SortNone || age.SortOrder() != grid.SortNone {
		t.Error("a press and release on different headers should not sort")
	}
}

func TestClick_HandlersReceiveEvents(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.Paint(newRecorder(tenPx))

	var cols, rows []grid.ClickEvent
	g.OnColumnClick(func(ev grid.ClickEvent) { cols = append(cols, ev) })
	g.OnRowClick(func(ev grid.ClickEvent) { rows = append(rows, ev) })

	click(g, grid.Vec2{X: 50, Y: 7}, grid.MouseButtonMiddle)
	click(g, grid.Vec2{X: 150, Y: 30}, grid.MouseButtonRight)

	if len(cols) != 1 || cols[0].Column.Name() != "name" || cols[0].Row != nil || cols[0].Button != grid.MouseButtonMiddle {
		t.Fatalf("unexpected column events: %+v", cols)
	}
	if len(rows) != 1 || rows[0].Column.Name() != "age" || rows[0].Row.Index() != 1 {
		t.Fatalf("unexpected row events: %+v", rows)
	}
	if g.Columns().Get("name").SortOrder() != grid.SortNone {
		t.Error("middle click should not sort")
	}
}

func TestClick_BoolCellToggles(t *testing.T) {
	src := peopleTable()
	g := newGrid(t, src)
	g.Paint(newRecorder(tenPx))

	// active is the third column (x 200..300), row 0 spans y 14..28.
	click(g, grid.Vec2{X: 250, Y: 20}, grid.MouseButtonLeft)

	if v := g.Rows().At(0).Value("active"); v != false {
		t.Errorf("expected toggled false, got %v", v)
	}
	if v, _ := src.Cell(0, "active"); v != false {
		t.Errorf("expected source write-back, got %v", v)
	}

	// Null toggles to true.
	click(g, grid.Vec2{X: 250, Y: 48}, grid.MouseButtonLeft)
	if v, _ := src.Cell(2, "active"); v != true {
		t.Errorf("expected null to toggle to true, got %v", v)
	}
}

func TestClick_ReadOnlyBoolCellIgnored(t *testing.T) {
	src := peopleTable()
	g := newGrid(t, src)
	g.ConfigureColumn("active", grid.ReadOnly())
	g.Paint(newRecorder(tenPx))

	click(g, grid.Vec2{X: 250, Y: 20}, grid.MouseButtonLeft)
	click(g, grid.Vec2{X: 250, Y: 34}, grid.MouseButtonRight)

	if v, _ := src.Cell(0, "active"); v != true {
		t.Errorf("read-only cell changed to %v", v)
	}
	if v, _ := src.Cell(1, "active"); v != false {
		t.Errorf("right click changed cell to %v", v)
	}
}

func TestHandleInput_ClickSorts(t *testing.T) {
	g := newGrid(t, peopleTable())
	in := grid.NewInputState()

	in.SetMousePos(150, 7)
	in.SetMouseButton(grid.MouseButtonLeft, true)
	g.HandleInput(in)
	in.Reset()
	in.SetMouseButton(grid.MouseButtonLeft, false)
	g.HandleInput(in)

	if got := g.Columns().Get("age").SortOrder(); got != grid.SortAscending {
		t.Fatalf("expected age ascending, got %v", got)
	}
	if got := rowNames(g, "name"); !equalStrings(got, []string{"carol", "alice", "bob"}) {
		t.Errorf("expected rows by age, got %v", got)
	}
	if hover := g.Hover(); !hover.Inside || hover.Hit.Column == nil || hover.Hit.Column.Name() != "age" {
		t.Errorf("expected hover over age, got %+v", hover)
	}
}

func TestPointer_HoverRedraw(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.Paint(newRecorder(tenPx))

	g.PointerMove(grid.Vec2{X: 50, Y: 20})
	if !g.NeedsRedraw() {
		t.Error("moving onto a cell should request a redraw")
	}
	g.Paint(newRecorder(tenPx))

	g.PointerMove(grid.Vec2{X: 51, Y: 21})
	if g.NeedsRedraw() {
		t.Error("moving within the same cell should not request a redraw")
	}

	g.PointerLeave()
	if !g.NeedsRedraw() || g.Hover().Inside {
		t.Error("leaving should clear hover and request a redraw")
	}
}

type failingSource struct {
	*grid.MemoryTable
}

var errReadOnly = errors.New("read-only source")

func (failingSource) SetCell(int, string, any) error { return errReadOnly }

func TestSetCell_WriteBackFailureKeepsValue(t *testing.T) {
	g := newGrid(t, failingSource{peopleTable()})

	err := g.SetCell(1, "name", "alicia")
	if !errors.Is(err, errReadOnly) {
		t.Fatalf("expected errReadOnly, got %v", err)
	}
	if got := g.Rows().At(1).Text("name"); got != "alicia" {
		t.Errorf("expected grid to keep alicia, got %q", got)
	}
}

func TestSetCell_Errors(t *testing.T) {
	g := newGrid(t, peopleTable())

	if err := g.SetCell(9, "name", "x"); !errors.Is(err, grid.ErrRowOutOfRange) {
		t.Errorf("expected ErrRowOutOfRange, got %v", err)
	}
	if err := g.SetCell(0, "height", 1); !errors.Is(err, grid.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSetCell_UsesSourceIndex(t *testing.T) {
	src := peopleTable()
	g := newGrid(t, src)
	g.ConfigureColumn("name", grid.SortedBy(grid.SortAscending))

	// Display row 0 is alice, source row 1.
	if err := g.SetCell(0, "age", 31); err != nil {
		t.Fatalf("SetCell() error: %v", err)
	}
	if v, _ := src.Cell(1, "age"); v != 31 {
		t.Errorf("expected alice's age written to source row 1, got %v", v)
	}
	if v, _ := src.Cell(0, "age"); v != 41 {
		t.Errorf("source row 0 changed to %v", v)
	}
}

func TestSetSource_ReplacesProjection(t *testing.T) {
	g := newGrid(t, peopleTable(), grid.WithBounds(grid.Rect{W: 800, H: 30}))
	g.ConfigureColumn("age", grid.SortedBy(grid.SortAscending))
	g.ScrollTo(0, 10)
	if y := g.ScrollOffset().Y; y != 10 {
		t.Fatalf("expected to start scrolled to 10, got %v", y)
	}

	other := grid.NewMemoryTable(grid.SourceColumn{Name: "sku", Kind: grid.KindString})
	other.AddRow("A-1")
	if err := g.SetSource(other); err != nil {
		t.Fatalf("SetSource() error: %v", err)
	}
	g.Layout()

	if g.Columns().Len() != 1 || g.Rows().Len() != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d", g.Columns().Len(), g.Rows().Len())
	}
	if g.Columns().Sorts().Len() != 0 {
		t.Error("sort keys should be dropped with the old columns")
	}
	if g.ScrollOffset() != (grid.Vec2{}) {
		t.Errorf("expected scroll reset, got %v", g.ScrollOffset())
	}

	g.Clear()
	g.Layout()
	if g.Columns().Len() != 0 || g.Rows().Len() != 0 || g.Source() != nil {
		t.Error("Clear should empty the grid and detach the source")
	}
	if g.ContentSize() != (grid.Size{W: 0, H: 14}) {
		t.Errorf("expected header-only content, got %v", g.ContentSize())
	}
}

func TestSetColumnIndex_Moves(t *testing.T) {
	g := newGrid(t, peopleTable())

	order := func() []string {
		var out []string
		for _, c := range g.Columns().Ordered() {
			out = append(out, c.Name())
		}
		return out
	}

	if _, err := g.Apply(grid.SetColumnIndex{Column: "active", Index: 0}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if got := order(); !equalStrings(got, []string{"active", "name", "age"}) {
		t.Errorf("expected active,name,age, got %v", got)
	}

	// Past the end clamps to the last slot.
	g.Apply(grid.SetColumnIndex{Column: "active", Index: 99})
	if got := order(); !equalStrings(got, []string{"name", "age", "active"}) {
		t.Errorf("expected name,age,active, got %v", got)
	}
	g.Apply(grid.SetColumnIndex{Column: "age", Index: -5})
	if got := order(); !equalStrings(got, []string{"age", "name", "active"}) {
		t.Errorf("expected age,name,active, got %v", got)
	}
	for i, c := range g.Columns().Ordered() {
		if c.Index() != i {
			t.Errorf("column %s has index %d, want %d", c.Name(), c.Index(), i)
		}
	}

	e, _ := g.Apply(grid.SetColumnIndex{Column: "age", Index: 0})
	if e != (grid.Effects{}) {
		t.Errorf("moving to the current slot should have no effects, got %+v", e)
	}

	g.Layout()
	if x := g.Columns().Get("age").Bounds(grid.PartFull).X; x != 0 {
		t.Errorf("expected age laid out first, got x=%v", x)
	}
}

func TestColumnImage(t *testing.T) {
	g := newGrid(t, peopleTable())
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))

	e, err := g.Apply(grid.SetColumnImage{Column: "name", Image: img})
	if err != nil || !e.NeedsLayout {
		t.Fatalf("adding an image should need layout, got %+v, %v", e, err)
	}

	same := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	if e, _ := g.Apply(grid.SetColumnImage{Column: "name", Image: same}); e != (grid.Effects{}) {
		t.Errorf("identical pixels should have no effects, got %+v", e)
	}

	other := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	other.Pix[3] = 255
	if e, _ := g.Apply(grid.SetColumnImage{Column: "name", Image: other}); e.NeedsLayout || !e.NeedsRedraw {
		t.Errorf("same size different pixels should only redraw, got %+v", e)
	}

	if e, _ := g.Apply(grid.SetColumnImage{Column: "name", Image: nil}); !e.NeedsLayout {
		t.Errorf("removing the image should need layout, got %+v", e)
	}
}

func TestConfigureColumn_JoinsErrors(t *testing.T) {
	g := newGrid(t, peopleTable())

	_, err := g.ConfigureColumn("missing", grid.Hidden(), grid.Selected())
	if !errors.Is(err, grid.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}

	tooltip := grid.NewOptKey("tooltip", "")
	if tooltip.Name() != "tooltip" || tooltip.Default() != "" {
		t.Errorf("unexpected key %q default %q", tooltip.Name(), tooltip.Default())
	}
	e, err := g.ConfigureColumn("name", grid.WithOpt(tooltip, "full name"))
	if err != nil || e != (grid.Effects{}) {
		t.Errorf("custom options should not mutate, got %+v, %v", e, err)
	}

	e, err = g.ConfigureColumn("name", grid.Selected(), grid.Hidden(), grid.WithWidthLimits(50, 80))
	if err != nil {
		t.Fatalf("ConfigureColumn() error: %v", err)
	}
	if !e.NeedsLayout || !e.NeedsRedraw {
		t.Errorf("expected merged layout effects, got %+v", e)
	}
	c := g.Columns().Get("name")
	if !c.Selected() || c.Visible() || c.WidthMin() != 50 || c.WidthMax() != 80 {
		t.Errorf("options not applied: selected=%v visible=%v limits=%v..%v", c.Selected(), c.Visible(), c.WidthMin(), c.WidthMax())
	}
}

// sharedColumns hands out its own column slice instead of a copy.
type sharedColumns struct {
	*grid.MemoryTable
	cols []grid.SourceColumn
}

func (s *sharedColumns) Columns() []grid.SourceColumn { return s.cols }

func TestNew_LeavesSourceColumnsUntouched(t *testing.T) {
	src := &sharedColumns{
		MemoryTable: peopleTable(),
		cols: []grid.SourceColumn{
			{Name: "active", Kind: grid.KindBool, Index: 2},
			{Name: "name", Kind: grid.KindString, Index: 0},
			{Name: "age", Kind: grid.KindInt, Index: 1},
		},
	}
	g := newGrid(t, src)

	if c := g.Columns().At(0); c == nil || c.Name() != "name" {
		t.Errorf("expected name first in display order, got %v", c)
	}
	if got := src.cols[0].Name; got != "active" {
		t.Errorf("source column order changed, first is now %s", got)
	}
}
