package grid_test

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/go-theft-auto/grid"
)

type drawnString struct {
	text  string
	rect  grid.Rect
	color uint32
}

type drawnLine struct {
	from, to  grid.Vec2
	color     uint32
	thickness float32
}

// recorder is a Surface that keeps every call for inspection.
type recorder struct {
	metrics grid.TextMetrics

	fills   []grid.Rect
	colors  []uint32
	strokes []uint32
	lines   []drawnLine
	strings []drawnString
	images  []grid.Rect
	clips   []grid.Rect

	failText   string // DrawString returns an error for this text
	panicImage bool   // DrawImage panics
}

func newRecorder(m grid.TextMetrics) *recorder {
	return &recorder{metrics: m}
}

func (r *recorder) FillRect(rc grid.Rect, color uint32) {
	r.fills = append(r.fills, rc)
	r.colors = append(r.colors, color)
}

func (r *recorder) FillRectGradientV(rc grid.Rect, top, bottom uint32) {
	r.fills = append(r.fills, rc)
	r.colors = append(r.colors, top)
}

func (r *recorder) StrokeRect(rc grid.Rect, color uint32, thickness float32) {
	r.strokes = append(r.strokes, color)
}

func (r *recorder) DrawLine(from, to grid.Vec2, color uint32, thickness float32, cap grid.LineCap) {
	r.lines = append(r.lines, drawnLine{from: from, to: to, color: color, thickness: thickness})
}

func (r *recorder) DrawImage(img image.Image, rc grid.Rect) error {
	if r.panicImage {
		panic("no texture unit")
	}
	r.images = append(r.images, rc)
	return nil
}

func (r *recorder) DrawString(text string, f grid.Font, rc grid.Rect, color uint32, h, v grid.Alignment) error {
	if text == r.failText {
		return errors.New("glyph missing")
	}
	r.strings = append(r.strings, drawnString{text: text, rect: rc, color: color})
	return nil
}

func (r *recorder) MeasureText(text string, f grid.Font) (grid.Size, error) {
	return r.metrics.MeasureText(text, f)
}

func (r *recorder) PushClip(rc grid.Rect) { r.clips = append(r.clips, rc) }

func (r *recorder) PopClip() {
	if n := len(r.clips); n > 0 {
		r.clips = r.clips[:n-1]
	}
}

func (r *recorder) ResetClip() { r.clips = r.clips[:0] }

func (r *recorder) texts() []string {
	out := make([]string, 0, len(r.strings))
	for _, s := range r.strings {
		out = append(out, s.text)
	}
	return out
}

func (r *recorder) find(text string) (drawnString, bool) {
	for _, s := range r.strings {
		if s.text == text {
			return s, true
		}
	}
	return drawnString{}, false
}

func TestPaint_DrawsHeadersAndCells(t *testing.T) {
	g := newGrid(t, peopleTable())
	rec := newRecorder(tenPx)
	g.Paint(rec)

	texts := rec.texts()
	for _, want := range []string{"NAME", "AGE", "ACTIVE", "bob", "41", "alice", "30", "carol", "7"} {
		if !slices.Contains(texts, want) {
			t.Errorf("expected %q to be drawn, got %v", want, texts)
		}
	}
	if slices.Contains(texts, "null") {
		t.Error("bool cells should draw a checkbox, not text")
	}

	if n := g.VisibleCells().Len(); n != 9 {
		t.Errorf("expected 9 cached cells, got %d", n)
	}
	r, ok := g.VisibleCells().Get(1, "AGE")
	if !ok || r != (grid.Rect{X: 100, Y: 28, W: 100, H: 14}) {
		t.Errorf("unexpected cell rect %v (%v)", r, ok)
	}
	if len(rec.clips) != 0 {
		t.Errorf("expected clip stack reset after paint, got %d entries", len(rec.clips))
	}
	if g.NeedsRedraw() {
		t.Error("Paint should clear the redraw request")
	}
}

func TestPaint_ClipsRowsToViewport(t *testing.T) {
	g := newGrid(t, peopleTable(), grid.WithBounds(grid.Rect{W: 800, H: 33}))
	rec := newRecorder(tenPx)
	g.Paint(rec)

	// Header 14 + row 0 (14..28) + part of row 1 (28..42).
	if n := g.VisibleCells().Len(); n != 6 {
		t.Errorf("expected 6 cached cells, got %d", n)
	}
	if _, ok := g.VisibleCells().Get(2, "name"); ok {
		t.Error("row 2 is outside the viewport and should not be cached")
	}
	if slices.Contains(rec.texts(), "carol") {
		t.Error("row 2 should not be drawn")
	}
}

func TestPaint_ScrolledHeaderStaysOnTop(t *testing.T) {
	g := newGrid(t, peopleTable(), grid.WithBounds(grid.Rect{X: 10, Y: 20, W: 150, H: 40}))
	g.ScrollTo(50, 14)
	rec := newRecorder(tenPx)
	g.Paint(rec)

	if off := g.ScrollOffset(); off != (grid.Vec2{X: 50, Y: 14}) {
		t.Fatalf("unexpected offset %v", off)
	}
	age, ok := rec.find("AGE")
	if !ok {
		t.Fatal("AGE header not drawn")
	}
	// age starts at content x 100: client 10 - scroll 50 + 100.
	if age.rect.X != 60 || age.rect.Y != 20 {
		t.Errorf("expected AGE area at (60,20), got (%v,%v)", age.rect.X, age.rect.Y)
	}

	r, ok := g.VisibleCells().Get(1, "name")
	if !ok {
		t.Fatal("row 1 should be visible")
	}
	// Row 1 top 14 in content, below a 14px header at y 20, scrolled by 14.
	if r.Y != 34 || r.X != -40 {
		t.Errorf("expected row 1 at (-40,34), got (%v,%v)", r.X, r.Y)
	}
	if _, ok := g.VisibleCells().Get(0, "active"); ok {
		t.Error("active starts at client x 160 and should be culled")
	}
}

func TestPaint_SortGlyphAndBadge(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.ConfigureColumn("age", grid.SortedBy(grid.SortDescending))
	g.ConfigureColumn("name", grid.SortedBy(grid.SortAscending))
	rec := newRecorder(tenPx)
	g.Paint(rec)

	texts := rec.texts()
	if !slices.Contains(texts, "1") || !slices.Contains(texts, "2") {
		t.Errorf("expected priority badges 1 and 2, got %v", texts)
	}

	// Three 3px strokes per sorted column.
	var strokes int
	for _, l := range rec.lines {
		if l.thickness == 3 {
			strokes++
		}
	}
	if strokes != 6 {
		t.Errorf("expected 6 glyph strokes, got %d", strokes)
	}

	badge, _ := rec.find("2")
	if want := g.Columns().Get("name").Bounds(grid.PartSortBadge); badge.rect != want {
		t.Errorf("expected name badge at %v, got %v", want, badge.rect)
	}
}

func TestPaint_CheckboxStates(t *testing.T) {
	src := grid.NewMemoryTable(grid.SourceColumn{Name: "ok", Kind: grid.KindBool})
	src.AddRow("TRUE")
	src.AddRow("no")
	src.AddRow(nil)
	g := newGrid(t, src, grid.WithMetrics(fixedMetrics{charW: 10, height: 13}))
	rec := newRecorder(tenPx)
	g.Paint(rec)

	var ticks int
	for _, l := range rec.lines {
		if l.thickness == 2 {
			ticks++
		}
	}
	if ticks != 2 {
		t.Errorf("expected one two-stroke tick for TRUE, got %d strokes", ticks)
	}
	if !slices.Contains(rec.strokes, grid.ColorRed) {
		t.Error("expected a red box for the null cell")
	}
}

func TestPaint_SelectedRowColors(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.Apply(grid.SetRowSelected{Row: 1, Selected: true})
	rec := newRecorder(tenPx)
	g.Paint(rec)

	sel := g.Rows().Style().BackColorSelect
	cell, _ := g.VisibleCells().Get(1, "name")
	found := false
	for i, r := range rec.fills {
		if r == cell && rec.colors[i] == sel {
			found = true
		}
	}
	if !found {
		t.Error("selected row should be filled with the select color")
	}
}

func TestPaint_HoverOverlay(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.Paint(newRecorder(tenPx))
	g.PointerMove(grid.Vec2{X: 150, Y: 20})

	rec := newRecorder(tenPx)
	g.Paint(rec)
	overlay := grid.WithAlpha(grid.ColorYellow, 128)
	if !slices.Contains(rec.colors, overlay) {
		t.Error("expected a hover overlay on the cell under the pointer")
	}
}

func TestPaint_FailuresDoNotAbortPass(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.ConfigureColumn("name", grid.WithHeaderImage(image.NewNRGBA(image.Rect(0, 0, 8, 8))))
	rec := newRecorder(tenPx)
	rec.failText = "NAME"
	rec.panicImage = true
	g.Paint(rec)

	if slices.Contains(rec.texts(), "NAME") {
		t.Error("failing label should not be recorded")
	}
	if !slices.Contains(rec.texts(), "AGE") || !slices.Contains(rec.texts(), "bob") {
		t.Errorf("pass should carry on after failures, got %v", rec.texts())
	}
	if n := g.VisibleCells().Len(); n != 9 {
		t.Errorf("expected 9 cached cells, got %d", n)
	}
}

func TestPaint_HiddenRowTakesNoSpace(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.Apply(grid.SetRowVisible{Row: 0, Visible: false})
	g.Paint(newRecorder(tenPx))

	if _, ok := g.VisibleCells().Get(0, "name"); ok {
		t.Error("hidden row should not be cached")
	}
	r, ok := g.VisibleCells().Get(1, "name")
	if !ok || r.Y != 14 {
		t.Errorf("expected row 1 directly under the header, got %v (%v)", r, ok)
	}
	if h := g.ContentSize().H; h != 14+28 {
		t.Errorf("expected content height 42, got %v", h)
	}
}

func TestPaint_AlternationSkipsHiddenRows(t *testing.T) {
	g := newGrid(t, peopleTable())
	g.Apply(grid.SetRowVisible{Row: 1, Visible: false})
	rec := newRecorder(tenPx)
	g.Paint(rec)

	fillOf := func(row int) uint32 {
		cell, ok := g.VisibleCells().Get(row, "name")
		if !ok {
			t.Fatalf("row %d not painted", row)
		}
		for i, r := range rec.fills {
			if r == cell {
				return rec.colors[i]
			}
		}
		t.Fatalf("no fill for row %d", row)
		return 0
	}
	st := g.Rows().Style()
	if c := fillOf(0); c != st.BackColor {
		t.Errorf("first visible row: expected back color %#x, got %#x", st.BackColor, c)
	}
	if c := fillOf(2); c != st.BackColorAlternate {
		t.Errorf("second visible row: expected alternate color %#x, got %#x", st.BackColorAlternate, c)
	}
}
