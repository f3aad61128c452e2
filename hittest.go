package grid

// HitZone classifies a hit test result.
type HitZone int

const (
	HitNone HitZone = iota
	HitHeader
	HitCell
)

func (z HitZone) String() string {
	switch z {
	case HitHeader:
		return "header"
	case HitCell:
		return "cell"
	default:
		return "none"
	}
}

// Hit is the resolved target under a pointer.
type Hit struct {
	Zone   HitZone
	Column *Column
	Row    *Row // nil for header hits
	Rect   Rect // on-screen rectangle of the header or cell
	Part   Part // header part under the pointer, PartFull when none is more specific
}

// hitParts are tested in this order; the first containing part wins.
var hitParts = [...]Part{PartSortBadge, PartSortGlyph, PartImage, PartText}

// HitTester resolves a control-space point against the header bounds and the
// visible cell cache.
type HitTester struct {
	Columns *Columns
	Rows    *Rows
	Cells   *VisibleCells
	Client  Rect
	Scroll  Vec2
}

// Resolve returns what lies under pt. Headers win over cells.
func (h *HitTester) Resolve(pt Vec2) Hit {
	if !h.Client.Contains(pt) {
		return Hit{}
	}
	for _, c := range h.Columns.Ordered() {
		if !c.visible || !c.HasBounds(PartFull) {
			continue
		}
		dx, dy := h.Client.X-h.Scroll.X, h.Client.Y
		full := c.bounds[PartFull].Offset(dx, dy)
		if !h.Client.Intersects(full) || !full.Contains(pt) {
			continue
		}
		hit := Hit{Zone: HitHeader, Column: c, Rect: full, Part: PartFull}
		for _, p := range hitParts {
			if r, ok := c.bounds[p]; ok && r.Offset(dx, dy).Contains(pt) {
				hit.Part = p
				break
			}
		}
		return hit
	}
	if h.Cells == nil {
		return Hit{}
	}
	ref, r, ok := h.Cells.find(pt)
	if !ok {
		return Hit{}
	}
	col := h.Columns.Get(ref.Column)
	row := h.Rows.At(ref.Row)
	if col == nil || row == nil {
		return Hit{}
	}
	return Hit{Zone: HitCell, Column: col, Row: row, Rect: r, Part: PartFull}
}
