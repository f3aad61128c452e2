package grid

// Horizontal small scroll step in pixels.
const hScrollStep float32 = 20

// ScrollBar is the state produced for one scrollbar.
type ScrollBar struct {
	Min       float32
	Max       float32
	Value     float32
	SmallStep float32
	LargeStep float32
	Visible   bool
}

// maxValue is the largest offset that still fills the viewport.
func (b ScrollBar) maxValue() float32 {
	return maxf(b.Min, b.Max-b.LargeStep)
}

// clampValue keeps Value inside the scrollable range; an invisible bar
// always sits at Min.
func (b *ScrollBar) clampValue() {
	if !b.Visible {
		b.Value = b.Min
		return
	}
	b.Value = clampf(b.Value, b.Min, b.maxValue())
}

// ScrollCoordinator maps content and client sizes to scrollbar ranges and
// the drawing offset. Scrolling never changes the layout.
type ScrollCoordinator struct {
	V ScrollBar
	H ScrollBar
}

// Update recomputes both bars. Both content and client sizes include the
// header band; the header scrolls only horizontally.
func (s *ScrollCoordinator) Update(content, client Size, avgRowHeight float32) {
	s.V.Min, s.H.Min = 0, 0

	s.V.Visible = content.H > client.H
	s.V.Max = content.H
	s.V.SmallStep = avgRowHeight
	s.V.LargeStep = client.H
	s.V.clampValue()

	s.H.Visible = content.W > client.W
	s.H.Max = content.W
	s.H.SmallStep = hScrollStep
	s.H.LargeStep = client.W
	s.H.clampValue()
}

// Offset returns the current drawing offset.
func (s *ScrollCoordinator) Offset() Vec2 {
	return Vec2{X: s.H.Value, Y: s.V.Value}
}

// ScrollTo sets both values, clamped. It reports whether the offset moved.
func (s *ScrollCoordinator) ScrollTo(x, y float32) bool {
	before := s.Offset()
	s.H.Value, s.V.Value = x, y
	s.H.clampValue()
	s.V.clampValue()
	return s.Offset() != before
}

// ScrollBy moves by a number of small steps on each axis.
func (s *ScrollCoordinator) ScrollBy(stepsX, stepsY float32) bool {
	return s.ScrollTo(s.H.Value+stepsX*s.H.SmallStep, s.V.Value+stepsY*s.V.SmallStep)
}

// Page moves the vertical bar by whole pages.
func (s *ScrollCoordinator) Page(pages float32) bool {
	return s.ScrollTo(s.H.Value, s.V.Value+pages*s.V.LargeStep)
}
