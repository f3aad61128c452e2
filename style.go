package grid

// Layout constants.
const (
	// headPad separates header parts and is added to the measured label width.
	headPad float32 = 3
	// stylePad is added above and below the reference glyph to derive Height.
	stylePad float32 = 2
	// referenceGlyph is measured to derive a style's row height.
	referenceGlyph = "█"
)

// Style is shared by the column header band and the rows.
type Style struct {
	Font Font

	BackColor                uint32
	BackColorAccent          uint32 // header gradient bottom (0 = BackColor)
	BackColorSelect          uint32
	BackColorAlternate       uint32 // odd rows
	BackColorAlternateAccent uint32
	ForeColor                uint32
	ForeColorSelect          uint32 // selected header label (0 = ForeColor)
	ForeColorAlternate       uint32

	// Height is derived from Font by DeriveHeight and stays fixed until
	// the font changes.
	Height float32

	AlignHeadH    Alignment
	AlignHeadV    Alignment
	AlignContentH Alignment
	AlignContentV Alignment
}

// DeriveHeight sets Height from the measured reference glyph plus padding.
// A font that cannot be measured leaves Height unchanged.
func (s *Style) DeriveHeight(m TextMetrics) error {
	sz, err := m.MeasureText(referenceGlyph, s.Font)
	if err != nil {
		return err
	}
	s.Height = stylePad + sz.H + stylePad
	return nil
}

// copyStyle copies every shared field of src into dst. Content alignment
// is left alone because it follows the column's value kind.
func copyStyle(dst *Style, src *Style) {
	dst.Font = src.Font
	dst.BackColor = src.BackColor
	dst.BackColorAccent = src.BackColorAccent
	dst.BackColorSelect = src.BackColorSelect
	dst.BackColorAlternate = src.BackColorAlternate
	dst.BackColorAlternateAccent = src.BackColorAlternateAccent
	dst.ForeColor = src.ForeColor
	dst.ForeColorSelect = src.ForeColorSelect
	dst.ForeColorAlternate = src.ForeColorAlternate
	dst.Height = src.Height
	dst.AlignHeadH = src.AlignHeadH
	dst.AlignHeadV = src.AlignHeadV
	dst.AlignContentV = src.AlignContentV
}

// affectsBounds reports whether switching from a to b changes layout.
func affectsBounds(a, b *Style) bool {
	return a.Font != b.Font || a.Height != b.Height
}

// Theme bundles the control background with the header and row styles.
type Theme struct {
	BackColor uint32
	Columns   Style
	Rows      Style
}

// DefaultTheme returns the light theme of the classic control.
func DefaultTheme() Theme {
	return Theme{
		BackColor: ColorWhiteSmoke,
		Columns: Style{
			Font:            Font{Family: "mono", Size: 13},
			BackColor:       ColorGhostWhite,
			BackColorAccent: ColorGainsboro,
			ForeColor:       ColorBlack,
			ForeColorSelect: RGBA(0, 120, 215, 255),
			AlignHeadH:      AlignCenter,
			AlignHeadV:      AlignCenter,
			AlignContentH:   AlignNear,
			AlignContentV:   AlignCenter,
			Height:          17,
		},
		Rows: Style{
			Font:               Font{Family: "mono", Size: 12},
			BackColor:          ColorGhostWhite,
			BackColorSelect:    RGBA(0, 120, 215, 255),
			BackColorAlternate: ColorGainsboro,
			ForeColor:          ColorBlack,
			ForeColorAlternate: ColorBlack,
			AlignContentH:      AlignNear,
			AlignContentV:      AlignCenter,
			Height:             16,
		},
	}
}

// DarkTheme returns a dark variant with the cyan accents of the gui toolkit.
func DarkTheme() Theme {
	t := DefaultTheme()
	t.BackColor = RGBA(20, 20, 20, 255)
	t.Columns.BackColor = RGBA(0, 80, 120, 255)
	t.Columns.BackColorAccent = RGBA(0, 50, 80, 255)
	t.Columns.ForeColor = ColorWhite
	t.Columns.ForeColorSelect = RGBA(255, 200, 0, 255)
	t.Rows.BackColor = RGBA(30, 30, 30, 255)
	t.Rows.BackColorAlternate = RGBA(20, 30, 40, 255)
	t.Rows.ForeColor = ColorWhite
	t.Rows.ForeColorAlternate = ColorWhite
	return t
}
