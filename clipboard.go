package grid

import (
	"strings"
)

// ClipboardProvider abstracts system clipboard access.
// Implement this interface with platform-specific clipboard APIs.
//
// For GLFW:
//
//	type GLFWClipboard struct {
//	    window *glfw.Window
//	}
//
//	func (c *GLFWClipboard) GetText() string {
//	    return c.window.GetClipboardString()
//	}
//
//	func (c *GLFWClipboard) SetText(text string) {
//	    c.window.SetClipboardString(text)
//	}
type ClipboardProvider interface {
	// GetText retrieves text from the system clipboard.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}

// WithClipboard sets the clipboard CopySelection writes to.
func WithClipboard(cp ClipboardProvider) Option {
	return func(g *Grid) { g.clipboard = cp }
}

// SetClipboard replaces the clipboard after construction, e.g. once the
// window exists.
func (g *Grid) SetClipboard(cp ClipboardProvider) { g.clipboard = cp }

// SelectionText renders the selected visible rows as tab-separated display
// text, one line per row in display order, preceded by a header line with
// the visible column names. It is empty when no row is selected.
func (g *Grid) SelectionText() string {
	var cols []*Column
	for _, c := range g.columns.Ordered() {
		if c.visible && c.kind != KindImage {
			cols = append(cols, c)
		}
	}
	var b strings.Builder
	for _, r := range g.rows.list {
		if !r.visible || !r.selected {
			continue
		}
		if b.Len() == 0 {
			for i, c := range cols {
				if i > 0 {
					b.WriteByte('\t')
				}
				b.WriteString(c.name)
			}
			b.WriteByte('\n')
		}
		for i, c := range cols {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(tsvField(r.Text(c.name)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CopySelection writes SelectionText to the clipboard. It reports false when
// there is no clipboard or nothing is selected.
func (g *Grid) CopySelection() bool {
	if g.clipboard == nil {
		return false
	}
	text := g.SelectionText()
	if text == "" {
		return false
	}
	g.clipboard.SetText(text)
	return true
}

// tsvField flattens characters that would break the row structure.
func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
