// Command gen renders the grid in several states, captures framebuffer pixels,
// and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single grid screenshot to capture.
type screenshot struct {
	name   string            // filename without extension
	width  int               // viewport width
	height int               // viewport height
	theme  func() grid.Theme // nil = DefaultTheme
	setup  func(g *grid.Grid) error
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("grid renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()

	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection — do NOT call window.SetSize because
	// GLFW processes resizes asynchronously, causing framebuffer/scissor mismatches.
	// The hidden window stays at 800×600 (larger than every screenshot).
	renderer.Resize(s.width, s.height)

	theme := grid.DefaultTheme()
	if s.theme != nil {
		theme = s.theme()
	}
	// Fresh grid per screenshot to avoid state leaking between captures.
	g := grid.New(
		grid.WithTheme(theme),
		grid.WithSource(sampleTable()),
		grid.WithBounds(grid.Rect{W: float32(s.width), H: float32(s.height)}),
	)
	if s.setup != nil {
		if err := s.setup(g); err != nil {
			return err
		}
	}
	host := grid.NewHost(renderer, g, grid.WithFontProvider(renderer.Fonts()))

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := host.Frame(nil); err != nil {
		return err
	}

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func swatch(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func sampleTable() *grid.MemoryTable {
	t := grid.NewMemoryTable(
		grid.SourceColumn{Name: "vehicle", Kind: grid.KindString},
		grid.SourceColumn{Name: "color", Kind: grid.KindImage},
		grid.SourceColumn{Name: "seats", Kind: grid.KindInt},
		grid.SourceColumn{Name: "top speed", Kind: grid.KindFloat},
		grid.SourceColumn{Name: "armored", Kind: grid.KindBool},
		grid.SourceColumn{Name: "released", Kind: grid.KindDate},
	)
	t.AddRow("Banshee", swatch(color.NRGBA{200, 30, 30, 255}), 2, 212.5, false, "2001-10-22")
	t.AddRow("Rhino", swatch(color.NRGBA{60, 90, 40, 255}), 1, 48.0, true, "2001-10-22")
	t.AddRow("Faggio", swatch(color.NRGBA{240, 200, 60, 255}), 2, 81.25, false, "2002-10-29")
	t.AddRow("Securicar", swatch(color.NRGBA{90, 90, 110, 255}), 2, 130.0, true, "2001-10-22")
	t.AddRow("Bus", swatch(color.NRGBA{240, 240, 240, 255}), 8, 110.75, nil, "2004-10-26")
	t.AddRow("Infernus", swatch(color.NRGBA{250, 250, 250, 255}), 2, 240.0, false, "2001-10-22")
	return t
}

// buildScreenshots returns the list of all grid screenshots to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "grid", width: 700, height: 150},
		{name: "grid_dark", width: 700, height: 150, theme: grid.DarkTheme},
		{
			name: "grid_sorted", width: 700, height: 150,
			setup: func(g *grid.Grid) error {
				if _, err := g.ConfigureColumn("seats", grid.SortedBy(grid.SortDescending)); err != nil {
					return err
				}
				_, err := g.ConfigureColumn("top speed", grid.SortedBy(grid.SortAscending))
				return err
			},
		},
		{
			name: "grid_selection", width: 700, height: 150,
			setup: func(g *grid.Grid) error {
				if _, err := g.ConfigureColumn("vehicle", grid.Selected()); err != nil {
					return err
				}
				_, err := g.Apply(grid.SetRowSelected{Row: 2, Selected: true})
				return err
			},
		},
		{
			name: "grid_hover", width: 700, height: 150,
			setup: func(g *grid.Grid) error {
				g.Layout()
				g.PointerMove(grid.Vec2{X: 150, Y: 8})
				return nil
			},
		},
		{
			name: "grid_scrolled", width: 300, height: 80,
			setup: func(g *grid.Grid) error {
				g.Layout()
				g.ScrollToRow(4)
				g.ScrollTo(120, g.ScrollOffset().Y)
				return nil
			},
		},
	}
}
