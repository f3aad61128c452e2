// Example shows a data grid in a GLFW window or in the terminal.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # built-in sample table in a window
//	go run ./example/ -terminal
//	go run ./example/ -db app.sqlite -table orders -dark
//
// Click a header to sort by it, click its sort glyph to flip the direction and
// right-click to drop it. Boolean cells toggle on click. Right-click a row to
// select it; Ctrl+C copies the selected rows in the window.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
	"github.com/go-theft-auto/grid/backend/terminal"
	"github.com/go-theft-auto/grid/source/sqlite"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "grid example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	db       string
	table    string
	dark     bool
	verbose  bool
	terminal bool
}

func parseFlags() config {
	var c config
	flag.StringVar(&c.db, "db", "", "SQLite database file (default: built-in sample)")
	flag.StringVar(&c.table, "table", "", "table to show (default: first table)")
	flag.BoolVar(&c.dark, "dark", false, "use the dark theme")
	flag.BoolVar(&c.verbose, "verbose", false, "log debug output to stderr")
	flag.BoolVar(&c.terminal, "terminal", false, "render in the terminal instead of a window")
	flag.Parse()
	return c
}

func run() error {
	cfg := parseFlags()
	grid.SetVerbose(cfg.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	theme := grid.DefaultTheme()
	if cfg.dark {
		theme = grid.DarkTheme()
	}
	g := grid.New(grid.WithTheme(theme), grid.WithSource(src))
	g.OnRowClick(func(ev grid.ClickEvent) {
		if ev.Button == grid.MouseButtonRight {
			_, _ = g.Apply(grid.SetRowSelected{Row: ev.Row.Index(), Selected: !ev.Row.Selected()})
		}
	})

	if cfg.terminal {
		return runTerminal(ctx, g)
	}
	return runWindow(ctx, g)
}

// openSource returns the table named by the flags, or the sample table.
func openSource(ctx context.Context, cfg config) (grid.DataSource, func(), error) {
	if cfg.db == "" {
		return sampleTable(), func() {}, nil
	}
	db, err := sqlite.OpenDB(ctx, cfg.db)
	if err != nil {
		return nil, nil, err
	}
	table := cfg.table
	if table == "" {
		names, err := sqlite.Tables(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if len(names) == 0 {
			db.Close()
			return nil, nil, fmt.Errorf("%s has no tables", cfg.db)
		}
		table = names[0]
	}
	t, err := sqlite.Open(ctx, db, table)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return t, func() { db.Close() }, nil
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
	swatch := func(c color.NRGBA) image.Image {
		img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
		return img
	}
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	t.AddRow("Banshee", swatch(color.NRGBA{200, 30, 30, 255}), 2, 212.5, false, day(2001, time.October, 22))
	t.AddRow("Rhino", swatch(color.NRGBA{60, 90, 40, 255}), 1, 48.0, true, day(2001, time.October, 22))
	t.AddRow("Faggio", swatch(color.NRGBA{240, 200, 60, 255}), 2, 81.25, false, day(2002, time.October, 29))
	t.AddRow("Securicar", swatch(color.NRGBA{90, 90, 110, 255}), 2, 130.0, true, day(2001, time.October, 22))
	t.AddRow("Bus", swatch(color.NRGBA{240, 240, 240, 255}), 8, 110.75, nil, day(2004, time.October, 26))
	t.AddRow("Infernus", swatch(color.NRGBA{250, 250, 250, 255}), 2, 240.0, false, "2001-10-22")
	return t
}

func runTerminal(ctx context.Context, g *grid.Grid) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	return terminal.New(screen, g).Run(ctx)
}

func runWindow(ctx context.Context, g *grid.Grid) error {
	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	w, h := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(w, h)
	if err != nil {
		return fmt.Errorf("grid renderer: %w", err)
	}
	defer renderer.Delete()

	g.SetBounds(grid.Rect{W: float32(w), H: float32(h)})
	g.SetClipboard(opengl.GLFWClipboard{Window: window})
	host := grid.NewHost(renderer, g, grid.WithFontProvider(renderer.Fonts()))
	input := opengl.NewGLFWInputAdapter(window)

	// Main loop.
	for !window.ShouldClose() && ctx.Err() == nil {
		glfw.PollEvents()

		in := input.Input()
		if in.Resized() {
			host.Resize(int(in.DisplayW), int(in.DisplayH))
		}
		gl.Viewport(0, 0, int32(in.DisplayW), int32(in.DisplayH))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := host.Frame(in); err != nil {
			return fmt.Errorf("grid render: %w", err)
		}
		input.EndFrame()

		window.SwapBuffers()
	}

	return nil
}
