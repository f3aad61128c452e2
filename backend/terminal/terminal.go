package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/grid"
)

// Terminal hosts a grid on a tcell screen: it translates tcell events into
// grid pointer calls and repaints after every event that needs it.
type Terminal struct {
	screen  tcell.Screen
	grid    *grid.Grid
	surface *Surface
	buttons tcell.ButtonMask
}

// New wraps an initialised screen. The grid is resized to the screen.
func New(screen tcell.Screen, g *grid.Grid) *Terminal {
	t := &Terminal{
		screen:  screen,
		grid:    g,
		surface: NewSurface(screen, g.Metrics()),
	}
	screen.EnableMouse()
	screen.HideCursor()
	t.resize()
	return t
}

// Grid returns the hosted grid.
func (t *Terminal) Grid() *grid.Grid { return t.grid }

func (t *Terminal) resize() {
	w, h := t.screen.Size()
	t.grid.SetBounds(grid.Rect{W: float32(w * CellWidth), H: float32(h * CellHeight)})
}

// pixel returns the center of a character cell in grid pixels.
func pixel(x, y int) grid.Vec2 {
	return grid.Vec2{X: float32(x*CellWidth + CellWidth/2), Y: float32(y*CellHeight + CellHeight/2)}
}

var buttonMap = [...]struct {
	mask   tcell.ButtonMask
	button grid.MouseButton
}{
	{tcell.Button1, grid.MouseButtonLeft},
	{tcell.Button2, grid.MouseButtonRight},
	{tcell.Button3, grid.MouseButtonMiddle},
}

// HandleEvent feeds one tcell event to the grid. It reports false when the
// event asks to quit (Escape, q or Ctrl+C).
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	case *tcell.EventMouse:
		pt := pixel(ev.Position())
		b := ev.Buttons()
		t.grid.PointerMove(pt)
		for _, m := range buttonMap {
			now, was := b&m.mask != 0, t.buttons&m.mask != 0
			switch {
			case now && !was:
				t.grid.PointerDown(pt, m.button)
			case !now && was:
				t.grid.PointerUp(pt, m.button)
			}
		}
		t.buttons = b & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		switch {
		case b&tcell.WheelUp != 0:
			t.grid.Wheel(0, 1)
		case b&tcell.WheelDown != 0:
			t.grid.Wheel(0, -1)
		case b&tcell.WheelLeft != 0:
			t.grid.Wheel(1, 0)
		case b&tcell.WheelRight != 0:
			t.grid.Wheel(-1, 0)
		}
	case *tcell.EventKey:
		return t.handleKey(ev)
	}
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	in := grid.NewInputState()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
		return true
	case tcell.KeyUp:
		in.SetKey(grid.KeyUp, true)
	case tcell.KeyDown:
		in.SetKey(grid.KeyDown, true)
	case tcell.KeyLeft:
		in.SetKey(grid.KeyLeft, true)
	case tcell.KeyRight:
		in.SetKey(grid.KeyRight, true)
	case tcell.KeyPgUp:
		in.SetKey(grid.KeyPageUp, true)
	case tcell.KeyPgDn:
		in.SetKey(grid.KeyPageDown, true)
	case tcell.KeyHome:
		in.SetKey(grid.KeyHome, true)
	case tcell.KeyEnd:
		in.SetKey(grid.KeyEnd, true)
	}
	t.grid.HandleInput(in)
	return true
}

// Draw paints the grid when it changed and shows the screen.
func (t *Terminal) Draw() {
	if !t.grid.NeedsRedraw() {
		return
	}
	t.screen.Clear()
	t.grid.Paint(t.surface)
	t.screen.Show()
}

// Run polls events until the user quits or ctx is done. The grid's deferred
// work is drained before each repaint.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer close(quit)

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("terminal: event channel closed")
			}
			if !t.HandleEvent(ev) {
				return nil
			}
			t.grid.Queue().Drain()
			t.Draw()
		}
	}
}
