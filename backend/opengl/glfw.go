package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
)

// GLFWInputAdapter adapts GLFW input to grid.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *grid.InputState
}

// NewGLFWInputAdapter creates a new GLFW input adapter and installs its
// callbacks on window.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  grid.NewInputState(),
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)
	window.SetCursorEnterCallback(adapter.cursorEnterCallback)
	window.SetFramebufferSizeCallback(adapter.framebufferSizeCallback)

	w, h := window.GetFramebufferSize()
	adapter.input.SetDisplaySize(float32(w), float32(h))
	return adapter
}

// Input returns the input state filled by the callbacks since the last
// EndFrame. Call it after glfw.PollEvents.
func (a *GLFWInputAdapter) Input() *grid.InputState {
	return a.input
}

// EndFrame clears per-frame input. Call it after the grid consumed the frame.
func (a *GLFWInputAdapter) EndFrame() {
	a.input.Reset()
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	gridKey := glfwKeyToGridKey(key)
	if key == glfw.KeyC && (mods&glfw.ModControl != 0 || action == glfw.Release) {
		gridKey = grid.KeyCopy
	}
	if gridKey == grid.KeyNone {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetKey(gridKey, true)
	case glfw.Repeat:
		// Repeats re-trigger the key press.
		a.input.SetKey(gridKey, false)
		a.input.SetKey(gridKey, true)
	case glfw.Release:
		a.input.SetKey(gridKey, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	gridButton := glfwMouseButtonToGrid(button)
	if gridButton < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(gridButton, true)
	case glfw.Release:
		a.input.SetMouseButton(gridButton, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

func (a *GLFWInputAdapter) cursorEnterCallback(w *glfw.Window, entered bool) {
	if !entered {
		a.input.SetMouseLeft()
	}
}

func (a *GLFWInputAdapter) framebufferSizeCallback(w *glfw.Window, width, height int) {
	a.input.SetDisplaySize(float32(width), float32(height))
}

// GLFWClipboard implements grid.ClipboardProvider with the window's clipboard.
type GLFWClipboard struct {
	Window *glfw.Window
}

func (c GLFWClipboard) GetText() string {
	return c.Window.GetClipboardString()
}

func (c GLFWClipboard) SetText(text string) {
	c.Window.SetClipboardString(text)
}

// glfwKeyToGridKey maps GLFW keys to grid navigation keys.
func glfwKeyToGridKey(key glfw.Key) grid.Key {
	switch key {
	case glfw.KeyLeft:
		return grid.KeyLeft
	case glfw.KeyRight:
		return grid.KeyRight
	case glfw.KeyUp:
		return grid.KeyUp
	case glfw.KeyDown:
		return grid.KeyDown
	case glfw.KeyPageUp:
		return grid.KeyPageUp
	case glfw.KeyPageDown:
		return grid.KeyPageDown
	case glfw.KeyHome:
		return grid.KeyHome
	case glfw.KeyEnd:
		return grid.KeyEnd
	default:
		return grid.KeyNone
	}
}

// glfwMouseButtonToGrid maps GLFW mouse buttons to grid mouse buttons.
func glfwMouseButtonToGrid(button glfw.MouseButton) grid.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return grid.MouseButtonLeft
	case glfw.MouseButtonRight:
		return grid.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return grid.MouseButtonMiddle
	default:
		return -1
	}
}
