package grid

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a navigation key the grid reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyCopy // copy the selected rows (Ctrl+C in the window backend)
	KeyCount
)

// InputState holds input state for the current frame.
// This is typically populated by the application from GLFW or tcell.
type InputState struct {
	// Mouse position
	MouseX, MouseY float32
	mouseMoved     bool
	mouseOutside   bool

	// Mouse buttons - current frame state
	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp      [MouseButtonCount]bool // True on the frame button was released

	// Mouse wheel
	MouseWheelX float32
	MouseWheelY float32

	// Keyboard - current frame state
	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool // True on the frame key was pressed

	// Display size, set when the window is resized
	DisplayW, DisplayH float32
	resized            bool
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Reset clears per-frame input state.
// Call this at the end of each frame after the grid consumed it.
func (s *InputState) Reset() {
	clear(s.mouseClicked[:])
	clear(s.mouseUp[:])
	clear(s.keyPressed[:])
	s.MouseWheelX = 0
	s.MouseWheelY = 0
	s.mouseMoved = false
	s.resized = false
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	if x != s.MouseX || y != s.MouseY || s.mouseOutside {
		s.mouseMoved = true
	}
	s.MouseX = x
	s.MouseY = y
	s.mouseOutside = false
}

// SetMouseLeft records that the pointer left the window.
func (s *InputState) SetMouseLeft() {
	s.mouseOutside = true
	s.mouseMoved = true
}

// SetMouseButton sets mouse button state.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	wasDown := s.keyDown[key]
	s.keyDown[key] = down
	if down && !wasDown {
		s.keyPressed[key] = true
	}
}

// SetMouseWheel accumulates the mouse wheel delta.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX += x
	s.MouseWheelY += y
}

// SetDisplaySize records a window resize.
func (s *InputState) SetDisplaySize(w, h float32) {
	if w != s.DisplayW || h != s.DisplayH {
		s.resized = true
	}
	s.DisplayW = w
	s.DisplayH = h
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was released this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// MouseMoved returns true if the pointer moved this frame.
func (s *InputState) MouseMoved() bool { return s.mouseMoved }

// MouseOutside returns true while the pointer is outside the window.
func (s *InputState) MouseOutside() bool { return s.mouseOutside }

// KeyPressed returns true if a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// Resized returns true if the display size changed this frame.
func (s *InputState) Resized() bool { return s.resized }

// MousePos returns the mouse position as a vector.
func (s *InputState) MousePos() Vec2 {
	return Vec2{X: s.MouseX, Y: s.MouseY}
}
