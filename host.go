package grid

// Renderer is the interface for rendering grid draw data.
type Renderer interface {
	Render(dl *DrawList) error
	DefaultFont() GlyphFont
	Resize(width, height int)
}

// Host drives one grid per frame: it feeds input, drains deferred layout
// passes and renders a fresh draw list.
type Host struct {
	renderer Renderer
	grid     *Grid
	queue    *TaskQueue
	fonts    FontProvider
	images   ImageTextures
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithFontProvider sets the glyph fonts used for drawing text.
func WithFontProvider(fp FontProvider) HostOption {
	return func(h *Host) { h.fonts = fp }
}

// WithImageTextures sets the image uploader. By default the renderer is used
// when it implements ImageTextures.
func WithImageTextures(it ImageTextures) HostOption {
	return func(h *Host) { h.images = it }
}

// NewHost creates a host for g. The grid should share the host's queue
// (see Host.Queue and WithTaskQueue); otherwise layout runs lazily on Paint.
func NewHost(renderer Renderer, g *Grid, opts ...HostOption) *Host {
	h := &Host{
		renderer: renderer,
		grid:     g,
		queue:    g.queue,
	}
	if it, ok := renderer.(ImageTextures); ok {
		h.images = it
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Grid returns the hosted grid.
func (h *Host) Grid() *Grid { return h.grid }

// Queue returns the deferred-callback queue drained every frame.
func (h *Host) Queue() *TaskQueue { return h.queue }

// Frame runs one frame. Call it once per iteration of the window loop.
func (h *Host) Frame(input *InputState) error {
	if input != nil {
		h.grid.HandleInput(input)
	}
	if n := h.queue.Drain(); n > 0 && gridVerbose() {
		gridLogger.Debug("deferred tasks ran", "count", n)
	}

	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	canvas := NewCanvas(dl, h.grid.metrics, h.renderer.DefaultFont(), h.images, h.fonts)
	h.grid.Paint(canvas)
	dl.Finalize()
	return h.renderer.Render(dl)
}

// Resize notifies the renderer and the grid of a display size change.
func (h *Host) Resize(width, height int) {
	h.renderer.Resize(width, height)
	b := h.grid.Bounds()
	h.grid.Resize(float32(width)-b.X, float32(height)-b.Y)
}
