package grid

import (
	"errors"
	"image"
)

// Option configures a Grid.
type Option func(*Grid)

// WithTheme sets the background, header and row styles.
func WithTheme(t Theme) Option {
	return func(g *Grid) {
		g.backColor = t.BackColor
		g.columns.style = t.Columns
		g.rows.style = t.Rows
	}
}

// WithColumnStyle sets the shared header style.
func WithColumnStyle(s Style) Option {
	return func(g *Grid) { g.columns.style = s }
}

// WithRowStyle sets the shared row style.
func WithRowStyle(s Style) Option {
	return func(g *Grid) { g.rows.style = s }
}

// WithMetrics sets the text metrics used for layout.
func WithMetrics(m TextMetrics) Option {
	return func(g *Grid) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithTaskQueue shares a deferred-callback queue, usually the host's.
func WithTaskQueue(q *TaskQueue) Option {
	return func(g *Grid) { g.queue = q }
}

// WithBounds sets the client rectangle.
func WithBounds(r Rect) Option {
	return func(g *Grid) { g.bounds = r }
}

// WithSource projects src when the grid is created.
func WithSource(src DataSource) Option {
	return func(g *Grid) { g.source = src }
}

// ColumnOption configures one column.
type ColumnOption func(*columnOptions)

// columnOptions holds column configuration via the extensions map.
type columnOptions struct {
	extensions map[string]any
}

// OptKey is a typed key for column options.
//
// Example:
//
//	var OptTooltip = grid.NewOptKey("tooltip", "")
//	g.ConfigureColumn("Name", grid.WithOpt(OptTooltip, "full name"))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) ColumnOption {
	return func(o *columnOptions) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// getOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func getOpt[T any](o columnOptions, key OptKey[T]) T {
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// hasOpt returns true if the option was explicitly set.
func hasOpt[T any](o columnOptions, key OptKey[T]) bool {
	_, ok := o.extensions[key.name]
	return ok
}

// WidthLimits is the value of OptWidthLimits.
type WidthLimits struct {
	Min, Max float32
}

// Built-in column option keys.
var (
	OptIndex       = NewOptKey("index", 0)
	OptWidthLimits = NewOptKey("widthLimits", WidthLimits{Min: DefaultWidthMin, Max: DefaultWidthMax})
	OptVisible     = NewOptKey("visible", true)
	OptEditable    = NewOptKey("editable", true)
	OptSelected    = NewOptKey("selected", false)
	OptImage       = NewOptKey[image.Image]("image", nil)
	OptSort        = NewOptKey("sort", SortNone)
)

// AtIndex moves the column to a display index.
func AtIndex(i int) ColumnOption { return WithOpt(OptIndex, i) }

// WithWidthLimits sets the minimum and maximum width.
func WithWidthLimits(minW, maxW float32) ColumnOption {
	return WithOpt(OptWidthLimits, WidthLimits{Min: minW, Max: maxW})
}

// Hidden hides the column.
func Hidden() ColumnOption { return WithOpt(OptVisible, false) }

// ReadOnly stops boolean cells from toggling on click.
func ReadOnly() ColumnOption { return WithOpt(OptEditable, false) }

// Selected highlights the header label.
func Selected() ColumnOption { return WithOpt(OptSelected, true) }

// WithHeaderImage shows img left of the label.
func WithHeaderImage(img image.Image) ColumnOption { return WithOpt(OptImage, img) }

// SortedBy sets the sort order; a new key takes the next priority.
func SortedBy(order SortOrder) ColumnOption { return WithOpt(OptSort, order) }

// ConfigureColumn applies column options as mutations and returns their
// combined effects. Every option is attempted; errors are joined.
func (g *Grid) ConfigureColumn(name string, opts ...ColumnOption) (Effects, error) {
	var o columnOptions
	for _, opt := range opts {
		opt(&o)
	}

	var muts []Mutation
	if hasOpt(o, OptIndex) {
		muts = append(muts, SetColumnIndex{Column: name, Index: getOpt(o, OptIndex)})
	}
	if hasOpt(o, OptWidthLimits) {
		l := getOpt(o, OptWidthLimits)
		muts = append(muts, SetColumnWidthLimits{Column: name, Min: l.Min, Max: l.Max})
	}
	if hasOpt(o, OptVisible) {
		muts = append(muts, SetColumnVisible{Column: name, Visible: getOpt(o, OptVisible)})
	}
	if hasOpt(o, OptEditable) {
		muts = append(muts, SetColumnEditable{Column: name, Editable: getOpt(o, OptEditable)})
	}
	if hasOpt(o, OptSelected) {
		muts = append(muts, SetColumnSelected{Column: name, Selected: getOpt(o, OptSelected)})
	}
	if hasOpt(o, OptImage) {
		muts = append(muts, SetColumnImage{Column: name, Image: getOpt(o, OptImage)})
	}
	if hasOpt(o, OptSort) {
		muts = append(muts, SetColumnSort{Column: name, Order: getOpt(o, OptSort)})
	}

	var (
		total Effects
		errs  []error
	)
	for _, m := range muts {
		e, err := g.Apply(m)
		total = total.Merge(e)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}
