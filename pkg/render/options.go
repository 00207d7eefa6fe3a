package render

// RenderOptions describe per-call data that renderers can use to customise
// their output without changing the view.
type RenderOptions struct {
	// Variant selects a theme variant for renderers that support theming.
	// Empty keeps the renderer default.
	Variant string
	// Verbose asks renderers to include diagnostic details such as the
	// request id.
	Verbose bool
}
