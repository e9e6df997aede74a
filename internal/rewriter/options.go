package rewriter

// Options selects which optional de-aliasing passes run during a
// rewrite. The shape recognition and super-call reconstruction are
// not configurable; only the alias cleanup is.
type Options struct {
	// DealiasProps collapses `var p = this.props` locals back to
	// this.props.
	DealiasProps bool

	// CollapseConstructorAccess rewrites literal `this.constructor`
	// member accesses into bare `this`.
	CollapseConstructorAccess bool
}

// DefaultOptions enables every pass.
func DefaultOptions() Options {
	return Options{
		DealiasProps:              true,
		CollapseConstructorAccess: true,
	}
}
