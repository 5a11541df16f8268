package featurekit

// Feature is a reusable flag descriptor: a name paired with the default
// applied when every evaluator abstains. Declare features once, typically as
// package variables, and query them at call sites.
type Feature struct {
	name      string
	defaultFn func() bool
}

// New returns a feature with a constant default value.
func New(name string, defaultValue bool) Feature {
	return Feature{name: name, defaultFn: func() bool { return defaultValue }}
}

// NewWithDefaultFunc returns a feature whose default is computed on demand,
// each time an evaluation abstains.
func NewWithDefaultFunc(name string, defaultFn func() bool) Feature {
	return Feature{name: name, defaultFn: defaultFn}
}

// Name returns the feature's name.
func (f Feature) Name() string { return f.name }

// StateIn asks the evaluator associated with ctx for the feature's state.
// A nil ctx means the root context, which resolves the registry live; every
// other context is pinned to its creation-time evaluator snapshot. The
// second return value is false when there is no evaluator, the snapshot is
// dead, or the evaluator abstains; the default is not applied here.
func (f Feature) StateIn(ctx *Context) (bool, bool) {
	if ctx == nil {
		ctx = rootContext
	}
	ref, release, ok := ctx.evaluator()
	if !ok {
		return false, false
	}
	if release {
		defer ref.Release()
	}
	return ref.IsEnabled(f.name, ctx)
}

// State is StateIn against the calling goroutine's current context, or the
// root context if none is installed.
func (f Feature) State() (bool, bool) {
	return f.StateIn(CurrentOrRoot())
}

// EnabledIn reports whether the feature is enabled in ctx, applying the
// feature's default when the evaluation abstains.
func (f Feature) EnabledIn(ctx *Context) bool {
	if enabled, ok := f.StateIn(ctx); ok {
		return enabled
	}
	return f.defaultFn()
}

// Enabled is EnabledIn against the calling goroutine's current context, or
// the root context if none is installed.
func (f Feature) Enabled() bool {
	return f.EnabledIn(CurrentOrRoot())
}

// IsEnabled checks a feature by name against the calling goroutine's current
// context, applying defaultValue on abstention.
func IsEnabled(name string, defaultValue bool) bool {
	return New(name, defaultValue).Enabled()
}

// IsEnabledIn checks a feature by name against ctx, applying defaultValue on
// abstention. A nil ctx means the root context.
func IsEnabledIn(ctx *Context, name string, defaultValue bool) bool {
	return New(name, defaultValue).EnabledIn(ctx)
}
