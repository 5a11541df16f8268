package featurekit

import "github.com/timandy/routine"

// currentContext is the per-goroutine current-context cell. Only scoped
// enter/restore operations mutate it, and only the owning goroutine ever
// touches its own cell, so no cross-goroutine synchronization is needed.
// Entering a scope on one goroutine has no visible effect on any other.
var currentContext = routine.NewThreadLocal[*Context]()

// contextStackSwap makes ctx current for the duration of fn and restores the
// previous value on every exit path, panics included.
func contextStackSwap(ctx *Context, fn func()) {
	prev := currentContext.Get()
	currentContext.Set(ctx)
	defer func() {
		if prev != nil {
			currentContext.Set(prev)
		} else {
			currentContext.Remove()
		}
	}()
	fn()
}

// CurrentContext returns the calling goroutine's current context, if the
// goroutine is inside an InScope call. Absence means "use the root context".
func CurrentContext() (*Context, bool) {
	ctx := currentContext.Get()
	return ctx, ctx != nil
}

// CurrentOrRoot returns the calling goroutine's current context, or the root
// context if none is installed.
func CurrentOrRoot() *Context {
	if ctx, ok := CurrentContext(); ok {
		return ctx
	}
	return rootContext
}
