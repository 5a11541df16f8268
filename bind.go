package featurekit

import "sync"

// Scope adapters for cooperative and asynchronous execution. A goroutine's
// current context and scoped evaluator are confined to that goroutine, so a
// computation that suspends and resumes elsewhere must re-establish its
// captured scope for exactly the duration of each resumed step and tear it
// down before yielding. The Bind functions return wrappers that do this on
// every call.

// BindContext returns a function that runs fn with ctx installed as the
// current context for the duration of each call, on whichever goroutine the
// call happens. The wrapper does not own a reference to ctx; the caller must
// keep the context open for as long as the wrapper is in use.
func BindContext(ctx *Context, fn func()) func() {
	return func() {
		ctx.InScope(fn)
	}
}

// InheritContext is BindContext with the calling goroutine's current context
// (or the root context if none is installed).
func InheritContext(fn func()) func() {
	return BindContext(CurrentOrRoot(), fn)
}

// BindEvaluator returns a function that runs fn with e installed as the
// scoped evaluator override for the duration of each call. The evaluator's
// registration hook fires once, on the first call. The wrapper holds a
// strong handle, keeping the evaluator alive for as long as the wrapper is
// reachable.
func BindEvaluator(e Evaluator, fn func()) func() {
	ref := NewEvaluatorRef(e)
	var registered sync.Once
	return func() {
		registered.Do(func() { notifyRegistration(ref.Evaluator()) })
		withScopedEvaluator(ref, fn)
	}
}

// InheritEvaluator binds fn to the ambient evaluator resolved at call time
// of InheritEvaluator itself. The evaluator is considered already registered,
// so no registration hook fires. The wrapper owns a strong handle, so the
// captured evaluator stays alive for wrapped steps that run after the
// originating scope has exited. If no evaluator is ambient, a NoopEvaluator
// is bound so the wrapper still pins evaluation to "abstain" rather than
// whatever is ambient later.
func InheritEvaluator(fn func()) func() {
	ref, ok := CurrentEvaluator()
	if ok {
		ref = ref.Clone()
	} else {
		ref = NewEvaluatorRef(NoopEvaluator{})
	}
	return func() {
		withScopedEvaluator(ref, fn)
	}
}

// Spawn runs fn on a new goroutine with the spawning goroutine's current
// context and ambient evaluator re-established around it, so flag checks in
// fn observe the scope that was current at the Spawn call site. Spawn holds
// a reference to the captured context until fn returns, so the spawning
// goroutine may close its contexts without waiting for the new goroutine to
// be scheduled.
func Spawn(fn func()) {
	ctx := CurrentOrRoot().Retain()
	bound := InheritEvaluator(BindContext(ctx, fn))
	go func() {
		defer ctx.Close()
		bound()
	}()
}
