package featurekit

import (
	"sync/atomic"

	"github.com/timandy/routine"
)

// The three registry tiers. The outer two are write-once so the resolution
// hot path needs no locks: the global tier is a CAS cell, the goroutine and
// scoped tiers live in goroutine-local storage that only the owning goroutine
// ever touches. Goroutine-local values are reclaimed when their goroutine
// exits.
var (
	globalEvaluator    atomic.Pointer[EvaluatorRef]
	goroutineEvaluator = routine.NewThreadLocal[*EvaluatorRef]()
	scopedEvaluator    = routine.NewThreadLocal[*EvaluatorRef]()
)

// SetGlobalEvaluator installs the process-wide default evaluator. It succeeds
// exactly once per process; later calls return ErrGlobalEvaluatorSet and
// leave the existing registration untouched.
func SetGlobalEvaluator(e Evaluator) error {
	ref := NewEvaluatorRef(e)
	if !globalEvaluator.CompareAndSwap(nil, ref) {
		ref.Release()
		return ErrGlobalEvaluatorSet
	}
	notifyRegistration(e)
	return nil
}

// MustSetGlobalEvaluator is like SetGlobalEvaluator but panics on conflict.
func MustSetGlobalEvaluator(e Evaluator) {
	if err := SetGlobalEvaluator(e); err != nil {
		panic(err)
	}
}

// SetGoroutineEvaluator installs the default evaluator for the calling
// goroutine, overriding the global tier for resolutions on this goroutine.
// It succeeds exactly once per goroutine; later calls return
// ErrGoroutineEvaluatorSet and leave the existing registration untouched.
func SetGoroutineEvaluator(e Evaluator) error {
	if goroutineEvaluator.Get() != nil {
		return ErrGoroutineEvaluatorSet
	}
	goroutineEvaluator.Set(NewEvaluatorRef(e))
	notifyRegistration(e)
	return nil
}

// MustSetGoroutineEvaluator is like SetGoroutineEvaluator but panics on
// conflict.
func MustSetGoroutineEvaluator(e Evaluator) {
	if err := SetGoroutineEvaluator(e); err != nil {
		panic(err)
	}
}

// WithEvaluator installs e as the scoped override for the dynamic extent of
// fn, overriding both the goroutine and global tiers on the calling
// goroutine. The evaluator's registration hook fires once on entry. The
// previous override is restored on every exit path; a panic in fn propagates
// unchanged after restoration.
//
// The override's strong handle is released when WithEvaluator returns, so
// contexts created inside fn hold weak snapshots that go dead afterwards
// unless something else keeps the evaluator registered.
func WithEvaluator(e Evaluator, fn func()) {
	ref := NewEvaluatorRef(e)
	defer ref.Release()
	notifyRegistration(e)
	withScopedEvaluator(ref, fn)
}

// withScopedEvaluator swaps the scoped override around fn without firing the
// registration hook. Bind adapters use it to re-install a captured evaluator
// on every resumed step.
func withScopedEvaluator(ref *EvaluatorRef, fn func()) {
	prev := scopedEvaluator.Get()
	scopedEvaluator.Set(ref)
	defer func() {
		if prev != nil {
			scopedEvaluator.Set(prev)
		} else {
			scopedEvaluator.Remove()
		}
	}()
	fn()
}

// CurrentEvaluator resolves the ambient evaluator: the scoped override if
// one is installed on this goroutine, else the goroutine tier, else the
// global tier. The second return value is false when no tier is set.
//
// The returned handle is borrowed from the registry; callers must not
// Release it.
func CurrentEvaluator() (*EvaluatorRef, bool) {
	if ref := scopedEvaluator.Get(); ref != nil {
		return ref, true
	}
	if ref := goroutineEvaluator.Get(); ref != nil {
		return ref, true
	}
	if ref := globalEvaluator.Load(); ref != nil {
		return ref, true
	}
	return nil, false
}
