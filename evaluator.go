package featurekit

import "sync/atomic"

// Evaluator answers whether a feature is enabled. It is the single capability
// a flag source has to implement.
//
// Implementations must be safe for concurrent use from multiple goroutines;
// any internal synchronization is the evaluator's own concern.
type Evaluator interface {
	// IsEnabled reports the state of a feature in the given context.
	//
	// The second return value distinguishes a definite answer from an
	// abstention: (_, false) means the evaluator has no opinion and the
	// feature's default value should be used.
	IsEnabled(feature string, ctx *Context) (enabled, ok bool)
}

// RegistrationHook is implemented by evaluators that want to be notified when
// they are installed into any registry tier. The hook may run multiple times
// and must be idempotent.
type RegistrationHook interface {
	OnRegistration()
}

// ContextObserver is implemented by evaluators that want to observe context
// lifecycles.
//
// OnNewContext runs during context construction, before the context becomes
// shared; the view's extensions are mutable and the supplied fields are only
// valid for the duration of the call (clone them if they must be kept).
// OnCloseContext runs after the last owner of a context releases it, if the
// evaluator is still alive at that point.
type ContextObserver interface {
	OnNewContext(view *ContextView, fields Fields)
	OnCloseContext(view *ContextView)
}

// NoopEvaluator abstains for every feature.
type NoopEvaluator struct{}

// IsEnabled always abstains.
func (NoopEvaluator) IsEnabled(string, *Context) (bool, bool) { return false, false }

func notifyRegistration(e Evaluator) {
	if h, ok := e.(RegistrationHook); ok {
		h.OnRegistration()
	}
}

func notifyNewContext(e Evaluator, view *ContextView, fields Fields) {
	if o, ok := e.(ContextObserver); ok {
		o.OnNewContext(view, fields)
	}
}

func notifyCloseContext(e Evaluator, view *ContextView) {
	if o, ok := e.(ContextObserver); ok {
		o.OnCloseContext(view)
	}
}

// sharedEvaluator is the counted cell behind strong and weak handles. The
// count gates weak upgrades only; the evaluator value itself stays reachable
// for handles that were taken before the count dropped to zero.
type sharedEvaluator struct {
	evaluator Evaluator
	refs      atomic.Int64
}

// EvaluatorRef is a counted strong handle to an evaluator. Strong handles are
// the only thing keeping an evaluator "alive" for the purposes of weak
// upgrades: once every strong handle has been released, WeakEvaluatorRef
// upgrades fail and context close hooks are skipped.
type EvaluatorRef struct {
	shared *sharedEvaluator
}

// NewEvaluatorRef wraps an evaluator in a strong handle holding one
// reference. Wrapping an existing *EvaluatorRef clones it instead of
// introducing a second count.
func NewEvaluatorRef(e Evaluator) *EvaluatorRef {
	if ref, ok := e.(*EvaluatorRef); ok {
		return ref.Clone()
	}
	shared := &sharedEvaluator{evaluator: e}
	shared.refs.Store(1)
	return &EvaluatorRef{shared: shared}
}

// Clone returns a new strong handle sharing the same evaluator, incrementing
// the reference count.
func (r *EvaluatorRef) Clone() *EvaluatorRef {
	r.shared.refs.Add(1)
	return &EvaluatorRef{shared: r.shared}
}

// Release drops this handle's reference. Call it exactly once per handle.
// When the last strong handle is released the evaluator is considered dead:
// weak upgrades fail from then on, permanently.
func (r *EvaluatorRef) Release() {
	r.shared.refs.Add(-1)
}

// Weak returns a non-owning handle to the same evaluator.
func (r *EvaluatorRef) Weak() WeakEvaluatorRef {
	return WeakEvaluatorRef{shared: r.shared}
}

// Evaluator returns the wrapped evaluator.
func (r *EvaluatorRef) Evaluator() Evaluator {
	return r.shared.evaluator
}

// IsEnabled forwards to the wrapped evaluator, so a handle can be used
// anywhere an Evaluator is expected.
func (r *EvaluatorRef) IsEnabled(feature string, ctx *Context) (bool, bool) {
	return r.shared.evaluator.IsEnabled(feature, ctx)
}

// OnRegistration forwards to the wrapped evaluator, if it observes
// registrations.
func (r *EvaluatorRef) OnRegistration() {
	notifyRegistration(r.shared.evaluator)
}

// OnNewContext forwards to the wrapped evaluator, if it observes contexts.
func (r *EvaluatorRef) OnNewContext(view *ContextView, fields Fields) {
	notifyNewContext(r.shared.evaluator, view, fields)
}

// OnCloseContext forwards to the wrapped evaluator, if it observes contexts.
func (r *EvaluatorRef) OnCloseContext(view *ContextView) {
	notifyCloseContext(r.shared.evaluator, view)
}

// WeakEvaluatorRef is a non-owning handle to an evaluator. The zero value is
// detached: Upgrade always fails.
//
// Contexts hold their evaluator snapshot through a weak handle so that a
// context never keeps an evaluator alive past its intended lifetime.
type WeakEvaluatorRef struct {
	shared *sharedEvaluator
}

// Upgrade attempts to obtain a strong handle. It succeeds only while at least
// one strong handle exists elsewhere; failure is a normal outcome, not an
// error. A successful upgrade must be paired with Release.
func (w WeakEvaluatorRef) Upgrade() (*EvaluatorRef, bool) {
	if w.shared == nil {
		return nil, false
	}
	for {
		n := w.shared.refs.Load()
		if n <= 0 {
			return nil, false
		}
		if w.shared.refs.CompareAndSwap(n, n+1) {
			return &EvaluatorRef{shared: w.shared}, true
		}
	}
}
