// Package featurekit provides a feature flag evaluation facade that decouples
// flag call sites from the component that actually knows the flag values.
//
// Call sites ask "is feature X enabled?" through a Feature descriptor or the
// IsEnabled helpers. The answer comes from an Evaluator (any type implementing
// the single-method Evaluator interface), resolved through a three-tier
// registry (process-global, per-goroutine, scoped override) and pinned to
// evaluation Contexts at their creation time. Evaluators may abstain, in which
// case the caller-supplied default applies.
//
// # Evaluators
//
// An Evaluator answers with (enabled, ok); ok=false means "no opinion" and is
// resolved by the feature's default, never treated as an error:
//
//	type rollout struct{}
//
//	func (rollout) IsEnabled(feature string, ctx *featurekit.Context) (bool, bool) {
//		if feature == "new-billing" {
//			return true, true
//		}
//		return false, false // abstain
//	}
//
// Evaluators can optionally observe their own lifecycle and the lifecycle of
// contexts by implementing RegistrationHook and ContextObserver. Concrete
// evaluators live in the subpackages: featuretest (test double), flagfile
// (static YAML flag sets), envflags (environment variables) and redisflags
// (Redis-backed).
//
// # Registry precedence
//
// The ambient evaluator is resolved scoped override first, then the goroutine
// tier, then the global tier:
//
//	featurekit.MustSetGlobalEvaluator(prodEvaluator)
//
//	featurekit.WithEvaluator(testEvaluator, func() {
//		// testEvaluator wins here, on this goroutine only
//	})
//
// The global and goroutine tiers are write-once: the first successful set
// wins, later attempts fail with ErrGlobalEvaluatorSet or
// ErrGoroutineEvaluatorSet and never disturb the existing registration. This
// keeps the resolution hot path lock-free.
//
// # Contexts
//
// A Context is an immutable node in a tree carrying evaluator-supplied
// extension data. Contexts capture the ambient evaluator at creation and keep
// only a weak handle to it, so a context never extends an evaluator's
// lifetime:
//
//	ctx := featurekit.NewContext(featurekit.Fields{
//		featurekit.String("tenant", "acme"),
//	})
//	defer ctx.Close()
//
//	ctx.InScope(func() {
//		if featurekit.IsEnabled("new-billing", false) {
//			// ...
//		}
//	})
//
// InScope installs the context as the calling goroutine's current context for
// exactly the duration of the function, restoring the previous one on every
// exit path, panics included. Scoping is strictly per goroutine; use
// BindContext, BindEvaluator or Spawn to carry the captured scope onto other
// goroutines or across suspension points.
//
// # Features
//
// A Feature pairs a name with a default used when every evaluator abstains:
//
//	var newBilling = featurekit.New("new-billing", false)
//
//	if newBilling.Enabled() {
//		// ...
//	}
//
// # Combinators
//
// Filter and Chain compose evaluators structurally: Filter gates an evaluator
// behind a name predicate, Chain falls back to a second evaluator when the
// first abstains. Logged wraps an evaluator with slog debug output for every
// decision.
package featurekit
