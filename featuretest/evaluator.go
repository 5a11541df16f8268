package featuretest

import (
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/featurekit"
)

// DecisionFunc computes a per-context answer for one feature. The second
// return value reports whether the function decided at all.
type DecisionFunc func(ctx *featurekit.Context) (bool, bool)

// TestEvaluator answers features from a mutable table and abstains for
// unlisted ones. Safe for concurrent use; setters may be called while
// evaluations are in flight.
type TestEvaluator struct {
	mu            sync.RWMutex
	decisions     map[string]DecisionFunc
	registrations atomic.Int32
}

// New returns an empty TestEvaluator that abstains for every feature.
func New() *TestEvaluator {
	return &TestEvaluator{decisions: make(map[string]DecisionFunc)}
}

// SetFeature pins a feature to a constant answer. Returns the evaluator for
// chaining.
func (e *TestEvaluator) SetFeature(name string, enabled bool) *TestEvaluator {
	return e.SetFeatureFunc(name, func(*featurekit.Context) (bool, bool) {
		return enabled, true
	})
}

// SetFeatureFunc routes a feature's evaluations through fn. Returns the
// evaluator for chaining.
func (e *TestEvaluator) SetFeatureFunc(name string, fn DecisionFunc) *TestEvaluator {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decisions[name] = fn
	return e
}

// ClearFeature removes a feature's entry so evaluations abstain again.
func (e *TestEvaluator) ClearFeature(name string) *TestEvaluator {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.decisions, name)
	return e
}

// Reset drops every entry.
func (e *TestEvaluator) Reset() *TestEvaluator {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decisions = make(map[string]DecisionFunc)
	return e
}

// Registrations reports how many times the evaluator has been installed.
func (e *TestEvaluator) Registrations() int {
	return int(e.registrations.Load())
}

func (e *TestEvaluator) IsEnabled(feature string, ctx *featurekit.Context) (bool, bool) {
	e.mu.RLock()
	fn, ok := e.decisions[feature]
	e.mu.RUnlock()
	if !ok {
		return false, false
	}
	return fn(ctx)
}

func (e *TestEvaluator) OnRegistration() {
	e.registrations.Add(1)
}

// capturedFields is the extension slot the evaluator fills per context.
type capturedFields struct {
	fields featurekit.Fields
}

func (e *TestEvaluator) OnNewContext(view *featurekit.ContextView, fields featurekit.Fields) {
	featurekit.ExtPut(view.Extensions(), capturedFields{fields: fields.Clone()})
}

func (e *TestEvaluator) OnCloseContext(*featurekit.ContextView) {}

// Fields returns the fields captured for ctx when it was created under a
// TestEvaluator, or false if ctx was created elsewhere.
func Fields(ctx *featurekit.Context) (featurekit.Fields, bool) {
	if ctx == nil {
		return nil, false
	}
	captured, ok := featurekit.ExtGet[capturedFields](ctx.Extensions())
	if !ok {
		return nil, false
	}
	return captured.fields, true
}

// LineageFields walks ctx and its ancestors and returns the nearest captured
// field for each distinct key, so tests can assert on the effective view a
// scope-aware evaluator would see.
func LineageFields(ctx *featurekit.Context) featurekit.Fields {
	if ctx == nil {
		return nil
	}
	var merged featurekit.Fields
	seen := make(map[string]struct{})
	for c := range ctx.Lineage() {
		fields, ok := Fields(c)
		if !ok {
			continue
		}
		for _, f := range fields {
			if _, dup := seen[f.Key]; dup {
				continue
			}
			seen[f.Key] = struct{}{}
			merged = append(merged, f)
		}
	}
	return merged
}
