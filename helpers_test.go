package featurekit_test

import (
	"sync/atomic"

	"github.com/dmitrymomot/featurekit"
)

// mapEvaluator answers from a fixed map and abstains for unknown features.
type mapEvaluator struct {
	flags map[string]bool
}

func (m *mapEvaluator) IsEnabled(feature string, _ *featurekit.Context) (bool, bool) {
	enabled, ok := m.flags[feature]
	return enabled, ok
}

// hookEvaluator counts lifecycle notifications on top of a map evaluator.
type hookEvaluator struct {
	mapEvaluator
	registrations atomic.Int32
	created       atomic.Int32
	closed        atomic.Int32
}

func (h *hookEvaluator) OnRegistration() {
	h.registrations.Add(1)
}

func (h *hookEvaluator) OnNewContext(_ *featurekit.ContextView, _ featurekit.Fields) {
	h.created.Add(1)
}

func (h *hookEvaluator) OnCloseContext(_ *featurekit.ContextView) {
	h.closed.Add(1)
}

// panicHookEvaluator fails every context construction it observes.
type panicHookEvaluator struct {
	hookEvaluator
}

func (p *panicHookEvaluator) OnNewContext(*featurekit.ContextView, featurekit.Fields) {
	panic("hook failure")
}

// capturedFields is the extension type fieldsEvaluator stores per context.
type capturedFields struct {
	fields featurekit.Fields
}

// fieldsEvaluator copies each new context's fields into its extensions and
// answers a feature by finding the nearest ancestor carrying a boolean field
// of the same name.
type fieldsEvaluator struct{}

func (fieldsEvaluator) IsEnabled(feature string, ctx *featurekit.Context) (bool, bool) {
	for c := range ctx.Lineage() {
		captured, ok := featurekit.ExtGet[capturedFields](c.Extensions())
		if !ok {
			continue
		}
		if v, ok := captured.fields.Get(feature); ok {
			if enabled, ok := v.AsBool(); ok {
				return enabled, true
			}
		}
	}
	return false, false
}

func (fieldsEvaluator) OnNewContext(view *featurekit.ContextView, fields featurekit.Fields) {
	featurekit.ExtPut(view.Extensions(), capturedFields{fields: fields.Clone()})
}

func (fieldsEvaluator) OnCloseContext(_ *featurekit.ContextView) {}
