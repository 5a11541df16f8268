// Package featuretest provides an in-memory evaluator for exercising
// feature-gated code in tests.
//
// A TestEvaluator answers from a mutable per-feature table and abstains for
// anything not listed, so tests control exactly which flags decide and which
// fall back to their defaults. It also captures the fields of every context
// created while it is installed, letting tests assert on the data call sites
// attach.
//
// # Usage
//
//	eval := featuretest.New().
//		SetFeature("new-checkout", true).
//		SetFeature("legacy-export", false)
//
//	featurekit.WithEvaluator(eval, func() {
//		// code under test
//	})
//
// Per-context decisions use SetFeatureFunc:
//
//	eval.SetFeatureFunc("beta", func(ctx *featurekit.Context) (bool, bool) {
//		fields, ok := featuretest.Fields(ctx)
//		if !ok {
//			return false, false
//		}
//		v, ok := fields.Get("tier")
//		if !ok {
//			return false, false
//		}
//		tier, _ := v.AsString()
//		return tier == "beta", true
//	})
package featuretest
