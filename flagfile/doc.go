// Package flagfile provides an evaluator backed by a static set of flags,
// typically loaded from a YAML file at startup.
//
// The file format is a flat mapping of feature names to booleans:
//
//	new-checkout: true
//	legacy-export: false
//
// Flags absent from the set abstain, so call-site defaults still apply. The
// set is immutable after construction; reloading means building a new
// evaluator and installing it in a fresh scope.
//
// # Usage
//
//	eval, err := flagfile.FromFile("flags.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	featurekit.MustSetGlobalEvaluator(eval)
package flagfile
