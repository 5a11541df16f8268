// Package envflags provides an evaluator backed by environment variables,
// handy for toggling features per deployment without a flag store.
//
// A feature name is normalised to an environment variable name by uppercasing
// it and replacing every character outside [A-Z0-9] with an underscore, then
// prepending the configured prefix. With the default prefix, "beta.search"
// resolves through FEATURE_BETA_SEARCH.
//
// Variables that are unset or fail strconv.ParseBool abstain, so call-site
// defaults still apply.
//
// # Usage
//
//	_ = envflags.LoadEnv() // optional .env support
//
//	eval, err := envflags.NewFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//	featurekit.MustSetGlobalEvaluator(eval)
package envflags
