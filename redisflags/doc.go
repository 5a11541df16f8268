// Package redisflags provides an evaluator backed by Redis, for flags flipped
// at runtime across a fleet without redeploying.
//
// Each feature lives under a single string key (KeyPrefix + feature name)
// holding a boolean in strconv.ParseBool syntax. Missing keys and unparsable
// values abstain, so call-site defaults still apply. Lookups are bounded by
// LookupTimeout and answers are cached for CacheTTL, keeping flag checks off
// the hot path; a flipped flag is observed within one TTL.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	eval, err := redisflags.Connect(ctx, redisflags.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: 5 * time.Second,
//		ConnectTimeout: 30 * time.Second,
//		KeyPrefix:     "feature:",
//		CacheTTL:      5 * time.Second,
//		LookupTimeout: 250 * time.Millisecond,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer eval.Close()
//
//	featurekit.MustSetGlobalEvaluator(eval)
//
// Flip a flag from anywhere:
//
//	SET feature:new-checkout true
package redisflags
