package featurekit

import "errors"

var (
	// ErrGlobalEvaluatorSet indicates the global evaluator was already set by
	// an earlier call; the existing registration is left untouched.
	ErrGlobalEvaluatorSet = errors.New("featurekit: global evaluator already set")

	// ErrGoroutineEvaluatorSet indicates the calling goroutine already has an
	// evaluator set; the existing registration is left untouched.
	ErrGoroutineEvaluatorSet = errors.New("featurekit: goroutine evaluator already set")
)
