package featurekit

import "log/slog"

// filterEvaluator gates an evaluator behind a feature-name predicate.
type filterEvaluator struct {
	inner Evaluator
	pred  func(feature string) bool
}

// Filter returns an evaluator that consults e only for features accepted by
// pred and abstains for everything else. Lifecycle hooks pass through to e
// unchanged.
func Filter(e Evaluator, pred func(feature string) bool) Evaluator {
	return &filterEvaluator{inner: e, pred: pred}
}

func (f *filterEvaluator) IsEnabled(feature string, ctx *Context) (bool, bool) {
	if !f.pred(feature) {
		return false, false
	}
	return f.inner.IsEnabled(feature, ctx)
}

func (f *filterEvaluator) OnRegistration() {
	notifyRegistration(f.inner)
}

func (f *filterEvaluator) OnNewContext(view *ContextView, fields Fields) {
	notifyNewContext(f.inner, view, fields)
}

func (f *filterEvaluator) OnCloseContext(view *ContextView) {
	notifyCloseContext(f.inner, view)
}

// chainEvaluator falls back to a second evaluator when the first abstains.
type chainEvaluator struct {
	first  Evaluator
	second Evaluator
}

// Chain returns an evaluator whose answer is the first decisive answer of
// first then second; it abstains only when both abstain. Lifecycle hooks are
// delivered to both inner evaluators, first then second.
func Chain(first, second Evaluator) Evaluator {
	return &chainEvaluator{first: first, second: second}
}

func (c *chainEvaluator) IsEnabled(feature string, ctx *Context) (bool, bool) {
	if enabled, ok := c.first.IsEnabled(feature, ctx); ok {
		return enabled, true
	}
	return c.second.IsEnabled(feature, ctx)
}

func (c *chainEvaluator) OnRegistration() {
	notifyRegistration(c.first)
	notifyRegistration(c.second)
}

func (c *chainEvaluator) OnNewContext(view *ContextView, fields Fields) {
	notifyNewContext(c.first, view, fields)
	notifyNewContext(c.second, view, fields)
}

func (c *chainEvaluator) OnCloseContext(view *ContextView) {
	notifyCloseContext(c.first, view)
	notifyCloseContext(c.second, view)
}

// loggedEvaluator logs every decision of the wrapped evaluator.
type loggedEvaluator struct {
	inner Evaluator
	log   *slog.Logger
}

// Logged returns an evaluator that forwards to e and logs each decision at
// debug level, including abstentions. A nil logger uses slog.Default.
func Logged(e Evaluator, log *slog.Logger) Evaluator {
	if log == nil {
		log = slog.Default()
	}
	return &loggedEvaluator{inner: e, log: log}
}

func (l *loggedEvaluator) IsEnabled(feature string, ctx *Context) (bool, bool) {
	enabled, ok := l.inner.IsEnabled(feature, ctx)
	if ok {
		l.log.Debug("feature evaluated",
			slog.String("feature", feature),
			slog.Bool("enabled", enabled),
		)
	} else {
		l.log.Debug("feature evaluation abstained",
			slog.String("feature", feature),
		)
	}
	return enabled, ok
}

func (l *loggedEvaluator) OnRegistration() {
	notifyRegistration(l.inner)
}

func (l *loggedEvaluator) OnNewContext(view *ContextView, fields Fields) {
	notifyNewContext(l.inner, view, fields)
}

func (l *loggedEvaluator) OnCloseContext(view *ContextView) {
	notifyCloseContext(l.inner, view)
}
