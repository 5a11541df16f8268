package featurekit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featurekit"
)

// runOn executes fn on a fresh goroutine and waits for it, so the test can
// observe what a wrapper carries across goroutine boundaries.
func runOn(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}

func TestBindContext(t *testing.T) {
	t.Parallel()

	t.Run("InstallsOnEachCall", func(t *testing.T) {
		t.Parallel()
		ctx := featurekit.NewContext(nil)
		defer ctx.Close()

		bound := featurekit.BindContext(ctx, func() {
			current, ok := featurekit.CurrentContext()
			require.True(t, ok)
			assert.Same(t, ctx, current)
		})

		bound()
		runOn(bound)

		_, ok := featurekit.CurrentContext()
		assert.False(t, ok, "the wrapper must tear its scope down after each call")
	})

	t.Run("DoesNotLeakIntoCallSiteScope", func(t *testing.T) {
		t.Parallel()
		outer := featurekit.NewContext(nil)
		defer outer.Close()
		inner := featurekit.NewContext(nil)
		defer inner.Close()

		bound := featurekit.BindContext(inner, func() {
			current, _ := featurekit.CurrentContext()
			assert.Same(t, inner, current)
		})

		outer.InScope(func() {
			bound()
			current, _ := featurekit.CurrentContext()
			assert.Same(t, outer, current)
		})
	})
}

func TestInheritContext(t *testing.T) {
	t.Parallel()

	t.Run("CapturesCurrentAtBindTime", func(t *testing.T) {
		t.Parallel()
		ctx := featurekit.NewContext(nil)
		defer ctx.Close()

		var bound func()
		ctx.InScope(func() {
			bound = featurekit.InheritContext(func() {
				current, ok := featurekit.CurrentContext()
				require.True(t, ok)
				assert.Same(t, ctx, current)
			})
		})

		runOn(bound)
	})

	t.Run("DefaultsToRoot", func(t *testing.T) {
		t.Parallel()
		bound := featurekit.InheritContext(func() {
			current, ok := featurekit.CurrentContext()
			require.True(t, ok)
			assert.True(t, current.IsRoot())
		})
		runOn(bound)
	})
}

func TestBindEvaluator(t *testing.T) {
	t.Parallel()

	t.Run("InstallsOnEachCall", func(t *testing.T) {
		t.Parallel()
		e := &mapEvaluator{flags: map[string]bool{"on": true}}
		bound := featurekit.BindEvaluator(e, func() {
			assert.True(t, featurekit.IsEnabled("on", false))
		})

		bound()
		runOn(bound)
	})

	t.Run("RegistersOnFirstCallOnly", func(t *testing.T) {
		t.Parallel()
		h := &hookEvaluator{}
		bound := featurekit.BindEvaluator(h, func() {})

		assert.Equal(t, int32(0), h.registrations.Load(),
			"binding alone must not register")
		bound()
		bound()
		runOn(bound)
		assert.Equal(t, int32(1), h.registrations.Load())
	})

	t.Run("KeepsEvaluatorAlive", func(t *testing.T) {
		t.Parallel()
		e := &mapEvaluator{flags: map[string]bool{"on": true}}

		var ctx *featurekit.Context
		bound := featurekit.BindEvaluator(e, func() {
			ctx = featurekit.NewContext(nil)
		})
		bound()
		defer ctx.Close()

		// The wrapper still holds a strong handle, so the snapshot resolves.
		enabled, ok := featurekit.New("on", false).StateIn(ctx)
		require.True(t, ok)
		assert.True(t, enabled)
	})
}

func TestInheritEvaluator(t *testing.T) {
	t.Parallel()

	t.Run("CarriesAmbientAcrossGoroutines", func(t *testing.T) {
		t.Parallel()
		e := &mapEvaluator{flags: map[string]bool{"on": true}}

		var bound func()
		featurekit.WithEvaluator(e, func() {
			bound = featurekit.InheritEvaluator(func() {
				assert.True(t, featurekit.IsEnabled("on", false))
			})
		})

		runOn(bound)
	})

	t.Run("PinsAbsenceToAbstention", func(t *testing.T) {
		t.Parallel()
		bound := featurekit.InheritEvaluator(func() {
			assert.True(t, featurekit.IsEnabled("missing", true))
			assert.False(t, featurekit.IsEnabled("missing", false))
		})

		// Even under a later override, the wrapper keeps its bind-time view.
		featurekit.WithEvaluator(&mapEvaluator{flags: map[string]bool{"missing": true}}, func() {
			bound()
		})
	})

	t.Run("KeepsCapturedEvaluatorAlive", func(t *testing.T) {
		t.Parallel()
		e := &mapEvaluator{flags: map[string]bool{"on": true}}

		var bound func()
		featurekit.WithEvaluator(e, func() {
			bound = featurekit.InheritEvaluator(func() {
				ctx := featurekit.NewContext(nil)
				defer ctx.Close()

				enabled, ok := featurekit.New("on", false).StateIn(ctx)
				require.True(t, ok,
					"a context created in a wrapped step must get a live snapshot")
				assert.True(t, enabled)
			})
		})

		// The originating scope has exited; only the wrapper's own handle
		// keeps the evaluator alive now.
		bound()
		runOn(bound)
	})

	t.Run("DoesNotReRegister", func(t *testing.T) {
		t.Parallel()
		h := &hookEvaluator{}

		featurekit.WithEvaluator(h, func() {
			registered := h.registrations.Load()
			bound := featurekit.InheritEvaluator(func() {})
			bound()
			bound()
			assert.Equal(t, registered, h.registrations.Load())
		})
	})
}

func TestSpawn(t *testing.T) {
	t.Parallel()

	// The test keeps a strong handle so the context's snapshot stays alive
	// for however late the spawned goroutine runs.
	ref := featurekit.NewEvaluatorRef(&mapEvaluator{flags: map[string]bool{"on": true}})
	defer ref.Release()

	var ctx *featurekit.Context
	done := make(chan struct{})
	featurekit.WithEvaluator(ref, func() {
		ctx = featurekit.NewContext(nil)
		ctx.InScope(func() {
			featurekit.Spawn(func() {
				defer close(done)
				current, ok := featurekit.CurrentContext()
				assert.True(t, ok)
				assert.Same(t, ctx, current)
				assert.True(t, featurekit.IsEnabled("on", false))
			})
		})
	})
	<-done
	ctx.Close()
}

func TestSpawnHoldsContextUntilRun(t *testing.T) {
	t.Parallel()

	h := &hookEvaluator{}
	ref := featurekit.NewEvaluatorRef(h)
	defer ref.Release()

	release := make(chan struct{})
	done := make(chan struct{})

	featurekit.WithEvaluator(ref, func() {
		ctx := featurekit.NewContext(nil)
		ctx.InScope(func() {
			featurekit.Spawn(func() {
				defer close(done)
				<-release
				current, ok := featurekit.CurrentContext()
				assert.True(t, ok)
				assert.Same(t, ctx, current)
			})
		})

		// The spawning side closes its handle before the goroutine runs.
		ctx.Close()
		assert.Equal(t, int32(0), h.closed.Load(),
			"the pending spawned step must keep the context open")

		close(release)
		<-done
	})

	assert.Eventually(t, func() bool {
		return h.closed.Load() == 1
	}, time.Second, time.Millisecond, "the spawned step's reference must be released after it runs")
}
