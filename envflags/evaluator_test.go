package envflags_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featurekit"
	"github.com/dmitrymomot/featurekit/envflags"
)

func TestVarName(t *testing.T) {
	t.Parallel()

	eval := envflags.New(envflags.Config{Prefix: "FEATURE_"})

	for feature, want := range map[string]string{
		"checkout":       "FEATURE_CHECKOUT",
		"beta.search":    "FEATURE_BETA_SEARCH",
		"new-ui-v2":      "FEATURE_NEW_UI_V2",
		"Weird Name!":    "FEATURE_WEIRD_NAME_",
		"already_UPPER9": "FEATURE_ALREADY_UPPER9",
	} {
		assert.Equal(t, want, eval.VarName(feature), feature)
	}
}

func TestIsEnabled(t *testing.T) {
	eval := envflags.New(envflags.Config{Prefix: "FKTEST_"})

	t.Run("ReadsBooleanVariables", func(t *testing.T) {
		t.Setenv("FKTEST_CHECKOUT", "true")
		t.Setenv("FKTEST_LEGACY_EXPORT", "0")

		enabled, ok := eval.IsEnabled("checkout", nil)
		require.True(t, ok)
		assert.True(t, enabled)

		enabled, ok = eval.IsEnabled("legacy-export", nil)
		require.True(t, ok)
		assert.False(t, enabled)
	})

	t.Run("UnsetVariableAbstains", func(t *testing.T) {
		_, ok := eval.IsEnabled("never-set-anywhere", nil)
		assert.False(t, ok)
	})

	t.Run("UnparsableValueAbstains", func(t *testing.T) {
		t.Setenv("FKTEST_BROKEN", "definitely")
		_, ok := eval.IsEnabled("broken", nil)
		assert.False(t, ok)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		t.Setenv("FKTEST_PADDED", " true ")
		enabled, ok := eval.IsEnabled("padded", nil)
		require.True(t, ok)
		assert.True(t, enabled)
	})

	t.Run("ObservesChangesBetweenLookups", func(t *testing.T) {
		t.Setenv("FKTEST_LIVE", "false")
		enabled, ok := eval.IsEnabled("live", nil)
		require.True(t, ok)
		assert.False(t, enabled)

		t.Setenv("FKTEST_LIVE", "true")
		enabled, ok = eval.IsEnabled("live", nil)
		require.True(t, ok)
		assert.True(t, enabled)
	})

	t.Run("ComposesWithDefaults", func(t *testing.T) {
		t.Setenv("FKTEST_ON", "1")
		featurekit.WithEvaluator(eval, func() {
			assert.True(t, featurekit.IsEnabled("on", false))
			assert.True(t, featurekit.IsEnabled("unset", true))
			assert.False(t, featurekit.IsEnabled("unset", false))
		})
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Run("UsesConfiguredPrefix", func(t *testing.T) {
		t.Setenv("FEATURE_FLAGS_ENV_PREFIX", "TOGGLES_")
		eval, err := envflags.NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "TOGGLES_CHECKOUT", eval.VarName("checkout"))
	})

	t.Run("DefaultsPrefix", func(t *testing.T) {
		// Setenv registers the restore; the lookup itself must see it unset.
		t.Setenv("FEATURE_FLAGS_ENV_PREFIX", "ignored")
		require.NoError(t, os.Unsetenv("FEATURE_FLAGS_ENV_PREFIX"))

		eval, err := envflags.NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "FEATURE_CHECKOUT", eval.VarName("checkout"))
	})
}

func TestLoadEnv(t *testing.T) {
	t.Parallel()

	err := envflags.LoadEnv("testdata/does-not-exist.env")
	require.ErrorIs(t, err, envflags.ErrLoadDotenv)
}
