package envflags

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/featurekit"
)

// Config controls how feature names map to environment variables.
type Config struct {
	// Prefix is prepended to every normalised feature name.
	Prefix string `env:"FEATURE_FLAGS_ENV_PREFIX" envDefault:"FEATURE_"`
}

// Evaluator resolves features through environment variables at lookup time,
// so variables changed between lookups are observed.
type Evaluator struct {
	prefix string
}

// New returns an evaluator using cfg's prefix.
func New(cfg Config) *Evaluator {
	return &Evaluator{prefix: cfg.Prefix}
}

// NewFromEnv builds the evaluator's own config from the environment.
func NewFromEnv() (*Evaluator, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}
	return New(cfg), nil
}

// LoadEnv loads dotenv files into the process environment before the
// evaluator is built. With no arguments it loads ".env" if present.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadDotenv, err)
	}
	return nil
}

// VarName returns the environment variable the evaluator consults for a
// feature, useful in error messages and docs.
func (e *Evaluator) VarName(feature string) string {
	return e.prefix + normalize(feature)
}

func (e *Evaluator) IsEnabled(feature string, _ *featurekit.Context) (bool, bool) {
	raw, ok := os.LookupEnv(e.VarName(feature))
	if !ok {
		return false, false
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return enabled, true
}

func normalize(feature string) string {
	var b strings.Builder
	b.Grow(len(feature))
	for _, r := range feature {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
