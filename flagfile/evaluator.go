package flagfile

import (
	"errors"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/featurekit"
)

// Evaluator answers from a fixed flag set and abstains for unknown features.
type Evaluator struct {
	flags map[string]bool
}

// New returns an evaluator over a copy of flags.
func New(flags map[string]bool) *Evaluator {
	return &Evaluator{flags: maps.Clone(flags)}
}

// FromYAML parses a flat name-to-boolean YAML mapping into an evaluator.
func FromYAML(data []byte) (*Evaluator, error) {
	flags := make(map[string]bool)
	if err := yaml.Unmarshal(data, &flags); err != nil {
		return nil, errors.Join(ErrParseFlagFile, err)
	}
	return &Evaluator{flags: flags}, nil
}

// FromFile reads and parses a YAML flag file.
func FromFile(path string) (*Evaluator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFlagFile, err)
	}
	return FromYAML(data)
}

// Len reports how many flags the set carries.
func (e *Evaluator) Len() int {
	return len(e.flags)
}

func (e *Evaluator) IsEnabled(feature string, _ *featurekit.Context) (bool, bool) {
	enabled, ok := e.flags[feature]
	return enabled, ok
}
