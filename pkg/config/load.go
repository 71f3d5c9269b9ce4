package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/evolvelab/gopop/pkg/errors"
)

// Load reads an experiment document from a YAML file, merges it over the
// defaults, and validates the result.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ConfigurationError, "failed to read experiment file"),
			errors.Fields{"path": path})
	}
	return Parse(data)
}

// Parse merges a YAML experiment document over the defaults and validates the
// result. Fields absent from the document keep their default values.
func Parse(data []byte) (*Experiment, error) {
	exp := GetDefaultExperiment()
	if err := yaml.Unmarshal(data, exp); err != nil {
		return nil, errors.Wrap(err, errors.ConfigurationError, "failed to parse experiment document")
	}
	if err := ValidateExperiment(exp); err != nil {
		return nil, errors.Wrap(err, errors.ValidationFailed, "invalid experiment")
	}
	return exp, nil
}

// Save writes an experiment document to a YAML file, creating the directory
// if needed.
func Save(exp *Experiment, path string) error {
	data, err := yaml.Marshal(exp)
	if err != nil {
		return errors.Wrap(err, errors.ConfigurationError, "failed to marshal experiment")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ConfigurationError, "failed to create experiment directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ConfigurationError, "failed to write experiment file")
	}
	return nil
}
