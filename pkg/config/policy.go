// Package config loads the sandbox policy a host applies to Evaluate
// calls from a YAML manifest, the same decode-with-known-fields pattern
// the teacher's pkg/driver manifest loader uses for package.yml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"able/evalscript/pkg/evaluator"
)

// Policy is the on-disk shape of a sandbox policy file (§6.1).
type Policy struct {
	TimeoutMs                  int  `yaml:"timeout_ms"`
	MaxCallDepth               int  `yaml:"max_call_depth"`
	DisableWhileStatements     bool `yaml:"disable_while_statements"`
	AllowReturnOutsideFunction bool `yaml:"allow_return_outside_function"`
}

// LoadPolicy parses path as a sandbox policy YAML file and converts it
// into evaluator.Options. A missing or zero field keeps the
// corresponding limit unbounded.
func LoadPolicy(path string) (evaluator.Options, error) {
	if path == "" {
		return evaluator.Options{}, fmt.Errorf("config: empty policy path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return evaluator.Options{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return evaluator.Options{}, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var policy Policy
	if err := decoder.Decode(&policy); err != nil {
		if errors.Is(err, io.EOF) {
			return evaluator.Options{}, fmt.Errorf("config: %s is empty", absPath)
		}
		return evaluator.Options{}, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	return evaluator.Options{
		TimeoutMs:                  policy.TimeoutMs,
		MaxCallDepth:               policy.MaxCallDepth,
		DisableWhileStatements:     policy.DisableWhileStatements,
		AllowReturnOutsideFunction: policy.AllowReturnOutsideFunction,
	}, nil
}
