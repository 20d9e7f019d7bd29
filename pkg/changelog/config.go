// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Version schemes understood by the "scheme" lint rule.
const (
	SchemeDefault = "pep440"
	SchemeSemver  = "semver"
)

// Config controls linting and formatting.  It is conventionally read from a
// ".chlog.yml" file next to the changelog.
type Config struct {
	// Scheme is the version scheme section headers must conform to: "pep440" (the
	// default) or "semver".
	Scheme string `yaml:"scheme"`
	// Width is the column entry text is wrapped to by formatting; 0 means
	// DefaultWidth.
	Width int `yaml:"width"`
	// Disable lists lint rules to skip.
	Disable []string `yaml:"disable"`
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{Scheme: SchemeDefault, Width: DefaultWidth}
}

// LoadConfig reads a Config from a YAML file.  Unknown keys are an error, to catch
// typos.
func LoadConfig(filename string) (*Config, error) {
	yamlBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(yamlBytes, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	for _, rule := range cfg.Disable {
		if !validRule(rule) {
			return nil, fmt.Errorf("%s: unknown lint rule: %q", filename, rule)
		}
	}
	return cfg, nil
}

func validRule(rule string) bool {
	for _, known := range Rules {
		if rule == known {
			return true
		}
	}
	return false
}

func (cfg *Config) enabled(rule string) bool {
	for _, disabled := range cfg.Disable {
		if rule == disabled {
			return false
		}
	}
	return true
}
