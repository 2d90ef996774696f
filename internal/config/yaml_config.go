package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourcesConfig represents the structure of the resources.yaml file.
// Word lists are easier to manage in YAML than env vars.
type ResourcesConfig struct {
	Stopwords StopwordsConfig `yaml:"stopwords"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// StopwordsConfig adjusts the built-in English stopword list.
type StopwordsConfig struct {
	Extra  []string `yaml:"extra,omitempty"`  // Words ignored in addition to the defaults
	Remove []string `yaml:"remove,omitempty"` // Default stopwords that should count
}

// MaxTopN is the largest keyword cap a resource file may set.
const MaxTopN = 30

// ScoringConfig overrides ranking parameters. Zero keeps the default.
type ScoringConfig struct {
	TopN int `yaml:"top_n,omitempty"` // Lowers the keyword cap, 1 to MaxTopN
}

// LoadResourcesConfig loads the YAML resource file at path.
// Returns nil without error if the file doesn't exist.
func LoadResourcesConfig(path string) (*ResourcesConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Resource file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg ResourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Scoring.TopN < 0 || cfg.Scoring.TopN > MaxTopN {
		return nil, fmt.Errorf("parse %s: scoring.top_n must be between 0 and %d", path, MaxTopN)
	}

	return &cfg, nil
}

// ExtraStopwords returns the additional stopwords, nil-safe.
func (c *ResourcesConfig) ExtraStopwords() []string {
	if c == nil {
		return nil
	}
	return c.Stopwords.Extra
}

// RemovedStopwords returns the stopwords to drop from the defaults, nil-safe.
func (c *ResourcesConfig) RemovedStopwords() []string {
	if c == nil {
		return nil
	}
	return c.Stopwords.Remove
}

// TopN returns the configured keyword cap, or 0 for the default.
func (c *ResourcesConfig) TopN() int {
	if c == nil {
		return 0
	}
	return c.Scoring.TopN
}
