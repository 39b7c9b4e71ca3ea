package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// ProjectConfig is the shape of a tscheck.yaml project file: which files
// to check, whether to type-check them, and a strict flag. Strict is
// loaded (and forced on by `check --strict`) but nothing downstream
// reads it; only TypeCheck reaches the engine. There is no notion of
// module resolution paths here.
type ProjectConfig struct {
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	Strict    bool     `yaml:"strict"`
	TypeCheck bool     `yaml:"typeCheck"`
}

func defaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{Include: []string{"**/*.ts"}, Strict: true, TypeCheck: true}
}

// loadProjectConfig reads path (or "./tscheck.yaml" when path is empty
// and that file exists), falling back to defaultProjectConfig() when no
// config file is present at all.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	if path == "" {
		path = "tscheck.yaml"
		if _, err := os.Stat(path); err != nil {
			return defaultProjectConfig(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := defaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
