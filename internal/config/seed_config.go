package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SeedConfig represents the optional seed.yaml file: initial catalog data
// provisioned on startup. Easier to manage as YAML than env vars.
type SeedConfig struct {
	Tags  []string   `yaml:"tags"`
	Tools []SeedTool `yaml:"tools"`
}

// SeedTool defines a tool to provision on startup if absent.
type SeedTool struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// LoadSeedConfig loads the YAML seed file. Path is determined by the
// SEED_FILE env var, defaulting to "seed.yaml". Returns nil without error
// if the file doesn't exist.
func LoadSeedConfig() (*SeedConfig, error) {
	path := getEnv("SEED_FILE", "seed.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Seed file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg SeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
