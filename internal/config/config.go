package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level gstdraft.yaml configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Draft DraftConfig `yaml:"draft"`
}

// APIConfig points the client at the invoice service.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// TokenEnv names the environment variable carrying the session token.
	// The token itself never lives in the config file.
	TokenEnv string `yaml:"token_env"`
}

// DraftConfig controls draft persistence.
type DraftConfig struct {
	QuietMillis int    `yaml:"quiet_millis"` // autosave debounce window
	DataDir     string `yaml:"data_dir"`     // where the draft file lives, relative to the workspace
}

// Load reads a gstdraft.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8000/api/v1",
			TokenEnv: "GSTDRAFT_TOKEN",
		},
		Draft: DraftConfig{
			QuietMillis: 220,
			DataDir:     "drafts",
		},
	}
}

// Token resolves the session token from the environment, loading a .env
// file first when one is present.
func (c *Config) Token() string {
	_ = godotenv.Load()
	return os.Getenv(c.API.TokenEnv)
}
