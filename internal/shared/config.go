package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Session   SessionConfig   `toml:"session"`
	Providers ProvidersConfig `toml:"providers"`
	Export    ExportConfig    `toml:"export"`
}

// DatabaseConfig contains storage backend settings.
//
// Backend selects between the relational SQLite backend ("sqlite") and the
// flat-file key-value backend ("kv"). Path is the SQLite database file;
// DataDir holds the per-collection JSON files of the kv backend.
type DatabaseConfig struct {
	Backend      string `toml:"backend"`
	Path         string `toml:"path"`
	DataDir      string `toml:"data_dir"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SessionConfig contains the persisted session token location.
type SessionConfig struct {
	TokenPath string `toml:"token_path"`
}

// ProvidersConfig contains credentials for the external AI collaborators.
type ProvidersConfig struct {
	Speech    SpeechConfig    `toml:"speech"`
	Summary   SummaryConfig   `toml:"summary"`
	Translate TranslateConfig `toml:"translate"`
}

// SpeechConfig contains speech-to-text API credentials.
type SpeechConfig struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// SummaryConfig contains summarization API credentials.
type SummaryConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// TranslateConfig contains translation API credentials.
type TranslateConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// ExportConfig contains lecture export settings.
type ExportConfig struct {
	Format    string  `toml:"format"`
	OutputDir string  `toml:"output_dir"`
	RateLimit float64 `toml:"rate_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
