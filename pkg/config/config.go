// Package config handles loading and managing aidrank configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for aidrank.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
	Export ExportConfig `yaml:"export"`
}

// EngineConfig controls how priority scores are computed.
type EngineConfig struct {
	// Mode selects the external reasoning engine: "off" (formula only),
	// "metta", "gateway", or "auto" (gateway first, then metta).
	Mode         string `yaml:"mode"`
	MettaPath    string `yaml:"metta_path"`
	Timeout      int    `yaml:"timeout"` // seconds
	GatewayURL   string `yaml:"gateway_url"`
	GatewayToken string `yaml:"gateway_token"`
}

// StoreConfig controls evaluation history storage.
type StoreConfig struct {
	Path        string `yaml:"path"`         // sqlite file (default under ~/.aidrank)
	PostgresDSN string `yaml:"postgres_dsn"` // optional shared registry
}

// ExportConfig controls report export destinations.
type ExportConfig struct {
	Backend  string `yaml:"backend"` // local, s3, gcs
	Dir      string `yaml:"dir"`     // local backend root
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // custom S3 endpoint (e.g. MinIO)
}

// Engine modes accepted by EngineConfig.Mode.
const (
	EngineModeOff     = "off"
	EngineModeMetta   = "metta"
	EngineModeGateway = "gateway"
	EngineModeAuto    = "auto"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Mode:      EngineModeOff,
			MettaPath: "metta",
			Timeout:   10,
		},
		Export: ExportConfig{
			Backend: "local",
			Prefix:  "reports",
		},
	}
}

// Load reads a config file from the given path.
// If the path is empty or the file does not exist, it returns the
// default config. Secrets can be supplied through AIDRANK_GATEWAY_TOKEN
// and AIDRANK_POSTGRES_DSN, which override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		applyEnv(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AIDRANK_GATEWAY_TOKEN"); v != "" {
		cfg.Engine.GatewayToken = v
	}
	if v := os.Getenv("AIDRANK_POSTGRES_DSN"); v != "" {
		cfg.Store.PostgresDSN = v
	}
}

// FindConfigFile looks for .aidrank/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".aidrank", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// DataDir returns the per-user directory for aidrank state.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".aidrank")
}

// DefaultStorePath returns the default sqlite history location.
func DefaultStorePath() string {
	return filepath.Join(DataDir(), "history.db")
}

// StorePath resolves the configured sqlite path, falling back to the
// default location.
func (s StoreConfig) StorePath() string {
	if s.Path != "" {
		return s.Path
	}
	return DefaultStorePath()
}
