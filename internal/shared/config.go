package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Environment variables (and a .env file in the working directory) override file values.
type Config struct {
	API      APIConfig      `toml:"api"`
	Client   ClientConfig   `toml:"client"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Dev      DevConfig      `toml:"dev"`
}

// APIConfig points the client at the remote movie API.
type APIConfig struct {
	BaseURL string        `toml:"base_url" env:"MYFLIX_API_URL"`
	Timeout time.Duration `toml:"timeout" env:"MYFLIX_API_TIMEOUT"`
}

// ClientConfig contains client-side behavior switches.
type ClientConfig struct {
	DetailedErrors bool    `toml:"detailed_errors" env:"MYFLIX_DETAILED_ERRORS"`
	ImportRate     float64 `toml:"import_rate" env:"MYFLIX_IMPORT_RATE"`
	ImportWorkers  int     `toml:"import_workers" env:"MYFLIX_IMPORT_WORKERS"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"MYFLIX_DB_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig selects the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `toml:"level" env:"MYFLIX_LOG_LEVEL"`
}

// DevConfig configures the local stub API started by "myflix dev serve".
type DevConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port" env:"MYFLIX_DEV_PORT"`
	Secret string `toml:"secret" env:"MYFLIX_DEV_SECRET"`
}

// Addr returns the host:port pair for the stub server.
func (d DevConfig) Addr() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path, then applies environment overrides.
//
// Values missing from the file fall back to the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv loads a .env file when one is present and overrides config values from the environment.
func ApplyEnv(config *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("%w: failed to load .env: %v", ErrInvalidConfig, err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig loads path when it exists, otherwise the defaults. Environment overrides apply either way.
func ResolveConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadConfig(path)
	}

	config := DefaultConfig()
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
