package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentConfigVersion is the expected version of the config file.
const CurrentConfigVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	Server     Server     `koanf:"server"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Push       Push       `koanf:"push"`
}

// Debug contains development and logging configuration.
type Debug struct {
	// LogLevel sets the minimum zap log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// Server contains HTTP server configuration.
type Server struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"db_name"`
	// MaxOpenConns limits the connection pool size.
	MaxOpenConns int `koanf:"max_open_conns"`
	// MaxIdleConns limits idle connections kept in the pool.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// MaxLifetime is the maximum connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// MaxIdleTime is the maximum connection idle time in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration for the unread-count cache.
type Redis struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// Push contains the mobile/desktop push gateway configuration.
type Push struct {
	// Enabled toggles hand-off to the external push gateway.
	Enabled bool `koanf:"enabled"`
}

// LoadConfig loads the configuration from the first server.toml found in the
// search paths. Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".overflow",
		homeDir + "/.overflow/config",
		"/etc/overflow/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/server.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: server.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version != CurrentConfigVersion {
		return nil, "", fmt.Errorf("%w: expected version %d, got %d (update your server.toml)",
			ErrConfigVersionMismatch, CurrentConfigVersion, config.Version)
	}

	return &config, usedConfigPath, nil
}
