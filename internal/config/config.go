package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/quantmind-br/pyfind/internal/security"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	CacheFile string `mapstructure:"cache_file"`
	LogFile   string `mapstructure:"log_file"`
}

// DiscoveryConfig controls interpreter discovery
type DiscoveryConfig struct {
	// Launcher is the Windows python launcher run with --list-paths
	Launcher string `mapstructure:"launcher"`
	// OverrideEnv names the variable that replaces PATH and disables the launcher
	OverrideEnv string `mapstructure:"override_env"`
	// QueryTimeout bounds each interpreter probe
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// CacheConfig contains query cache configuration
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	if dir := configDir(); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variable overrides, e.g. PYFIND_DISCOVERY_LAUNCHER
	viper.SetEnvPrefix("PYFIND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.CacheFile = expandPath(cfg.Paths.CacheFile)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside discovery
func (c *Config) Validate() error {
	if err := security.ValidateEnvironmentVariable(c.Discovery.OverrideEnv); err != nil {
		return fmt.Errorf("discovery.override_env: %w", err)
	}
	if strings.TrimSpace(c.Discovery.Launcher) == "" {
		return errors.New("discovery.launcher cannot be empty")
	}
	if c.Discovery.QueryTimeout <= 0 {
		return fmt.Errorf("discovery.query_timeout must be positive, got %s", c.Discovery.QueryTimeout)
	}
	for _, p := range []string{c.Paths.CacheFile, c.Paths.LogFile} {
		if err := security.ValidatePath(p); err != nil {
			return fmt.Errorf("paths: %w", err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("paths.cache_file", filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), "interpreters.db"))
	viper.SetDefault("paths.log_file", filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "pyfind.log"))

	viper.SetDefault("discovery.launcher", "py")
	viper.SetDefault("discovery.override_env", "PYFIND_TEST_PYTHON_PATH")
	viper.SetDefault("discovery.query_timeout", "10s")

	viper.SetDefault("cache.enabled", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.color", "auto")
}

func configDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// xdgDir returns $env/pyfind, falling back to ~/fallback/pyfind
func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, "pyfind")
	}
	home, err := homedir.Dir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, fallback, "pyfind")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return os.ExpandEnv(path)
}
