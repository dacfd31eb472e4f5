// Package config manages application configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Lint   LintConfig   `mapstructure:"lint"`
	Server ServerConfig `mapstructure:"server"`
}

// LintConfig controls how the lint hook invokes the linter.
type LintConfig struct {
	// Command is the linter executable.
	Command string `mapstructure:"command"`
	// Args are passed before the "--" separator and the file path.
	Args []string `mapstructure:"args"`
	// WorkingDir is the directory the linter runs in.
	WorkingDir string `mapstructure:"working_dir"`
	// Extensions are the file suffixes that trigger a lint run.
	Extensions []string `mapstructure:"extensions"`
	// Tools are the tool names that trigger a lint run.
	Tools []string `mapstructure:"tools"`
	// TimeoutSeconds bounds a single linter run. Zero disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// SkipPatterns name files the linter should leave alone.
	SkipPatterns []string `mapstructure:"skip_patterns"`
}

// ServerConfig represents lint server settings.
type ServerConfig struct {
	// Socket overrides the default unix socket path.
	Socket string `mapstructure:"socket"`
}

// Load loads configuration from files and environment variables.
// It searches for config files in the following order:
// 1. /etc/cc-jslint/config.{toml,yaml,yml}
// 2. $XDG_CONFIG_HOME/cc-jslint/config.{toml,yaml,yml} (or ~/.config/cc-jslint/)
// 3. ./config.{toml,yaml,yml}
//
// Environment variables override file settings using the prefix CC_JSLINT_
// For example: CC_JSLINT_LINT_WORKING_DIR
func Load() (*Config, error) {
	cfg, _, err := LoadForWatch()
	return cfg, err
}

// LoadForWatch loads configuration like Load and also returns the Viper
// instance, so callers can watch the config file for changes.
func LoadForWatch() (*Config, *viper.Viper, error) {
	v := viper.New()

	// Set config file name (without extension)
	v.SetConfigName("config")

	for _, path := range SearchPaths() {
		v.AddConfigPath(path)
	}

	// Set environment variable prefix
	v.SetEnvPrefix("CC_JSLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (it's OK if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		// Only return error if it's not a "not found" error
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// LoadWithViper loads configuration using a provided Viper instance.
// Defaults are applied first, so an empty instance yields the stock
// configuration. This is useful for testing or when you want to configure
// Viper differently.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Watch re-reads the configuration whenever the loaded config file changes
// and hands each good result to onChange. Updates that fail to unmarshal
// are dropped. Without a loaded config file there is nothing to watch.
func Watch(v *viper.Viper, onChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return
		}
		onChange(&cfg)
	})
	v.WatchConfig()
}

// SearchPaths returns the directories searched for a config file, in
// priority order.
func SearchPaths() []string {
	return []string{
		"/etc/cc-jslint/",
		getXDGConfigPath(),
		".",
	}
}

// setDefaults registers the stock configuration. Registering every key also
// makes AutomaticEnv pick up CC_JSLINT_* overrides during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("lint.command", "npm")
	v.SetDefault("lint.args", []string{"run", "lint:fix"})
	v.SetDefault("lint.working_dir", "/home/user/plx.github.io")
	v.SetDefault("lint.extensions", []string{".js", ".ts", ".jsx", ".tsx"})
	v.SetDefault("lint.tools", []string{"Edit", "Write"})
	v.SetDefault("lint.timeout_seconds", 0)
	v.SetDefault("lint.skip_patterns", []string{})
	v.SetDefault("server.socket", "")
}

// getXDGConfigPath returns the XDG config directory for cc-jslint.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cc-jslint")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home
		return "."
	}

	return filepath.Join(homeDir, ".config", "cc-jslint")
}
