// Package config loads conjugo's settings from defaults, an optional YAML
// file, a .env file and CONJUGO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CONJUGO"

// Config holds all application configuration.
type Config struct {
	DBPath      string `mapstructure:"db_path"`
	DatasetPath string `mapstructure:"dataset_path"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFile     string `mapstructure:"log_file"`
	Locale      string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
}

// Language returns the parsed locale tag, falling back to French.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.French
	}
	return tag
}

// Options controls where Load looks for input.
type Options struct {
	// ConfigFile is an explicit YAML path. When empty the default location is
	// tried and silently skipped if absent.
	ConfigFile string
	// EnvFile is a dotenv file loaded before reading the environment. Missing
	// files are ignored.
	EnvFile string
}

// Load resolves configuration. Environment variables take precedence over
// the config file, which takes precedence over defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("db_path", "")
	v.SetDefault("dataset_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("locale", "fr")

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if path, err := DefaultConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// CONJUGO_DB predates the generic key and is kept as an alias.
	if err := v.BindEnv("db_path", EnvPrefix+"_DB_PATH", EnvPrefix+"_DB"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/conjugo/config.yaml, falling
// back to ~/.config.
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "conjugo", "config.yaml"), nil
}
