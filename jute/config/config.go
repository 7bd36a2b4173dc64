package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/jute-commons/jute"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Walker WalkerConfig `mapstructure:"walker"`
	Math   MathConfig   `mapstructure:"math"`
	Log    LogConfig    `mapstructure:"log"`
}

// WalkerConfig stores directory tree enumeration defaults.
type WalkerConfig struct {
	Recursive          bool     `mapstructure:"recursive"`
	ExcludeFragments   []string `mapstructure:"excludeFragments"`
	ExcludeFilenames   []string `mapstructure:"excludeFilenames"`
	ExcludeGlobs       []string `mapstructure:"excludeGlobs"`
	IgnoreFile         string   `mapstructure:"ignoreFile"`
	MaxConcurrentRoots int      `mapstructure:"maxConcurrentRoots"`
}

// MathConfig stores numeric helper defaults.
type MathConfig struct {
	DefaultPrecision int `mapstructure:"defaultPrecision"`
}

// LogConfig stores logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from file or environment variables.
// An empty configPath searches the working directory and the user config
// directory; not finding a file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("walker.recursive", true)
	v.SetDefault("walker.excludeFragments", []string{})
	v.SetDefault("walker.excludeFilenames", []string{})
	v.SetDefault("walker.excludeGlobs", []string{})
	v.SetDefault("walker.ignoreFile", internal.DefaultIgnoreFileName)
	v.SetDefault("walker.maxConcurrentRoots", internal.DefaultMaxConcurrentRoots)
	v.SetDefault("math.defaultPrecision", internal.DefaultPrecision)
	v.SetDefault("log.level", internal.DefaultLogLevel)

	// JUTE_WALKER_RECURSIVE=false overrides walker.recursive
	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Walker.MaxConcurrentRoots < 1 {
		return fmt.Errorf("walker.maxConcurrentRoots must be at least 1, got %d", c.Walker.MaxConcurrentRoots)
	}
	if c.Math.DefaultPrecision < 0 {
		return fmt.Errorf("math.defaultPrecision cannot be negative, got %d", c.Math.DefaultPrecision)
	}
	return nil
}
