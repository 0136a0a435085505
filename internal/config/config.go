// Package config loads tileutils settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eak1mov/go-bundletiles/bundle"
	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/spf13/viper"
)

type Config struct {
	Root      string `mapstructure:"root"`
	PackSize  int    `mapstructure:"pack_size"`
	Format    string `mapstructure:"format"`
	Listen    string `mapstructure:"listen"`
	InFlight  int    `mapstructure:"max_in_flight"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var ErrMissingRoot = errors.New("libtiles: bundle root is not configured")

// Load reads cfgFile (if not empty) on top of defaults and BUNDLETILES_*
// environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("pack_size", spec.DefaultPackSize)
	v.SetDefault("format", "auto")
	v.SetDefault("listen", ":8080")
	v.SetDefault("max_in_flight", 64)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetEnvPrefix("bundletiles")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"root", "pack_size", "format", "listen", "max_in_flight", "log_level", "log_format"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ReaderOptions converts the bundle settings into bundle.NewReader options.
func (c *Config) ReaderOptions(logger *slog.Logger) ([]bundle.ReaderOption, error) {
	if c.Root == "" {
		return nil, ErrMissingRoot
	}
	format, err := spec.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	return []bundle.ReaderOption{
		bundle.WithPackSize(c.PackSize),
		bundle.WithFormat(format),
		bundle.WithLogger(logger),
	}, nil
}

// OpenReader opens the configured bundle cache.
func (c *Config) OpenReader(logger *slog.Logger) (*bundle.Reader, error) {
	opts, err := c.ReaderOptions(logger)
	if err != nil {
		return nil, err
	}
	return bundle.NewReader(c.Root, opts...)
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
