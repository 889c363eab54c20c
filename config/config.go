// Package config loads the analysis configuration used by the command-line
// tools. Values come from an optional YAML file layered over the workshop
// defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Han-YY/vBCI-Meeting-Workshop3/spectral"
)

// Config holds the segmentation and extraction parameters for one run.
type Config struct {
	BlockLength float64         `mapstructure:"block_length"` // seconds
	Overlap     float64         `mapstructure:"overlap"`      // seconds
	Reference   string          `mapstructure:"reference"`    // "car" or "none"
	Channels    []string        `mapstructure:"channels"`     // empty = all
	Bands       []spectral.Band `mapstructure:"bands"`
	LogLevel    string          `mapstructure:"log_level"`
	OutputDir   string          `mapstructure:"output_dir"`
}

// Load reads the configuration from path, or returns the defaults when
// path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("block_length", 6.0)
	v.SetDefault("overlap", 3.0)
	v.SetDefault("reference", "car")
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", "outputs")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(c.Bands) == 0 {
		c.Bands = spectral.StandardBands()
	}

	switch c.Reference {
	case "car", "none":
	default:
		return nil, fmt.Errorf("config: unknown reference %q (want car or none)", c.Reference)
	}
	return &c, nil
}
