// Package config provides configuration loading for the scope annotator.
// Settings load from a YAML file and fall back to defaults when absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Scale parameters
	Scale struct {
		// AllowedValues are the range denominations (in km) the operator can
		// pick from. The reference frame itself accepts any positive value;
		// the UI restricts choices to this list.
		AllowedValues []float64 `yaml:"allowedValues"`

		// DefaultValue is applied to new sessions.
		DefaultValue float64 `yaml:"defaultValue"`
	} `yaml:"scale"`

	// Annotation rendering parameters
	Annotation struct {
		// RingFractions are the fractions of the calibration distance at
		// which range rings are drawn on the annotated image.
		RingFractions []float64 `yaml:"ringFractions"`

		// MarkerSize is the half-length of detection crosses in pixels.
		MarkerSize int `yaml:"markerSize"`

		// LabelScale is the pixel multiplier for burned-in text labels.
		LabelScale int `yaml:"labelScale"`
	} `yaml:"annotation"`

	// Caption OCR parameters
	Caption struct {
		// Enabled controls whether loading an image attempts to read the
		// burned-in caption strip.
		Enabled bool `yaml:"enabled"`

		// StripHeightFraction is the portion of the image height, measured
		// from the bottom edge, scanned for caption text.
		StripHeightFraction float64 `yaml:"stripHeightFraction"`
	} `yaml:"caption"`

	// Center auto-detection parameters
	Detect struct {
		// MinRadiusFraction and MaxRadiusFraction bound the scope face
		// radius relative to the smaller image dimension.
		MinRadiusFraction float64 `yaml:"minRadiusFraction"`
		MaxRadiusFraction float64 `yaml:"maxRadiusFraction"`
	} `yaml:"detect"`
}

// Default returns a configuration with default values.
func Default() *Config {
	cfg := &Config{}

	cfg.Scale.AllowedValues = []float64{50, 100, 200, 300, 400}
	cfg.Scale.DefaultValue = 300

	cfg.Annotation.RingFractions = []float64{0.25, 0.5, 0.75, 1.0}
	cfg.Annotation.MarkerSize = 8
	cfg.Annotation.LabelScale = 2

	cfg.Caption.Enabled = false
	cfg.Caption.StripHeightFraction = 0.08

	cfg.Detect.MinRadiusFraction = 0.25
	cfg.Detect.MaxRadiusFraction = 0.49

	return cfg
}

// Load reads configuration from a YAML file. A missing file yields the
// default configuration without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory if
// needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// DefaultPath returns the conventional config file location under the user
// config directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "radar-scope", "config.yaml")
}

// IsAllowedScale reports whether v is one of the configured denominations.
func (c *Config) IsAllowedScale(v float64) bool {
	for _, allowed := range c.Scale.AllowedValues {
		if v == allowed {
			return true
		}
	}
	return false
}
