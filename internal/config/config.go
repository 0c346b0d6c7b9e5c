// Package config loads the settings of the slip39 command-line tool.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/shamirbackup/go-slip39"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the top-level tool configuration.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Output   string         `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// GenerateConfig holds the default share layout for `slip39 generate`.
type GenerateConfig struct {
	IterationExponent int           `yaml:"iteration_exponent"`
	StrengthBits      int           `yaml:"strength_bits"`
	GroupThreshold    int           `yaml:"group_threshold"`
	Groups            []GroupConfig `yaml:"groups"`
}

// GroupConfig is one group of member shares.
type GroupConfig struct {
	Threshold int `yaml:"threshold"`
	Count     int `yaml:"count"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Textfile is a path for the node-exporter textfile collector. Empty
	// disables metrics output.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			IterationExponent: slip39.DefaultIterationExponent,
			StrengthBits:      slip39.MinStrengthBits,
			GroupThreshold:    1,
			Groups:            []GroupConfig{{Threshold: 1, Count: 1}},
		},
		Output: OutputText,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file on top of Default, then applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		// #nosec G304 - config file path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if e := os.Getenv("SLIP39_ITERATION_EXPONENT"); e != "" {
		exp, err := strconv.Atoi(e)
		if err != nil {
			log.Printf("Warning: invalid SLIP39_ITERATION_EXPONENT value %q, using %d: %v",
				e, cfg.Generate.IterationExponent, err)
		} else {
			cfg.Generate.IterationExponent = exp
		}
	}
	if level := os.Getenv("SLIP39_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("SLIP39_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if output := os.Getenv("SLIP39_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if textfile := os.Getenv("SLIP39_METRICS_FILE"); textfile != "" {
		cfg.Metrics.Textfile = textfile
	}
}

// Validate checks the configuration for values the tool cannot use. Share
// layouts are checked again by the library when mnemonics are generated.
func (c *Config) Validate() error {
	var errs []error

	g := c.Generate
	if g.IterationExponent < 0 || g.IterationExponent > 31 {
		errs = append(errs, fmt.Errorf("generate.iteration_exponent must be between 0 and 31, got %d",
			g.IterationExponent))
	}
	if g.StrengthBits < slip39.MinStrengthBits || g.StrengthBits%16 != 0 {
		errs = append(errs, fmt.Errorf("generate.strength_bits must be >= %d and a multiple of 16, got %d",
			slip39.MinStrengthBits, g.StrengthBits))
	}
	if len(g.Groups) == 0 || len(g.Groups) > slip39.MaxGroupCount {
		errs = append(errs, fmt.Errorf("generate.groups must list between 1 and %d groups, got %d",
			slip39.MaxGroupCount, len(g.Groups)))
	} else if g.GroupThreshold < 1 || g.GroupThreshold > len(g.Groups) {
		errs = append(errs, fmt.Errorf("generate.group_threshold must be between 1 and %d, got %d",
			len(g.Groups), g.GroupThreshold))
	}
	for i, group := range g.Groups {
		if group.Count < 1 || group.Count > slip39.MaxShareCount ||
			group.Threshold < 1 || group.Threshold > group.Count {
			errs = append(errs, fmt.Errorf("generate.groups[%d]: invalid %d-of-%d",
				i, group.Threshold, group.Count))
		}
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputJSON, c.Output))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// MemberGroups converts the configured groups to library parameters.
func (g GenerateConfig) MemberGroups() []slip39.MemberGroupParameters {
	params := make([]slip39.MemberGroupParameters, len(g.Groups))
	for i, group := range g.Groups {
		params[i] = slip39.MemberGroupParameters{
			MemberThreshold: group.Threshold,
			MemberCount:     group.Count,
		}
	}
	return params
}
