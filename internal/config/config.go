// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Package config holds the run configuration of techdebt and loads it from
// defaults, an optional .techdebt.yaml file, TECHDEBT_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/metrics"
)

// Config is the top-level configuration. Field tags use mapstructure for
// viper unmarshalling.
type Config struct {
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Output     OutputConfig     `mapstructure:"output"`
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

type AnalysisConfig struct {
	// Workers bounds the number of files analyzed at once; 0 means NumCPU.
	Workers int `mapstructure:"workers"`
	// Timeout bounds the whole run; 0 disables it.
	Timeout time.Duration `mapstructure:"timeout"`
	Ext     []string      `mapstructure:"ext"`
	Exclude []string      `mapstructure:"exclude"`
}

type ThresholdsConfig struct {
	// MaxComplexity fails the run when any function exceeds it; 0 disables
	// the gate.
	MaxComplexity  int                  `mapstructure:"max_complexity"`
	TopN           int                  `mapstructure:"top_n"`
	RiskThresholds RiskThresholdsConfig `mapstructure:"risk_thresholds"`
}

type RiskThresholdsConfig struct {
	Moderate int `mapstructure:"moderate"`
	High     int `mapstructure:"high"`
}

type OutputConfig struct {
	Format      string `mapstructure:"format"`
	NoSave      bool   `mapstructure:"no_save"`
	NoColor     bool   `mapstructure:"no_color"`
	MetricsFile string `mapstructure:"metrics_file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

const (
	DefaultWorkers       = 0
	DefaultTimeout       = time.Duration(0)
	DefaultMaxComplexity = 0
	DefaultFormat        = "text"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

var (
	DefaultExt     = []string{".go"}
	DefaultExclude = []string{}

	Formats    = []string{"text", "json", "yaml", "sarif", "html"}
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"text", "json"}
)

// Sentinel errors for configuration validation.
var (
	ErrInvalidWorkers       = errors.New("analysis.workers must be non-negative")
	ErrInvalidTimeout       = errors.New("analysis.timeout must be non-negative")
	ErrNoExtensions         = errors.New("analysis.ext must name at least one extension")
	ErrInvalidMaxComplexity = errors.New("thresholds.max_complexity must be non-negative")
	ErrInvalidTopN          = fmt.Errorf("thresholds.top_n must be between %d and %d", metrics.MinTopN, metrics.MaxTopN)
	ErrInvalidRiskModerate  = errors.New("thresholds.risk_thresholds.moderate must be positive")
	ErrInvalidRiskHigh      = errors.New("thresholds.risk_thresholds.high must be greater than moderate")
	ErrUnknownFormat        = errors.New("output.format is not a known format")
	ErrUnknownLogLevel      = errors.New("log.level must be one of debug, info, warn, error")
	ErrUnknownLogFormat     = errors.New("log.format must be text or json")
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Workers: DefaultWorkers,
			Timeout: DefaultTimeout,
			Ext:     slices.Clone(DefaultExt),
			Exclude: slices.Clone(DefaultExclude),
		},
		Thresholds: ThresholdsConfig{
			MaxComplexity: DefaultMaxComplexity,
			TopN:          metrics.DefaultTopN,
			RiskThresholds: RiskThresholdsConfig{
				Moderate: metrics.DefaultRiskModerate,
				High:     metrics.DefaultRiskHigh,
			},
		},
		Output: OutputConfig{Format: DefaultFormat},
		Log:    LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateThresholds(); err != nil {
		return err
	}

	if !slices.Contains(Formats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Output.Format)
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		return ErrUnknownLogLevel
	}
	if !slices.Contains(LogFormats, strings.ToLower(c.Log.Format)) {
		return ErrUnknownLogFormat
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.Analysis.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if len(NormalizeExtensions(c.Analysis.Ext)) == 0 {
		return ErrNoExtensions
	}
	return nil
}

func (c *Config) validateThresholds() error {
	t := c.Thresholds
	if t.MaxComplexity < 0 {
		return ErrInvalidMaxComplexity
	}
	if t.TopN < metrics.MinTopN || t.TopN > metrics.MaxTopN {
		return ErrInvalidTopN
	}
	if t.RiskThresholds.Moderate < 1 {
		return ErrInvalidRiskModerate
	}
	if t.RiskThresholds.High <= t.RiskThresholds.Moderate {
		return ErrInvalidRiskHigh
	}
	return nil
}

// Settings is the part of the configuration echoed into every report.
func (c *Config) Settings() model.Settings {
	return model.Settings{
		TopN:          c.Thresholds.TopN,
		MaxComplexity: c.Thresholds.MaxComplexity,
		RiskModerate:  c.Thresholds.RiskThresholds.Moderate,
		RiskHigh:      c.Thresholds.RiskThresholds.High,
	}
}

// NormalizeExtensions splits comma-joined entries and dot-prefixes each
// extension.
//
//	NormalizeExtensions([]string{"go,c"})  -> [".go" ".c"]
//	NormalizeExtensions([]string{".go"})   -> [".go"]
func NormalizeExtensions(raw []string) []string {
	var extensions []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, ".") {
				trimmed = "." + trimmed
			}
			extensions = append(extensions, trimmed)
		}
	}
	return extensions
}
