// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = ".techdebt"
	configType = "yaml"

	// EnvPrefix is the prefix of environment overrides, for example
	// TECHDEBT_THRESHOLDS_MAX_COMPLEXITY=15 or TECHDEBT_ANALYSIS_WORKERS=8.
	EnvPrefix = "TECHDEBT"
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"workers":        "analysis.workers",
	"timeout":        "analysis.timeout",
	"ext":            "analysis.ext",
	"exclude":        "analysis.exclude",
	"max-complexity": "thresholds.max_complexity",
	"top-n":          "thresholds.top_n",
	"risk-moderate":  "thresholds.risk_thresholds.moderate",
	"risk-high":      "thresholds.risk_thresholds.high",
	"format":         "output.format",
	"no-save":        "output.no_save",
	"no-color":       "output.no_color",
	"metrics-file":   "output.metrics_file",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"otlp-endpoint":  "tracing.endpoint",
	"otlp-insecure":  "tracing.insecure",
}

// New returns a viper instance with defaults and environment overrides in
// place.
func New() *viper.Viper {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func applyDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("analysis.workers", d.Analysis.Workers)
	v.SetDefault("analysis.timeout", d.Analysis.Timeout)
	v.SetDefault("analysis.ext", d.Analysis.Ext)
	v.SetDefault("analysis.exclude", d.Analysis.Exclude)

	v.SetDefault("thresholds.max_complexity", d.Thresholds.MaxComplexity)
	v.SetDefault("thresholds.top_n", d.Thresholds.TopN)
	v.SetDefault("thresholds.risk_thresholds.moderate", d.Thresholds.RiskThresholds.Moderate)
	v.SetDefault("thresholds.risk_thresholds.high", d.Thresholds.RiskThresholds.High)

	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.no_save", d.Output.NoSave)
	v.SetDefault("output.no_color", d.Output.NoColor)
	v.SetDefault("output.metrics_file", d.Output.MetricsFile)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.insecure", d.Tracing.Insecure)
}

// RegisterFlags declares the analysis flags on fs with the built-in
// defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.Int("workers", d.Analysis.Workers, "Number of files analyzed concurrently (0 = NumCPU)")
	fs.Duration("timeout", d.Analysis.Timeout, "Stop dispatching files after this duration and report partial results (0 = none)")
	fs.StringSlice("ext", d.Analysis.Ext, "File extensions to include")
	fs.StringSlice("exclude", d.Analysis.Exclude, "Glob patterns, relative to the root, of paths to skip")
	fs.Int("max-complexity", d.Thresholds.MaxComplexity, "Exit with code 2 if any function exceeds this complexity (0 = off)")
	fs.Int("top-n", d.Thresholds.TopN, "Number of top offenders to report")
	fs.Int("risk-moderate", d.Thresholds.RiskThresholds.Moderate, "Complexity above which a function is moderate risk")
	fs.Int("risk-high", d.Thresholds.RiskThresholds.High, "Complexity above which a function is high risk")
	fs.String("format", d.Output.Format, "Output format (text|json|yaml|sarif|html)")
	fs.Bool("no-save", d.Output.NoSave, "Do not persist the report under .techdebt/report.json")
	fs.Bool("no-color", d.Output.NoColor, "Disable colored text output")
	fs.String("metrics-file", d.Output.MetricsFile, "Write Prometheus metrics to this textfile")
	fs.String("log-level", d.Log.Level, "Log level (debug|info|warn|error)")
	fs.String("log-format", d.Log.Format, "Log format (text|json)")
	fs.String("otlp-endpoint", d.Tracing.Endpoint, "OTLP gRPC endpoint for traces (empty = tracing off)")
	fs.Bool("otlp-insecure", d.Tracing.Insecure, "Use an insecure connection to the OTLP endpoint")
}

// BindFlags binds every flag of fs that has a configuration key. Flags the
// user did not set keep lower-precedence values.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file, unmarshals and validates the
// result. With an empty configPath the file .techdebt.yaml is looked up in
// searchDirs; a missing file is not an error.
func Load(v *viper.Viper, configPath string, searchDirs ...string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	if configPath != "" || len(searchDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Analysis.Ext = NormalizeExtensions(cfg.Analysis.Ext)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
