// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Command techdebt measures the technical debt of a Go source tree.
//
// It exposes three subcommands:
//
//   - analyze: scan a source tree, compute metrics and persist a JSON report
//   - report:  render the last saved report in different formats
//   - metrics: list the available metrics
//
// The process exits with 0 on success, 1 on a fatal error and 2 when the
// configured complexity gate fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	outputadapter "github.com/rafaelvolkmer/techdebt/internal/adapter/output"
	parser "github.com/rafaelvolkmer/techdebt/internal/adapter/parser"
	"github.com/rafaelvolkmer/techdebt/internal/config"
	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
	"github.com/rafaelvolkmer/techdebt/internal/infrastructure"
	"github.com/rafaelvolkmer/techdebt/internal/observability"
	"github.com/rafaelvolkmer/techdebt/internal/usecase"
)

const (
	exitOK        = 0
	exitFatal     = 1
	exitThreshold = 2
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// App wires configuration, shared dependencies and command handlers for the
// CLI.
type App struct {
	stdout io.Writer
	stderr io.Writer
	deps   *Dependencies
}

// Dependencies groups the services that do not depend on configuration.
type Dependencies struct {
	Storage     *infrastructure.FileStorage
	Modules     ports.ModuleResolver
	CodeParsers []ports.CodeParser
}

func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		deps: &Dependencies{
			Storage:     infrastructure.NewFileStorage(),
			Modules:     infrastructure.NewGoModResolver(),
			CodeParsers: []ports.CodeParser{parser.NewGoParser()},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := NewApp(os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// Run dispatches args to a subcommand and maps its outcome to an exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		a.printUsage()
		return exitFatal
	}

	command, commandArgs := args[0], args[1:]

	var err error
	switch command {
	case "analyze":
		err = a.runAnalyze(ctx, commandArgs)
	case "report":
		err = a.runReport(ctx, commandArgs)
	case "metrics":
		err = a.runMetrics(ctx, commandArgs)
	case "-h", "--help", "help":
		a.printUsage()
		return exitOK
	case "version", "--version":
		fmt.Fprintln(a.stdout, "techdebt", version)
		return exitOK
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n", command)
		a.printUsage()
		return exitFatal
	}

	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return exitOK
	case errors.Is(err, errs.ErrThresholdExceeded):
		fmt.Fprintf(a.stderr, "techdebt: %v\n", err)
		return exitThreshold
	default:
		fmt.Fprintf(a.stderr, "techdebt: error: %v\n", err)
		return exitFatal
	}
}

func (a *App) printUsage() {
	fmt.Fprintf(a.stderr, `techdebt - technical debt metrics for Go code

Usage:
  techdebt analyze [options] [path]
  techdebt report  [options] [path]
  techdebt metrics
  techdebt version

Commands:
  analyze   Analyze a source tree and persist a report under .techdebt/report.json
  report    Render the last report (text, json, yaml, sarif or html)
  metrics   List supported metrics

Configuration is read from .techdebt.yaml in the analyzed root (or --config),
then TECHDEBT_* environment variables, then flags.

Run "techdebt <command> -h" for command-specific flags.
`)
}

// runAnalyze scans the source tree, computes metrics, persists the report
// and prints it. A failed complexity gate is returned after printing.
func (a *App) runAnalyze(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("analyze", pflag.ContinueOnError)
	flagSet.SortFlags = false
	flagSet.SetOutput(a.stderr)

	flagSet.String("path", ".", "Path to project root or a single file (can also be given as positional argument)")
	flagSet.String("config", "", "Config file (default: .techdebt.yaml in the analyzed root)")
	config.RegisterFlags(flagSet)

	flagSet.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage:\n  techdebt analyze [options] [path]\n\nOptions:\n")
		flagSet.PrintDefaults()
	}

	cfg, rootPath, err := a.loadConfig(flagSet, args)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(a.stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	tracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Endpoint: cfg.Tracing.Endpoint,
		Insecure: cfg.Tracing.Insecure,
		Version:  version,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := tracing.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("flush traces", "error", err)
		}
	}()

	scanner, err := infrastructure.NewFSScanner(cfg.Analysis.Exclude...)
	if err != nil {
		return err
	}
	scanner.WithLogger(logger)

	opts := []usecase.Option{
		usecase.WithLogger(logger),
		usecase.WithTracer(tracing.Tracer),
		usecase.WithModuleResolver(a.deps.Modules),
	}
	if cfg.Output.MetricsFile != "" {
		opts = append(opts, usecase.WithMetricsSink(observability.NewTextfileSink(cfg.Output.MetricsFile)))
	}

	registry := outputadapter.NewDefaultRegistry(outputadapter.TextOptions{NoColor: cfg.Output.NoColor})
	renderer, err := usecase.Renderer(registry, cfg.Output.Format)
	if err != nil {
		return err
	}

	analyzeUseCase := usecase.NewAnalyzeProjectUseCase(
		scanner,
		scanner,
		a.deps.CodeParsers,
		a.deps.Storage,
		cfg.Analysis.Workers,
		opts...,
	)

	projectReport, err := analyzeUseCase.Execute(ctx, usecase.AnalyzeProjectRequest{
		RootPath:   rootPath,
		IncludeExt: cfg.Analysis.Ext,
		Timeout:    cfg.Analysis.Timeout,
		Settings:   cfg.Settings(),
		NoSave:     cfg.Output.NoSave,
	})
	if err != nil {
		return err
	}

	renderedOutput, err := renderer.Render(projectReport)
	if err != nil {
		return fmt.Errorf("render %s: %w", renderer.Format(), err)
	}
	fmt.Fprintln(a.stdout, renderedOutput)

	return usecase.ThresholdError(projectReport)
}

// runReport renders the report saved by the last analyze run of a root.
func (a *App) runReport(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
	flagSet.SortFlags = false
	flagSet.SetOutput(a.stderr)

	flagSet.String("path", ".", "Path to project root (can also be given as positional argument)")
	flagSet.String("config", "", "Config file (default: .techdebt.yaml in the root)")
	flagSet.String("format", config.DefaultFormat, "Output format (text|json|yaml|sarif|html)")
	flagSet.Bool("no-color", false, "Disable colored text output")

	flagSet.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage:\n  techdebt report [options] [path]\n\nOptions:\n")
		flagSet.PrintDefaults()
	}

	cfg, rootPath, err := a.loadConfig(flagSet, args)
	if err != nil {
		return err
	}

	registry := outputadapter.NewDefaultRegistry(outputadapter.TextOptions{NoColor: cfg.Output.NoColor})
	reportUseCase := usecase.NewGenerateReportUseCase(a.deps.Storage, registry)

	renderedOutput, _, err := reportUseCase.Execute(ctx, usecase.GenerateReportRequest{
		RootPath: rootPath,
		Format:   cfg.Output.Format,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, renderedOutput)
	return nil
}

// runMetrics lists the metric catalogue.
func (a *App) runMetrics(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("metrics", pflag.ContinueOnError)
	flagSet.SortFlags = false
	flagSet.SetOutput(a.stderr)

	flagSet.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage:\n  techdebt metrics\n\nLists the supported metrics.\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	supportedMetrics := usecase.NewListMetricsUseCase().Execute(ctx)

	fmt.Fprintln(a.stdout, "Supported metrics:")
	for _, metric := range supportedMetrics {
		fmt.Fprintf(a.stdout, "- [%s] %s (%s)\n    %s\n",
			metric.Group, metric.Name, metric.ID, metric.Description)
	}
	return nil
}

// loadConfig parses args into flagSet and resolves the configuration. A
// positional path wins over --path; .techdebt.yaml is searched in the root
// (or, for a single file, in its directory).
func (a *App) loadConfig(flagSet *pflag.FlagSet, args []string) (*config.Config, string, error) {
	if err := flagSet.Parse(args); err != nil {
		return nil, "", err
	}

	v := config.New()
	if err := config.BindFlags(v, flagSet); err != nil {
		return nil, "", err
	}

	rootPath, _ := flagSet.GetString("path")
	if rest := flagSet.Args(); len(rest) > 0 {
		rootPath = rest[0]
	}
	configPath, _ := flagSet.GetString("config")

	cfg, err := config.Load(v, configPath, searchDir(rootPath))
	if err != nil {
		return nil, "", err
	}
	return cfg, rootPath, nil
}

func searchDir(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return filepath.Dir(root)
	}
	return root
}
