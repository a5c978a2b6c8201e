// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
	"github.com/rafaelvolkmer/techdebt/internal/metrics"
)

type AnalyzeProjectRequest struct {
	RootPath   string
	IncludeExt []string
	// Timeout stops dispatching files once elapsed; files not yet started
	// are reported as skipped and the report is marked incomplete.
	Timeout  time.Duration
	Settings model.Settings
	NoSave   bool
}

type AnalyzeProjectUseCase struct {
	scanner ports.SourceFileScanner
	reader  ports.FileReader
	parsers []ports.CodeParser
	storage ports.ReportStorage
	workers int

	sink    ports.MetricsSink
	modules ports.ModuleResolver
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

type Option func(*AnalyzeProjectUseCase)

func WithMetricsSink(sink ports.MetricsSink) Option {
	return func(uc *AnalyzeProjectUseCase) { uc.sink = sink }
}

func WithModuleResolver(r ports.ModuleResolver) Option {
	return func(uc *AnalyzeProjectUseCase) { uc.modules = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(uc *AnalyzeProjectUseCase) { uc.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(uc *AnalyzeProjectUseCase) { uc.tracer = t }
}

func WithClock(now func() time.Time) Option {
	return func(uc *AnalyzeProjectUseCase) { uc.now = now }
}

func NewAnalyzeProjectUseCase(
	scanner ports.SourceFileScanner,
	reader ports.FileReader,
	parsers []ports.CodeParser,
	storage ports.ReportStorage,
	workers int,
	opts ...Option,
) *AnalyzeProjectUseCase {
	uc := &AnalyzeProjectUseCase{
		scanner: scanner,
		reader:  reader,
		parsers: parsers,
		storage: storage,
		workers: workers,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  nooptrace.NewTracerProvider().Tracer(""),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.workers <= 0 {
		uc.workers = max(runtime.NumCPU(), 1)
	}
	return uc
}

// Execute analyzes every source file under req.RootPath. Only a missing
// input, an empty file set or a run where every file failed is an error;
// any other per-file problem is recorded on the returned report.
func (uc *AnalyzeProjectUseCase) Execute(ctx context.Context, req AnalyzeProjectRequest) (*model.ProjectReport, error) {
	if req.RootPath == "" {
		return nil, fmt.Errorf("root path is required")
	}

	ctx, span := uc.tracer.Start(ctx, "analyze", trace.WithAttributes(
		attribute.String("techdebt.root", req.RootPath),
		attribute.Int("techdebt.workers", uc.workers),
	))
	defer span.End()

	report, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("techdebt.files", report.Summary.FileCount),
		attribute.Int("techdebt.functions", report.Summary.FunctionCount),
		attribute.Bool("techdebt.incomplete", report.Incomplete),
	)
	return report, nil
}

func (uc *AnalyzeProjectUseCase) execute(ctx context.Context, req AnalyzeProjectRequest) (*model.ProjectReport, error) {
	started := uc.now()

	filesList, err := uc.scanner.Scan(ctx, req.RootPath, req.IncludeExt)
	if err != nil {
		return nil, fmt.Errorf("scan source files: %w", err)
	}
	if len(filesList) == 0 {
		return nil, fmt.Errorf("%w under %s", errs.ErrNoSourceFiles, req.RootPath)
	}
	uc.logger.InfoContext(ctx, "analysis started",
		"root", req.RootPath, "files", len(filesList), "workers", uc.workers)

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	units, incomplete := uc.measureAll(runCtx, filesList, req.Settings)

	if allFailed(units) {
		return nil, fmt.Errorf("%w (%d files)", errs.ErrAllFilesFailed, len(units))
	}

	module := ""
	if uc.modules != nil {
		if module, err = uc.modules.ModulePath(req.RootPath); err != nil {
			uc.logger.WarnContext(ctx, "module path unavailable", "error", err)
		}
	}

	report := BuildProjectReport(ReportInput{
		RootPath:    req.RootPath,
		Module:      module,
		GeneratedAt: uc.now().UTC(),
		Incomplete:  incomplete,
		Units:       units,
		Settings:    req.Settings,
	})

	if incomplete {
		uc.logger.WarnContext(ctx, "analysis incomplete",
			"skipped", report.Summary.SkippedFiles, "cause", context.Cause(runCtx))
	}

	// An interrupted run still persists what it measured.
	if !req.NoSave {
		if err := uc.storage.Save(context.WithoutCancel(ctx), req.RootPath, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}
	if uc.sink != nil {
		if err := uc.sink.Export(report); err != nil {
			return nil, fmt.Errorf("export metrics: %w", err)
		}
	}

	uc.logger.InfoContext(ctx, "analysis finished",
		"files", report.Summary.FileCount,
		"failed", report.Summary.FailedFiles,
		"functions", report.Summary.FunctionCount,
		"duration", uc.now().Sub(started))
	return report, nil
}

// measureAll runs the per-file pipeline on at most uc.workers files at a
// time. Each worker writes only its own slot, so units keeps the scanner's
// order whatever the completion order. Once ctx is done no further file is
// started; those slots become skipped units.
func (uc *AnalyzeProjectUseCase) measureAll(ctx context.Context, files []string, settings model.Settings) ([]model.SourceUnit, bool) {
	risk := metrics.RiskThresholds{Moderate: settings.RiskModerate, High: settings.RiskHigh}
	units := make([]model.SourceUnit, len(files))
	dispatched := 0

	var g errgroup.Group
	g.SetLimit(uc.workers)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		dispatched++
		g.Go(func() error {
			units[i] = uc.measureFile(ctx, path, risk)
			return nil
		})
	}
	_ = g.Wait()

	for i := dispatched; i < len(files); i++ {
		units[i] = SkippedUnit(files[i])
	}
	return units, dispatched < len(files)
}

func (uc *AnalyzeProjectUseCase) measureFile(ctx context.Context, path string, risk metrics.RiskThresholds) model.SourceUnit {
	ctx, span := uc.tracer.Start(ctx, "file", trace.WithAttributes(attribute.String("techdebt.path", path)))
	defer span.End()

	var unit model.SourceUnit
	src, err := uc.reader.ReadFile(path)
	if err != nil {
		unit = FailedUnit(path, errs.IO(path, err))
	} else {
		unit = MeasureFile(path, src, uc.selectParser(path), risk)
	}

	span.SetAttributes(
		attribute.String("techdebt.status", string(unit.Status)),
		attribute.Int("techdebt.functions", len(unit.Functions)),
	)

	switch unit.Status {
	case model.StatusFailed:
		span.SetStatus(codes.Error, unit.Errors[0].Message)
		uc.logger.WarnContext(ctx, "file failed", "path", path, "kind", unit.Errors[0].Kind, "error", unit.Errors[0].Message)
	case model.StatusDegraded:
		uc.logger.WarnContext(ctx, "file degraded", "path", path, "problems", len(unit.Errors))
	default:
		uc.logger.DebugContext(ctx, "file analyzed", "path", path, "functions", len(unit.Functions))
	}
	return unit
}

func (uc *AnalyzeProjectUseCase) selectParser(path string) ports.CodeParser {
	for _, p := range uc.parsers {
		if p.SupportsFile(path) {
			return p
		}
	}
	return nil
}

// allFailed reports whether no dispatched file produced metrics.
func allFailed(units []model.SourceUnit) bool {
	attempted := 0
	for i := range units {
		switch units[i].Status {
		case model.StatusSkipped:
			continue
		case model.StatusFailed:
			attempted++
		default:
			return false
		}
	}
	return attempted > 0
}

