// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package ports

import (
	"context"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

// SourceFileScanner expands an input path (file or directory) into the
// candidate source files, sorted by path.
type SourceFileScanner interface {
	Scan(ctx context.Context, root string, includeExt []string) ([]string, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// CodeParser turns one file into its structural tree. It returns a parse
// error when nothing of the file can be used.
type CodeParser interface {
	Name() string
	SupportsFile(path string) bool
	Parse(path string, src []byte) (*model.SyntaxTree, error)
}

type ReportStorage interface {
	Save(ctx context.Context, root string, report *model.ProjectReport) error
	Load(ctx context.Context, root string) (*model.ProjectReport, error)
}

type OutputRenderer interface {
	Format() string
	Render(report *model.ProjectReport) (string, error)
}

type RendererRegistry interface {
	Get(format string) (OutputRenderer, bool)
	List() []OutputRenderer
}

// MetricsSink receives the finished report for export to dashboards.
type MetricsSink interface {
	Export(report *model.ProjectReport) error
}

// ModuleResolver finds the module path governing a source root.
type ModuleResolver interface {
	ModulePath(root string) (string, error)
}
