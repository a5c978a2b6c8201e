// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

type GenerateReportRequest struct {
	RootPath string
	Format   string
}

// GenerateReportUseCase renders the last stored report of a root.
type GenerateReportUseCase struct {
	storage  ports.ReportStorage
	registry ports.RendererRegistry
}

func NewGenerateReportUseCase(storage ports.ReportStorage, registry ports.RendererRegistry) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		storage:  storage,
		registry: registry,
	}
}

func (uc *GenerateReportUseCase) Execute(ctx context.Context, req GenerateReportRequest) (string, *model.ProjectReport, error) {
	renderer, err := Renderer(uc.registry, req.Format)
	if err != nil {
		return "", nil, err
	}

	report, err := uc.storage.Load(ctx, req.RootPath)
	if err != nil {
		return "", nil, err
	}

	out, err := renderer.Render(report)
	if err != nil {
		return "", nil, fmt.Errorf("render %s: %w", renderer.Format(), err)
	}
	return out, report, nil
}

// Renderer looks a format up in registry; an empty format means text.
func Renderer(registry ports.RendererRegistry, format string) (ports.OutputRenderer, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = "text"
	}

	renderer, ok := registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return renderer, nil
}
