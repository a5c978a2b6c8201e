// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

type ListMetricsUseCase struct{}

func NewListMetricsUseCase() *ListMetricsUseCase {
	return &ListMetricsUseCase{}
}

// Execute returns the metric catalogue grouped as it appears in reports.
func (uc *ListMetricsUseCase) Execute(_ context.Context) []model.MetricSummary {
	return model.AllMetricSummaries()
}
