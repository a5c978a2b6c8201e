// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

func TestStorageRoundTrip(t *testing.T) {
	root := t.TempDir()
	report := &model.ProjectReport{
		RootPath:    root,
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Summary:     model.ProjectSummary{TotalLOC: 42, FunctionCount: 3, Risk: model.RiskLow},
		TopOffenders: []model.Offender{
			{Rank: 1, File: "a.go", Function: "f", Complexity: 7},
		},
	}

	s := NewFileStorage()
	require.NoError(t, s.Save(context.Background(), root, report))

	assert.FileExists(t, filepath.Join(root, ".techdebt", "report.json"))

	loaded, err := s.Load(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, report.Summary, loaded.Summary)
	assert.Equal(t, report.TopOffenders, loaded.TopOffenders)
	assert.True(t, report.GeneratedAt.Equal(loaded.GeneratedAt))
}

func TestStorageFileRootUsesDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	assert.Equal(t, filepath.Join(root, ".techdebt", "report.json"), ReportPath(file))
}

func TestStorageLoadMissing(t *testing.T) {
	_, err := NewFileStorage().Load(context.Background(), t.TempDir())

	assert.ErrorIs(t, err, os.ErrNotExist)
}
