// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

const (
	reportDir  = ".techdebt"
	reportFile = "report.json"
)

// FileStorage keeps the last report under <root>/.techdebt/report.json.
// When root is a file, its directory is used.
type FileStorage struct{}

func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

var _ ports.ReportStorage = (*FileStorage)(nil)

// ReportPath returns where the report of root is stored.
func ReportPath(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	return filepath.Join(root, reportDir, reportFile)
}

func (s *FileStorage) Save(ctx context.Context, root string, report *model.ProjectReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := ReportPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode report: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}
	return nil
}

func (s *FileStorage) Load(ctx context.Context, root string) (*model.ProjectReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(ReportPath(root))
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	var report model.ProjectReport
	dec := json.NewDecoder(f)
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
