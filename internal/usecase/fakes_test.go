// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

// memFS serves files from memory. A path mapped to a nil slice fails to
// read.
type memFS struct {
	files  map[string][]byte
	onRead func(path string)
}

func (m *memFS) Scan(_ context.Context, _ string, _ []string) ([]string, error) {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	if m.onRead != nil {
		m.onRead(path)
	}
	src, ok := m.files[path]
	if !ok || src == nil {
		return nil, fmt.Errorf("open %s: permission denied", path)
	}
	return src, nil
}

type memStorage struct {
	mu    sync.Mutex
	saved map[string]*model.ProjectReport
}

func newMemStorage() *memStorage {
	return &memStorage{saved: make(map[string]*model.ProjectReport)}
}

func (s *memStorage) Save(_ context.Context, root string, report *model.ProjectReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[root] = report
	return nil
}

func (s *memStorage) Load(_ context.Context, root string) (*model.ProjectReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.saved[root]
	if !ok {
		return nil, errors.New("no report")
	}
	return r, nil
}

type recordingSink struct {
	exported []*model.ProjectReport
}

func (s *recordingSink) Export(report *model.ProjectReport) error {
	s.exported = append(s.exported, report)
	return nil
}

type staticModules string

func (m staticModules) ModulePath(string) (string, error) {
	return string(m), nil
}

type stubRenderer struct{ format string }

func (r stubRenderer) Format() string { return r.format }

func (r stubRenderer) Render(report *model.ProjectReport) (string, error) {
	return fmt.Sprintf("%s:%d", r.format, report.Summary.FunctionCount), nil
}

type stubRegistry map[string]ports.OutputRenderer

func (r stubRegistry) Get(format string) (ports.OutputRenderer, bool) {
	out, ok := r[format]
	return out, ok
}

func (r stubRegistry) List() []ports.OutputRenderer {
	out := make([]ports.OutputRenderer, 0, len(r))
	for _, v := range r {
		out = append(out, v)
	}
	return out
}

var (
	_ ports.SourceFileScanner = (*memFS)(nil)
	_ ports.FileReader        = (*memFS)(nil)
	_ ports.ReportStorage     = (*memStorage)(nil)
	_ ports.MetricsSink       = (*recordingSink)(nil)
	_ ports.ModuleResolver    = staticModules("")
	_ ports.RendererRegistry  = stubRegistry{}
)
