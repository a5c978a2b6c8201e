// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/src-d/enry/v2"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

// FSScanner expands a file or directory into candidate source files and
// reads them back.
type FSScanner struct {
	excludes []glob.Glob
	logger   *slog.Logger
}

// NewFSScanner compiles the exclude patterns. Patterns are matched with '/'
// as separator against paths relative to the scanned root, so "*" stays
// within one directory and "**" crosses them.
func NewFSScanner(excludes ...string) (*FSScanner, error) {
	s := &FSScanner{logger: slog.Default()}
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		s.excludes = append(s.excludes, g)
	}
	return s, nil
}

// WithLogger sets where unreadable subdirectories are reported.
func (s *FSScanner) WithLogger(logger *slog.Logger) *FSScanner {
	if logger != nil {
		s.logger = logger
	}
	return s
}

var _ ports.SourceFileScanner = (*FSScanner)(nil)
var _ ports.FileReader = (*FSScanner)(nil)

// Scan returns the matching files sorted by path. A root that does not
// exist yields errs.ErrInputNotFound. A subdirectory that cannot be listed
// is logged and left out.
func (s *FSScanner) Scan(ctx context.Context, root string, includeExt []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrInputNotFound, root)
		}
		return nil, errs.IO(root, err)
	}

	allowed := make(map[string]struct{}, len(includeExt))
	for _, e := range includeExt {
		allowed[strings.ToLower(e)] = struct{}{}
	}

	if !info.IsDir() {
		if !extAllowed(allowed, root) {
			return nil, nil
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return s.walkError(ctx, root, path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.skipDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !extAllowed(allowed, path) {
			return nil
		}
		if enry.IsVendor(rel) || s.excluded(rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// walkError decides how a failed directory listing affects the scan: the
// root is fatal, anything below it is skipped.
func (s *FSScanner) walkError(ctx context.Context, root, path string, err error) error {
	if path == root {
		return errs.IO(root, err)
	}
	s.logger.WarnContext(ctx, "skipping unreadable directory", "path", path, "error", err)
	return filepath.SkipDir
}

func (s *FSScanner) skipDir(name, rel string) bool {
	switch name {
	case ".git", ".techdebt":
		return true
	}
	return enry.IsVendor(rel+"/") || s.excluded(rel) || s.excluded(rel+"/")
}

func (s *FSScanner) excluded(rel string) bool {
	for _, g := range s.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func extAllowed(allowed map[string]struct{}, path string) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (s *FSScanner) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
