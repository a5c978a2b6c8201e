// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

// GoModResolver reads the module path from the nearest go.mod at or above
// the analyzed root.
type GoModResolver struct{}

func NewGoModResolver() *GoModResolver {
	return &GoModResolver{}
}

var _ ports.ModuleResolver = (*GoModResolver)(nil)

// ModulePath returns "" without error when no go.mod is found.
func (r *GoModResolver) ModulePath(root string) (string, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		switch {
		case err == nil:
			return modfile.ModulePath(data), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
