// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoModResolverFindsParentModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/demo\n\ngo 1.22\n"), 0o644))
	writeTree(t, root, "pkg/sub/a.go")

	mod, err := NewGoModResolver().ModulePath(filepath.Join(root, "pkg", "sub"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo", mod)

	mod, err = NewGoModResolver().ModulePath(filepath.Join(root, "pkg", "sub", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo", mod)
}
