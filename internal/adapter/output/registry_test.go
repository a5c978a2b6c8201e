// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelvolkmer/techdebt/internal/adapter/output"
	"github.com/rafaelvolkmer/techdebt/internal/config"
)

func TestDefaultRegistryCoversConfiguredFormats(t *testing.T) {
	reg := output.NewDefaultRegistry(output.TextOptions{NoColor: true})

	assert.Equal(t, []string{"html", "json", "sarif", "text", "yaml"}, reg.Formats())
	assert.ElementsMatch(t, config.Formats, reg.Formats())

	for _, r := range reg.List() {
		got, ok := reg.Get(r.Format())
		require.True(t, ok)
		assert.Same(t, r, got)
	}
}

func TestRegistryLookupIgnoresCase(t *testing.T) {
	reg := output.NewRendererRegistry(output.NewJSONRenderer(), nil)

	r, ok := reg.Get("JSON")
	require.True(t, ok)
	assert.Equal(t, "json", r.Format())

	_, ok = reg.Get("xml")
	assert.False(t, ok)

	var nilReg *output.RendererRegistry
	_, ok = nilReg.Get("json")
	assert.False(t, ok)
}
