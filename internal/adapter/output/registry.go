// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"

	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

type RendererRegistry struct {
	byFormat map[string]ports.OutputRenderer
}

func NewRendererRegistry(renderers ...ports.OutputRenderer) *RendererRegistry {
	m := make(map[string]ports.OutputRenderer, len(renderers))
	for _, r := range renderers {
		if r == nil {
			continue
		}
		m[strings.ToLower(r.Format())] = r
	}
	return &RendererRegistry{byFormat: m}
}

// NewDefaultRegistry registers every built-in format.
func NewDefaultRegistry(text TextOptions) *RendererRegistry {
	return NewRendererRegistry(
		NewTextRenderer(text),
		NewJSONRenderer(),
		NewYAMLRenderer(),
		NewSarifRenderer(),
		NewHTMLRenderer(),
	)
}

var _ ports.RendererRegistry = (*RendererRegistry)(nil)

func (r *RendererRegistry) Get(format string) (ports.OutputRenderer, bool) {
	if r == nil {
		return nil, false
	}
	out, ok := r.byFormat[strings.ToLower(format)]
	return out, ok
}

// List returns the renderers ordered by format name.
func (r *RendererRegistry) List() []ports.OutputRenderer {
	out := make([]ports.OutputRenderer, 0, len(r.byFormat))
	for _, name := range r.Formats() {
		out = append(out, r.byFormat[name])
	}
	return out
}

func (r *RendererRegistry) Formats() []string {
	names := make([]string, 0, len(r.byFormat))
	for name := range r.byFormat {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
