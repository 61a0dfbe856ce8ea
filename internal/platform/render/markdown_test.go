// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/internal/platform/render"
)

func TestMarkdown(t *testing.T) {
	html, err := render.Markdown("**Adopt** Go for [services](https://go.dev)")
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>Adopt</strong>")
	assert.Contains(t, html, `href="https://go.dev"`)
}

func TestMarkdown_StripsScripts(t *testing.T) {
	html, err := render.Markdown("hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "javascript:")
}

func TestMarkdown_Empty(t *testing.T) {
	html, err := render.Markdown("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
