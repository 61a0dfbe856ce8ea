// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Package render turns user-authored markdown into sanitized HTML.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	converter = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

// Markdown converts src to HTML and strips anything unsafe for embedding in
// a page (scripts, event handlers, javascript: URLs).
func Markdown(src string) (string, error) {
	if src == "" {
		return "", nil
	}

	var buffer bytes.Buffer
	if err := converter.Convert([]byte(src), &buffer); err != nil {
		return "", fmt.Errorf("render_markdown_failed: %w", err)
	}

	return sanitizer.Sanitize(buffer.String()), nil
}
