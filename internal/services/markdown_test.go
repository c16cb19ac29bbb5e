package services

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "heading levels",
			input:    "# Scope\n## Purpose\n### Detail",
			expected: "<h2>Scope</h2>\n<h3>Purpose</h3>\n<h4>Detail</h4>\n",
		},
		{
			name:     "paragraph with inline markup",
			input:    "Apply **mandatory** controls to *all* `api` traffic.",
			expected: "<p>Apply <strong>mandatory</strong> controls to <em>all</em> <code>api</code> traffic.</p>\n",
		},
		{
			name:     "unordered list",
			input:    "- first\n- second",
			expected: "<ul>\n<li>first</li>\n<li>second</li>\n</ul>\n",
		},
		{
			name:     "link",
			input:    "See [the standard](https://example.com/iso).",
			expected: `<p>See <a href="https://example.com/iso">the standard</a>.</p>` + "\n",
		},
		{
			name:     "multi-line paragraph joined",
			input:    "one\ntwo",
			expected: "<p>one two</p>\n",
		},
		{
			name:     "blank line splits paragraphs",
			input:    "one\n\ntwo",
			expected: "<p>one</p>\n<p>two</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(RenderMarkdown(tt.input))
			if got != tt.expected {
				t.Errorf("RenderMarkdown(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRenderMarkdownEscapesHTML(t *testing.T) {
	got := string(RenderMarkdown(`<script>alert("x")</script>`))
	if strings.Contains(got, "<script>") {
		t.Errorf("raw script tag leaked into output: %q", got)
	}

	got = string(RenderMarkdown("[click](javascript:alert(1))"))
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript href leaked into output: %q", got)
	}
}
