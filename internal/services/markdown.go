package services

import (
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
)

// Control guidance is authored in a small markdown subset; this converter
// covers exactly what the guidance texts use. Input is HTML-escaped before
// any markup is applied, so guidance can never inject script into a page.
var (
	mdBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalic = regexp.MustCompile(`\*([^*]+)\*`)
	mdCode   = regexp.MustCompile("`([^`]+)`")
	mdLink   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// RenderMarkdown converts a guidance markdown string into HTML. Supported:
// #/##/### headings, unordered lists (- or *), **bold**, *italics*,
// `inline code`, [links](url) and blank-line separated paragraphs.
func RenderMarkdown(src string) template.HTML {
	var out strings.Builder
	inList := false
	inParagraph := false

	closeParagraph := func() {
		if inParagraph {
			out.WriteString("</p>\n")
			inParagraph = false
		}
	}
	closeList := func() {
		if inList {
			out.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeParagraph()
			closeList()

		case strings.HasPrefix(trimmed, "### "):
			closeParagraph()
			closeList()
			out.WriteString("<h4>" + renderInline(strings.TrimPrefix(trimmed, "### ")) + "</h4>\n")

		case strings.HasPrefix(trimmed, "## "):
			closeParagraph()
			closeList()
			out.WriteString("<h3>" + renderInline(strings.TrimPrefix(trimmed, "## ")) + "</h3>\n")

		case strings.HasPrefix(trimmed, "# "):
			closeParagraph()
			closeList()
			out.WriteString("<h2>" + renderInline(strings.TrimPrefix(trimmed, "# ")) + "</h2>\n")

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			closeParagraph()
			if !inList {
				out.WriteString("<ul>\n")
				inList = true
			}
			out.WriteString("<li>" + renderInline(trimmed[2:]) + "</li>\n")

		default:
			closeList()
			if inParagraph {
				out.WriteString(" ")
			} else {
				out.WriteString("<p>")
				inParagraph = true
			}
			out.WriteString(renderInline(trimmed))
		}
	}
	closeParagraph()
	closeList()

	return template.HTML(out.String())
}

// renderInline escapes a text span and then applies inline markup.
func renderInline(s string) string {
	s = html.EscapeString(s)
	s = mdCode.ReplaceAllString(s, "<code>$1</code>")
	s = mdBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = mdItalic.ReplaceAllString(s, "<em>$1</em>")
	s = mdLink.ReplaceAllStringFunc(s, func(m string) string {
		parts := mdLink.FindStringSubmatch(m)
		href := parts[2]
		if strings.HasPrefix(href, "javascript:") {
			return parts[1]
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, href, parts[1])
	})
	return s
}
