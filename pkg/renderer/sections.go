package renderer

import (
	"fmt"
	"html"
	"strings"
)

// renderOrFallback writes the section when present, otherwise a single
// fallback paragraph.
func renderOrFallback(b *strings.Builder, present bool, fallback string, render func()) {
	if !present {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(fallback))
		return
	}
	render()
}

// bulletList writes items as a list, or one fallback bullet when empty.
func bulletList(b *strings.Builder, items []string, fallback string) {
	b.WriteString("<ul class=\"achievement-list\">\n")
	if len(items) == 0 {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(fallback))
	}
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item))
	}
	b.WriteString("</ul>\n")
}

func tagList(b *strings.Builder, tags []string) {
	b.WriteString("<div class=\"skill-tags\">")
	for _, tag := range tags {
		fmt.Fprintf(b, "<span class=\"skill-tag\">%s</span>", html.EscapeString(tag))
	}
	b.WriteString("</div>\n")
}

func heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "<p><strong>%s</strong></p>\n", title)
}

// text escapes value, or returns fallback when value is blank.
func text(value, fallback string) (escaped string) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	escaped = html.EscapeString(value)
	return escaped
}

func status(value string) (markup string) {
	markup = fmt.Sprintf("<strong class=\"status status--success\">%s</strong>", text(value, FallbackStatus))
	return markup
}
