package renderer

import (
	"html"
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once
var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

//nolint:gochecknoglobals // Compiled once
var anchorPattern = regexp.MustCompile(`(?s)<a\s[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)

// FormatMessage turns **x** into <strong>x</strong>. Everything else is
// passed through untouched.
func FormatMessage(message string) (formatted string) {
	formatted = boldPattern.ReplaceAllString(message, "<strong>$1</strong>")
	return formatted
}

// UserMessage returns the body for a visitor's own turn.
func UserMessage(message string) (body string) {
	body = "<p>" + FormatMessage(message) + "</p>"
	return body
}

// StripHTML reduces a rendered body to plain text for terminals and
// Markdown exports. Block-level closing tags become line breaks and links
// become "label: href" so contact channels stay usable.
func StripHTML(markup string) (plain string) {
	plain = anchorPattern.ReplaceAllString(markup, "$2: $1\n")

	for _, tag := range []string{"</p>", "</li>", "</div>", "</h4>", "</ul>"} {
		plain = strings.ReplaceAll(plain, tag, tag+"\n")
	}
	plain = strings.ReplaceAll(plain, "<li>", "<li>- ")
	plain = strings.ReplaceAll(plain, "</span><span", "</span> <span")

	// Remove HTML tags
	inTag := false
	result := strings.Builder{}
	for _, char := range plain {
		if char == '<' {
			inTag = true
			continue
		}
		if char == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(char)
		}
	}

	// Collapse blank lines
	lines := strings.Split(result.String(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, html.UnescapeString(line))
		}
	}

	plain = strings.Join(kept, "\n")
	return plain
}
