package chat

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/portfolio-chat/pkg/renderer"
	"github.com/pkg/errors"
)

// WriteTranscript saves turns to outputPath. A .md or .txt extension produces
// plain Markdown; anything else produces a standalone HTML page.
func WriteTranscript(turns []Turn, outputPath string) (err error) {
	var content string
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".md", ".markdown", ".txt":
		content = transcriptMarkdown(turns)
	default:
		content = transcriptHTML(turns)
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write transcript: %s", outputPath)
		return err
	}

	return err
}

func transcriptMarkdown(turns []Turn) (md string) {
	var b strings.Builder
	b.WriteString("# Conversation\n")

	for _, turn := range turns {
		switch turn.Author {
		case AuthorUser:
			fmt.Fprintf(&b, "\n**You:** %s\n", turn.Text)
		default:
			fmt.Fprintf(&b, "\n**Bot (%s):**\n\n%s\n", turn.Topic, renderer.StripHTML(turn.Body))
		}
	}

	md = b.String()
	return md
}

func transcriptHTML(turns []Turn) (page string) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Conversation</title></head>\n<body>\n")
	b.WriteString("<div class=\"messages\">\n")

	for _, turn := range turns {
		class, avatar := "bot-message", "🤖"
		if turn.Author == AuthorUser {
			class, avatar = "user-message", "🙋"
		}
		fmt.Fprintf(&b, "<div class=\"message %s\" data-seq=\"%d\" data-at=\"%s\">\n", class, turn.Seq, html.EscapeString(turn.At.Format("2006-01-02T15:04:05Z07:00")))
		fmt.Fprintf(&b, "<div class=\"message-avatar\">%s</div>\n", avatar)
		fmt.Fprintf(&b, "<div class=\"message-bubble\"><div class=\"message-content\">\n%s\n</div></div>\n", turn.Body)
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>\n</body>\n</html>\n")
	page = b.String()
	return page
}
