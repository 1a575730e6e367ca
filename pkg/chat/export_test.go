package chat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/portfolio-chat/pkg/topic"
)

func TestWriteTranscript(t *testing.T) {
	c := newTestController()

	_, err := c.ChipClicked(context.Background(), topic.Experience)
	if err != nil {
		t.Fatalf("ChipClicked failed: %v", err)
	}

	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		contains []string
		excludes string
	}{
		{
			name:     "markdown",
			file:     filepath.Join(tmpDir, "nested", "chat.md"),
			contains: []string{"**You:** Show me your work experience", "**Bot (experience):**", "Alpha"},
			excludes: "<div",
		},
		{
			name:     "html",
			file:     filepath.Join(tmpDir, "chat.html"),
			contains: []string{"<!DOCTYPE html>", "user-message", "bot-message", "experience-item"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteTranscript(c.Transcript(), tt.file)
			if err != nil {
				t.Fatalf("Failed to write transcript: %v", err)
			}

			data, err := os.ReadFile(tt.file)
			if err != nil {
				t.Fatalf("Failed to read transcript: %v", err)
			}

			content := string(data)
			for _, want := range tt.contains {
				if !strings.Contains(content, want) {
					t.Errorf("Expected transcript to contain %q", want)
				}
			}

			if tt.excludes != "" && strings.Contains(content, tt.excludes) {
				t.Errorf("Expected transcript not to contain %q", tt.excludes)
			}
		})
	}
}
