package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a portfolio document.
type Format string

const (
	// FormatJSON is the default document encoding.
	FormatJSON Format = "json"
	// FormatYAML is accepted for hand-maintained documents.
	FormatYAML Format = "yaml"
)

// maxDocumentBytes caps how much of a remote document is read.
const maxDocumentBytes = 4 << 20

// Load reads a portfolio document from a file path or http(s) URL.
func Load(source string) (record Record, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	record, err = LoadWithContext(ctx, source)
	return record, err
}

// LoadWithContext reads a portfolio document with context.
func LoadWithContext(ctx context.Context, source string) (record Record, err error) {
	var data []byte
	var format Format

	// Check if source is a URL
	parsedURL, urlErr := url.Parse(source)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, format, err = fetchFromURL(ctx, source)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch portfolio from URL: %s", source)
			return record, err
		}
	} else {
		data, err = fetchFromFile(source)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch portfolio from file: %s", source)
			return record, err
		}
		format = formatFromPath(source)
	}

	record, err = Decode(data, format)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse portfolio: %s", source)
		return record, err
	}

	return record, err
}

// Decode parses a document in the given format.
func Decode(data []byte, format Format) (record Record, err error) {
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &record)
		if err != nil {
			err = errors.Wrap(err, "invalid YAML document")
			return record, err
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		err = decoder.Decode(&record)
		if err != nil {
			err = errors.Wrap(err, "invalid JSON document")
			return record, err
		}
	}

	return record, err
}

// fetchFromFile reads a document from disk.
func fetchFromFile(filePath string) (data []byte, err error) {
	data, err = os.ReadFile(filePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", filePath)
		return data, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		err = errors.New("file is empty")
		return data, err
	}

	return data, err
}

// fetchFromURL retrieves a document over HTTP.
func fetchFromURL(ctx context.Context, urlStr string) (data []byte, format Format, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, format, err
	}

	req.Header.Set("User-Agent", "portfolio-chat/1.0")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, format, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, format, err
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, format, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		err = errors.New("fetched document is empty")
		return data, format, err
	}

	format = formatFromContentType(resp.Header.Get("Content-Type"))
	if format == "" {
		format = formatFromPath(req.URL.Path)
	}

	return data, format, err
}

func formatFromPath(p string) (format Format) {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		format = FormatJSON
	}
	return format
}

func formatFromContentType(contentType string) (format Format) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		format = FormatYAML
	case strings.Contains(ct, "json"):
		format = FormatJSON
	}
	return format
}
