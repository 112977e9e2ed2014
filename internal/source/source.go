// Package source loads a starting paragraph from disk.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Load returns the text at location, a file path or an http(s) URL. Remote
// documents are downloaded through an on-disk cache first. PDFs are reduced
// to plain text with runs of whitespace collapsed; anything else is read
// verbatim.
func Load(ctx context.Context, location string) (string, error) {
	if isRemote(location) {
		cache, err := newRemoteCache(nil)
		if err != nil {
			return "", fmt.Errorf("failed to prepare download cache: %w", err)
		}
		path, err := cache.Fetch(ctx, location)
		if err != nil {
			return "", err
		}
		return loadFile(path)
	}
	return loadFile(location)
}

func loadFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read paragraph file: %w", err)
	}
	return string(data), nil
}

func loadPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if file != nil {
		defer file.Close()
	}
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	text := extraneousWhitespace.ReplaceAllString(builder.String(), " ")
	return strings.TrimSpace(text), nil
}
