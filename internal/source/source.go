// Package source turns raw input bytes into the Markdown text the
// conversion pipeline consumes.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for input decoding.
var (
	ErrDecode = errors.New("input is not valid UTF-8 text")
	ErrHTML   = errors.New("HTML to Markdown conversion failed")
)

// Format identifies how an input must be read.
type Format int

const (
	FormatMarkdown Format = iota
	FormatHTML
)

func (f Format) String() string {
	if f == FormatHTML {
		return "html"
	}
	return "markdown"
}

// markdownExts and htmlExts are the file extensions accepted as input.
var (
	markdownExts = []string{".md", ".markdown"}
	htmlExts     = []string{".html", ".htm"}
)

// IsSupported reports whether path has an accepted input extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range append(markdownExts, htmlExts...) {
		if ext == e {
			return true
		}
	}
	return false
}

// DetectFormat chooses a format from the file extension, falling back to
// content sniffing when the extension says nothing (stdin, .txt).
func DetectFormat(path string, data []byte) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range htmlExts {
		if ext == e {
			return FormatHTML
		}
	}
	for _, e := range markdownExts {
		if ext == e {
			return FormatMarkdown
		}
	}
	if looksLikeHTMLDocument(data) {
		return FormatHTML
	}
	return FormatMarkdown
}

// looksLikeHTMLDocument detects a full document: starts with <!DOCTYPE or <html.
// Fragments are not sniffed since Markdown may legally start with a tag.
func looksLikeHTMLDocument(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	trimmed := bytes.ToLower(bytes.TrimSpace(head))
	return bytes.HasPrefix(trimmed, []byte("<!doctype html")) || bytes.HasPrefix(trimmed, []byte("<html"))
}

// Decode converts raw bytes to a string. A UTF-8 or UTF-16 byte order mark
// selects the encoding and is dropped; without one the bytes must already
// be valid UTF-8.
func Decode(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: invalid byte sequence at offset %d", ErrDecode, invalidOffset(decoded))
	}
	return string(decoded), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// Loader decodes inputs and converts HTML ones to Markdown.
type Loader struct {
	html *HTMLConverter
}

// NewLoader creates a Loader with the default HTML converter.
func NewLoader() *Loader {
	return &Loader{html: NewHTMLConverter()}
}

// Load decodes data and returns Markdown text ready for the pipeline.
func (l *Loader) Load(ctx context.Context, data []byte, format Format) (string, error) {
	text, err := Decode(data)
	if err != nil {
		return "", err
	}
	if format != FormatHTML {
		return text, nil
	}
	return l.html.ToMarkdown(ctx, text)
}
