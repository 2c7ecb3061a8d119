package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Backslash escapes of Markdown punctuation
	escapePattern = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!|~<>])")
)

// NewLineEndingStep converts \r\n and \r to \n.
func NewLineEndingStep() Step {
	return newStep("Line endings", func(doc string, _ *Recorder) string {
		return normalizeLineEndings(doc)
	})
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// NewEscapeStep resolves backslash escapes ("\*" -> "*"). It runs after
// every markup step so escaped characters are never mistaken for syntax.
func NewEscapeStep() Step {
	return newStep("Escaped characters", unescape)
}

// unescape is a single left-to-right pass: "\\\\*" becomes "\\*", not "*".
func unescape(doc string, rec *Recorder) string {
	if !strings.ContainsRune(doc, '\\') {
		return doc
	}
	return escapePattern.ReplaceAllStringFunc(doc, func(m string) string {
		rec.Record(CategoryEscapedCharacters, m)
		return m[1:]
	})
}

// NewWhitespaceStep trims every line, limits blank runs to one empty line
// and trims the whole document.
func NewWhitespaceStep() Step {
	return newStep("Whitespace", func(doc string, _ *Recorder) string {
		return cleanWhitespace(doc)
	})
}

func cleanWhitespace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(compressBlankLines(strings.Join(lines, "\n")))
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
