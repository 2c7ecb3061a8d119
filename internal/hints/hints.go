// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"bytes"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2txt/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2txt) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2txt") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownStep lists the step names accepted by --disable.
func ForUnknownStep(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("steps: " + strings.Join(available, ", "))
}

// ForDecode suggests how to re-encode an input that is not UTF-8.
// sample is the beginning of the rejected file.
func ForDecode(sample []byte) string {
	if len(sample) > 512 {
		sample = sample[:512]
	}

	var hints []string
	// Interleaved NULs are the signature of UTF-16 text.
	if n := bytes.Count(sample, []byte{0}); n > 0 && n*4 >= len(sample) {
		hints = append(hints, "file looks like UTF-16 without a byte order mark; save it with a BOM")
	}
	hints = append(hints, "convert it to UTF-8, e.g. iconv -f latin1 -t utf-8")

	return formatHints(hints)
}

// ForUnclosedBlock explains how to silence an unclosed block warning.
func ForUnclosedBlock() string {
	return format("close the block with a matching ``` or ~~~ line, or --> for comments")
}

// ForResidual points at the flags that explain leftover syntax.
func ForResidual() string {
	return format("rerun with --debug to see which steps changed the text, or check --disable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
