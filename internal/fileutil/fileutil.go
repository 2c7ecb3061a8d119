// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrSuffixEmpty         = errors.New("suffix cannot be empty")
	ErrSuffixPathTraversal = errors.New("suffix contains path separator or null byte")
)

// DefaultRemovedSuffix is appended to the output stem for the removed-content log.
const DefaultRemovedSuffix = "_removed"

// TextExtension is the extension of converted files.
const TextExtension = ".txt"

// ValidateSuffix checks that a file name suffix cannot escape its directory.
func ValidateSuffix(suffix string) error {
	if suffix == "" {
		return ErrSuffixEmpty
	}
	if strings.ContainsAny(suffix, "/\\\x00") {
		return ErrSuffixPathTraversal
	}
	return nil
}

// TextPath returns path with its extension replaced by .txt.
func TextPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + TextExtension
}

// RemovedLogPath returns the removed-content log path for an output file:
// "out/notes.txt" -> "out/notes_removed.txt".
func RemovedLogPath(outputPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultRemovedSuffix
	}
	ext := filepath.Ext(outputPath)
	if ext == "" {
		ext = TextExtension
	}
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + suffix + ext
}

// WriteFile writes data to path, creating parent directories as needed.
// The file is written to a temporary sibling and renamed into place, so a
// failed write never leaves a truncated output behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".md2txt-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "work" -> false (config name)
//   - "./work.yaml" -> true (relative path)
//   - "/etc/md2txt.yaml" -> true (absolute)
//   - "C:\cfg\md2txt.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
