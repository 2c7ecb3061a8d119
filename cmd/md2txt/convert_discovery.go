package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2txt "github.com/alnah/go-md2txt"
	"github.com/alnah/go-md2txt/internal/fileutil"
	"github.com/alnah/go-md2txt/internal/source"
)

// stdoutPath selects standard output as the destination of a single file.
const stdoutPath = "-"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md, .markdown, .html or .htm extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrStdoutBatch        = errors.New("standard output accepts a single input file")
	ErrDuplicateOutput    = errors.New("several inputs map to the same output")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // stdoutPath writes to standard output
}

// discoverFiles finds all files to convert under inputPath.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, output, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if output == stdoutPath {
		return nil, fmt.Errorf("%w: %s is a directory", ErrStdoutBatch, inputPath)
	}

	var files []FileToConvert
	seen := make(map[string]string)
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !source.IsSupported(path) {
			return nil
		}
		outPath := resolveOutputPath(path, output, inputPath)
		if prev, ok := seen[outPath]; ok {
			return fmt.Errorf("%w: %s and %s -> %s", ErrDuplicateOutput, prev, path, outPath)
		}
		seen[outPath] = path
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the text output path for an input file.
// A directory input is mirrored under output, keeping relative directories.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	base := filepath.Base(fileutil.TextPath(inputPath))

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir == "" && (output == stdoutPath || isTextFile(output)) {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(output, relDir, base)
		}
	}

	return filepath.Join(output, base)
}

// isTextFile reports whether path names a .txt file rather than a directory.
func isTextFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), fileutil.TextExtension)
}

// validateInputExtension checks that the file has a supported extension.
func validateInputExtension(path string) error {
	if !source.IsSupported(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2txt.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2txt.MaxPoolSize)
	}
	return nil
}
