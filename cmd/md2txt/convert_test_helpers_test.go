package main

// Notes:
// - This file contains test helpers shared across CLI tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	md2txt "github.com/alnah/go-md2txt"
	"github.com/alnah/go-md2txt/internal/config"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter is a test double for CLIConverter.
type mockConverter struct {
	mu          sync.Mutex
	calls       []md2txt.Input
	convertFunc func(ctx context.Context, input md2txt.Input) (*md2txt.ConvertResult, error)
}

func (m *mockConverter) Convert(ctx context.Context, input md2txt.Input) (*md2txt.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.convertFunc != nil {
		return m.convertFunc(ctx, input)
	}
	return &md2txt.ConvertResult{Text: "converted", Format: "markdown"}, nil
}

func (m *mockConverter) getCalls() []md2txt.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]md2txt.Input{}, m.calls...)
}

// ---------------------------------------------------------------------------
// Environment and filesystem helpers
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Config: config.DefaultConfig(),
	}, &stdout, &stderr
}

// writeTestFile creates path under dir with content, creating directories.
func writeTestFile(t *testing.T, dir, path, content string) string {
	t.Helper()

	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return full
}

// readTestFile returns the content of path or fails the test.
func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
