package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2txt/internal/config"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "MD2TXT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MD2TXT_CONFIG: config file name or path
	Timeout    time.Duration // MD2TXT_TIMEOUT: per-file conversion timeout
	Workers    int           // MD2TXT_WORKERS: parallel workers

	// Tier 2 - I/O
	InputDir      string // MD2TXT_INPUT_DIR: default input directory
	OutputDir     string // MD2TXT_OUTPUT_DIR: default output directory
	RemovedSuffix string // MD2TXT_REMOVED_SUFFIX: removed-content log suffix
	Report        string // MD2TXT_REPORT: YAML report path

	// Tier 3 - Pipeline
	Record      bool     // MD2TXT_RECORD: write removed-content logs
	Placeholder string   // MD2TXT_PLACEHOLDER: code block replacement text
	Disable     []string // MD2TXT_DISABLE: comma-separated step names
}

// knownEnvVars lists valid MD2TXT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MD2TXT_CONFIG":  true,
	"MD2TXT_TIMEOUT": true,
	"MD2TXT_WORKERS": true,
	// Tier 2 - I/O
	"MD2TXT_INPUT_DIR":      true,
	"MD2TXT_OUTPUT_DIR":     true,
	"MD2TXT_REMOVED_SUFFIX": true,
	"MD2TXT_REPORT":         true,
	// Tier 3 - Pipeline
	"MD2TXT_RECORD":      true,
	"MD2TXT_PLACEHOLDER": true,
	"MD2TXT_DISABLE":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers, durations and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MD2TXT_CONFIG"),
		// Tier 2
		InputDir:      os.Getenv("MD2TXT_INPUT_DIR"),
		OutputDir:     os.Getenv("MD2TXT_OUTPUT_DIR"),
		RemovedSuffix: os.Getenv("MD2TXT_REMOVED_SUFFIX"),
		Report:        os.Getenv("MD2TXT_REPORT"),
		// Tier 3
		Placeholder: os.Getenv("MD2TXT_PLACEHOLDER"),
		Disable:     splitList(os.Getenv("MD2TXT_DISABLE")),
	}

	if timeout := os.Getenv("MD2TXT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2TXT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if record := os.Getenv("MD2TXT_RECORD"); record != "" {
		if b, err := strconv.ParseBool(record); err == nil {
			cfg.Record = b
		}
	}

	return cfg
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// warnUnknownEnvVars logs warnings for unrecognized MD2TXT_* variables.
// Helps catch typos like MD2TXT_WORKER instead of MD2TXT_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 2 - I/O
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.RemovedSuffix != "" && cfg.Output.RemovedSuffix == "" {
		cfg.Output.RemovedSuffix = env.RemovedSuffix
	}
	if env.Report != "" && cfg.Report.Path == "" {
		cfg.Report.Path = env.Report
	}

	// Tier 3 - Pipeline
	if env.Record {
		cfg.Record.Enabled = true
	}
	if env.Placeholder != "" && cfg.Pipeline.CodePlaceholder == "" {
		cfg.Pipeline.CodePlaceholder = env.Placeholder
	}
	if len(env.Disable) > 0 && len(cfg.Pipeline.Disable) == 0 {
		cfg.Pipeline.Disable = env.Disable
	}
}
