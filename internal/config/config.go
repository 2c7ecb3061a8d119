package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2txt/internal/fileutil"
	"github.com/alnah/go-md2txt/internal/pipeline"
	"github.com/alnah/go-md2txt/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field length limits.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxSuffixLength      = 50   // "_removed", ".stripped"
	MaxPlaceholderLength = 100  // "[CODE BLOCK]"
)

// ConfigDirName is the directory searched under the user config directory.
const ConfigDirName = "go-md2txt"

// Config holds all configuration for text conversion.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Record   RecordConfig   `yaml:"record"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Report   ReportConfig   `yaml:"report"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir    string `yaml:"defaultDir"`    // Default output directory (empty = same as source)
	RemovedSuffix string `yaml:"removedSuffix"` // Removed-content log suffix (empty = "_removed")
}

// RecordConfig controls the removed-content log.
type RecordConfig struct {
	Enabled bool `yaml:"enabled"`
}

// PipelineConfig tunes the conversion steps.
type PipelineConfig struct {
	CodePlaceholder string   `yaml:"codePlaceholder"` // Empty = "[CODE BLOCK]"
	Disable         []string `yaml:"disable"`         // Step names to skip
}

// ReportConfig defines the YAML conversion report.
type ReportConfig struct {
	Path string `yaml:"path"` // Empty = no report
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.path", c.Report.Path, MaxPathLength); err != nil {
		return err
	}

	if c.Output.RemovedSuffix != "" {
		if err := validateFieldLength("output.removedSuffix", c.Output.RemovedSuffix, MaxSuffixLength); err != nil {
			return err
		}
		if err := fileutil.ValidateSuffix(c.Output.RemovedSuffix); err != nil {
			return fmt.Errorf("%w: output.removedSuffix: %v", ErrInvalidField, err)
		}
	}

	if err := validateFieldLength("pipeline.codePlaceholder", c.Pipeline.CodePlaceholder, MaxPlaceholderLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Pipeline.CodePlaceholder, "\r\n") {
		return fmt.Errorf("%w: pipeline.codePlaceholder: must be a single line", ErrInvalidField)
	}

	// Step names are checked here so a typo fails before any file is touched.
	if err := pipeline.ValidateStepNames(c.Pipeline.Disable); err != nil {
		return fmt.Errorf("pipeline.disable: %w", err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no log, no report, every step on.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{DefaultDir: ""},
		Output:   OutputConfig{DefaultDir: "", RemovedSuffix: ""},
		Record:   RecordConfig{Enabled: false},
		Pipeline: PipelineConfig{CodePlaceholder: "", Disable: nil},
		Report:   ReportConfig{Path: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2txt/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, ConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
