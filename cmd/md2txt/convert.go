package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	md2txt "github.com/alnah/go-md2txt"
	"github.com/alnah/go-md2txt/internal/config"
	"github.com/alnah/go-md2txt/internal/fileutil"
	"github.com/alnah/go-md2txt/internal/hints"
)

// Sentinel errors for argument validation.
var (
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrTooManyArgs    = errors.New("too many arguments")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positionalArgs) > 2 {
		return fmt.Errorf("%w: %v (want <input> [output])", ErrTooManyArgs, positionalArgs)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env.Config)
	if err != nil {
		return err
	}

	// Priority: CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	output := resolveOutput(positionalArgs, flags.output, cfg)

	files, err := discoverFiles(inputPath, output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown or HTML files found in %s", ErrNoInput, inputPath)
	}

	conv, err := md2txt.NewConverter(converterOptions(cfg, flags.pipeline.check, timeout)...)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := md2txt.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
		fmt.Fprintf(env.Stderr, "Converting %d file(s)...\n", len(files))
	}

	params := &conversionParams{
		workers:       poolSize,
		writeLog:      cfg.Record.Enabled,
		removedSuffix: cfg.Output.RemovedSuffix,
		record:        cfg.Record.Enabled || cfg.Report.Path != "",
		stdout:        env.Stdout,
	}

	results := convertBatch(ctx, conv, files, params)

	failedCount := printResultsWithWriter(results, printOptions{
		quiet:   flags.common.quiet,
		verbose: flags.common.verbose,
		debug:   flags.debug,
	}, env)

	if cfg.Report.Path != "" {
		if err := writeReport(cfg.Report.Path, results); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "Report written to %s\n", cfg.Report.Path)
		}
	}

	if failedCount > 0 {
		return &conversionError{failed: failedCount, total: len(results), first: firstError(results)}
	}

	return nil
}

// loadConfig returns the config named by the flag, else by MD2TXT_CONFIG,
// else a copy of base.
func loadConfig(flagName, envName string, base *config.Config) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		if base == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *base
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// userConfigPaths returns where a config name is looked up in the user
// config directory. Paths are not searched, so they get no suggestion.
func userConfigPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.ConfigDirName, name+".yaml")}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.outputs.showStripped {
		cfg.Record.Enabled = true
	}
	if flags.outputs.suffix != "" {
		cfg.Output.RemovedSuffix = flags.outputs.suffix
	}
	if flags.outputs.report != "" {
		cfg.Report.Path = flags.outputs.report
	}
	if flags.pipeline.placeholder != "" {
		cfg.Pipeline.CodePlaceholder = flags.pipeline.placeholder
	}
	if len(flags.pipeline.disable) > 0 {
		cfg.Pipeline.Disable = flags.pipeline.disable
	}
}

// converterOptions translates the merged configuration into library options.
func converterOptions(cfg *config.Config, check bool, timeout time.Duration) []md2txt.Option {
	var opts []md2txt.Option
	if timeout > 0 {
		opts = append(opts, md2txt.WithTimeout(timeout))
	}
	if cfg.Pipeline.CodePlaceholder != "" {
		opts = append(opts, md2txt.WithCodeBlockPlaceholder(cfg.Pipeline.CodePlaceholder))
	}
	if len(cfg.Pipeline.Disable) > 0 {
		opts = append(opts, md2txt.WithDisabledSteps(cfg.Pipeline.Disable...))
	}
	if check {
		opts = append(opts, md2txt.WithResidualCheck())
	}
	return opts
}

// resolveTimeout picks the per-file timeout: flag > env > library default (0).
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutput determines the output from the second argument, the flag or config.
func resolveOutput(args []string, flagOutput string, cfg *config.Config) string {
	if len(args) > 1 {
		return args[1]
	}
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// writeReport writes the YAML report of every successful conversion.
func writeReport(path string, results []ConversionResult) error {
	reports := make([]*md2txt.Report, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Result != nil {
			reports = append(reports, md2txt.NewReport(r.InputPath, r.Result))
		}
	}

	data, err := md2txt.MarshalReports(reports)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteReport, err)
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteReport, err, hints.ForOutputDirectory())
	}
	return nil
}

// firstError returns the first failure of a batch, in input order.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
