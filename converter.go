package md2txt

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2txt/internal/pipeline"
	"github.com/alnah/go-md2txt/internal/residual"
	"github.com/alnah/go-md2txt/internal/source"
)

// Compile-time interface implementation checks.
var (
	_ residual.Checker = (*residual.Scanner)(nil)
	_ pipeline.Step    = (*pipeline.BlockStripper)(nil)
)

// Converter orchestrates the Markdown-to-text conversion.
// Create with NewConverter and call Convert; it is safe for concurrent use.
type Converter struct {
	cfg      converterConfig
	loader   *source.Loader
	pipeline *pipeline.Pipeline
	checker  residual.Checker
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithDisabledSteps).
// Returns ErrUnknownStep if a disabled step name does not exist.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: defaultTimeout},
		loader: source.NewLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	p, err := pipeline.Default(pipeline.Options{
		CodeBlockPlaceholder: c.cfg.placeholder,
		Disabled:             c.cfg.disabled,
	})
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}
	c.pipeline = p

	// Tests may inject a checker before this point.
	if c.cfg.check && c.checker == nil {
		c.checker = residual.NewScanner()
	}

	return c, nil
}

// Convert runs the full conversion and returns the plain text with its statistics.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	format := source.FormatMarkdown
	markdown := input.Markdown
	if input.Content != nil {
		format = source.DetectFormat(input.Filename, input.Content)
		markdown, err = c.loader.Load(ctx, input.Content, format)
		if err != nil {
			return nil, fmt.Errorf("loading %s input: %w", format, err)
		}
	}

	res, err := c.pipeline.Convert(ctx, markdown, pipeline.NewRecorder(input.Record))
	if err != nil {
		return nil, err
	}

	result = &ConvertResult{
		Text:           res.Text,
		Format:         format.String(),
		OriginalLength: res.OriginalLength,
		Stats:          res.Stats,
		Warnings:       res.Warnings,
		Removed:        res.Removed,
	}

	if c.checker != nil {
		report, err := c.checker.Check(ctx, res.Text)
		if err != nil {
			return nil, err
		}
		result.Residual = report.Findings
		result.Checked = true
	}

	return result, nil
}
