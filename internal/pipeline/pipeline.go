package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownStep indicates a step name that is not part of the pipeline.
var ErrUnknownStep = errors.New("unknown pipeline step")

// Options tunes the default pipeline.
type Options struct {
	// CodeBlockPlaceholder replaces each fenced code block ("" = default).
	CodeBlockPlaceholder string
	// Disabled lists step names to skip (case-insensitive).
	Disabled []string
}

// DefaultSteps returns the conversion steps in their fixed order.
// Code is neutralized first so markers inside it never reach later steps;
// HTML tags are the last markup removed; escapes and whitespace finish.
func DefaultSteps(opts Options) []Step {
	placeholder := opts.CodeBlockPlaceholder
	if placeholder == "" {
		placeholder = DefaultCodeBlockPlaceholder
	}

	return []Step{
		NewLineEndingStep(),
		NewFrontMatterStep(),
		NewFencedCodeStripper(placeholder),
		NewHTMLCommentStripper(),
		NewInlineCodeStep(),
		NewHashHeaderStep(),
		NewUnderlineHeaderStep(),
		NewStrongEmphasisStep(),
		NewEmphasisStep(),
		NewStrikethroughStep(),
		NewFootnoteStep(),
		NewReferenceLinkStep(),
		NewImageStep(),
		NewLinkStep(),
		NewAutolinkStep(),
		NewHorizontalRuleStep(),
		NewTaskListStep(),
		NewListStep(),
		NewTableStep(),
		NewBlockquoteStep(),
		NewHTMLTagStep(),
		NewEscapeStep(),
		NewWhitespaceStep(),
	}
}

// StepNames returns the names of the default steps in order.
func StepNames() []string {
	steps := DefaultSteps(Options{})
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name()
	}
	return names
}

// ValidateStepNames checks that every name refers to a default step.
func ValidateStepNames(names []string) error {
	known := make(map[string]bool)
	for _, n := range StepNames() {
		known[strings.ToLower(n)] = true
	}
	for _, n := range names {
		if !known[strings.ToLower(strings.TrimSpace(n))] {
			return fmt.Errorf("%w: %q", ErrUnknownStep, n)
		}
	}
	return nil
}

// Pipeline runs an ordered list of steps over a document.
type Pipeline struct {
	steps []Step
}

// New creates a Pipeline running steps in the given order.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Default creates the standard Markdown-to-text pipeline.
func Default(opts Options) (*Pipeline, error) {
	if err := ValidateStepNames(opts.Disabled); err != nil {
		return nil, err
	}

	disabled := make(map[string]bool, len(opts.Disabled))
	for _, n := range opts.Disabled {
		disabled[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var steps []Step
	for _, s := range DefaultSteps(opts) {
		if !disabled[strings.ToLower(s.Name())] {
			steps = append(steps, s)
		}
	}
	return New(steps...), nil
}

// Steps returns the steps in execution order.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Result is the outcome of one conversion. It is not modified after Convert returns.
type Result struct {
	Text           string
	Stats          []StepStat
	Removed        *Recorder
	Warnings       []Warning
	OriginalLength int // runes
}

// FinalLength returns the length of Text in runes.
func (r *Result) FinalLength() int {
	return utf8.RuneCountInString(r.Text)
}

// TotalReduction returns how many runes the conversion removed overall.
func (r *Result) TotalReduction() int {
	return r.OriginalLength - r.FinalLength()
}

// Convert threads input through every step. rec may be nil when removed
// content is not needed. Steps never fail; the only error is ctx being
// canceled between two steps.
func (p *Pipeline) Convert(ctx context.Context, input string, rec *Recorder) (*Result, error) {
	if rec == nil {
		rec = NewRecorder(false)
	}

	result := &Result{
		Stats:          make([]StepStat, 0, len(p.steps)),
		Removed:        rec,
		OriginalLength: utf8.RuneCountInString(input),
	}

	doc := input
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, stat, warnings := Run(step, doc, rec)
		result.Stats = append(result.Stats, stat)
		result.Warnings = append(result.Warnings, warnings...)
		doc = out
	}

	result.Text = doc
	return result, nil
}
