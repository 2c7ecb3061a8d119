package md2txt

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-md2txt/internal/pipeline"
	"github.com/alnah/go-md2txt/internal/residual"
)

// Public views of the pipeline types.
type (
	// Recorder holds the fragments removed during one conversion.
	Recorder = pipeline.Recorder
	// Category identifies the kind of construct a removed fragment belongs to.
	Category = pipeline.Category
	// RemovedItem is a single removed fragment.
	RemovedItem = pipeline.RemovedItem
	// StepStat captures the document length, in runes, around one step.
	StepStat = pipeline.StepStat
	// Warning is a non-fatal diagnostic about malformed input.
	Warning = pipeline.Warning
	// Finding is a Markdown construct left in the converted text.
	Finding = residual.Finding
)

// Removal categories, in report order.
const (
	CategoryFrontMatter              = pipeline.CategoryFrontMatter
	CategoryCodeBlocks               = pipeline.CategoryCodeBlocks
	CategoryHTMLComments             = pipeline.CategoryHTMLComments
	CategoryInlineCode               = pipeline.CategoryInlineCode
	CategoryHashHeaders              = pipeline.CategoryHashHeaders
	CategoryUnderlineHeaders         = pipeline.CategoryUnderlineHeaders
	CategoryEmphasis                 = pipeline.CategoryEmphasis
	CategoryStrikethrough            = pipeline.CategoryStrikethrough
	CategoryFootnoteDefinitions      = pipeline.CategoryFootnoteDefinitions
	CategoryFootnoteReferences       = pipeline.CategoryFootnoteReferences
	CategoryReferenceLinkDefinitions = pipeline.CategoryReferenceLinkDefinitions
	CategoryReferenceLinks           = pipeline.CategoryReferenceLinks
	CategoryImages                   = pipeline.CategoryImages
	CategoryLinks                    = pipeline.CategoryLinks
	CategoryAutolinks                = pipeline.CategoryAutolinks
	CategoryTaskLists                = pipeline.CategoryTaskLists
	CategoryLists                    = pipeline.CategoryLists
	CategoryHorizontalRules          = pipeline.CategoryHorizontalRules
	CategoryTableSeparators          = pipeline.CategoryTableSeparators
	CategoryBlockquotes              = pipeline.CategoryBlockquotes
	CategoryHTMLTags                 = pipeline.CategoryHTMLTags
	CategoryEscapedCharacters        = pipeline.CategoryEscapedCharacters
)

// Categories returns every removal category in report order.
func Categories() []Category {
	return pipeline.Categories()
}

// StepNames returns the conversion step names in execution order.
func StepNames() []string {
	return pipeline.StepNames()
}

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown text (ignored when Content is set)
	Content  []byte // Raw file bytes: decoded, and converted first when HTML
	Filename string // Optional name of Content, used to detect HTML
	Record   bool   // Keep removed fragments in ConvertResult.Removed
}

// validate rejects inputs whose source is ambiguous.
func (in Input) validate() error {
	if in.Content != nil && in.Markdown != "" {
		return ErrInvalidInput
	}
	if strings.ContainsRune(in.Filename, 0) {
		return ErrInvalidInput
	}
	return nil
}

// ConvertResult is the outcome of one conversion.
type ConvertResult struct {
	Text           string     // Plain text output
	Format         string     // "markdown" or "html"
	OriginalLength int        // Runes of Markdown entering the pipeline
	Stats          []StepStat // One entry per executed step, in order
	Warnings       []Warning  // Malformed input diagnostics
	Removed        *Recorder  // Removed fragments (empty unless Input.Record)
	Residual       []Finding  // Leftover syntax (nil unless WithResidualCheck)
	Checked        bool       // Whether the residual check ran
}

// FinalLength returns the length of Text in runes.
func (r *ConvertResult) FinalLength() int {
	return utf8.RuneCountInString(r.Text)
}

// TotalReduction returns how many runes the conversion removed overall.
func (r *ConvertResult) TotalReduction() int {
	return r.OriginalLength - r.FinalLength()
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	placeholder string
	disabled    []string
	check       bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout bounds each Convert call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2txt: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithCodeBlockPlaceholder sets the text that replaces fenced code blocks.
// An empty string keeps the default "[CODE BLOCK]".
func WithCodeBlockPlaceholder(s string) Option {
	return func(c *Converter) {
		c.cfg.placeholder = s
	}
}

// WithDisabledSteps skips the named steps (case-insensitive, see StepNames).
// Unknown names make NewConverter fail with ErrUnknownStep.
func WithDisabledSteps(names ...string) Option {
	return func(c *Converter) {
		c.cfg.disabled = append(c.cfg.disabled, names...)
	}
}

// WithResidualCheck parses each output again and reports leftover Markdown.
func WithResidualCheck() Option {
	return func(c *Converter) {
		c.cfg.check = true
	}
}
