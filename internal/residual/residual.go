// Package residual reports Markdown syntax that survived a conversion.
//
// The converted text is parsed again with a CommonMark parser (goldmark
// with the GFM and footnote extensions). Any node that would render as
// formatting, rather than plain text, is a finding.
package residual

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrScan indicates the residual scan failed.
var ErrScan = errors.New("residual scan failed")

// reported maps the node kinds that count as leftover syntax to the name
// used in findings. Bare URLs are not reported: plain text keeps them.
var reported = map[ast.NodeKind]string{
	ast.KindHeading:         "heading",
	ast.KindEmphasis:        "emphasis",
	ast.KindLink:            "link",
	ast.KindImage:           "image",
	ast.KindCodeSpan:        "inline_code",
	ast.KindFencedCodeBlock: "code_block",
	ast.KindCodeBlock:       "indented_code",
	ast.KindBlockquote:      "blockquote",
	ast.KindList:            "list",
	ast.KindThematicBreak:   "horizontal_rule",
	ast.KindHTMLBlock:       "html_block",
	ast.KindRawHTML:         "html_tag",
	east.KindStrikethrough:  "strikethrough",
	east.KindTaskCheckBox:   "task_list",
	east.KindFootnoteLink:   "footnote",
	east.KindTable:          "table",
}

// Finding is one leftover construct.
type Finding struct {
	Kind string
	Line int // 1-based
}

func (f Finding) String() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Kind)
}

// Report lists findings in document order.
type Report struct {
	Findings []Finding
}

// Clean reports whether nothing was found.
func (r *Report) Clean() bool {
	return len(r.Findings) == 0
}

// Counts returns the number of findings per kind.
func (r *Report) Counts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Findings {
		counts[f.Kind]++
	}
	return counts
}

// Kinds returns the distinct kinds found, sorted.
func (r *Report) Kinds() []string {
	counts := r.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Checker abstracts the residual syntax scan.
type Checker interface {
	Check(ctx context.Context, content string) (*Report, error)
}

// Scanner finds leftover Markdown with goldmark (pure Go).
type Scanner struct {
	md goldmark.Markdown
}

// NewScanner creates a Scanner with GFM extensions and footnotes.
func NewScanner() *Scanner {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
	)
	return &Scanner{md: md}
}

// Check parses content and reports every construct that is not plain text.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (s *Scanner) Check(ctx context.Context, content string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		report *Report
		err    error
	}

	done := make(chan result, 1)

	go func() {
		report, err := s.scan([]byte(content))
		done <- result{report: report, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.report, r.err
	}
}

func (s *Scanner) scan(source []byte) (*Report, error) {
	doc := s.md.Parser().Parse(text.NewReader(source))
	report := &Report{}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		kind, ok := reported[n.Kind()]
		if !ok {
			return ast.WalkContinue, nil
		}
		report.Findings = append(report.Findings, Finding{
			Kind: kind,
			Line: lineOf(source, offsetOf(n)),
		})
		// Code contents are not markup of their own.
		if n.Kind() == ast.KindFencedCodeBlock || n.Kind() == ast.KindCodeBlock || n.Kind() == ast.KindCodeSpan {
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}
	return report, nil
}

// offsetOf returns a byte offset inside n, searching its subtree first.
// Container blocks carry no lines of their own, and thematic breaks carry
// nothing at all: those fall back to the end of the previous sibling, then
// to the ancestors.
func offsetOf(n ast.Node) int {
	if off := offsetBelow(n); off >= 0 {
		return off
	}
	for prev := n.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
		if end := endBelow(prev); end >= 0 {
			return end
		}
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if off := ownOffset(p); off >= 0 {
			return off
		}
	}
	return 0
}

func offsetBelow(n ast.Node) int {
	if off := ownOffset(n); off >= 0 {
		return off
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off := offsetBelow(c); off >= 0 {
			return off
		}
	}
	return -1
}

// endBelow returns the offset just past the last line of n's subtree, or -1.
func endBelow(n ast.Node) int {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(n.Lines().Len() - 1).Stop
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if end := endBelow(c); end >= 0 {
			return end
		}
	}
	return -1
}

// ownOffset reads the position a node stores itself, or -1.
func ownOffset(n ast.Node) int {
	switch v := n.(type) {
	case *ast.Text:
		return v.Segment.Start
	case *ast.RawHTML:
		if v.Segments != nil && v.Segments.Len() > 0 {
			return v.Segments.At(0).Start
		}
		return -1
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	return -1
}

func lineOf(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
