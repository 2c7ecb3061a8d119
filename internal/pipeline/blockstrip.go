package pipeline

import (
	"fmt"
	"strings"
)

// DefaultCodeBlockPlaceholder replaces every removed fenced code block.
const DefaultCodeBlockPlaceholder = "[CODE BLOCK]"

// BlockStripper removes constructs that span several lines by scanning the
// document one line at a time with explicit open/close state. It never runs
// a pattern over the whole buffer.
//
// A block left open at end of input is cut at the first blank line after
// its opener; the cut part is removed, a Warning is emitted, and scanning
// resumes so prose after the stray block survives.
type BlockStripper struct {
	name        string
	what        string
	category    Category
	placeholder string
	// opens reports whether line starts a block and returns the marker
	// that must close it.
	opens func(line string) (marker string, ok bool)
	// closes reports whether line ends a block opened with marker.
	closes func(marker, line string) bool
}

// NewFencedCodeStripper removes ``` and ~~~ fenced code blocks, replacing each
// with placeholder. A fence only closes a block opened with the same character.
func NewFencedCodeStripper(placeholder string) *BlockStripper {
	return &BlockStripper{
		name:        "Code blocks",
		what:        "code block",
		category:    CategoryCodeBlocks,
		placeholder: placeholder,
		opens:       fenceMarker,
		closes: func(marker, line string) bool {
			m, ok := fenceMarker(line)
			return ok && m == marker
		},
	}
}

// NewHTMLCommentStripper removes <!-- --> comments spanning several lines.
// Comments opened and closed on one line are left to the HTML tag step.
func NewHTMLCommentStripper() *BlockStripper {
	return &BlockStripper{
		name:     "HTML comment blocks",
		what:     "HTML comment",
		category: CategoryHTMLComments,
		opens: func(line string) (string, bool) {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "<!--") && !strings.Contains(trimmed[4:], "-->") {
				return "-->", true
			}
			return "", false
		},
		closes: func(marker, line string) bool {
			return strings.Contains(line, marker)
		},
	}
}

// fenceMarker returns the fence character when line opens or closes a fence.
func fenceMarker(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "`", true
	case strings.HasPrefix(trimmed, "~~~"):
		return "~", true
	}
	return "", false
}

// Name implements Step.
func (s *BlockStripper) Name() string { return s.name }

// Apply implements Step.
func (s *BlockStripper) Apply(doc string, rec *Recorder) (string, []Warning) {
	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))
	var warnings []Warning

	var (
		inBlock bool
		marker  string
		start   int
	)
	// Markers already known to have no closing line after some point.
	// Later openers with the same marker are stray without rescanning.
	unclosed := make(map[string]bool)

	flush := func(from, to int) {
		rec.Record(s.category, strings.Join(lines[from:to], "\n"))
		if s.placeholder != "" {
			out = append(out, s.placeholder)
		}
		inBlock = false
	}

	// stray removes an unclosed block up to the next blank line and
	// returns the index of the last line it consumed.
	stray := func() int {
		cut := len(lines)
		for j := start + 1; j < len(lines); j++ {
			if isBlankLine(lines[j]) {
				cut = j
				break
			}
		}
		flush(start, cut)
		warnings = append(warnings, Warning{
			Step:    s.name,
			Line:    start + 1,
			Message: fmt.Sprintf("unclosed %s starting at line %d", s.what, start+1),
		})
		return cut - 1
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if inBlock {
			if s.closes(marker, line) {
				flush(start, i+1)
				continue
			}
		} else {
			m, ok := s.opens(line)
			if !ok {
				out = append(out, line)
				continue
			}
			inBlock, marker, start = true, m, i
			if unclosed[m] {
				i = stray()
				continue
			}
		}

		if inBlock && i == len(lines)-1 {
			unclosed[marker] = true
			i = stray()
		}
	}

	return strings.Join(out, "\n"), warnings
}
