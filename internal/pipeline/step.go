package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Step is one transformation of the pipeline. Apply consumes a document and
// returns the rewritten document; every fragment it removes is passed to rec.
// Apply must be total: input it cannot classify passes through unchanged.
type Step interface {
	Name() string
	Apply(doc string, rec *Recorder) (string, []Warning)
}

// StepStat captures the document length around a single step, in runes.
type StepStat struct {
	Name   string
	Before int
	After  int
}

// Diff returns how many runes the step removed (negative when it added).
func (s StepStat) Diff() int {
	return s.Before - s.After
}

// Warning is a non-fatal diagnostic about malformed input.
type Warning struct {
	Step    string
	Line    int // 1-based line in the step's input, 0 when not line-specific
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", w.Step, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Step, w.Message)
}

// Run applies step to doc and measures it.
func Run(step Step, doc string, rec *Recorder) (string, StepStat, []Warning) {
	out, warnings := step.Apply(doc, rec)
	stat := StepStat{
		Name:   step.Name(),
		Before: utf8.RuneCountInString(doc),
		After:  utf8.RuneCountInString(out),
	}
	return out, stat, warnings
}

// funcStep adapts a plain function to the Step interface.
type funcStep struct {
	name string
	fn   func(doc string, rec *Recorder) (string, []Warning)
}

func (s *funcStep) Name() string { return s.name }

func (s *funcStep) Apply(doc string, rec *Recorder) (string, []Warning) {
	return s.fn(doc, rec)
}

// newStep builds a step that never warns.
func newStep(name string, fn func(doc string, rec *Recorder) string) Step {
	return &funcStep{name: name, fn: func(doc string, rec *Recorder) (string, []Warning) {
		return fn(doc, rec), nil
	}}
}

// rule is one bounded pattern and what to do with its matches.
type rule struct {
	re       *regexp.Regexp
	category Category
	// accept vetoes a match; nil accepts all matches not preceded by an escape.
	accept func(s string, m []int) bool
	// replace returns the substitute text; nil removes the match.
	replace func(s string, m []int) string
	// record returns the fragment to log; nil logs the whole match.
	record func(s string, m []int) string
}

// apply rewrites every accepted, non-overlapping match of r in s.
func (r rule) apply(s string, rec *Recorder) string {
	matches := r.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		if escaped(s, m[0]) {
			continue
		}
		if r.accept != nil && !r.accept(s, m) {
			continue
		}
		b.WriteString(s[last:m[0]])
		if r.record != nil {
			rec.Record(r.category, r.record(s, m))
		} else {
			rec.Record(r.category, s[m[0]:m[1]])
		}
		if r.replace != nil {
			b.WriteString(r.replace(s, m))
		}
		last = m[1]
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// rulesStep applies its rules in order, each to the output of the previous one.
type rulesStep struct {
	name  string
	rules []rule
}

func (s *rulesStep) Name() string { return s.name }

func (s *rulesStep) Apply(doc string, rec *Recorder) (string, []Warning) {
	for _, r := range s.rules {
		doc = r.apply(doc, rec)
	}
	return doc, nil
}

// group returns capture group n of match m, or "" when it did not participate.
func group(s string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

// keepGroup returns a replacement func that keeps capture group n.
func keepGroup(n int) func(s string, m []int) string {
	return func(s string, m []int) string {
		return group(s, m, n)
	}
}

// escaped reports whether the byte at pos is preceded by an odd run of backslashes.
func escaped(s string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
