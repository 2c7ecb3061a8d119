package pipeline

import (
	"regexp"
	"strings"
)

var (
	// "## Title ##" -> "Title"; up to three spaces of indentation, 1-6 markers.
	hashHeaderPattern = regexp.MustCompile(`(?m)^ {0,3}#{1,6}[ \t]+([^\n]*?)(?:[ \t]+#+)?[ \t]*$`)

	// Setext underline: a line made only of = or -.
	underlinePattern = regexp.MustCompile(`^ {0,3}(?:=+|-+)[ \t]*$`)
)

// NewHashHeaderStep strips ATX header markers, keeping the header text.
func NewHashHeaderStep() Step {
	return &rulesStep{name: "Hash headers", rules: []rule{
		{re: hashHeaderPattern, category: CategoryHashHeaders, replace: keepGroup(1)},
	}}
}

// NewUnderlineHeaderStep removes setext underlines ("===" or "---" below a
// non-blank text line) and leaves the text line unchanged.
func NewUnderlineHeaderStep() Step {
	return newStep("Underline headers", removeUnderlines)
}

func removeUnderlines(doc string, rec *Recorder) string {
	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out = append(out, line)
		if i+1 < len(lines) && !isBlankLine(line) && !underlinePattern.MatchString(line) &&
			underlinePattern.MatchString(lines[i+1]) {
			rec.Record(CategoryUnderlineHeaders, lines[i+1])
			i++
		}
	}

	return strings.Join(out, "\n")
}
