package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Three or more -, * or _ with optional spaces between them.
	horizontalRulePattern = regexp.MustCompile(`(?m)^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)

	// One table separator cell: ---, :---, ---:, :---:
	tableCellPattern = regexp.MustCompile(`^:?-+:?$`)

	// Up to 16 nested quote markers.
	blockquotePattern = regexp.MustCompile(`(?m)^[ \t]{0,3}(?:>[ \t]?){1,16}`)
)

// NewHorizontalRuleStep removes thematic breaks, leaving an empty line.
func NewHorizontalRuleStep() Step {
	return &rulesStep{name: "Horizontal rules", rules: []rule{
		{re: horizontalRulePattern, category: CategoryHorizontalRules},
	}}
}

// NewTableStep removes table separator lines only. Rows with cell content
// are kept as they are, pipes included.
func NewTableStep() Step {
	return newStep("Tables (conservative)", removeTableSeparators)
}

func removeTableSeparators(doc string, rec *Recorder) string {
	if !strings.Contains(doc, "|") {
		return doc
	}

	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if isTableSeparator(line) {
			rec.Record(CategoryTableSeparators, line)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// isTableSeparator reports whether line consists solely of pipes, colons,
// dashes and spaces, with every cell shaped like :?-+:?.
func isTableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") || !strings.Contains(trimmed, "-") {
		return false
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	cells := 0
	for _, cell := range strings.Split(inner, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if !tableCellPattern.MatchString(cell) {
			return false
		}
		cells++
	}

	// "---" between two pipes is one column; without outer pipes a single
	// cell would just be a horizontal rule.
	if cells == 1 {
		return strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
	}
	return cells > 1
}

// NewBlockquoteStep strips quote markers at line start. Every nesting
// level goes at once.
func NewBlockquoteStep() Step {
	return &rulesStep{name: "Blockquotes", rules: []rule{
		{re: blockquotePattern, category: CategoryBlockquotes},
	}}
}
