package pipeline

import (
	"io"
	"strconv"
	"strings"
)

// reportRuleWidth is the width of the "=" separator lines in Render output.
const reportRuleWidth = 50

// reportTitle heads every rendered removal report.
const reportTitle = "MARKDOWN CONVERTER - REMOVED CONTENT LOG"

// RemovedItem is a single fragment removed from the document.
type RemovedItem struct {
	Category Category
	Text     string
	Index    int // 1-based position among items of the same category
}

// Recorder accumulates removed fragments grouped by category.
// A nil or disabled Recorder accepts Record calls and keeps nothing,
// so steps never need to check whether auditing is on.
//
// Recorder is not safe for concurrent use; a pipeline run writes to it
// from one step at a time.
type Recorder struct {
	enabled bool
	items   [categoryCount][]string
}

// NewRecorder creates a Recorder. When enabled is false every Record is a no-op.
func NewRecorder(enabled bool) *Recorder {
	return &Recorder{enabled: enabled}
}

// Enabled reports whether the recorder keeps fragments.
func (r *Recorder) Enabled() bool {
	return r != nil && r.enabled
}

// Record appends text under category. Whitespace-only fragments are ignored.
func (r *Recorder) Record(category Category, text string) {
	if !r.Enabled() || !category.valid() || strings.TrimSpace(text) == "" {
		return
	}
	r.items[category] = append(r.items[category], text)
}

// Items returns the fragments recorded under category, in insertion order.
func (r *Recorder) Items(category Category) []RemovedItem {
	if r == nil || !category.valid() {
		return nil
	}
	texts := r.items[category]
	if len(texts) == 0 {
		return nil
	}
	out := make([]RemovedItem, len(texts))
	for i, text := range texts {
		out[i] = RemovedItem{Category: category, Text: text, Index: i + 1}
	}
	return out
}

// Len returns the total number of recorded fragments.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, texts := range r.items {
		n += len(texts)
	}
	return n
}

// Counts returns the number of fragments per non-empty category.
func (r *Recorder) Counts() map[Category]int {
	counts := make(map[Category]int)
	if r == nil {
		return counts
	}
	for c, texts := range r.items {
		if len(texts) > 0 {
			counts[Category(c)] = len(texts)
		}
	}
	return counts
}

// Render formats every recorded fragment as a human-readable report.
// Categories appear in declaration order; empty categories are omitted.
// An empty recorder renders to "".
func (r *Recorder) Render() string {
	if r.Len() == 0 {
		return ""
	}

	rule := strings.Repeat("=", reportRuleWidth)
	var b strings.Builder
	b.WriteString(reportTitle + "\n")
	b.WriteString(rule + "\n\n")

	for _, c := range Categories() {
		texts := r.items[c]
		if len(texts) == 0 {
			continue
		}
		b.WriteString(c.Title() + "\n")
		b.WriteString(strings.Repeat("-", len(c.String())) + "\n")
		for i, text := range texts {
			b.WriteString("\n[Item " + strconv.Itoa(i+1) + "]\n")
			b.WriteString(text)
			b.WriteString("\n")
		}
		b.WriteString("\n" + rule + "\n\n")
	}

	return b.String()
}

// WriteTo writes the rendered report to w.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Render())
	return int64(n), err
}
