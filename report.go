package md2txt

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-md2txt/internal/yamlutil"
)

// unknownLanguage labels code blocks whose language cannot be identified.
const unknownLanguage = "unknown"

// Report summarizes one conversion for the YAML report file.
type Report struct {
	Source          string          `yaml:"source,omitempty"`
	Format          string          `yaml:"format"`
	OriginalLength  int             `yaml:"originalLength"`
	FinalLength     int             `yaml:"finalLength"`
	TotalReduction  int             `yaml:"totalReduction"`
	Steps           []StepReport    `yaml:"steps"`
	Removed         []RemovalCount  `yaml:"removed,omitempty"`
	CodeBlocks      []CodeBlockInfo `yaml:"codeBlocks,omitempty"`
	Warnings        []string        `yaml:"warnings,omitempty"`
	ResidualChecked bool            `yaml:"residualChecked"`
	Residual        []string        `yaml:"residual,omitempty"`
}

// StepReport is the length change caused by one step.
type StepReport struct {
	Name   string `yaml:"name"`
	Before int    `yaml:"before"`
	After  int    `yaml:"after"`
	Diff   int    `yaml:"diff"`
}

// RemovalCount is the number of fragments removed in one category.
type RemovalCount struct {
	Category string `yaml:"category"`
	Count    int    `yaml:"count"`
}

// CodeBlockInfo describes one removed fenced code block.
type CodeBlockInfo struct {
	Index    int    `yaml:"index"`
	Language string `yaml:"language"`
	Lines    int    `yaml:"lines"`
}

// NewReport builds the report of res. sourceName is informational and may be empty.
// Removal counts and code blocks are only available when the input was recorded.
func NewReport(sourceName string, res *ConvertResult) *Report {
	r := &Report{
		Source:          sourceName,
		Format:          res.Format,
		OriginalLength:  res.OriginalLength,
		FinalLength:     res.FinalLength(),
		TotalReduction:  res.TotalReduction(),
		Steps:           make([]StepReport, 0, len(res.Stats)),
		ResidualChecked: res.Checked,
	}

	for _, s := range res.Stats {
		r.Steps = append(r.Steps, StepReport{Name: s.Name, Before: s.Before, After: s.After, Diff: s.Diff()})
	}

	counts := res.Removed.Counts()
	for _, c := range Categories() {
		if n := counts[c]; n > 0 {
			r.Removed = append(r.Removed, RemovalCount{Category: c.String(), Count: n})
		}
	}

	for _, item := range res.Removed.Items(CategoryCodeBlocks) {
		lang, lines := describeCodeBlock(item.Text)
		r.CodeBlocks = append(r.CodeBlocks, CodeBlockInfo{Index: item.Index, Language: lang, Lines: lines})
	}

	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	for _, f := range res.Residual {
		r.Residual = append(r.Residual, f.String())
	}

	return r
}

// YAML encodes the report.
func (r *Report) YAML() ([]byte, error) {
	return yamlutil.Marshal(r)
}

// MarshalReports encodes the reports of a batch under a "files" key.
func MarshalReports(reports []*Report) ([]byte, error) {
	return yamlutil.Marshal(struct {
		Files []*Report `yaml:"files"`
	}{Files: reports})
}

// describeCodeBlock returns the language and body line count of a removed
// fenced block, fences included in block. An unclosed block has no closing fence.
func describeCodeBlock(block string) (language string, lines int) {
	rows := strings.Split(block, "\n")
	opener := strings.TrimSpace(rows[0])
	body := rows[1:]

	if len(body) > 0 {
		fence := opener[:1]
		if last := strings.TrimSpace(body[len(body)-1]); strings.HasPrefix(last, fence+fence+fence) {
			body = body[:len(body)-1]
		}
	}

	info := strings.TrimSpace(strings.TrimLeft(opener, "`~"))
	if fields := strings.Fields(info); len(fields) > 0 {
		info = strings.Trim(fields[0], "{}.")
	}

	return codeLanguage(info, strings.Join(body, "\n")), len(body)
}

// codeLanguage names the language of a code block: the fence info string
// when chroma knows it, otherwise a guess from the content.
func codeLanguage(info, body string) string {
	if info != "" {
		if l := lexers.Get(info); l != nil {
			return l.Config().Name
		}
		return info
	}
	if strings.TrimSpace(body) == "" {
		return unknownLanguage
	}
	if l := lexers.Analyse(body); l != nil {
		return l.Config().Name
	}
	return unknownLanguage
}
