package pipeline

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// NewFrontMatterStep removes a YAML (---), TOML (+++) or JSON (;;;) front
// matter block at the very start of the document. A block that does not
// decode is left in place with a warning.
func NewFrontMatterStep() Step {
	return &funcStep{name: "Front matter", fn: removeFrontMatter}
}

func removeFrontMatter(doc string, rec *Recorder) (string, []Warning) {
	first := strings.TrimLeft(doc, " \t\n")
	if !strings.HasPrefix(first, "---") && !strings.HasPrefix(first, "+++") && !strings.HasPrefix(first, ";;;") {
		return doc, nil
	}

	var meta map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(doc), &meta)
	if err != nil {
		return doc, []Warning{{
			Step:    "Front matter",
			Line:    1,
			Message: "front matter left in place: " + err.Error(),
		}}
	}
	if len(rest) >= len(doc) {
		return doc, nil
	}

	rec.Record(CategoryFrontMatter, strings.TrimRight(doc[:len(doc)-len(rest)], "\n"))
	return string(rest), nil
}
