package pipeline

import "regexp"

var (
	// [^note]: text -> text
	footnoteDefinitionPattern = regexp.MustCompile(`(?m)^ {0,3}\[\^[^\]\n]{1,125}\]:[ \t]?`)
	// [^note]
	footnoteReferencePattern = regexp.MustCompile(`\[\^[^\]\n]{1,125}\]`)

	// [label]: https://example.com "Title"
	referenceDefinitionPattern = regexp.MustCompile(`(?m)^ {0,3}\[[^\]\n^][^\]\n]{0,124}\]:[ \t]*\S[^\n]*$`)
	// [text][ref], [text][], ![alt][ref]
	referenceLinkPattern = regexp.MustCompile(`!?\[([^\]\n]{1,125})\]\[[^\]\n]{0,125}\]`)

	// ![alt](src)
	imagePattern = regexp.MustCompile(`!\[([^\]\n]{0,125})\]\([^)\n]{1,125}\)`)
	// [label](href)
	linkPattern = regexp.MustCompile(`\[([^\]\n]{1,125})\]\([^)\n]{1,125}\)`)
	// <https://example.com>, <mailto:a@b.c>, <a@b.c>
	autolinkPattern = regexp.MustCompile(`<((?:https?|ftp)://[^<>\s]{1,500}|mailto:[^<>\s]{1,500}|[A-Za-z0-9._%+\-]{1,64}@[A-Za-z0-9.\-]{1,253}\.[A-Za-z]{2,63})>`)
)

// NewFootnoteStep drops footnote references and the "[^id]:" marker of
// footnote definitions. The footnote text itself is kept.
func NewFootnoteStep() Step {
	return &rulesStep{name: "Footnotes", rules: []rule{
		{re: footnoteDefinitionPattern, category: CategoryFootnoteDefinitions},
		{
			re:       footnoteReferencePattern,
			category: CategoryFootnoteReferences,
			accept: func(s string, m []int) bool {
				return m[1] >= len(s) || s[m[1]] != ':'
			},
		},
	}}
}

// NewReferenceLinkStep removes link reference definitions and reduces
// reference-style links to their text.
func NewReferenceLinkStep() Step {
	return &rulesStep{name: "Reference links", rules: []rule{
		{re: referenceDefinitionPattern, category: CategoryReferenceLinkDefinitions},
		{re: referenceLinkPattern, category: CategoryReferenceLinks, replace: keepGroup(1)},
	}}
}

// NewImageStep replaces images with their alt text.
func NewImageStep() Step {
	return &rulesStep{name: "Images", rules: []rule{
		{re: imagePattern, category: CategoryImages, replace: keepGroup(1)},
	}}
}

// NewLinkStep replaces inline links with their label.
func NewLinkStep() Step {
	return &rulesStep{name: "Links", rules: []rule{
		{re: linkPattern, category: CategoryLinks, replace: keepGroup(1)},
	}}
}

// NewAutolinkStep removes the angle brackets around autolinks.
func NewAutolinkStep() Step {
	return &rulesStep{name: "Autolinks", rules: []rule{
		{re: autolinkPattern, category: CategoryAutolinks, replace: keepGroup(1)},
	}}
}
