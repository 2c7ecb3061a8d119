package pipeline

import "strings"

// Category identifies the kind of construct a removed fragment belongs to.
// The declaration order is the order used when rendering a removal report.
type Category int

const (
	CategoryFrontMatter Category = iota
	CategoryCodeBlocks
	CategoryHTMLComments
	CategoryInlineCode
	CategoryHashHeaders
	CategoryUnderlineHeaders
	CategoryEmphasis
	CategoryStrikethrough
	CategoryFootnoteDefinitions
	CategoryFootnoteReferences
	CategoryReferenceLinkDefinitions
	CategoryReferenceLinks
	CategoryImages
	CategoryLinks
	CategoryAutolinks
	CategoryTaskLists
	CategoryLists
	CategoryHorizontalRules
	CategoryTableSeparators
	CategoryBlockquotes
	CategoryHTMLTags
	CategoryEscapedCharacters

	categoryCount // sentinel, keep last
)

var categoryNames = [categoryCount]string{
	CategoryFrontMatter:              "front_matter",
	CategoryCodeBlocks:               "code_blocks",
	CategoryHTMLComments:             "html_comments",
	CategoryInlineCode:               "inline_code",
	CategoryHashHeaders:              "hash_headers",
	CategoryUnderlineHeaders:         "underline_headers",
	CategoryEmphasis:                 "emphasis",
	CategoryStrikethrough:            "strikethrough",
	CategoryFootnoteDefinitions:      "footnote_definitions",
	CategoryFootnoteReferences:       "footnote_references",
	CategoryReferenceLinkDefinitions: "reference_link_definitions",
	CategoryReferenceLinks:           "reference_links",
	CategoryImages:                   "images",
	CategoryLinks:                    "links",
	CategoryAutolinks:                "autolinks",
	CategoryTaskLists:                "task_lists",
	CategoryLists:                    "lists",
	CategoryHorizontalRules:          "horizontal_rules",
	CategoryTableSeparators:          "table_separators",
	CategoryBlockquotes:              "blockquotes",
	CategoryHTMLTags:                 "html_tags",
	CategoryEscapedCharacters:        "escaped_characters",
}

// String returns the snake_case name of the category.
func (c Category) String() string {
	if !c.valid() {
		return "unknown"
	}
	return categoryNames[c]
}

// Title returns the upper-case heading used in removal reports.
func (c Category) Title() string {
	return strings.ToUpper(c.String())
}

func (c Category) valid() bool {
	return c >= 0 && c < categoryCount
}

// Categories returns every category in declaration order.
func Categories() []Category {
	all := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		all = append(all, c)
	}
	return all
}
