package pipeline

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Inline spans are capped at maxSpan runes and never cross a line break,
// so each pattern scans in time linear to the line length.
var (
	// `code` and ``code with ` inside``
	inlineCodePattern = regexp.MustCompile("``[ ]?([^\\n]{1,125}?)[ ]?``|`([^`\\n]{1,125})`")

	// ***text***, **text**, ___text___, __text__
	boldItalicAsterisks  = regexp.MustCompile(`\*\*\*([^*\s](?:[^*\n]{0,123}[^*\s])?)\*\*\*`)
	boldAsterisks        = regexp.MustCompile(`\*\*([^*\s](?:[^*\n]{0,123}[^*\s])?)\*\*`)
	boldItalicUnderscore = regexp.MustCompile(`___([^_\s](?:[^_\n]{0,123}[^_\s])?)___`)
	boldUnderscores      = regexp.MustCompile(`__([^_\s](?:[^_\n]{0,123}[^_\s])?)__`)

	// *text*, _text_
	italicAsterisks  = regexp.MustCompile(`\*([^*\s](?:[^*\n]{0,123}[^*\s])?)\*`)
	italicUnderscore = regexp.MustCompile(`_([^_\s](?:[^_\n]{0,123}[^_\s])?)_`)

	// ~~text~~
	strikethroughPattern = regexp.MustCompile(`~~([^~\s](?:[^~\n]{0,123}[^~\s])?)~~`)
)

// NewInlineCodeStep removes backtick delimiters and keeps the code text.
func NewInlineCodeStep() Step {
	return &rulesStep{name: "Inline code", rules: []rule{{
		re:       inlineCodePattern,
		category: CategoryInlineCode,
		replace: func(s string, m []int) string {
			if code := group(s, m, 1); code != "" {
				return code
			}
			return group(s, m, 2)
		},
	}}}
}

// NewStrongEmphasisStep removes double (and triple) emphasis markers.
// It runs before NewEmphasisStep so single-marker patterns never
// match inside a double-marker span.
func NewStrongEmphasisStep() Step {
	return &rulesStep{name: "Strong emphasis", rules: []rule{
		{re: boldItalicAsterisks, category: CategoryEmphasis, replace: keepGroup(1)},
		{re: boldAsterisks, category: CategoryEmphasis, replace: keepGroup(1)},
		{re: boldItalicUnderscore, category: CategoryEmphasis, replace: keepGroup(1), accept: notIntraword},
		{re: boldUnderscores, category: CategoryEmphasis, replace: keepGroup(1), accept: notIntraword},
	}}
}

// NewEmphasisStep removes single emphasis markers.
func NewEmphasisStep() Step {
	return &rulesStep{name: "Emphasis", rules: []rule{
		{re: italicAsterisks, category: CategoryEmphasis, replace: keepGroup(1), accept: notAdjacent('*')},
		{
			re:       italicUnderscore,
			category: CategoryEmphasis,
			replace:  keepGroup(1),
			accept: func(s string, m []int) bool {
				return notAdjacent('_')(s, m) && notIntraword(s, m)
			},
		},
	}}
}

// NewStrikethroughStep removes ~~ markers.
func NewStrikethroughStep() Step {
	return &rulesStep{name: "Strikethrough", rules: []rule{
		{re: strikethroughPattern, category: CategoryStrikethrough, replace: keepGroup(1)},
	}}
}

// notAdjacent rejects a match touching another marker character,
// which is what is left of an unbalanced longer run.
func notAdjacent(marker byte) func(s string, m []int) bool {
	return func(s string, m []int) bool {
		if m[0] > 0 && s[m[0]-1] == marker {
			return false
		}
		return m[1] >= len(s) || s[m[1]] != marker
	}
}

// notIntraword rejects underscore spans glued to letters or digits,
// so identifiers such as snake_case_name survive.
func notIntraword(s string, m []int) bool {
	if before, _ := utf8.DecodeLastRuneInString(s[:m[0]]); isWordRune(before) {
		return false
	}
	after, _ := utf8.DecodeRuneInString(s[m[1]:])
	return !isWordRune(after)
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
